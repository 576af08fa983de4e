package matcher

// StringOp is the relational operator family over subfield value
// bytes. Regex and set-membership operators have their own AST nodes
// since their right-hand side isn't a single string literal; they
// aren't represented here.
type StringOp int

const (
	OpEq StringOp = iota
	OpNe
	OpPrefix
	OpNotPrefix
	OpSuffix
	OpNotSuffix
	OpSimilar
	OpContains
)

func (o StringOp) String() string {
	switch o {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpPrefix:
		return "=^"
	case OpNotPrefix:
		return "!^"
	case OpSuffix:
		return "=$"
	case OpNotSuffix:
		return "!$"
	case OpSimilar:
		return "=*"
	case OpContains:
		return "=?"
	default:
		return "?"
	}
}

// NumOp is the relational operator family over unsigned-integer
// cardinalities.
type NumOp int

const (
	NumEq NumOp = iota
	NumNe
	NumGt
	NumGe
	NumLt
	NumLe
)

func (o NumOp) String() string {
	switch o {
	case NumEq:
		return "=="
	case NumNe:
		return "!="
	case NumGt:
		return ">"
	case NumGe:
		return ">="
	case NumLt:
		return "<"
	case NumLe:
		return "<="
	default:
		return "?"
	}
}

func (o NumOp) Eval(lhs, rhs uint64) bool {
	switch o {
	case NumEq:
		return lhs == rhs
	case NumNe:
		return lhs != rhs
	case NumGt:
		return lhs > rhs
	case NumGe:
		return lhs >= rhs
	case NumLt:
		return lhs < rhs
	case NumLe:
		return lhs <= rhs
	default:
		return false
	}
}

// Quantifier governs how a predicate lifts from one field to a
// multiset of fields.
type Quantifier int

const (
	QuantAny Quantifier = iota
	QuantAll
	QuantNone
)

func (q Quantifier) String() string {
	switch q {
	case QuantAny:
		return "ANY"
	case QuantAll:
		return "ALL"
	case QuantNone:
		return "NONE"
	default:
		return "?"
	}
}

// Vacuous returns the quantifier's answer over an empty multiset:
// ANY is false, ALL and NONE are true.
func (q Quantifier) Vacuous() bool {
	return q != QuantAny
}

// Reduce folds a sequence of per-member booleans according to the
// quantifier. It must be called with at least one element; callers
// handle the empty case via Vacuous.
func (q Quantifier) Reduce(results []bool) bool {
	switch q {
	case QuantAll:
		for _, r := range results {
			if !r {
				return false
			}
		}
		return true
	case QuantNone:
		for _, r := range results {
			if r {
				return false
			}
		}
		return true
	default: // QuantAny
		for _, r := range results {
			if r {
				return true
			}
		}
		return false
	}
}

// BooleanOp names the boolean combinators for programmatic
// construction (the and/or/xor/not re-exports).
type BooleanOp int

const (
	BoolAnd BooleanOp = iota
	BoolOr
	BoolXor
)

func (b BooleanOp) Eval(l, r bool) bool {
	switch b {
	case BoolAnd:
		return l && r
	case BoolOr:
		return l || r
	case BoolXor:
		return l != r
	default:
		return false
	}
}

func (b BooleanOp) String() string {
	switch b {
	case BoolAnd:
		return "&&"
	case BoolOr:
		return "||"
	case BoolXor:
		return "^"
	default:
		return "?"
	}
}
