package matcher

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/dnb-digital/pica-go/record"
)

// SubfieldMatcher is a boolean predicate over a multiset of subfields
// belonging to one field (spec §4.3). Every AST node below
// implements it; all are immutable after construction and safe to
// share across goroutines.
type SubfieldMatcher interface {
	Eval(subfields []record.Subfield, opts Options) bool
	String() string
}

type existsMatcher struct{ codes CodeClass }

func (m existsMatcher) Eval(subfields []record.Subfield, _ Options) bool {
	for _, sf := range subfields {
		if m.codes.Contains(byte(sf.Code)) {
			return true
		}
	}
	return false
}
func (m existsMatcher) String() string { return m.codes.String() + "?" }

type comparisonMatcher struct {
	codes CodeClass
	op    StringOp
	value string
}

func (m comparisonMatcher) Eval(subfields []record.Subfield, opts Options) bool {
	rhs := foldCase(m.value, opts.CaseIgnore)
	for _, sf := range subfields {
		if !m.codes.Contains(byte(sf.Code)) {
			continue
		}
		if evalStringOp(m.op, foldCase(sf.Value.String(), opts.CaseIgnore), rhs, opts) {
			return true
		}
	}
	return false
}

func evalStringOp(op StringOp, lhs, rhs string, opts Options) bool {
	switch op {
	case OpEq:
		return lhs == rhs
	case OpNe:
		return lhs != rhs
	case OpPrefix:
		return strings.HasPrefix(lhs, rhs)
	case OpNotPrefix:
		return !strings.HasPrefix(lhs, rhs)
	case OpSuffix:
		return strings.HasSuffix(lhs, rhs)
	case OpNotSuffix:
		return !strings.HasSuffix(lhs, rhs)
	case OpContains:
		return strings.Contains(lhs, rhs)
	case OpSimilar:
		return similar(lhs, rhs, opts.StrsimThreshold)
	default:
		return false
	}
}

// similar reports whether the normalized Levenshtein similarity
// between a and b meets threshold (spec §4.2's =* semantics). Both
// operands are lowercased under case_ignore by the caller already;
// SPEC_FULL.md's DOMAIN STACK wires agnivade/levenshtein for the raw
// edit-distance computation and normalizes it here the way the
// original's strsim::normalized_levenshtein does (1 - distance/maxlen).
func similar(a, b string, threshold float64) bool {
	if a == "" && b == "" {
		return true
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if bl := len([]rune(b)); bl > maxLen {
		maxLen = bl
	}
	if maxLen == 0 {
		return true
	}
	sim := 1.0 - float64(dist)/float64(maxLen)
	return sim >= threshold
}

func (m comparisonMatcher) String() string {
	return m.codes.String() + " " + m.op.String() + " '" + m.value + "'"
}

type setMembershipMatcher struct {
	codes  CodeClass
	negate bool
	values []string
}

func (m setMembershipMatcher) Eval(subfields []record.Subfield, opts Options) bool {
	for _, sf := range subfields {
		if !m.codes.Contains(byte(sf.Code)) {
			continue
		}
		found := false
		v := foldCase(sf.Value.String(), opts.CaseIgnore)
		for _, cand := range m.values {
			if v == foldCase(cand, opts.CaseIgnore) {
				found = true
				break
			}
		}
		if found != m.negate {
			return true
		}
	}
	return false
}

func (m setMembershipMatcher) String() string {
	op := "in"
	if m.negate {
		op = "not in"
	}
	return m.codes.String() + " " + op + " [" + strings.Join(m.values, ", ") + "]"
}

type regexMatcher struct {
	codes  CodeClass
	negate bool
	set    *RegexSet
	raw    string
}

func (m regexMatcher) Eval(subfields []record.Subfield, _ Options) bool {
	for _, sf := range subfields {
		if !m.codes.Contains(byte(sf.Code)) {
			continue
		}
		if m.set.Any(sf.Value.String()) != m.negate {
			return true
		}
	}
	return false
}

func (m regexMatcher) String() string {
	op := "=~"
	if m.negate {
		op = "!~"
	}
	return m.codes.String() + " " + op + " " + m.raw
}

type cardinalityMatcher struct {
	codes CodeClass
	op    NumOp
	n     uint64
}

func (m cardinalityMatcher) Eval(subfields []record.Subfield, _ Options) bool {
	var count uint64
	for _, sf := range subfields {
		if m.codes.Contains(byte(sf.Code)) {
			count++
		}
	}
	return m.op.Eval(count, m.n)
}

func (m cardinalityMatcher) String() string {
	return "#" + m.codes.String() + " " + m.op.String() + " " + strconv.FormatUint(m.n, 10)
}

type notMatcher struct{ inner SubfieldMatcher }

func (m notMatcher) Eval(subfields []record.Subfield, opts Options) bool {
	return !m.inner.Eval(subfields, opts)
}
func (m notMatcher) String() string { return "!(" + m.inner.String() + ")" }

type boolMatcher struct {
	op          BooleanOp
	left, right SubfieldMatcher
}

func (m boolMatcher) Eval(subfields []record.Subfield, opts Options) bool {
	return m.op.Eval(m.left.Eval(subfields, opts), m.right.Eval(subfields, opts))
}
func (m boolMatcher) String() string {
	return "(" + m.left.String() + " " + m.op.String() + " " + m.right.String() + ")"
}

// And, Or, Xor, Not build composite matchers programmatically (spec
// §4.5's re-exported combinators, shared by the subfield and field
// matcher languages).
func And(a, b SubfieldMatcher) SubfieldMatcher { return boolMatcher{op: BoolAnd, left: a, right: b} }
func Or(a, b SubfieldMatcher) SubfieldMatcher  { return boolMatcher{op: BoolOr, left: a, right: b} }
func Xor(a, b SubfieldMatcher) SubfieldMatcher { return boolMatcher{op: BoolXor, left: a, right: b} }
func Not(a SubfieldMatcher) SubfieldMatcher    { return notMatcher{inner: a} }
