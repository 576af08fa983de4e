package matcher

import (
	"fmt"

	"github.com/dnb-digital/pica-go/internal/lex"
)

// subfieldMatcherMaxDepth bounds parenthesis nesting for the subfield
// matcher parser. We reuse the field-matcher bound for consistency
// across the shared grammar rather than leaving this parser unbounded.
const subfieldMatcherMaxDepth = 256

// ParseSubfieldMatcher parses a subfield matcher expression. The
// entire input must be consumed (anchored). opts is baked into the
// matcher at build time because regex compilation (=~/!~) must decide
// case-insensitivity at compile time: the returned matcher is only
// meaningful when later evaluated with the same Options it was built
// with.
func ParseSubfieldMatcher(text string, opts Options) (SubfieldMatcher, error) {
	c := lex.NewCursor(text)
	m, err := parseSubfieldOr(c, lex.NewDepth(subfieldMatcherMaxDepth), opts)
	if err != nil {
		return nil, &SubfieldMatcherError{Text: text, Inner: err}
	}
	c.SkipSpace()
	if !c.Eof() {
		return nil, &SubfieldMatcherError{Text: text, Inner: fmt.Errorf("unexpected trailing input at %q", c.Rest())}
	}
	return m, nil
}

func parseSubfieldOr(c *lex.Cursor, depth lex.Depth, opts Options) (SubfieldMatcher, error) {
	left, err := parseSubfieldXor(c, depth, opts)
	if err != nil {
		return nil, err
	}
	for {
		c.SkipSpace()
		if !c.ConsumeLiteral("||") {
			return left, nil
		}
		right, err := parseSubfieldXor(c, depth, opts)
		if err != nil {
			return nil, err
		}
		left = Or(left, right)
	}
}

func parseSubfieldXor(c *lex.Cursor, depth lex.Depth, opts Options) (SubfieldMatcher, error) {
	left, err := parseSubfieldAnd(c, depth, opts)
	if err != nil {
		return nil, err
	}
	for {
		c.SkipSpace()
		if !c.ConsumeLiteral("XOR") && !c.Consume('^') {
			return left, nil
		}
		right, err := parseSubfieldAnd(c, depth, opts)
		if err != nil {
			return nil, err
		}
		left = Xor(left, right)
	}
}

func parseSubfieldAnd(c *lex.Cursor, depth lex.Depth, opts Options) (SubfieldMatcher, error) {
	left, err := parseSubfieldUnary(c, depth, opts)
	if err != nil {
		return nil, err
	}
	for {
		c.SkipSpace()
		if !c.ConsumeLiteral("&&") {
			return left, nil
		}
		right, err := parseSubfieldUnary(c, depth, opts)
		if err != nil {
			return nil, err
		}
		left = And(left, right)
	}
}

func parseSubfieldUnary(c *lex.Cursor, depth lex.Depth, opts Options) (SubfieldMatcher, error) {
	c.SkipSpace()
	if c.Consume('!') {
		inner, err := parseSubfieldUnary(c, depth, opts)
		if err != nil {
			return nil, err
		}
		return Not(inner), nil
	}
	return parseSubfieldAtom(c, depth, opts)
}

func parseSubfieldAtom(c *lex.Cursor, depth lex.Depth, opts Options) (SubfieldMatcher, error) {
	c.SkipSpace()
	if c.Consume('(') {
		next, err := depth.Enter()
		if err != nil {
			return nil, err
		}
		inner, err := parseSubfieldOr(c, next, opts)
		if err != nil {
			return nil, err
		}
		c.SkipSpace()
		if !c.Consume(')') {
			return nil, fmt.Errorf("expected ')'")
		}
		return inner, nil
	}
	if c.Consume('#') {
		return parseCardinality(c)
	}
	codes, err := ParseCodeClass(c)
	if err != nil {
		return nil, err
	}
	return parseCodesTail(c, codes, opts)
}

func parseCardinality(c *lex.Cursor) (SubfieldMatcher, error) {
	codes, err := ParseCodeClass(c)
	if err != nil {
		return nil, err
	}
	op, err := readNumOp(c)
	if err != nil {
		return nil, err
	}
	c.SkipSpace()
	digits := c.ReadDigits()
	if digits == "" {
		return nil, fmt.Errorf("expected unsigned integer after cardinality operator")
	}
	return cardinalityMatcher{codes: codes, op: op, n: parseUint(digits)}, nil
}

func parseCodesTail(c *lex.Cursor, codes CodeClass, opts Options) (SubfieldMatcher, error) {
	c.SkipSpace()
	if c.Consume('?') {
		return existsMatcher{codes: codes}, nil
	}
	if c.PeekLiteral("not") {
		if !c.ConsumeLiteral("not") || !c.ConsumeLiteral("in") {
			return nil, fmt.Errorf("expected 'not in' after code class")
		}
		values, err := readValueList(c)
		if err != nil {
			return nil, err
		}
		return setMembershipMatcher{codes: codes, negate: true, values: values}, nil
	}
	if c.PeekLiteral("in") {
		c.ConsumeLiteral("in")
		values, err := readValueList(c)
		if err != nil {
			return nil, err
		}
		return setMembershipMatcher{codes: codes, negate: false, values: values}, nil
	}
	return parseCodesOperator(c, codes, opts)
}

func parseCodesOperator(c *lex.Cursor, codes CodeClass, opts Options) (SubfieldMatcher, error) {
	c.SkipSpace()
	switch {
	case c.PeekLiteral("=~"):
		c.ConsumeLiteral("=~")
		return readRegexOperand(c, codes, false, opts)
	case c.PeekLiteral("!~"):
		c.ConsumeLiteral("!~")
		return readRegexOperand(c, codes, true, opts)
	case c.PeekLiteral("=^"):
		c.ConsumeLiteral("=^")
		return readStringOperand(c, codes, OpPrefix)
	case c.PeekLiteral("!^"):
		c.ConsumeLiteral("!^")
		return readStringOperand(c, codes, OpNotPrefix)
	case c.PeekLiteral("=$"):
		c.ConsumeLiteral("=$")
		return readStringOperand(c, codes, OpSuffix)
	case c.PeekLiteral("!$"):
		c.ConsumeLiteral("!$")
		return readStringOperand(c, codes, OpNotSuffix)
	case c.PeekLiteral("=*"):
		c.ConsumeLiteral("=*")
		return readStringOperand(c, codes, OpSimilar)
	case c.PeekLiteral("=?"):
		c.ConsumeLiteral("=?")
		return readStringOperand(c, codes, OpContains)
	case c.PeekLiteral("=="):
		c.ConsumeLiteral("==")
		return readStringOperand(c, codes, OpEq)
	case c.PeekLiteral("!="):
		c.ConsumeLiteral("!=")
		return readStringOperand(c, codes, OpNe)
	default:
		return nil, fmt.Errorf("expected a subfield operator after code class, found %q", c.Rest())
	}
}

func readStringOperand(c *lex.Cursor, codes CodeClass, op StringOp) (SubfieldMatcher, error) {
	val, err := c.ReadQuotedString()
	if err != nil {
		return nil, err
	}
	return comparisonMatcher{codes: codes, op: op, value: val}, nil
}

func readRegexOperand(c *lex.Cursor, codes CodeClass, negate bool, opts Options) (SubfieldMatcher, error) {
	c.SkipSpace()
	start := c.Pos()
	var exprs []string
	if c.Consume('[') {
		for {
			c.SkipSpace()
			v, err := c.ReadQuotedString()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, v)
			c.SkipSpace()
			if c.Consume(',') {
				continue
			}
			break
		}
		if !c.Consume(']') {
			return nil, fmt.Errorf("expected ']' to close regex set")
		}
	} else {
		v, err := c.ReadQuotedString()
		if err != nil {
			return nil, err
		}
		exprs = []string{v}
	}
	raw := c.Slice(start, c.Pos())
	set, err := CompileRegexSet(exprs, opts.CaseIgnore)
	if err != nil {
		return nil, err
	}
	return regexMatcher{codes: codes, negate: negate, set: set, raw: raw}, nil
}

func readValueList(c *lex.Cursor) ([]string, error) {
	c.SkipSpace()
	if !c.Consume('[') {
		return nil, fmt.Errorf("expected '[' to start value list")
	}
	var values []string
	for {
		c.SkipSpace()
		v, err := c.ReadQuotedString()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		c.SkipSpace()
		if c.Consume(',') {
			continue
		}
		break
	}
	if !c.Consume(']') {
		return nil, fmt.Errorf("expected ']' to close value list")
	}
	return values, nil
}

func readNumOp(c *lex.Cursor) (NumOp, error) {
	c.SkipSpace()
	switch {
	case c.ConsumeLiteral(">="):
		return NumGe, nil
	case c.ConsumeLiteral("<="):
		return NumLe, nil
	case c.ConsumeLiteral("=="):
		return NumEq, nil
	case c.ConsumeLiteral("!="):
		return NumNe, nil
	case c.ConsumeLiteral(">"):
		return NumGt, nil
	case c.ConsumeLiteral("<"):
		return NumLt, nil
	default:
		return 0, fmt.Errorf("expected a numeric comparison operator, found %q", c.Rest())
	}
}

func parseUint(digits string) uint64 {
	var n uint64
	for i := 0; i < len(digits); i++ {
		n = n*10 + uint64(digits[i]-'0')
	}
	return n
}
