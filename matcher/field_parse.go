package matcher

import (
	"fmt"

	"github.com/dnb-digital/pica-go/internal/lex"
)

// fieldMatcherMaxDepth bounds parenthesis nesting for the field
// matcher parser (spec §4.4's recommended 256).
const fieldMatcherMaxDepth = 256

// ParseFieldMatcher parses a field matcher expression. The
// entire input must be consumed (anchored).
func ParseFieldMatcher(text string, opts Options) (FieldMatcher, error) {
	c := lex.NewCursor(text)
	m, err := parseFieldOr(c, lex.NewDepth(fieldMatcherMaxDepth), opts)
	if err != nil {
		return nil, &FieldMatcherError{Text: text, Inner: err}
	}
	c.SkipSpace()
	if !c.Eof() {
		return nil, &FieldMatcherError{Text: text, Inner: fmt.Errorf("unexpected trailing input at %q", c.Rest())}
	}
	return m, nil
}

func parseFieldOr(c *lex.Cursor, depth lex.Depth, opts Options) (FieldMatcher, error) {
	left, err := parseFieldXor(c, depth, opts)
	if err != nil {
		return nil, err
	}
	for {
		c.SkipSpace()
		if !c.ConsumeLiteral("||") {
			return left, nil
		}
		right, err := parseFieldXor(c, depth, opts)
		if err != nil {
			return nil, err
		}
		left = OrField(left, right)
	}
}

func parseFieldXor(c *lex.Cursor, depth lex.Depth, opts Options) (FieldMatcher, error) {
	left, err := parseFieldAnd(c, depth, opts)
	if err != nil {
		return nil, err
	}
	for {
		c.SkipSpace()
		if !c.ConsumeLiteral("XOR") && !c.Consume('^') {
			return left, nil
		}
		right, err := parseFieldAnd(c, depth, opts)
		if err != nil {
			return nil, err
		}
		left = XorField(left, right)
	}
}

func parseFieldAnd(c *lex.Cursor, depth lex.Depth, opts Options) (FieldMatcher, error) {
	left, err := parseFieldUnary(c, depth, opts)
	if err != nil {
		return nil, err
	}
	for {
		c.SkipSpace()
		if !c.ConsumeLiteral("&&") {
			return left, nil
		}
		right, err := parseFieldUnary(c, depth, opts)
		if err != nil {
			return nil, err
		}
		left = AndField(left, right)
	}
}

func parseFieldUnary(c *lex.Cursor, depth lex.Depth, opts Options) (FieldMatcher, error) {
	c.SkipSpace()
	// "!∃" is the NONE quantifier token, not boolean negation; it must
	// be recognized here before the plain '!' case below, which is
	// boolean negation of an arbitrary sub-expression.
	if c.PeekLiteral("!∃") {
		return parseFieldAtom(c, depth, opts)
	}
	if c.Consume('!') {
		inner, err := parseFieldUnary(c, depth, opts)
		if err != nil {
			return nil, err
		}
		return NotField(inner), nil
	}
	return parseFieldAtom(c, depth, opts)
}

func parseFieldAtom(c *lex.Cursor, depth lex.Depth, opts Options) (FieldMatcher, error) {
	c.SkipSpace()
	if c.Consume('(') {
		next, err := depth.Enter()
		if err != nil {
			return nil, err
		}
		inner, err := parseFieldOr(c, next, opts)
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
		return parseFieldCardinality(c, opts)
	}

	quant, hasQuant := parseOptionalQuantifier(c)
	c.SkipSpace()
	tagPat, err := ParseTagPattern(c)
	if err != nil {
		return nil, err
	}
	occPat, err := ParseOccurrencePattern(c)
	if err != nil {
		return nil, err
	}

	c.SkipSpace()
	switch c.Peek() {
	case '.':
		c.Advance()
		inner, err := parseSubfieldSingleton(c, opts)
		if err != nil {
			return nil, err
		}
		return subfieldsFieldMatcher{quant: quant, tag: tagPat, occ: occPat, inner: inner, dot: true}, nil
	case '{':
		c.Advance()
		inner, err := parseSubfieldOr(c, lex.NewDepth(subfieldMatcherMaxDepth), opts)
		if err != nil {
			return nil, err
		}
		c.SkipSpace()
		if !c.Consume('}') {
			return nil, fmt.Errorf("expected '}' to close subfield matcher")
		}
		return subfieldsFieldMatcher{quant: quant, tag: tagPat, occ: occPat, inner: inner, dot: false}, nil
	default:
		if hasQuant {
			return nil, fmt.Errorf("quantifier is only valid before a subfield predicate")
		}
		return existsFieldMatcher{tag: tagPat, occ: occPat}, nil
	}
}

// parseSubfieldSingleton parses the SINGLETON grammar from spec §4.4:
// a subfield existence test or a single comparison, reusing the same
// code-class-tail parsing the subfield matcher uses for those two
// forms (set membership and regex are comparisons too, by the same
// "CODES op operand" shape, so they're accepted here as well; only
// cardinality and boolean composition are excluded, since those need
// the brace form instead).
func parseSubfieldSingleton(c *lex.Cursor, opts Options) (SubfieldMatcher, error) {
	codes, err := ParseCodeClass(c)
	if err != nil {
		return nil, err
	}
	return parseCodesTail(c, codes, opts)
}

func parseFieldCardinality(c *lex.Cursor, opts Options) (FieldMatcher, error) {
	tagPat, err := ParseTagPattern(c)
	if err != nil {
		return nil, err
	}
	occPat, err := ParseOccurrencePattern(c)
	if err != nil {
		return nil, err
	}
	var inner SubfieldMatcher
	c.SkipSpace()
	if c.Consume('{') {
		sm, err := parseSubfieldOr(c, lex.NewDepth(subfieldMatcherMaxDepth), opts)
		if err != nil {
			return nil, err
		}
		c.SkipSpace()
		if !c.Consume('}') {
			return nil, fmt.Errorf("expected '}' to close subfield matcher")
		}
		inner = sm
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
	return fieldCardinalityMatcher{tag: tagPat, occ: occPat, inner: inner, op: op, n: parseUint(digits)}, nil
}

// parseOptionalQuantifier reads an optional leading quantifier token
// (∀/ALL, ∃/ANY, !∃/NONE); absent defaults to ANY with hasQuant=false
// so callers can tell "no quantifier written" from "ANY written
// explicitly" when validating that a quantifier only precedes a
// subfield predicate form.
func parseOptionalQuantifier(c *lex.Cursor) (quant Quantifier, hasQuant bool) {
	c.SkipSpace()
	switch {
	case c.ConsumeLiteral("!∃"):
		return QuantNone, true
	case c.ConsumeLiteral("NONE"):
		return QuantNone, true
	case c.ConsumeLiteral("∀"):
		return QuantAll, true
	case c.ConsumeLiteral("ALL"):
		return QuantAll, true
	case c.ConsumeLiteral("∃"):
		return QuantAny, true
	case c.ConsumeLiteral("ANY"):
		return QuantAny, true
	default:
		return QuantAny, false
	}
}
