package format

import (
	"fmt"
	"strconv"

	"github.com/dnb-digital/pica-go/internal/lex"
	"github.com/dnb-digital/pica-go/matcher"
)

// formatMaxDepth bounds group nesting (spec §4.4's recommended 32 for
// format groups).
const formatMaxDepth = 32

// parseFragments is the entry point for FRAGMENTS: an and-then list, a
// cons list, a group, or a bare value, tried in that order with
// backtracking. The and-then list is tried first because its elements
// may themselves be cons lists.
func parseFragments(c *lex.Cursor, depth lex.Depth) (fragment, error) {
	if f, ok := tryParse(c, func(c *lex.Cursor) (fragment, error) { return parseListAndThen(c, depth) }); ok {
		return f, nil
	}
	if f, ok := tryParse(c, func(c *lex.Cursor) (fragment, error) { return parseListCons(c, depth) }); ok {
		return f, nil
	}
	if f, ok := tryParse(c, func(c *lex.Cursor) (fragment, error) { return parseGroup(c, depth) }); ok {
		return f, nil
	}
	return parseValue(c)
}

// tryParse attempts p, restoring the cursor and reporting ok=false on
// failure so the caller can fall through to the next alternative.
func tryParse(c *lex.Cursor, p func(*lex.Cursor) (fragment, error)) (fragment, bool) {
	save := c.Save()
	f, err := p(c)
	if err != nil {
		c.Restore(save)
		return nil, false
	}
	return f, true
}

// parseListCons parses `FRAG <*> FRAG <*> …`, requiring at least two
// elements, each a group or a value (spec §4.8: "<*> binds tighter
// than <$>", i.e. a cons list can sit inside an and-then list but not
// vice versa).
func parseListCons(c *lex.Cursor, depth lex.Depth) (fragment, error) {
	first, err := parseConsElement(c, depth)
	if err != nil {
		return nil, err
	}
	children := []fragment{first}
	for {
		save := c.Save()
		c.SkipSpace()
		if !c.ConsumeLiteral("<*>") {
			c.Restore(save)
			break
		}
		next, err := parseConsElement(c, depth)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) < 2 {
		return nil, fmt.Errorf("not a cons list")
	}
	return consFragment{children: children}, nil
}

func parseConsElement(c *lex.Cursor, depth lex.Depth) (fragment, error) {
	if f, ok := tryParse(c, func(c *lex.Cursor) (fragment, error) { return parseGroup(c, depth) }); ok {
		return f, nil
	}
	return parseValue(c)
}

// parseListAndThen parses `FRAG <$> FRAG <$> …`, requiring at least
// two elements; each element may itself be a cons list, a group, or a
// value.
func parseListAndThen(c *lex.Cursor, depth lex.Depth) (fragment, error) {
	first, err := parseAndThenElement(c, depth)
	if err != nil {
		return nil, err
	}
	children := []fragment{first}
	for {
		save := c.Save()
		c.SkipSpace()
		if !c.ConsumeLiteral("<$>") {
			c.Restore(save)
			break
		}
		next, err := parseAndThenElement(c, depth)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) < 2 {
		return nil, fmt.Errorf("not an and-then list")
	}
	return andThenFragment{children: children}, nil
}

func parseAndThenElement(c *lex.Cursor, depth lex.Depth) (fragment, error) {
	if f, ok := tryParse(c, func(c *lex.Cursor) (fragment, error) { return parseListCons(c, depth) }); ok {
		return f, nil
	}
	if f, ok := tryParse(c, func(c *lex.Cursor) (fragment, error) { return parseGroup(c, depth) }); ok {
		return f, nil
	}
	return parseValue(c)
}

// parseGroup parses "( MODIFIER? FRAGMENTS ) BOUNDS?" (spec §4.8). An
// absent bound is unbounded, matching the original parser's default
// of usize::MAX for groups (unlike Value's default of exactly one).
func parseGroup(c *lex.Cursor, depth lex.Depth) (fragment, error) {
	c.SkipSpace()
	if !c.Consume('(') {
		return nil, fmt.Errorf("expected '('")
	}
	next, err := depth.Enter()
	if err != nil {
		return nil, err
	}
	mod := parseModifier(c)
	inner, err := parseFragments(c, next)
	if err != nil {
		return nil, err
	}
	c.SkipSpace()
	if !c.Consume(')') {
		return nil, fmt.Errorf("expected ')' to close group")
	}
	bound := readBound(c, unbounded)
	return groupFragment{modifier: mod, inner: inner, bound: bound}, nil
}

// parseModifier parses an optional "?" followed by any subset of the
// letters L, U, W, T (spec §4.8).
func parseModifier(c *lex.Cursor) modifier {
	save := c.Save()
	c.SkipSpace()
	if !c.Consume('?') {
		c.Restore(save)
		return modifier{}
	}
	var m modifier
	for {
		switch c.Peek() {
		case 'L':
			m.lower = true
			c.Advance()
		case 'U':
			m.upper = true
			c.Advance()
		case 'W':
			m.removeWS = true
			c.Advance()
		case 'T':
			m.trim = true
			c.Advance()
		default:
			return m
		}
	}
}

// parseValue parses "PREFIX? CODES BOUNDS? SUFFIX?" (spec §4.8).
func parseValue(c *lex.Cursor) (fragment, error) {
	c.SkipSpace()
	var v valueFragment
	if ch := c.Peek(); ch == '\'' || ch == '"' {
		s, err := c.ReadQuotedString()
		if err != nil {
			return nil, err
		}
		v.prefix, v.hasPrefix = s, true
	}
	codes, err := matcher.ParseCodeClass(c)
	if err != nil {
		return nil, err
	}
	v.codes = codes
	v.bound = readBound(c, 1)

	c.SkipSpace()
	if ch := c.Peek(); ch == '\'' || ch == '"' {
		s, err := c.ReadQuotedString()
		if err != nil {
			return nil, err
		}
		v.suffix, v.hasSuffix = s, true
	}
	return v, nil
}

// readBound parses the BOUNDS grammar: "..N" (cap N), ".." (unbounded),
// or absent (def, the caller's context-specific default).
func readBound(c *lex.Cursor, def int) int {
	save := c.Save()
	c.SkipSpace()
	if !c.ConsumeLiteral("..") {
		c.Restore(save)
		return def
	}
	digits := c.ReadDigits()
	if digits == "" {
		return unbounded
	}
	n, _ := strconv.Atoi(digits)
	return n
}
