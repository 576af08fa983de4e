// Package path implements the path and selector projection language
// (spec §4.6): expressions that pull subfield values out of the
// fields of a record whose tag/occurrence/subfield-filter match.
//
// Path and Selector share one grammar and one AST (expr below); they
// differ only in how they reduce a contributing field's subfield
// values into output — Path flattens everything into one ordered list
// (mirroring the original pica-path crate's PathExt::path, which
// flattens its codes into a single membership set), Selector keeps the
// code-list positions as tabular columns for the query engine.
package path

import (
	"fmt"

	"github.com/dnb-digital/pica-go/internal/lex"
	"github.com/dnb-digital/pica-go/matcher"
	"github.com/dnb-digital/pica-go/record"
)

type expr struct {
	tag       matcher.TagPattern
	occ       matcher.OccurrencePattern
	codes     []matcher.CodeClass    // one entry per column
	predicate matcher.SubfieldMatcher // nil when absent
	raw       string
}

// parseExpr implements the shared grammar from spec §4.6:
//
//	Simple:              TAG OCC? . CODES
//	Predicated:          TAG OCC? { CODES (| SUBFIELD_MATCHER)? }
//	Multi-code:          TAG OCC? { CODES, CODES, … (| SUBFIELD_MATCHER)? }
//	Multi-code (parens):  TAG OCC? { (CODES, CODES, …) | SUBFIELD_MATCHER }
func parseExpr(text string, opts matcher.Options) (expr, error) {
	c := lex.NewCursor(text)
	tag, err := matcher.ParseTagPattern(c)
	if err != nil {
		return expr{}, err
	}
	occ, err := matcher.ParseOccurrencePattern(c)
	if err != nil {
		return expr{}, err
	}

	var e expr
	e.tag, e.occ = tag, occ

	c.SkipSpace()
	switch {
	case c.Consume('.'):
		cc, err := matcher.ParseCodeClass(c)
		if err != nil {
			return expr{}, err
		}
		e.codes = []matcher.CodeClass{cc}
	case c.Consume('{'):
		codes, pred, err := parseBraceBody(c, opts)
		if err != nil {
			return expr{}, err
		}
		e.codes = codes
		e.predicate = pred
	default:
		return expr{}, fmt.Errorf("expected '.' or '{' after tag/occurrence, found %q", c.Rest())
	}

	c.SkipSpace()
	if !c.Eof() {
		return expr{}, fmt.Errorf("unexpected trailing input at %q", c.Rest())
	}
	e.raw = text
	return e, nil
}

func parseBraceBody(c *lex.Cursor, opts matcher.Options) ([]matcher.CodeClass, matcher.SubfieldMatcher, error) {
	var codes []matcher.CodeClass
	c.SkipSpace()
	if c.Consume('(') {
		list, err := parseCodeList(c)
		if err != nil {
			return nil, nil, err
		}
		codes = list
		c.SkipSpace()
		if !c.Consume(')') {
			return nil, nil, fmt.Errorf("expected ')' to close code list")
		}
	} else {
		list, err := parseCodeList(c)
		if err != nil {
			return nil, nil, err
		}
		codes = list
	}

	var pred matcher.SubfieldMatcher
	c.SkipSpace()
	if c.Consume('|') {
		rest := c.Rest()
		closeIdx := matchingBrace(rest)
		if closeIdx < 0 {
			return nil, nil, fmt.Errorf("expected '}' to close predicated path expression")
		}
		predText := rest[:closeIdx]
		m, err := matcher.ParseSubfieldMatcher(predText, opts)
		if err != nil {
			return nil, nil, err
		}
		pred = m
		for i := 0; i < closeIdx; i++ {
			c.Advance()
		}
	}

	c.SkipSpace()
	if !c.Consume('}') {
		return nil, nil, fmt.Errorf("expected '}' to close path expression")
	}
	return codes, pred, nil
}

func parseCodeList(c *lex.Cursor) ([]matcher.CodeClass, error) {
	var out []matcher.CodeClass
	for {
		cc, err := matcher.ParseCodeClass(c)
		if err != nil {
			return nil, err
		}
		out = append(out, cc)
		c.SkipSpace()
		if c.Consume(',') {
			continue
		}
		break
	}
	return out, nil
}

// matchingBrace returns the byte offset of the '}' that closes the
// current predicate clause (the predicate itself never contains an
// unescaped '}', since subfield-matcher string literals are quoted).
func matchingBrace(s string) int {
	depth := 0
	inString := false
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				inString = false
			}
			continue
		}
		switch ch {
		case '\'', '"':
			inString = true
			quote = ch
		case '(':
			depth++
		case ')':
			depth--
		case '}':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// contributingFields returns the fields that satisfy e's tag,
// occurrence, and (if present) subfield predicate, in document order.
func (e expr) contributingFields(r record.Record, opts matcher.Options) []record.Field {
	var out []record.Field
	for _, f := range r.Fields {
		if !e.tag.Match(f.Tag) || !e.occ.Match(f.Occurrence) {
			continue
		}
		if e.predicate != nil && !e.predicate.Eval(f.Subfields, opts) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// valuesForCode returns, in subfield document order, the values of
// every subfield in f whose code belongs to cc.
func valuesForCode(f record.Field, cc matcher.CodeClass) []string {
	var out []string
	for _, sf := range f.Subfields {
		if cc.Contains(byte(sf.Code)) {
			out = append(out, sf.Value.String())
		}
	}
	return out
}

func (e expr) String() string { return e.raw }
