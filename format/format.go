// Package format implements the format engine (spec §4.8):
// templated string rendering with prefix/suffix, repetition bounds,
// list combinators (<*>, <$>), and text modifiers.
//
// Every fragment renders to a vector of strings — one entry per
// contributing subfield occurrence, up to its bound — rather than a
// single scalar. This is what lets the list combinators zip sibling
// fragments element-wise (spec §4.8's "using empty for absent
// elements" / "concatenate only if every element produced a non-empty
// string"); a plain Value fragment is the base case of the same
// vector shape, and the top-level render collapses the outermost
// fragment's vector into one string by direct concatenation.
package format

import (
	"strings"

	"github.com/dnb-digital/pica-go/internal/lex"
	"github.com/dnb-digital/pica-go/matcher"
	"github.com/dnb-digital/pica-go/record"
)

// Options is the shared evaluation context (matcher.Options already
// carries everything the format engine needs: case folding for its
// optional trailing subfield-matcher predicate).
type Options = matcher.Options

// unbounded is the sentinel a parsed ".." (no trailing digits) bound
// maps to; boundLimit treats it as "no cap".
const unbounded = -1

type fragment interface {
	render(subfields []record.Subfield, opts Options) []string
}

// Format is a compiled format expression (spec §4.8).
type Format struct {
	tag       matcher.TagPattern
	occ       matcher.OccurrencePattern
	predicate matcher.SubfieldMatcher
	top       fragment
	raw       string
}

// Error is InvalidFormat(text) from spec §6.4.
type Error struct {
	Text  string
	Inner error
}

func (e *Error) Error() string { return "invalid format \"" + e.Text + "\": " + e.Inner.Error() }
func (e *Error) Unwrap() error { return e.Inner }

// ParseFormat parses a format expression: TAG OCC? { FRAGMENTS (|
// SUBFIELD_MATCHER)? }.
func ParseFormat(text string, opts Options) (Format, error) {
	c := lex.NewCursor(text)
	tag, err := matcher.ParseTagPattern(c)
	if err != nil {
		return Format{}, &Error{Text: text, Inner: err}
	}
	occ, err := matcher.ParseOccurrencePattern(c)
	if err != nil {
		return Format{}, &Error{Text: text, Inner: err}
	}
	c.SkipSpace()
	if !c.Consume('{') {
		return Format{}, &Error{Text: text, Inner: errExpected("'{' after tag/occurrence")}
	}
	top, err := parseFragments(c, lex.NewDepth(formatMaxDepth))
	if err != nil {
		return Format{}, &Error{Text: text, Inner: err}
	}
	var pred matcher.SubfieldMatcher
	c.SkipSpace()
	if c.Consume('|') {
		m, err := parseInlineSubfieldMatcher(c, opts)
		if err != nil {
			return Format{}, &Error{Text: text, Inner: err}
		}
		pred = m
	}
	c.SkipSpace()
	if !c.Consume('}') {
		return Format{}, &Error{Text: text, Inner: errExpected("'}' to close format expression")}
	}
	c.SkipSpace()
	if !c.Eof() {
		return Format{}, &Error{Text: text, Inner: errExpected("end of input, found " + c.Rest())}
	}
	return Format{tag: tag, occ: occ, predicate: pred, top: top, raw: text}, nil
}

// parseInlineSubfieldMatcher parses the trailing "| SUBFIELD_MATCHER"
// clause by handing the remaining bracket/quote-aware text up to the
// matching '}' to matcher.ParseSubfieldMatcher, the same scan path.go
// uses for its own predicate clause.
func parseInlineSubfieldMatcher(c *lex.Cursor, opts Options) (matcher.SubfieldMatcher, error) {
	rest := c.Rest()
	depth := 0
	inString := false
	var quote byte
	end := -1
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
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
		case '{':
			depth++
		case '}':
			if depth == 0 {
				end = i
			}
			depth--
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil, errExpected("'}' to close format expression")
	}
	m, err := matcher.ParseSubfieldMatcher(rest[:end], opts)
	if err != nil {
		return nil, err
	}
	for i := 0; i < end; i++ {
		c.Advance()
	}
	return m, nil
}

// Render evaluates the format against every contributing field
// (tag/occurrence/predicate match, spec §4.8's gating clause), in
// document order, producing one rendered string per field.
func (f Format) Render(r record.Record, opts Options) []string {
	var out []string
	for _, fld := range r.Fields {
		if !f.tag.Match(fld.Tag) || !f.occ.Match(fld.Occurrence) {
			continue
		}
		if f.predicate != nil && !f.predicate.Eval(fld.Subfields, opts) {
			continue
		}
		out = append(out, strings.Join(f.top.render(fld.Subfields, opts), ""))
	}
	return out
}

func (f Format) String() string { return f.raw }

func errExpected(what string) error { return &expectError{what} }

type expectError struct{ what string }

func (e *expectError) Error() string { return "expected " + e.what }
