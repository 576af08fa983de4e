// Package query implements the query engine (spec §4.7): a
// non-empty comma-separated list of selectors evaluated jointly
// against a record to produce rectangular outcome rows.
package query

import (
	"fmt"
	"strings"

	"github.com/dnb-digital/pica-go/matcher"
	"github.com/dnb-digital/pica-go/path"
	"github.com/dnb-digital/pica-go/record"
)

// Options is the evaluation context for a query: matcher.Options
// already carries the query-only Separator/Squash/Merge fields (spec
// §4.2), so there is no separate QueryOptions type — one Options value
// configures subfield/field matching and query reduction alike.
type Options = matcher.Options

// Query is a non-empty list of selectors (spec §4.6 glossary).
type Query struct {
	selectors []path.Selector
	raw       string
}

// Error is InvalidQuery(text) from spec §6.4.
type Error struct {
	Text  string
	Inner error
}

func (e *Error) Error() string { return fmt.Sprintf("invalid query %q: %v", e.Text, e.Inner) }
func (e *Error) Unwrap() error { return e.Inner }

// ParseQuery parses a comma-separated list of selector expressions.
func ParseQuery(text string, opts Options) (Query, error) {
	parts, err := splitTopLevel(text)
	if err != nil {
		return Query{}, &Error{Text: text, Inner: err}
	}
	if len(parts) == 0 {
		return Query{}, &Error{Text: text, Inner: fmt.Errorf("a query must contain at least one selector")}
	}
	selectors := make([]path.Selector, 0, len(parts))
	for _, p := range parts {
		sel, err := path.ParseSelector(strings.TrimSpace(p), opts)
		if err != nil {
			return Query{}, &Error{Text: text, Inner: err}
		}
		selectors = append(selectors, sel)
	}
	return Query{selectors: selectors, raw: text}, nil
}

// splitTopLevel splits a query string on commas that aren't nested
// inside a selector's braces, parens, or quoted string literals — the
// same bracket/quote-aware scan the subfield-matcher predicate clause
// inside a selector uses, generalized to top-level comma splitting.
func splitTopLevel(s string) ([]string, error) {
	var parts []string
	depth := 0
	inString := false
	var quote byte
	start := 0
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
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced bracket at byte %d", i)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced bracket in %q", s)
	}
	parts = append(parts, s[start:])
	return parts, nil
}

// Eval evaluates every selector against r and produces the
// column-wise Cartesian product of their row sets (spec §4.7):
//
//  1. Evaluate each selector, producing rows (squash already applied
//     per-selector since it's scoped to one field).
//  2. If Merge is set, collapse each selector's entire row set into a
//     single row, joining repeated per-column values with Separator.
//  3. Cross-join the (possibly merged) selector row sets column-wise.
//
// Deterministic ordering follows document order of the producing
// fields, with selectors earlier in the query varying slower than
// selectors later in the query.
func (q Query) Eval(r record.Record, opts Options) [][]string {
	perSelector := make([][][]string, len(q.selectors))
	for i, sel := range q.selectors {
		rows := sel.Rows(r, opts)
		if opts.Merge {
			rows = mergeRows(rows, sel.Width(), opts.Separator)
		}
		perSelector[i] = rows
	}
	return crossJoin(perSelector)
}

// mergeRows implements step 3 of spec §4.7: replace repeated values
// within one column, across every row the selector produced for this
// record, with a single value joined by separator.
func mergeRows(rows [][]string, width int, separator string) [][]string {
	if len(rows) <= 1 {
		return rows
	}
	merged := make([]string, width)
	for col := 0; col < width; col++ {
		var vals []string
		for _, row := range rows {
			if row[col] != "" {
				vals = append(vals, row[col])
			}
		}
		merged[col] = strings.Join(vals, separator)
	}
	return [][]string{merged}
}

// crossJoin concatenates column-wise across selector row sets,
// earlier selectors varying slower (the nesting order required by
// the fixed-width first selector's single row pairs with each row
// of the second selector in turn).
func crossJoin(perSelector [][][]string) [][]string {
	if len(perSelector) == 0 {
		return nil
	}
	result := [][]string{{}}
	for _, selRows := range perSelector {
		next := make([][]string, 0, len(result)*len(selRows))
		for _, base := range result {
			for _, row := range selRows {
				combined := make([]string, 0, len(base)+len(row))
				combined = append(combined, base...)
				combined = append(combined, row...)
				next = append(next, combined)
			}
		}
		result = next
	}
	return result
}

func (q Query) String() string { return q.raw }
