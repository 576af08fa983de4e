package path

import (
	"strings"

	"github.com/dnb-digital/pica-go/matcher"
	"github.com/dnb-digital/pica-go/record"
)

// Selector is a path in column mode (spec §4.6 glossary): the
// code-list positions of a multi-code predicated path become tabular
// columns instead of being flattened into one list. Selector is the
// building block the query engine evaluates jointly across a
// query's comma-separated list.
type Selector struct{ e expr }

// ParseSelector parses a selector expression; identical grammar to a
// path (spec §4.6).
func ParseSelector(text string, opts matcher.Options) (Selector, error) {
	e, err := parseExpr(text, opts)
	if err != nil {
		return Selector{}, &SelectorError{Text: text, Inner: err}
	}
	return Selector{e: e}, nil
}

// Width is the number of columns this selector produces per row.
func (s Selector) Width() int { return len(s.e.codes) }

// Rows evaluates the selector against a record, producing a list of
// tuples (one per column in the selector), in document order: fields
// in record order, and — within one field — the Cartesian product of
// each column's per-code subfield values, columns varying
// left-to-right with the rightmost column fastest, matching the
// document-order tie-break required by spec §4.7.
//
// A selector with zero contributing rows still yields exactly one row
// of empty strings rather than zero rows, so it doesn't collapse the
// query's overall cross product (spec §4.6: "Empty selectors
// contribute a single empty value rather than collapsing the row").
func (s Selector) Rows(r record.Record, opts matcher.Options) [][]string {
	var rows [][]string
	for _, f := range s.e.contributingFields(r, opts) {
		columns := make([][]string, len(s.e.codes))
		for i, cc := range s.e.codes {
			vals := valuesForCode(f, cc)
			if opts.Squash && len(vals) > 1 {
				// Squash (spec §4.7 step 2): repeated subfield
				// values within one field collapse into a single
				// value joined by Separator, applied per column
				// before the field's own Cartesian expansion so
				// squashing can't itself introduce extra rows.
				vals = []string{strings.Join(vals, opts.Separator)}
			}
			if len(vals) == 0 {
				vals = []string{""}
			}
			columns[i] = vals
		}
		rows = append(rows, cartesianProduct(columns)...)
	}
	if len(rows) == 0 {
		rows = [][]string{emptyRow(s.Width())}
	}
	return rows
}

func emptyRow(width int) []string {
	row := make([]string, width)
	return row
}

// cartesianProduct expands a slice of per-column value lists into the
// full set of row tuples, rightmost column fastest.
func cartesianProduct(columns [][]string) [][]string {
	if len(columns) == 0 {
		return nil
	}
	total := 1
	for _, col := range columns {
		total *= len(col)
	}
	rows := make([][]string, 0, total)
	idx := make([]int, len(columns))
	for r := 0; r < total; r++ {
		row := make([]string, len(columns))
		for c, col := range columns {
			row[c] = col[idx[c]]
		}
		rows = append(rows, row)
		for c := len(columns) - 1; c >= 0; c-- {
			idx[c]++
			if idx[c] < len(columns[c]) {
				break
			}
			idx[c] = 0
		}
	}
	return rows
}

func (s Selector) String() string { return s.e.String() }

// SelectorError is InvalidQuery-adjacent: a selector is the unit a
// Query is built from, so its own parse failure surfaces with the
// same shape as Error but under the selector's own name for clarity
// at the API boundary.
type SelectorError struct {
	Text  string
	Inner error
}

func (e *SelectorError) Error() string {
	return "invalid selector \"" + e.Text + "\": " + e.Inner.Error()
}
func (e *SelectorError) Unwrap() error { return e.Inner }
