package path

import (
	"github.com/dnb-digital/pica-go/matcher"
	"github.com/dnb-digital/pica-go/record"
)

// Path projects a flat, ordered list of subfield values out of a
// record (spec §4.6). When more than one code position is given (the
// multi-code brace form), Path flattens all positions into a single
// membership set rather than keeping columns — that tabular behavior
// belongs to Selector. This mirrors the original pica-path crate's
// PathExt::path, which flattens Path.codes() before filtering
// subfields by membership.
type Path struct{ e expr }

// ParsePath parses a path expression.
func ParsePath(text string, opts matcher.Options) (Path, error) {
	e, err := parseExpr(text, opts)
	if err != nil {
		return Path{}, &Error{Text: text, Inner: err}
	}
	return Path{e: e}, nil
}

// Values returns every subfield value selected by the path, in
// document order: fields in record order, subfields in field order.
func (p Path) Values(r record.Record, opts matcher.Options) []string {
	var out []string
	for _, f := range p.e.contributingFields(r, opts) {
		for _, sf := range f.Subfields {
			if codeInAny(p.e.codes, byte(sf.Code)) {
				out = append(out, sf.Value.String())
			}
		}
	}
	return out
}

func codeInAny(classes []matcher.CodeClass, code byte) bool {
	for _, cc := range classes {
		if cc.Contains(code) {
			return true
		}
	}
	return false
}

func (p Path) String() string { return p.e.String() }

// Error is InvalidPath(text) from spec §6.4.
type Error struct {
	Text  string
	Inner error
}

func (e *Error) Error() string { return "invalid path \"" + e.Text + "\": " + e.Inner.Error() }
func (e *Error) Unwrap() error { return e.Inner }
