package matcher

import (
	"strconv"

	"github.com/dnb-digital/pica-go/record"
)

// FieldMatcher is a boolean predicate over the field sequence of a
// record (spec §4.4).
type FieldMatcher interface {
	Eval(fields []record.Field, opts Options) bool
	String() string
}

// filterFields returns the fields whose tag and occurrence satisfy
// the pattern, preserving document order.
func filterFields(fields []record.Field, tag TagPattern, occ OccurrencePattern) []record.Field {
	var out []record.Field
	for _, f := range fields {
		if tag.Match(f.Tag) && occ.Match(f.Occurrence) {
			out = append(out, f)
		}
	}
	return out
}

type existsFieldMatcher struct {
	tag TagPattern
	occ OccurrencePattern
}

func (m existsFieldMatcher) Eval(fields []record.Field, _ Options) bool {
	return len(filterFields(fields, m.tag, m.occ)) > 0
}

func (m existsFieldMatcher) String() string {
	return m.tag.String() + m.occ.String()
}

// subfieldsFieldMatcher implements both the "dot" (singleton) and
// "brace" (arbitrary subfield matcher) forms from spec §4.4 — they
// share identical evaluation semantics (§4.4 "Evaluation semantics for
// subfield-matcher-against-field-list"), differing only in how the
// inner matcher was written syntactically.
type subfieldsFieldMatcher struct {
	quant Quantifier
	tag   TagPattern
	occ   OccurrencePattern
	inner SubfieldMatcher
	dot   bool // true renders with '.', false with '{ }'
}

func (m subfieldsFieldMatcher) Eval(fields []record.Field, opts Options) bool {
	matching := filterFields(fields, m.tag, m.occ)
	if len(matching) == 0 {
		return m.quant.Vacuous()
	}
	results := make([]bool, len(matching))
	for i, f := range matching {
		results[i] = m.inner.Eval(f.Subfields, opts)
	}
	return m.quant.Reduce(results)
}

func (m subfieldsFieldMatcher) String() string {
	prefix := ""
	if m.quant != QuantAny {
		prefix = m.quant.String() + " "
	}
	if m.dot {
		return prefix + m.tag.String() + m.occ.String() + "." + m.inner.String()
	}
	return prefix + m.tag.String() + m.occ.String() + "{" + m.inner.String() + "}"
}

type fieldCardinalityMatcher struct {
	tag   TagPattern
	occ   OccurrencePattern
	inner SubfieldMatcher // nil when no inner matcher was given
	op    NumOp
	n     uint64
}

func (m fieldCardinalityMatcher) Eval(fields []record.Field, opts Options) bool {
	matching := filterFields(fields, m.tag, m.occ)
	var count uint64
	for _, f := range matching {
		if m.inner == nil || m.inner.Eval(f.Subfields, opts) {
			count++
		}
	}
	return m.op.Eval(count, m.n)
}

func (m fieldCardinalityMatcher) String() string {
	inner := ""
	if m.inner != nil {
		inner = "{" + m.inner.String() + "}"
	}
	return "#" + m.tag.String() + m.occ.String() + inner + " " + m.op.String() + " " + strconv.FormatUint(m.n, 10)
}

type notFieldMatcher struct{ inner FieldMatcher }

func (m notFieldMatcher) Eval(fields []record.Field, opts Options) bool {
	return !m.inner.Eval(fields, opts)
}
func (m notFieldMatcher) String() string { return "!(" + m.inner.String() + ")" }

type boolFieldMatcher struct {
	op          BooleanOp
	left, right FieldMatcher
}

func (m boolFieldMatcher) Eval(fields []record.Field, opts Options) bool {
	return m.op.Eval(m.left.Eval(fields, opts), m.right.Eval(fields, opts))
}
func (m boolFieldMatcher) String() string {
	return "(" + m.left.String() + " " + m.op.String() + " " + m.right.String() + ")"
}

// AndField, OrField, XorField, NotField build composite field matchers
// programmatically (spec §4.5's combinator re-exports).
func AndField(a, b FieldMatcher) FieldMatcher { return boolFieldMatcher{op: BoolAnd, left: a, right: b} }
func OrField(a, b FieldMatcher) FieldMatcher  { return boolFieldMatcher{op: BoolOr, left: a, right: b} }
func XorField(a, b FieldMatcher) FieldMatcher { return boolFieldMatcher{op: BoolXor, left: a, right: b} }
func NotField(a FieldMatcher) FieldMatcher    { return notFieldMatcher{inner: a} }
