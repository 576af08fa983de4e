package matcher

import "github.com/dnb-digital/pica-go/record"

// RecordMatcher is exactly a field matcher applied to a record's field
// sequence — a thin wrapper so callers have a type that names "record"
// rather than "field" at the API boundary, while reusing the field
// matcher's parser and AST entirely.
type RecordMatcher struct {
	inner FieldMatcher
}

// ParseRecordMatcher parses a record matcher expression, identical in
// grammar to a field matcher.
func ParseRecordMatcher(text string, opts Options) (RecordMatcher, error) {
	fm, err := ParseFieldMatcher(text, opts)
	if err != nil {
		return RecordMatcher{}, &RecordMatcherError{Text: text, Inner: err}
	}
	return RecordMatcher{inner: fm}, nil
}

// Eval reports whether r's field sequence satisfies the matcher.
func (m RecordMatcher) Eval(r record.Record, opts Options) bool {
	return m.inner.Eval(r.Fields, opts)
}

func (m RecordMatcher) String() string { return m.inner.String() }

// AndRecord, OrRecord, XorRecord, NotRecord re-export the boolean
// combinators at the record-matcher level:
//
//	and:  (A, B) → A && B
//	or:   (A, B) → A || B
//	xor:  (A, B) → A ^ B
//	not:  (A)    → !A
func AndRecord(a, b RecordMatcher) RecordMatcher {
	return RecordMatcher{inner: AndField(a.inner, b.inner)}
}
func OrRecord(a, b RecordMatcher) RecordMatcher {
	return RecordMatcher{inner: OrField(a.inner, b.inner)}
}
func XorRecord(a, b RecordMatcher) RecordMatcher {
	return RecordMatcher{inner: XorField(a.inner, b.inner)}
}
func NotRecord(a RecordMatcher) RecordMatcher {
	return RecordMatcher{inner: NotField(a.inner)}
}
