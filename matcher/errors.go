package matcher

import "fmt"

// SubfieldMatcherError wraps a subfield-matcher parse failure with the
// offending input text (InvalidSubfieldMatcher(text)).
type SubfieldMatcherError struct {
	Text  string
	Inner error
}

func (e *SubfieldMatcherError) Error() string {
	return fmt.Sprintf("invalid subfield matcher %q: %v", e.Text, e.Inner)
}

func (e *SubfieldMatcherError) Unwrap() error { return e.Inner }

// FieldMatcherError wraps a field-matcher parse failure
// (InvalidFieldMatcher(text)).
type FieldMatcherError struct {
	Text  string
	Inner error
}

func (e *FieldMatcherError) Error() string {
	return fmt.Sprintf("invalid field matcher %q: %v", e.Text, e.Inner)
}

func (e *FieldMatcherError) Unwrap() error { return e.Inner }

// RecordMatcherError wraps a record-matcher parse failure
// (InvalidRecordMatcher(text)).
type RecordMatcherError struct {
	Text  string
	Inner error
}

func (e *RecordMatcherError) Error() string {
	return fmt.Sprintf("invalid record matcher %q: %v", e.Text, e.Inner)
}

func (e *RecordMatcherError) Unwrap() error { return e.Inner }
