// Package record implements the primitive value types (Tag, Occurrence,
// SubfieldCode, SubfieldValue, Subfield, Field, Record) and the
// byte-level parser for the wire format described in spec §3/§4.1/§6.1:
// tag, optional occurrence, a single space, subfields, then 0x1E per
// field, with a whole record terminated by 0x0A.
package record

// Record is a non-empty ordered sequence of Fields (spec §3). Its
// serialized form is terminated by a single LF byte (0x0A).
type Record struct {
	Fields []Field
}

// Owned returns a Record whose fields (and their subfield values) are
// independent copies, safe to retain past the buffer's lifetime.
func (r Record) Owned() Record {
	out := Record{Fields: make([]Field, len(r.Fields))}
	for i, f := range r.Fields {
		out.Fields[i] = f.Owned()
	}
	return out
}

// Validate checks well-formedness beyond the grammar: every subfield
// value must be valid UTF-8. A structurally valid record can
// still fail Validate; consumers decide whether to reject it.
func (r Record) Validate() error {
	for _, f := range r.Fields {
		for _, sf := range f.Subfields {
			if ok, at := sf.Value.ValidUTF8(); !ok {
				return newError(InvalidSubfieldValue, []byte(sf.Value), at,
					"subfield value is not valid UTF-8")
			}
		}
	}
	return nil
}

// String renders the record in its wire form, including the
// terminating LF.
func (r Record) String() string {
	out := ""
	for _, f := range r.Fields {
		out += f.String() + "\x1e"
	}
	return out + "\n"
}
