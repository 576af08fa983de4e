package record

// parse.go implements the bit-exact byte grammar from spec §4.1/§6.1.
// Unlike the four expression languages in internal/lex, the wire
// format has no insignificant whitespace, so parsing here works
// directly over a []byte cursor rather than internal/lex.Cursor.

// ParseRecord parses a single record: field+ followed by exactly one
// 0x0A byte, consuming the entire input (anchored).
func ParseRecord(b []byte) (Record, error) {
	var fields []Field
	pos := 0
	for {
		if pos >= len(b) {
			return Record{}, newError(InvalidRecord, b, pos, "unexpected end of input, record must end with 0x0A")
		}
		if b[pos] == 0x0A {
			break
		}
		f, n, err := parseField(b, pos)
		if err != nil {
			return Record{}, err
		}
		fields = append(fields, f)
		pos = n
	}
	if len(fields) == 0 {
		return Record{}, newError(InvalidRecord, b, pos, "record must contain at least one field")
	}
	if b[pos] != 0x0A {
		return Record{}, newError(InvalidRecord, b, pos, "record must be terminated by 0x0A")
	}
	pos++
	if pos != len(b) {
		return Record{}, newError(InvalidRecord, b, pos, "trailing bytes after record terminator")
	}
	return Record{Fields: fields}, nil
}

// parseField parses one field starting at pos, returning the position
// just past its terminating 0x1E.
func parseField(b []byte, pos int) (Field, int, error) {
	if pos+4 > len(b) {
		return Field{}, pos, newError(InvalidField, b, pos, "field too short for a tag")
	}
	tag, err := ParseTag(b[pos : pos+4])
	if err != nil {
		return Field{}, pos, newError(InvalidField, b, pos, "invalid tag: "+err.Error())
	}
	pos += 4

	occ := NoOccurrence
	if pos < len(b) && b[pos] == '/' {
		digitsStart := pos + 1
		end := digitsStart
		for end < len(b) && isDigit(b[end]) && end-digitsStart < 3 {
			end++
		}
		occ, err = ParseOccurrence(b[digitsStart:end])
		if err != nil {
			return Field{}, pos, newError(InvalidField, b, pos, "invalid occurrence: "+err.Error())
		}
		pos = end
	}

	if pos >= len(b) || b[pos] != ' ' {
		return Field{}, pos, newError(InvalidField, b, pos, "expected a single space after tag/occurrence")
	}
	pos++

	var subfields []Subfield
	for pos < len(b) && b[pos] == 0x1F {
		sf, n, err := parseSubfield(b, pos)
		if err != nil {
			return Field{}, pos, err
		}
		subfields = append(subfields, sf)
		pos = n
	}

	if pos >= len(b) || b[pos] != 0x1E {
		return Field{}, pos, newError(InvalidField, b, pos, "field must be terminated by 0x1E")
	}
	pos++
	return Field{Tag: tag, Occurrence: occ, Subfields: subfields}, pos, nil
}

// parseSubfield parses one subfield starting at pos (which must point
// at the leading 0x1F), returning the position just past its value.
func parseSubfield(b []byte, pos int) (Subfield, int, error) {
	if b[pos] != 0x1F {
		return Subfield{}, pos, newError(InvalidSubfield, b, pos, "subfield must start with 0x1F")
	}
	pos++
	if pos >= len(b) {
		return Subfield{}, pos, newError(InvalidSubfield, b, pos, "subfield truncated before code")
	}
	code, err := ParseSubfieldCode(b[pos])
	if err != nil {
		return Subfield{}, pos, newError(InvalidSubfield, b, pos, "invalid subfield code: "+err.Error())
	}
	pos++

	valueStart := pos
	for pos < len(b) && b[pos] != 0x1E && b[pos] != 0x1F {
		pos++
	}
	value, err := ParseSubfieldValue(b[valueStart:pos])
	if err != nil {
		return Subfield{}, pos, err
	}
	return Subfield{Code: code, Value: value}, pos, nil
}
