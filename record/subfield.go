package record

import "unicode/utf8"

// SubfieldCode is a single ASCII alphanumeric character (spec §3).
type SubfieldCode byte

// ParseSubfieldCode validates a single byte as a subfield code.
func ParseSubfieldCode(b byte) (SubfieldCode, error) {
	if !isDigit(b) && !(b >= 'a' && b <= 'z') && !(b >= 'A' && b <= 'Z') {
		return 0, newError(InvalidSubfieldCode, []byte{b}, 0, "subfield code must be ASCII alphanumeric")
	}
	return SubfieldCode(b), nil
}

func (c SubfieldCode) String() string { return string(rune(c)) }

// SubfieldValue is a byte string that never contains the two framing
// bytes 0x1E/0x1F (spec §3). It borrows directly from the parser's
// input buffer; call Owned to obtain an independent copy.
type SubfieldValue []byte

// ParseSubfieldValue validates that b contains neither framing byte.
// The returned value aliases b (zero-copy).
func ParseSubfieldValue(b []byte) (SubfieldValue, error) {
	for i, c := range b {
		if c == 0x1E || c == 0x1F {
			return nil, newError(InvalidSubfieldValue, b, i, "subfield value must not contain 0x1E or 0x1F")
		}
	}
	return SubfieldValue(b), nil
}

// Owned returns an independent copy of the value, safe to retain past
// the lifetime of the backing buffer (the spec's "owned representation").
func (v SubfieldValue) Owned() SubfieldValue {
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

func (v SubfieldValue) String() string { return string(v) }

// ValidUTF8 reports whether the value is valid UTF-8, and if not, the
// byte offset of the first invalid sequence.
func (v SubfieldValue) ValidUTF8() (ok bool, invalidAt int) {
	if utf8.Valid(v) {
		return true, -1
	}
	for i := 0; i < len(v); {
		r, size := utf8.DecodeRune(v[i:])
		if r == utf8.RuneError && size <= 1 {
			return false, i
		}
		i += size
	}
	return false, len(v)
}

// Subfield is the pair (SubfieldCode, SubfieldValue).
type Subfield struct {
	Code  SubfieldCode
	Value SubfieldValue
}

// Owned returns a Subfield whose Value is an independent copy.
func (s Subfield) Owned() Subfield {
	return Subfield{Code: s.Code, Value: s.Value.Owned()}
}
