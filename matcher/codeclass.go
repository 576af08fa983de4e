package matcher

import "github.com/dnb-digital/pica-go/internal/lex"

// CodeClass is the parsed form of the CODES sub-grammar shared by all
// four expression languages: a single code, a bracketed class with
// optional ranges, or `*` for all 62 codes (spec §4.3).
type CodeClass struct {
	codes string // set membership; order not significant
	raw   string // original textual form, for String()
}

// ParseCodeClass reads one CODES token from c.
func ParseCodeClass(c *lex.Cursor) (CodeClass, error) {
	start := c.Pos()
	codes, err := c.ReadCodeClass()
	if err != nil {
		return CodeClass{}, err
	}
	return CodeClass{codes: codes, raw: c.Slice(start, c.Pos())}, nil
}

// Contains reports whether code is a member of the class.
func (cc CodeClass) Contains(code byte) bool {
	for i := 0; i < len(cc.codes); i++ {
		if cc.codes[i] == code {
			return true
		}
	}
	return false
}

func (cc CodeClass) String() string {
	return cc.raw
}
