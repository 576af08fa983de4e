package matcher

import (
	"fmt"
	"strconv"

	"github.com/dnb-digital/pica-go/internal/lex"
	"github.com/dnb-digital/pica-go/record"
)

// TagPattern matches a record.Tag position by position, allowing a
// bracketed alternation class at any of the four positions (e.g.
// "00[23]@"), generalized to every position rather than just the
// third, since nothing restricts it to one position.
type TagPattern struct {
	positions [4]string // each a set of allowed bytes at that position
	raw       string
}

// ParseTagPattern reads a four-position tag pattern from c.
func ParseTagPattern(c *lex.Cursor) (TagPattern, error) {
	start := c.Pos()
	var tp TagPattern
	for i := 0; i < 4; i++ {
		set, err := readTagPositionClass(c, i)
		if err != nil {
			return TagPattern{}, err
		}
		tp.positions[i] = set
	}
	tp.raw = c.Slice(start, c.Pos())
	return tp, nil
}

func readTagPositionClass(c *lex.Cursor, pos int) (string, error) {
	ch := c.Peek()
	if ch == '[' {
		c.Advance()
		set, err := readTagBracketClass(c, pos)
		if err != nil {
			return "", err
		}
		return set, nil
	}
	c.Advance()
	if err := validateTagPositionSet(string(ch), pos); err != nil {
		return "", err
	}
	return string(ch), nil
}

// readTagBracketClass reads a bracketed alternation class at one tag
// position, expanding "a-c" ranges the same way the shared CODES
// grammar does (SUPPLEMENTED FEATURES: the min < max range check
// applies uniformly to subfield-code classes, tag alternation classes,
// and occurrence ranges, not just the first).
func readTagBracketClass(c *lex.Cursor, pos int) (string, error) {
	seen := make(map[byte]bool)
	var out []byte
	for {
		ch := c.Peek()
		if c.Eof() {
			return "", fmt.Errorf("unterminated tag alternation class")
		}
		if ch == ']' {
			c.Advance()
			break
		}
		lo := byte(ch)
		if err := validateTagPositionSet(string(lo), pos); err != nil {
			return "", err
		}
		c.Advance()
		if c.Peek() == '-' {
			c.Advance()
			hi := c.Peek()
			if c.Eof() {
				return "", fmt.Errorf("invalid tag alternation range: missing upper bound")
			}
			if err := validateTagPositionSet(string(byte(hi)), pos); err != nil {
				return "", err
			}
			c.Advance()
			if byte(hi) <= lo {
				return "", fmt.Errorf("invalid tag alternation range %q-%q: bounds must satisfy min < max", string(lo), string(hi))
			}
			for b := lo; b <= byte(hi); b++ {
				if !seen[b] {
					seen[b] = true
					out = append(out, b)
				}
			}
		} else {
			if !seen[lo] {
				seen[lo] = true
				out = append(out, lo)
			}
		}
	}
	if len(out) == 0 {
		return "", fmt.Errorf("empty tag alternation class")
	}
	return string(out), nil
}

func validateTagPositionSet(set string, pos int) error {
	for i := 0; i < len(set); i++ {
		if !tagPositionAllows(set[i], pos) {
			return fmt.Errorf("invalid tag pattern byte %q at position %d", set[i], pos)
		}
	}
	return nil
}

func tagPositionAllows(b byte, pos int) bool {
	switch pos {
	case 0:
		return b == '0' || b == '1' || b == '2'
	case 1, 2:
		return b >= '0' && b <= '9'
	case 3:
		return (b >= 'A' && b <= 'Z') || b == '@'
	default:
		return false
	}
}

// Match reports whether tag satisfies the pattern.
func (tp TagPattern) Match(tag record.Tag) bool {
	s := tag.String()
	for i := 0; i < 4; i++ {
		if !containsByte(tp.positions[i], s[i]) {
			return false
		}
	}
	return true
}

func containsByte(set string, b byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == b {
			return true
		}
	}
	return false
}

func (tp TagPattern) String() string { return tp.raw }

// OccurrenceKind distinguishes the four occurrence-pattern shapes.
type OccurrenceKind int

const (
	OccAbsent OccurrenceKind = iota // no "/..." written: matches only an absent occurrence
	OccExact                       // /NN
	OccRange                       // /NN-MM
	OccAny                          // /*
)

// OccurrencePattern matches a record.Occurrence.
type OccurrencePattern struct {
	kind   OccurrenceKind
	lo, hi int
	raw    string
}

// AnyOccurrence matches any field regardless of occurrence.
var AnyOccurrence = OccurrencePattern{kind: OccAny, raw: "/*"}

// AbsentOccurrence matches only fields with no occurrence.
var AbsentOccurrence = OccurrencePattern{kind: OccAbsent}

// ParseOccurrencePattern reads an optional "/..." suffix from c. It
// returns AbsentOccurrence, consuming nothing, if the next byte isn't
// '/'.
func ParseOccurrencePattern(c *lex.Cursor) (OccurrencePattern, error) {
	if c.Peek() != '/' {
		return AbsentOccurrence, nil
	}
	start := c.Pos()
	c.Advance()
	if c.Peek() == '*' {
		c.Advance()
		return OccurrencePattern{kind: OccAny, raw: c.Slice(start, c.Pos())}, nil
	}
	loDigits := c.ReadDigits()
	if loDigits == "" {
		return OccurrencePattern{}, fmt.Errorf("expected occurrence digits after '/'")
	}
	lo, _ := strconv.Atoi(loDigits)
	if c.Peek() == '-' {
		c.Advance()
		hiDigits := c.ReadDigits()
		if hiDigits == "" {
			return OccurrencePattern{}, fmt.Errorf("expected occurrence digits after '-'")
		}
		hi, _ := strconv.Atoi(hiDigits)
		if hi <= lo {
			return OccurrencePattern{}, fmt.Errorf("invalid occurrence range %q-%q: bounds must satisfy min < max", loDigits, hiDigits)
		}
		return OccurrencePattern{kind: OccRange, lo: lo, hi: hi, raw: c.Slice(start, c.Pos())}, nil
	}
	return OccurrencePattern{kind: OccExact, lo: lo, hi: lo, raw: c.Slice(start, c.Pos())}, nil
}

// Match reports whether occ satisfies the pattern. Exact and range
// comparisons are numeric (so "/1" and "/01" are equivalent), since an
// occurrence is an ASCII numeric suffix rather than a fixed-width
// string.
func (op OccurrencePattern) Match(occ record.Occurrence) bool {
	switch op.kind {
	case OccAbsent:
		return !occ.Present()
	case OccAny:
		return true
	case OccExact:
		return occ.Present() && occurrenceValue(occ) == op.lo
	case OccRange:
		return occ.Present() && occurrenceValue(occ) >= op.lo && occurrenceValue(occ) <= op.hi
	default:
		return false
	}
}

func occurrenceValue(occ record.Occurrence) int {
	n, _ := strconv.Atoi(occ.Digits())
	return n
}

func (op OccurrencePattern) String() string { return op.raw }
