// Package lex implements the byte-cursor tokenizer shared by the four
// expression languages (subfield matcher, field/record matcher, path and
// selector, format). Keeping one cursor implementation here is what lets
// those languages share whitespace handling, string-literal escaping, the
// tag/occurrence/subfield-code sub-grammar, and recursion-depth control,
// the way the spec's §4 intro requires.
package lex

const eof = -1

// Cursor is a minimal byte-oriented scanner over a UTF-8 expression
// string. It tracks the last-read byte the way sqldef's Tokenizer does
// (lastChar/Position/next), which keeps one-byte lookahead cheap without
// needing a separate token buffer for the small, mostly-ASCII grammars
// these languages use.
type Cursor struct {
	src      string
	pos      int // byte offset of lastCh within src
	lastCh   rune
	lastSize int
}

// NewCursor creates a cursor positioned before the first byte of src.
func NewCursor(src string) *Cursor {
	c := &Cursor{src: src, pos: -1}
	c.next()
	return c
}

// next advances the cursor by one byte and returns the new current byte,
// or eof at end of input. Only ASCII structural bytes are ever inspected
// by callers; multi-byte UTF-8 runs inside subfield values pass through
// untouched because they never contain the separator bytes callers look
// for.
func (c *Cursor) next() rune {
	if c.lastSize > 0 {
		c.pos += c.lastSize
	} else if c.pos == -1 {
		c.pos = 0
	}
	if c.pos >= len(c.src) {
		c.lastCh = eof
		c.lastSize = 0
		return eof
	}
	c.lastCh = rune(c.src[c.pos])
	c.lastSize = 1
	return c.lastCh
}

// Peek returns the current byte without consuming it.
func (c *Cursor) Peek() rune {
	return c.lastCh
}

// PeekAt returns the byte offset bytes ahead of the current position
// without consuming anything, or eof if out of range.
func (c *Cursor) PeekAt(offset int) rune {
	p := c.pos + offset
	if p < 0 || p >= len(c.src) {
		return eof
	}
	return rune(c.src[p])
}

// Advance consumes and returns the current byte.
func (c *Cursor) Advance() rune {
	ch := c.lastCh
	c.next()
	return ch
}

// Eof reports whether the cursor has consumed all input.
func (c *Cursor) Eof() bool {
	return c.lastCh == eof
}

// Pos returns the current byte offset into the source string.
func (c *Cursor) Pos() int {
	if c.pos < 0 {
		return 0
	}
	if c.pos > len(c.src) {
		return len(c.src)
	}
	return c.pos
}

// Rest returns the unconsumed remainder of the source string.
func (c *Cursor) Rest() string {
	return c.src[c.Pos():]
}

// Slice returns the substring of the original source between two byte
// offsets previously obtained from Pos(), used by callers that want to
// recover the raw text a sub-parse consumed (e.g. a CodeClass's
// display form).
func (c *Cursor) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(c.src) {
		end = len(c.src)
	}
	if start >= end {
		return ""
	}
	return c.src[start:end]
}

// SkipSpace consumes run of ASCII whitespace. Whitespace is ignored
// between tokens in all four expression languages (spec §6.2).
func (c *Cursor) SkipSpace() {
	for {
		switch c.lastCh {
		case ' ', '\t', '\n', '\r':
			c.next()
		default:
			return
		}
	}
}

// Consume advances past ch and returns true if the current byte is ch
// (after skipping leading whitespace), false otherwise. Leading
// whitespace is consumed in both cases.
func (c *Cursor) Consume(ch rune) bool {
	c.SkipSpace()
	if c.lastCh == ch {
		c.next()
		return true
	}
	return false
}

// ConsumeLiteral advances past lit and returns true if the unconsumed
// input starts with lit (after skipping leading whitespace).
func (c *Cursor) ConsumeLiteral(lit string) bool {
	c.SkipSpace()
	if len(lit) == 0 {
		return true
	}
	if c.pos+len(lit) > len(c.src) {
		return false
	}
	if c.src[c.pos:c.pos+len(lit)] != lit {
		return false
	}
	for i := 0; i < len(lit); i++ {
		c.next()
	}
	return true
}

// PeekLiteral reports whether the unconsumed input starts with lit
// (after skipping leading whitespace) without consuming anything
// beyond that whitespace.
func (c *Cursor) PeekLiteral(lit string) bool {
	c.SkipSpace()
	if c.pos+len(lit) > len(c.src) {
		return false
	}
	return c.src[c.pos:c.pos+len(lit)] == lit
}

// IsAlnum reports whether ch is an ASCII letter or digit.
func IsAlnum(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// IsDigit reports whether ch is an ASCII digit.
func IsDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// State is an opaque cursor checkpoint for recursive-descent parsers
// that need to try an alternative and backtrack on failure (the format
// engine's list-combinator grammar, spec §4.8, where cons/and-then
// lists must be distinguished from a bare group or value by attempting
// the multi-element parse first).
type State struct {
	pos      int
	lastCh   rune
	lastSize int
}

// Save captures the current cursor position.
func (c *Cursor) Save() State {
	return State{pos: c.pos, lastCh: c.lastCh, lastSize: c.lastSize}
}

// Restore rewinds the cursor to a previously captured State.
func (c *Cursor) Restore(s State) {
	c.pos, c.lastCh, c.lastSize = s.pos, s.lastCh, s.lastSize
}

// ReadDigits consumes a run of ASCII digits and returns it; empty if none.
func (c *Cursor) ReadDigits() string {
	start := c.Pos()
	for IsDigit(c.lastCh) {
		c.next()
	}
	return c.src[start:c.Pos()]
}
