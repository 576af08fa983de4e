package lex

import (
	"fmt"
	"strings"
)

// ReadQuotedString consumes a single- or double-quoted string literal
// starting at the cursor's current position (after skipping leading
// whitespace) and returns its decoded value. Supported escapes match
// §6.2: \n \t \r \\ \/ \b \f, the matching quote, and a backslash
// followed by whitespace, which collapses to nothing (line
// continuation), grounded on the original's string-literal parser and
// the teacher's scanString escape table in parser/token.go.
func (c *Cursor) ReadQuotedString() (string, error) {
	c.SkipSpace()
	quote := c.Peek()
	if quote != '\'' && quote != '"' {
		return "", fmt.Errorf("expected quoted string, found %q", string(rune(quote)))
	}
	c.Advance()

	var b strings.Builder
	for {
		ch := c.Peek()
		switch ch {
		case eof:
			return "", fmt.Errorf("unterminated string literal")
		case quote:
			c.Advance()
			return b.String(), nil
		case '\\':
			c.Advance()
			esc := c.Peek()
			switch esc {
			case 'n':
				b.WriteByte('\n')
				c.Advance()
			case 't':
				b.WriteByte('\t')
				c.Advance()
			case 'r':
				b.WriteByte('\r')
				c.Advance()
			case '\\':
				b.WriteByte('\\')
				c.Advance()
			case '/':
				b.WriteByte('/')
				c.Advance()
			case 'b':
				b.WriteByte('\b')
				c.Advance()
			case 'f':
				b.WriteByte('\f')
				c.Advance()
			case quote:
				b.WriteByte(byte(quote))
				c.Advance()
			case ' ', '\t', '\n', '\r':
				// Backslash-whitespace is a line continuation: consume
				// the run of whitespace and emit nothing.
				for isEscapeWhitespace(c.Peek()) {
					c.Advance()
				}
			case eof:
				return "", fmt.Errorf("unterminated escape sequence")
			default:
				return "", fmt.Errorf("unsupported escape sequence \\%c", esc)
			}
		default:
			b.WriteByte(byte(ch))
			c.Advance()
		}
	}
}

func isEscapeWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
