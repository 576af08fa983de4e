package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_SkipSpaceAndConsume(t *testing.T) {
	c := NewCursor("   && rest")
	assert.True(t, c.Consume('&'))
	assert.True(t, c.Consume('&'))
	c.SkipSpace()
	assert.Equal(t, "rest", c.Rest())
}

func TestCursor_ConsumeLiteralAndPeekLiteral(t *testing.T) {
	c := NewCursor("XOR b")
	assert.True(t, c.PeekLiteral("XOR"))
	assert.True(t, c.ConsumeLiteral("XOR"))
	c.SkipSpace()
	assert.Equal(t, "b", c.Rest())
}

func TestCursor_SaveRestore(t *testing.T) {
	c := NewCursor("abc")
	save := c.Save()
	c.Advance()
	c.Advance()
	assert.Equal(t, "c", c.Rest())
	c.Restore(save)
	assert.Equal(t, "abc", c.Rest())
}

func TestReadQuotedString_Escapes(t *testing.T) {
	c := NewCursor(`'a\nb\tc\\d\/e\'f'`)
	s, err := c.ReadQuotedString()
	require.NoError(t, err)
	assert.Equal(t, "a\nb\tc\\d/e'f", s)
}

func TestReadQuotedString_LineContinuation(t *testing.T) {
	c := NewCursor("\"a\\\n   b\"")
	s, err := c.ReadQuotedString()
	require.NoError(t, err)
	assert.Equal(t, "ab", s)
}

func TestReadQuotedString_UnterminatedFails(t *testing.T) {
	c := NewCursor(`'unterminated`)
	_, err := c.ReadQuotedString()
	require.Error(t, err)
}

func TestReadCodeClass_Wildcard(t *testing.T) {
	c := NewCursor("*")
	codes, err := c.ReadCodeClass()
	require.NoError(t, err)
	assert.Len(t, codes, 62)
}

func TestReadCodeClass_BracketRejectsCommaSeparator(t *testing.T) {
	c := NewCursor("[a-c,x]")
	// a bracket class doesn't accept a literal comma as a member; this
	// documents that the grammar is "[a-c]" style, no comma separators.
	_, err := c.ReadCodeClass()
	require.Error(t, err)
}

func TestReadCodeClass_DegenerateRangeRejected(t *testing.T) {
	c := NewCursor("[a-a]")
	_, err := c.ReadCodeClass()
	require.Error(t, err)
}

func TestDepth_EnterBoundsNesting(t *testing.T) {
	d := NewDepth(2)
	d1, err := d.Enter()
	require.NoError(t, err)
	d2, err := d1.Enter()
	require.NoError(t, err)
	_, err = d2.Enter()
	require.ErrorIs(t, err, ErrNestingTooDeep)
}

func TestDepth_UnboundedWhenMaxZero(t *testing.T) {
	d := NewDepth(0)
	for i := 0; i < 1000; i++ {
		var err error
		d, err = d.Enter()
		require.NoError(t, err)
	}
}
