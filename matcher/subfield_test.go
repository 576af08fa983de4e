package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnb-digital/pica-go/record"
)

func sf(code byte, value string) record.Subfield {
	return record.Subfield{Code: record.SubfieldCode(code), Value: record.SubfieldValue([]byte(value))}
}

func TestSubfieldMatcher_CaseIgnoreComparison(t *testing.T) {
	// S1: 003@.0 == '123456789x' with case_ignore against "0123456789X".
	opts := DefaultOptions()
	opts.CaseIgnore = true
	m, err := ParseSubfieldMatcher(`0 == '123456789x'`, opts)
	require.NoError(t, err)
	assert.True(t, m.Eval([]record.Subfield{sf('0', "123456789X")}, opts))
}

func TestSubfieldMatcher_RegexSetDisjunction(t *testing.T) {
	// S5: [er] =~ ['^DE-\\d+$', '^EN-.*'] on values DE-1, XX-9.
	m, err := ParseSubfieldMatcher(`[er] =~ ['^DE-\\d+$', '^EN-.*']`, DefaultOptions())
	require.NoError(t, err)
	subfields := []record.Subfield{sf('e', "DE-1"), sf('r', "XX-9")}
	assert.True(t, m.Eval(subfields, DefaultOptions()))
}

func TestSubfieldMatcher_XorPrecedence(t *testing.T) {
	// S6: a == '28p' XOR a == '9.5p'.
	m, err := ParseSubfieldMatcher(`a == '28p' XOR a == '9.5p'`, DefaultOptions())
	require.NoError(t, err)

	both := []record.Subfield{sf('a', "28p"), sf('a', "9.5p")}
	assert.False(t, m.Eval(both, DefaultOptions()))

	onlyFirst := []record.Subfield{sf('a', "28p")}
	assert.True(t, m.Eval(onlyFirst, DefaultOptions()))
}

func TestSubfieldMatcher_SetMembership(t *testing.T) {
	m, err := ParseSubfieldMatcher(`a in ['x', 'y']`, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, m.Eval([]record.Subfield{sf('a', "y")}, DefaultOptions()))
	assert.False(t, m.Eval([]record.Subfield{sf('a', "z")}, DefaultOptions()))

	notIn, err := ParseSubfieldMatcher(`a not in ['x', 'y']`, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, notIn.Eval([]record.Subfield{sf('a', "z")}, DefaultOptions()))
}

func TestSubfieldMatcher_Existence(t *testing.T) {
	m, err := ParseSubfieldMatcher(`a?`, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, m.Eval([]record.Subfield{sf('a', "x")}, DefaultOptions()))
	assert.False(t, m.Eval([]record.Subfield{sf('b', "x")}, DefaultOptions()))
}

func TestSubfieldMatcher_Cardinality(t *testing.T) {
	m, err := ParseSubfieldMatcher(`#a > 1`, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, m.Eval([]record.Subfield{sf('a', "x"), sf('a', "y")}, DefaultOptions()))
	assert.False(t, m.Eval([]record.Subfield{sf('a', "x")}, DefaultOptions()))

	// Cardinality operand is zero-inclusive: "#a > 0" is meaningful and
	// distinct in spelling from plain existence.
	zero, err := ParseSubfieldMatcher(`#a > 0`, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, zero.Eval(nil, DefaultOptions()))
}

func TestSubfieldMatcher_Similarity(t *testing.T) {
	opts := DefaultOptions()
	opts.StrsimThreshold = 0.8
	m, err := ParseSubfieldMatcher(`a =* 'kitten'`, opts)
	require.NoError(t, err)
	assert.True(t, m.Eval([]record.Subfield{sf('a', "kitten")}, opts))
	assert.False(t, m.Eval([]record.Subfield{sf('a', "completely different")}, opts))
}

func TestSubfieldMatcher_BooleanLaws(t *testing.T) {
	// P4: double negation, commutativity, De Morgan.
	a, err := ParseSubfieldMatcher(`a?`, DefaultOptions())
	require.NoError(t, err)
	b, err := ParseSubfieldMatcher(`b?`, DefaultOptions())
	require.NoError(t, err)

	subfields := []record.Subfield{sf('a', "x")}
	opts := DefaultOptions()

	notNot := Not(Not(a))
	assert.Equal(t, a.Eval(subfields, opts), notNot.Eval(subfields, opts))

	assert.Equal(t, And(a, b).Eval(subfields, opts), And(b, a).Eval(subfields, opts))

	demorgan := Not(And(a, b))
	other := Or(Not(a), Not(b))
	assert.Equal(t, demorgan.Eval(subfields, opts), other.Eval(subfields, opts))
}

func TestSubfieldMatcher_CharacterClassRange(t *testing.T) {
	m, err := ParseSubfieldMatcher(`[a-c]?`, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, m.Eval([]record.Subfield{sf('b', "x")}, DefaultOptions()))
	assert.False(t, m.Eval([]record.Subfield{sf('d', "x")}, DefaultOptions()))
}

func TestSubfieldMatcher_DegenerateRangeRejected(t *testing.T) {
	// B3: a-a is rejected (min < max required).
	_, err := ParseSubfieldMatcher(`[a-a]?`, DefaultOptions())
	require.Error(t, err)
}

func TestSubfieldMatcher_InvertedRangeRejected(t *testing.T) {
	_, err := ParseSubfieldMatcher(`[c-a]?`, DefaultOptions())
	require.Error(t, err)
}

func TestSubfieldMatcher_AnchoredRejectsTrailingInput(t *testing.T) {
	_, err := ParseSubfieldMatcher(`a? trailing`, DefaultOptions())
	require.Error(t, err)
}

func TestSubfieldMatcher_InvalidRegexFails(t *testing.T) {
	_, err := ParseSubfieldMatcher(`a =~ '('`, DefaultOptions())
	require.Error(t, err)
}

func TestSubfieldMatcher_AllCodesWildcard(t *testing.T) {
	m, err := ParseSubfieldMatcher(`*?`, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, m.Eval([]record.Subfield{sf('z', "x")}, DefaultOptions()))
	assert.False(t, m.Eval(nil, DefaultOptions()))
}
