package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnb-digital/pica-go/record"
)

func mustField(t *testing.T, tag string, occ string, codes, values string) record.Field {
	t.Helper()
	tg, err := record.ParseTag([]byte(tag))
	require.NoError(t, err)
	var occv record.Occurrence
	if occ != "" {
		occv, err = record.ParseOccurrence([]byte(occ))
		require.NoError(t, err)
	}
	var subfields []record.Subfield
	for i := 0; i < len(codes); i++ {
		subfields = append(subfields, record.Subfield{
			Code:  record.SubfieldCode(codes[i]),
			Value: record.SubfieldValue([]byte(values[i : i+1])),
		})
	}
	return record.Field{Tag: tg, Occurrence: occv, Subfields: subfields}
}

func TestFieldMatcher_Exists(t *testing.T) {
	m, err := ParseFieldMatcher("003@", DefaultOptions())
	require.NoError(t, err)

	fields := []record.Field{mustField(t, "003@", "", "0", "1")}
	assert.True(t, m.Eval(fields, DefaultOptions()))
	assert.False(t, m.Eval(nil, DefaultOptions()))
}

func TestFieldMatcher_CaseIgnoreComparison(t *testing.T) {
	opts := DefaultOptions()
	opts.CaseIgnore = true
	m, err := ParseFieldMatcher(`003@.0 == "ABC"`, opts)
	require.NoError(t, err)

	tag003, err := record.ParseTag([]byte("003@"))
	require.NoError(t, err)
	fields := []record.Field{{
		Tag: tag003,
		Subfields: []record.Subfield{
			{Code: record.SubfieldCode('0'), Value: record.SubfieldValue([]byte("abc"))},
		},
	}}
	assert.True(t, m.Eval(fields, opts))
}

func TestFieldMatcher_CardinalityWithInnerSubfieldMatcher(t *testing.T) {
	m, err := ParseFieldMatcher(`#041A{9 == "x"} >= 2`, DefaultOptions())
	require.NoError(t, err)

	tag041A, err := record.ParseTag([]byte("041A"))
	require.NoError(t, err)
	matching := func(val string) record.Field {
		return record.Field{
			Tag: tag041A,
			Subfields: []record.Subfield{
				{Code: record.SubfieldCode('9'), Value: record.SubfieldValue([]byte(val))},
			},
		}
	}
	twoMatching := []record.Field{matching("x"), matching("x"), matching("y")}
	oneMatching := []record.Field{matching("x"), matching("y"), matching("y")}
	assert.True(t, m.Eval(twoMatching, DefaultOptions()))
	assert.False(t, m.Eval(oneMatching, DefaultOptions()))
}

func TestFieldMatcher_RegexSetDisjunction(t *testing.T) {
	m, err := ParseFieldMatcher(`003@.0 =~ ['^A', '^B']`, DefaultOptions())
	require.NoError(t, err)

	a := []record.Field{mustField(t, "003@", "", "0", "A")}
	b := []record.Field{mustField(t, "003@", "", "0", "B")}
	c := []record.Field{mustField(t, "003@", "", "0", "C")}
	assert.True(t, m.Eval(a, DefaultOptions()))
	assert.True(t, m.Eval(b, DefaultOptions()))
	assert.False(t, m.Eval(c, DefaultOptions()))
}

func TestFieldMatcher_XorPrecedesOr(t *testing.T) {
	// a XOR b || c parses as (a XOR b) || c: OR has the lowest
	// precedence of the three boolean connectives.
	m, err := ParseFieldMatcher(`003@ XOR 012A || 041A`, DefaultOptions())
	require.NoError(t, err)

	fields := []record.Field{mustField(t, "003@", "", "0", "x"), mustField(t, "012A", "", "0", "y"), mustField(t, "041A", "", "0", "z")}
	assert.True(t, m.Eval(fields, DefaultOptions()))
}

func TestFieldMatcher_NoneQuantifierVacuousOverEmptyFieldSet(t *testing.T) {
	m, err := ParseFieldMatcher(`!∃ 003@.0 == "x"`, DefaultOptions())
	require.NoError(t, err)

	// No 003@ fields at all: NONE is vacuously true.
	assert.True(t, m.Eval(nil, DefaultOptions()))
}

func TestFieldMatcher_AnchoredRejectsTrailingInput(t *testing.T) {
	_, err := ParseFieldMatcher(`003@ extra`, DefaultOptions())
	require.Error(t, err)
}

func TestFieldMatcher_Combinators(t *testing.T) {
	a, err := ParseFieldMatcher("003@", DefaultOptions())
	require.NoError(t, err)
	b, err := ParseFieldMatcher("012A", DefaultOptions())
	require.NoError(t, err)

	fields := []record.Field{mustField(t, "003@", "", "0", "x")}
	assert.True(t, OrField(a, b).Eval(fields, DefaultOptions()))
	assert.False(t, AndField(a, b).Eval(fields, DefaultOptions()))
	assert.True(t, XorField(a, b).Eval(fields, DefaultOptions()))
	assert.False(t, NotField(a).Eval(fields, DefaultOptions()))
}
