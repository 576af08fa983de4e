package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnb-digital/pica-go/matcher"
	"github.com/dnb-digital/pica-go/record"
)

func mustRecord(t *testing.T, wire string) record.Record {
	t.Helper()
	r, err := record.ParseRecord([]byte(wire))
	require.NoError(t, err)
	return r
}

func TestQuery_SingleSelectorEvaluatesAsAQueryOfOne(t *testing.T) {
	q, err := ParseQuery("003@.0", matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "003@ \x1f0118540238\x1e\n")
	rows := q.Eval(r, matcher.DefaultOptions())
	assert.Equal(t, [][]string{{"118540238"}}, rows)
}

func TestQuery_CrossJoinsSelectorsColumnWise(t *testing.T) {
	q, err := ParseQuery("003@.0, 021A{a}", matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "003@ \x1f0118540238\x1e021A \x1faT1\x1e021A \x1faT2\x1e\n")
	rows := q.Eval(r, matcher.DefaultOptions())
	assert.Equal(t, [][]string{
		{"118540238", "T1"},
		{"118540238", "T2"},
	}, rows)
}

func TestQuery_MergeCollapsesEachSelectorToOneRowBeforeJoining(t *testing.T) {
	opts := matcher.DefaultOptions()
	opts.Merge = true
	q, err := ParseQuery("003@.0, 021A{a}", opts)
	require.NoError(t, err)

	r := mustRecord(t, "003@ \x1f0118540238\x1e021A \x1faT1\x1e021A \x1faT2\x1e\n")
	rows := q.Eval(r, opts)
	assert.Equal(t, [][]string{{"118540238", "T1|T2"}}, rows)
}

func TestQuery_EmptyInputFails(t *testing.T) {
	_, err := ParseQuery("", matcher.DefaultOptions())
	require.Error(t, err)
}

func TestQuery_SplitIgnoresCommasInsideBracesAndQuotes(t *testing.T) {
	q, err := ParseQuery(`028A{a | 4 == "aut, editor"}, 021A{a}`, matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "028A \x1faAuthor\x1f4aut, editor\x1e021A \x1faTitle\x1e\n")
	rows := q.Eval(r, matcher.DefaultOptions())
	assert.Equal(t, [][]string{{"Author", "Title"}}, rows)
}
