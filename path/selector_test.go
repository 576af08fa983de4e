package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnb-digital/pica-go/matcher"
)

func TestSelector_WidthMatchesCodeCount(t *testing.T) {
	s, err := ParseSelector("021A{(a,d)}", matcher.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Width())
}

func TestSelector_CartesianProductWithinOneField(t *testing.T) {
	s, err := ParseSelector("021A{(a,d)}", matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "021A \x1faT1\x1faT2\x1fdS1\x1e\n")
	rows := s.Rows(r, matcher.DefaultOptions())
	assert.ElementsMatch(t, [][]string{
		{"T1", "S1"},
		{"T2", "S1"},
	}, rows)
}

func TestSelector_SquashCollapsesRepeatedValuesPerColumn(t *testing.T) {
	opts := matcher.DefaultOptions()
	opts.Squash = true
	s, err := ParseSelector("021A{(a,d)}", opts)
	require.NoError(t, err)

	r := mustRecord(t, "021A \x1faT1\x1faT2\x1fdS1\x1e\n")
	rows := s.Rows(r, opts)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"T1|T2", "S1"}, rows[0])
}

func TestSelector_EmptySelectorYieldsOneEmptyRow(t *testing.T) {
	s, err := ParseSelector("045Z{(a,d)}", matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "003@ \x1f0X\x1e\n")
	rows := s.Rows(r, matcher.DefaultOptions())
	assert.Equal(t, [][]string{{"", ""}}, rows)
}

func TestSelector_MultipleContributingFieldsEachProduceRows(t *testing.T) {
	s, err := ParseSelector("028A{a}", matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "028A \x1faFirst\x1e028A \x1faSecond\x1e\n")
	rows := s.Rows(r, matcher.DefaultOptions())
	assert.Equal(t, [][]string{{"First"}, {"Second"}}, rows)
}
