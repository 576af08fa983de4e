package format

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

func TestFormat_ValueDefaultBoundIsOne(t *testing.T) {
	f, err := ParseFormat("021A{a}", matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "021A \x1faOne\x1faTwo\x1e\n")
	assert.Equal(t, []string{"One"}, f.Render(r, matcher.DefaultOptions()))
}

func TestFormat_GroupDefaultBoundIsUnbounded(t *testing.T) {
	// The inner value "a.." asks for every occurrence (explicit
	// unbounded); omitting a bound after the closing ')' must not
	// silently cap that back down to one, unlike a bare value token.
	f, err := ParseFormat("021A{(a..)}", matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "021A \x1faOne\x1faTwo\x1faThree\x1e\n")
	assert.Equal(t, []string{"OneTwoThree"}, f.Render(r, matcher.DefaultOptions()))
}

func TestFormat_ModifierOrderIsWhitespaceThenTrimThenCase(t *testing.T) {
	f, err := ParseFormat("021A{(?WTU a)}", matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "021A \x1fa  mixed Case  \x1e\n")
	out := f.Render(r, matcher.DefaultOptions())
	require.Len(t, out, 1)
	assert.Equal(t, "MIXEDCASE", out[0])
}

func TestFormat_ConsCombinatorZipsSiblingsElementWise(t *testing.T) {
	f, err := ParseFormat("021A{a <*> d}", matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "021A \x1faTitle\x1fdSubtitle\x1e\n")
	out := f.Render(r, matcher.DefaultOptions())
	assert.Equal(t, []string{"TitleSubtitle"}, out)
}

func TestFormat_AndThenCombinatorJoinsWhenEverySiblingContributes(t *testing.T) {
	f, err := ParseFormat(`021A{(a) <$> (d)}`, matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "021A \x1faTitle\x1fdSubtitle\x1e\n")
	out := f.Render(r, matcher.DefaultOptions())
	assert.Equal(t, []string{"TitleSubtitle"}, out)
}

func TestFormat_AndThenCombinatorDropsElementsWithAnEmptySibling(t *testing.T) {
	f, err := ParseFormat(`021A{(a) <$> (d)}`, matcher.DefaultOptions())
	require.NoError(t, err)

	// No "d" subfield present: the and-then list has nothing to
	// contribute at any index, so the field renders as an empty string
	// rather than surfacing the lone "a" value.
	r := mustRecord(t, "021A \x1faTitle\x1e\n")
	out := f.Render(r, matcher.DefaultOptions())
	assert.Equal(t, []string{""}, out)
}

func TestFormat_PrefixAndSuffixWrapEachValue(t *testing.T) {
	f, err := ParseFormat(`021A{'<' a '>'}`, matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "021A \x1faTitle\x1e\n")
	assert.Equal(t, []string{"<Title>"}, f.Render(r, matcher.DefaultOptions()))
}

func TestFormat_InlineSubfieldMatcherGatesFields(t *testing.T) {
	f, err := ParseFormat(`028A{a | 4 == "aut"}`, matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "028A \x1faAuthor\x1f4aut\x1e028A \x1faEditor\x1f4edt\x1e\n")
	assert.Equal(t, []string{"Author"}, f.Render(r, matcher.DefaultOptions()))
}

func TestFormat_NestedListCombinators(t *testing.T) {
	// Three fragments deep: an and-then pair whose first element is
	// itself a three-element cons list, exercising list-combinator
	// nesting beyond the flat two-element case.
	f, err := ParseFormat("021A{a <*> d <*> e <$> f}", matcher.DefaultOptions())
	require.NoError(t, err)

	r := mustRecord(t, "021A \x1faA\x1fdD\x1feE\x1ffF\x1e\n")
	assert.Equal(t, []string{"ADEF"}, f.Render(r, matcher.DefaultOptions()))
}

func TestParseFormat_AnchoredRejectsTrailingInput(t *testing.T) {
	_, err := ParseFormat("021A{a} trailing", matcher.DefaultOptions())
	require.Error(t, err)
}
