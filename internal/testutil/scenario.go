package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnb-digital/pica-go/matcher"
	"github.com/dnb-digital/pica-go/path"
	"github.com/dnb-digital/pica-go/query"
	"github.com/dnb-digital/pica-go/record"
)

// options builds the shared evaluation context a scenario declares,
// layered over matcher.DefaultOptions the same way config.Merge layers
// an override over a base.
func (s Scenario) options() matcher.Options {
	opts := matcher.DefaultOptions()
	opts.CaseIgnore = s.CaseIgnore
	if s.StrsimThreshold != 0 {
		opts.StrsimThreshold = s.StrsimThreshold
	}
	if s.Separator != "" {
		opts.Separator = s.Separator
	}
	opts.Squash = s.Squash
	opts.Merge = s.Merge
	return opts
}

// RunScenario replays a named fixture case against whichever engine
// it names (exactly one of Matcher, Path, or Query), the dispatch
// equivalent of the teacher's RunTest branching on Offline/Up/Down.
func RunScenario(t *testing.T, name string, s Scenario) {
	t.Helper()

	r, err := record.ParseRecord([]byte(s.Record))
	require.NoError(t, err, "%s: parsing fixture record", name)
	opts := s.options()

	switch {
	case s.Matcher != "":
		runMatcherScenario(t, name, s, r, opts)
	case s.Path != "":
		runPathScenario(t, name, s, r, opts)
	case s.Query != "":
		runQueryScenario(t, name, s, r, opts)
	default:
		t.Fatalf("%s: scenario names none of matcher/path/query", name)
	}
}

func runMatcherScenario(t *testing.T, name string, s Scenario, r record.Record, opts matcher.Options) {
	t.Helper()
	m, err := matcher.ParseRecordMatcher(s.Matcher, opts)
	if s.ExpectError {
		require.Error(t, err, "%s: expected parse error", name)
		return
	}
	require.NoError(t, err, "%s: parsing matcher %q", name, s.Matcher)
	got := m.Eval(r, opts)
	require.NotNil(t, s.ExpectMatch, "%s: fixture must set expect_match", name)
	assert.Equal(t, *s.ExpectMatch, got, "%s: %q against record", name, s.Matcher)
}

func runPathScenario(t *testing.T, name string, s Scenario, r record.Record, opts matcher.Options) {
	t.Helper()
	p, err := path.ParsePath(s.Path, opts)
	if s.ExpectError {
		require.Error(t, err, "%s: expected parse error", name)
		return
	}
	require.NoError(t, err, "%s: parsing path %q", name, s.Path)
	assert.Equal(t, s.ExpectValues, p.Values(r, opts), "%s: %q against record", name, s.Path)
}

func runQueryScenario(t *testing.T, name string, s Scenario, r record.Record, opts matcher.Options) {
	t.Helper()
	q, err := query.ParseQuery(s.Query, opts)
	if s.ExpectError {
		require.Error(t, err, "%s: expected parse error", name)
		return
	}
	require.NoError(t, err, "%s: parsing query %q", name, s.Query)
	assert.Equal(t, s.ExpectRows, q.Eval(r, opts), "%s: %q against record", name, s.Query)
}
