package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dnb-digital/pica-go/internal/testutil"
)

// TestScenarios replays the named end-to-end matcher cases from
// spec §8 (S1, S2, S5, S6) out of the shared fixture file, the
// record/matcher half of the scenario set.
func TestScenarios(t *testing.T) {
	scenarios, err := testutil.ReadScenarios("../testdata/scenarios.yaml")
	require.NoError(t, err)

	for name, s := range scenarios {
		if s.Matcher == "" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			testutil.RunScenario(t, name, s)
		})
	}
}
