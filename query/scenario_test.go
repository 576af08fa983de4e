package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dnb-digital/pica-go/internal/testutil"
)

// TestScenarios replays the named end-to-end query case from spec §8
// (S4) out of the shared fixture file.
func TestScenarios(t *testing.T) {
	scenarios, err := testutil.ReadScenarios("../testdata/scenarios.yaml")
	require.NoError(t, err)

	for name, s := range scenarios {
		if s.Query == "" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			testutil.RunScenario(t, name, s)
		})
	}
}
