// Package testutil is the YAML-fixture-driven scenario harness used by
// the end-to-end tests in spec §8: named test cases decoded from a
// fixture file and replayed against the record/matcher/path/query
// engines, grounded on the teacher's testutil.TestCase/ReadTests
// (named YAML fixtures decoded with yaml.v3, one map entry per named
// case) and its package init() wiring util.InitSlog so every test
// binary that imports this package honors LOG_LEVEL.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dnb-digital/pica-go/internal/util"
)

func init() {
	util.InitSlog()
}

// Scenario is one named end-to-end case from spec §8: a raw input
// record plus exactly one of Matcher, Path, or Query, and the
// expectation it must produce. Unlike the teacher's TestCase (one
// shape serving every migration test), a scenario picks its engine by
// which expression field is non-empty, since this domain has four
// sibling languages instead of one.
type Scenario struct {
	Record string `yaml:"record"`

	Matcher string `yaml:"matcher,omitempty"`
	Path    string `yaml:"path,omitempty"`
	Query   string `yaml:"query,omitempty"`

	CaseIgnore      bool    `yaml:"case_ignore,omitempty"`
	StrsimThreshold float64 `yaml:"strsim_threshold,omitempty"`
	Separator       string  `yaml:"separator,omitempty"`
	Squash          bool    `yaml:"squash,omitempty"`
	Merge           bool    `yaml:"merge,omitempty"`

	ExpectMatch  *bool      `yaml:"expect_match,omitempty"`
	ExpectValues []string   `yaml:"expect_values,omitempty"`
	ExpectRows   [][]string `yaml:"expect_rows,omitempty"`
	ExpectError  bool       `yaml:"expect_error,omitempty"`
}

// ReadScenarios decodes every named scenario out of the YAML fixture
// at path, the way ReadTests globs and decodes named migration cases.
// A fixture is a single file here, not a glob, since spec §8's
// scenario count is fixed and known rather than scattered across a
// test-data directory.
func ReadScenarios(path string) (map[string]Scenario, error) {
	buf, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading scenarios %q: %w", path, err)
	}

	var scenarios map[string]Scenario
	if err := yaml.Unmarshal(buf, &scenarios); err != nil {
		return nil, fmt.Errorf("decoding scenarios %q: %w", path, err)
	}
	return scenarios, nil
}
