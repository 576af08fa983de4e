package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnb-digital/pica-go/matcher"
)

func TestLoadMatcherOptionsString_EmptyYieldsDefaults(t *testing.T) {
	opts, err := LoadMatcherOptionsString("")
	require.NoError(t, err)
	assert.Equal(t, matcher.DefaultOptions(), opts)
}

func TestLoadMatcherOptionsString_OverridesNamedFields(t *testing.T) {
	opts, err := LoadMatcherOptionsString(`
case_ignore: true
separator: ";"
squash: true
`)
	require.NoError(t, err)
	assert.True(t, opts.CaseIgnore)
	assert.Equal(t, ";", opts.Separator)
	assert.True(t, opts.Squash)
	assert.False(t, opts.Merge)
	assert.Equal(t, matcher.DefaultOptions().StrsimThreshold, opts.StrsimThreshold)
}

func TestLoadMatcherOptions_EmptyPathYieldsDefaults(t *testing.T) {
	opts, err := LoadMatcherOptions("")
	require.NoError(t, err)
	assert.Equal(t, matcher.DefaultOptions(), opts)
}

func TestLoadMatcherOptions_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("merge: true\nstrsim_threshold: 0.5\n"), 0o644))

	opts, err := LoadMatcherOptions(path)
	require.NoError(t, err)
	assert.True(t, opts.Merge)
	assert.Equal(t, 0.5, opts.StrsimThreshold)
}

func TestLoadMatcherOptions_MissingFileFails(t *testing.T) {
	_, err := LoadMatcherOptions(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestMerge_OverrideWinsOnlyForSetFields(t *testing.T) {
	base := matcher.Options{CaseIgnore: false, StrsimThreshold: 0.8, Separator: "|", Squash: false, Merge: false}
	override := matcher.Options{CaseIgnore: true, Separator: "", StrsimThreshold: 0}

	merged := Merge(base, override)
	assert.True(t, merged.CaseIgnore)
	assert.Equal(t, "|", merged.Separator)
	assert.Equal(t, 0.8, merged.StrsimThreshold)
	assert.False(t, merged.Squash)
}
