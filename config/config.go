// Package config loads MatcherOptions (and the query-only extensions
// that ride along on the same struct, spec §4.2) from YAML, grounded
// on the teacher's database.ParseGeneratorConfig /
// MergeGeneratorConfig (gopkg.in/yaml.v3, read-file-or-string, a
// Merge with override-wins-on-set-fields semantics). Unlike the
// teacher's CLI-facing GeneratorConfig, this package never calls
// log.Fatal: a library has no business exiting the process, so read
// and decode failures come back as ordinary errors.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dnb-digital/pica-go/matcher"
)

// yamlOptions is the on-disk shape; pointer fields distinguish "unset"
// from "explicitly set to the zero value" so Merge can tell which
// fields the override actually provided.
type yamlOptions struct {
	CaseIgnore      *bool    `yaml:"case_ignore"`
	StrsimThreshold *float64 `yaml:"strsim_threshold"`
	Separator       *string  `yaml:"separator"`
	Squash          *bool    `yaml:"squash"`
	Merge           *bool    `yaml:"merge"`
}

// LoadMatcherOptionsString decodes a MatcherOptions from a YAML
// document given as a string. An empty string yields
// matcher.DefaultOptions(), matching ParseGeneratorConfigString's
// empty-input contract.
func LoadMatcherOptionsString(yamlDoc string) (matcher.Options, error) {
	if yamlDoc == "" {
		return matcher.DefaultOptions(), nil
	}
	return parseMatcherOptions([]byte(yamlDoc))
}

// LoadMatcherOptions reads and decodes a MatcherOptions from a YAML
// file. An empty path yields matcher.DefaultOptions().
func LoadMatcherOptions(path string) (matcher.Options, error) {
	if path == "" {
		return matcher.DefaultOptions(), nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return matcher.Options{}, fmt.Errorf("reading matcher options %q: %w", path, err)
	}
	return parseMatcherOptions(buf)
}

// LoadQueryOptions is an alias for LoadMatcherOptions: the query-only
// extensions (separator/squash/merge) live on the same struct as the
// matcher options proper (spec §4.2), so there is nothing additional
// to decode.
func LoadQueryOptions(path string) (matcher.Options, error) {
	return LoadMatcherOptions(path)
}

func parseMatcherOptions(buf []byte) (matcher.Options, error) {
	var y yamlOptions
	if err := yaml.Unmarshal(buf, &y); err != nil {
		return matcher.Options{}, fmt.Errorf("decoding matcher options: %w", err)
	}
	opts := matcher.DefaultOptions()
	applyYAML(&opts, y)
	return opts, nil
}

func applyYAML(opts *matcher.Options, y yamlOptions) {
	if y.CaseIgnore != nil {
		opts.CaseIgnore = *y.CaseIgnore
	}
	if y.StrsimThreshold != nil {
		opts.StrsimThreshold = *y.StrsimThreshold
	}
	if y.Separator != nil {
		opts.Separator = *y.Separator
	}
	if y.Squash != nil {
		opts.Squash = *y.Squash
	}
	if y.Merge != nil {
		opts.Merge = *y.Merge
	}
}

// Merge overrides base with every field override explicitly sets,
// leaving base's value where override is the zero value — the same
// override-wins-on-set-fields contract as MergeGeneratorConfig, with
// booleans treated as "set" whenever they differ from the zero value
// false (matcher.Options has no pointer fields, so a caller wanting to
// force Squash/Merge back to false after a base config enabled them
// should construct the override directly instead of merging).
func Merge(base, override matcher.Options) matcher.Options {
	result := base
	if override.CaseIgnore {
		result.CaseIgnore = true
	}
	if override.StrsimThreshold != 0 {
		result.StrsimThreshold = override.StrsimThreshold
	}
	if override.Separator != "" {
		result.Separator = override.Separator
	}
	if override.Squash {
		result.Squash = true
	}
	if override.Merge {
		result.Merge = true
	}
	return result
}
