package matcher

import (
	"log/slog"
	"regexp"
	"strconv"
)

// RegexSet backs `CODES =~ ['RE1','RE2']` (spec §4.3), grounded on the
// original's RegexSetMatcher (SUPPLEMENTED FEATURES in SPEC_FULL.md).
// Each pattern is compiled once, at parse time, into its own
// *regexp.Regexp; the patterns are not combined into a single
// compiled regex, and Any tries them one after another.
type RegexSet struct {
	patterns []*regexp.Regexp
}

// CompileRegexSet compiles every pattern in exprs, case-insensitively
// when caseIgnore is set (spec §4.3's case_ignore contract for =~).
func CompileRegexSet(exprs []string, caseIgnore bool) (*RegexSet, error) {
	rs := &RegexSet{patterns: make([]*regexp.Regexp, 0, len(exprs))}
	for _, expr := range exprs {
		pattern := expr
		if caseIgnore {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &RegexError{Text: expr, Inner: err}
		}
		rs.patterns = append(rs.patterns, re)
	}
	slog.Debug("compiled regex set", "count", len(rs.patterns), "case_ignore", caseIgnore)
	return rs, nil
}

// Any reports whether at least one compiled pattern matches s.
func (rs *RegexSet) Any(s string) bool {
	for _, re := range rs.patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// RegexError is InvalidRegex(text, inner) from spec §6.4.
type RegexError struct {
	Text  string
	Inner error
}

func (e *RegexError) Error() string {
	return "invalid regex " + strconv.Quote(e.Text) + ": " + e.Inner.Error()
}

func (e *RegexError) Unwrap() error { return e.Inner }
