package format

import "strings"

// modifier is the group modifier from spec §4.8: a subset of the
// letters L (lowercase), U (uppercase), W (remove whitespace), T
// (trim), applied to each string a group produces.
type modifier struct {
	lower, upper, removeWS, trim bool
}

// apply composes the modifier's effects in the fixed order
// W, then T, then L/U (SPEC_FULL.md SUPPLEMENTED FEATURES). After W
// has removed every space, tab, CR and LF, T only trims the other
// Unicode whitespace that W leaves in place.
func (m modifier) apply(s string) string {
	if m.removeWS {
		s = stripWhitespace(s)
	}
	if m.trim {
		s = strings.TrimSpace(s)
	}
	if m.lower {
		s = strings.ToLower(s)
	}
	if m.upper {
		s = strings.ToUpper(s)
	}
	return s
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
