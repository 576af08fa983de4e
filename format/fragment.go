package format

import (
	"strings"

	"github.com/dnb-digital/pica-go/matcher"
	"github.com/dnb-digital/pica-go/record"
)

// valueFragment is PREFIX? CODES BOUNDS? SUFFIX? (spec §4.8). Its
// vector has one entry per contributing subfield value (document
// order), up to the bound; an absent bound defaults to exactly one
// occurrence.
type valueFragment struct {
	prefix, suffix string
	hasPrefix      bool
	hasSuffix      bool
	codes          matcher.CodeClass
	bound          int // unbounded (-1) or a positive cap
}

func (v valueFragment) render(subfields []record.Subfield, _ Options) []string {
	var out []string
	for _, sf := range subfields {
		if v.bound != unbounded && len(out) >= v.bound {
			break
		}
		if !v.codes.Contains(byte(sf.Code)) {
			continue
		}
		s := sf.Value.String()
		if v.hasPrefix {
			s = v.prefix + s
		}
		if v.hasSuffix {
			s = s + v.suffix
		}
		out = append(out, s)
	}
	return out
}

// groupFragment is "( MODIFIER? FRAGMENTS ) BOUNDS?" (spec §4.8). Its
// own bound truncates the assembled vector after the modifier has
// been applied to every element; an absent bound is unbounded
// (matching the original parser's default of usize::MAX, unlike
// Value's default of exactly one — see the format entry in
// DESIGN.md).
type groupFragment struct {
	modifier modifier
	inner    fragment
	bound    int
}

func (g groupFragment) render(subfields []record.Subfield, opts Options) []string {
	vec := g.inner.render(subfields, opts)
	for i, s := range vec {
		vec[i] = g.modifier.apply(s)
	}
	if g.bound != unbounded && len(vec) > g.bound {
		vec = vec[:g.bound]
	}
	return vec
}

// consFragment is the `<*>` list combinator: element-wise zip across
// sibling fragments, padding a shorter sibling's missing element with
// the empty string (spec §4.8).
type consFragment struct {
	children []fragment
}

func (c consFragment) render(subfields []record.Subfield, opts Options) []string {
	vecs := make([][]string, len(c.children))
	maxLen := 0
	for i, child := range c.children {
		vecs[i] = child.render(subfields, opts)
		if len(vecs[i]) > maxLen {
			maxLen = len(vecs[i])
		}
	}
	out := make([]string, maxLen)
	for i := 0; i < maxLen; i++ {
		var b strings.Builder
		for _, vec := range vecs {
			if i < len(vec) {
				b.WriteString(vec[i])
			}
		}
		out[i] = b.String()
	}
	return out
}

// andThenFragment is the `<$>` list combinator: element-wise zip like
// Cons, but an index is only emitted when every sibling produced a
// non-empty string there (spec §4.8).
type andThenFragment struct {
	children []fragment
}

func (c andThenFragment) render(subfields []record.Subfield, opts Options) []string {
	vecs := make([][]string, len(c.children))
	maxLen := 0
	for i, child := range c.children {
		vecs[i] = child.render(subfields, opts)
		if len(vecs[i]) > maxLen {
			maxLen = len(vecs[i])
		}
	}
	var out []string
	for i := 0; i < maxLen; i++ {
		ok := true
		var b strings.Builder
		for _, vec := range vecs {
			var s string
			if i < len(vec) {
				s = vec[i]
			}
			if s == "" {
				ok = false
				break
			}
			b.WriteString(s)
		}
		if ok {
			out = append(out, b.String())
		}
	}
	return out
}
