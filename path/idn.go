package path

import (
	"sync"

	"github.com/dnb-digital/pica-go/matcher"
	"github.com/dnb-digital/pica-go/record"
)

// idnPath is "003@.0", the record identifier path (spec §4.6's IDN
// convenience). Compiled once and reused, mirroring the original's
// PathExt::idn, which hard-codes the same expression.
var (
	idnOnce sync.Once
	idnPath Path
)

func idn() Path {
	idnOnce.Do(func() {
		p, err := ParsePath("003@.0", matcher.DefaultOptions())
		if err != nil {
			panic("internal error: built-in IDN path failed to parse: " + err.Error())
		}
		idnPath = p
	})
	return idnPath
}

// IDN returns the record identifier (003@.0), and whether it was
// present at all. Allow/deny-list components route membership tests
// against exactly this path by default (spec §4.6, §6.3).
func IDN(r record.Record) (string, bool) {
	values := idn().Values(r, matcher.DefaultOptions())
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}
