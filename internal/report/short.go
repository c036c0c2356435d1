package report

import (
	"fmt"
	"sort"
	"strings"

	"apicompat/internal/analysis"
	"apicompat/internal/diag"
)

type shortLine struct {
	identity string
	code     string
	check    string
	class    string
}

// Short renders one line per problem, sorted by identity and code, so the
// output does not depend on traversal order. Diagnostics follow when asked.
func Short(res *analysis.Result, withDiagnostics bool) string {
	if res == nil {
		return ""
	}
	lines := make([]shortLine, 0, len(res.Problems))
	for _, r := range res.Problems {
		lines = append(lines, shortLine{
			identity: r.Identity(),
			code:     string(r.Problem.Code()),
			check:    r.Check,
			class:    r.Problem.Classification().String(),
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		li, lj := lines[i], lines[j]
		if li.identity != lj.identity {
			return li.identity < lj.identity
		}
		if li.code != lj.code {
			return li.code < lj.code
		}
		return li.check < lj.check
	})

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s", l.identity, l.code, l.class)
	}
	if withDiagnostics {
		if ds := diag.FormatShortDiagnostics(res.Diagnostics, true); ds != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(ds)
		}
	}
	return b.String()
}
