package observ

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	i := tm.Begin(PhaseCheck)
	tm.End(i, "9 checks")
	j := tm.Begin(PhaseTransform)
	tm.End(j, "")
	tm.End(42, "ignored")

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	require.Equal(t, PhaseCheck, r.Phases[0].Name)
	require.Equal(t, "9 checks", r.Phases[0].Note)
	require.GreaterOrEqual(t, r.TotalMS, r.Phases[0].DurationMS)

	s := tm.Summary()
	require.True(t, strings.HasPrefix(s, "timings:\n"))
	require.Contains(t, s, "// 9 checks")
	require.Contains(t, s, "total")
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	idx := tm.Begin(PhaseLoad)
	require.Equal(t, -1, idx)
	tm.End(idx, "")
	require.Equal(t, Report{}, tm.Report())
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: PhaseCheck, DurationMS: 1}, {Name: PhaseTransform, DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: PhaseTransform, DurationMS: 1}, {Name: PhaseRender, DurationMS: 3}}}
	m := Merge(a, b)
	require.Equal(t, 7.0, m.TotalMS)
	require.Equal(t, []PhaseReport{
		{Name: PhaseCheck, DurationMS: 1},
		{Name: PhaseTransform, DurationMS: 3},
		{Name: PhaseRender, DurationMS: 3},
	}, m.Phases)
}
