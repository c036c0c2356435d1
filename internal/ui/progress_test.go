package ui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"apicompat/internal/driver"
)

func TestApplyEventTracksJobs(t *testing.T) {
	m := NewProgressModel("batch", []string{"core", "web"}, nil).(*progressModel)

	m.applyEvent(driver.Event{Job: "core", Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	require.Equal(t, "analyzing", m.items[0].status)
	require.False(t, m.items[0].final)

	m.applyEvent(driver.Event{Job: "core", Stage: driver.StageAnalyze, Status: driver.StatusDone})
	m.applyEvent(driver.Event{Job: "web", Stage: driver.StageCache, Status: driver.StatusCached})
	m.applyEvent(driver.Event{Job: "unknown", Status: driver.StatusError})
	require.Equal(t, 2, m.finished())
	require.Equal(t, "cached", m.items[1].status)

	view := m.View()
	require.Contains(t, view, "batch (2/2)")
	require.Contains(t, view, "core")
}

func TestDoneMsgQuits(t *testing.T) {
	m := NewProgressModel("batch", []string{"core"}, nil)
	next, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	require.Contains(t, next.View(), "done: batch (0/1)")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "module", truncate("module", 10))
	require.Equal(t, "modu...", truncate("module-name", 7))
	require.Equal(t, "mo", truncate("module", 2))
}
