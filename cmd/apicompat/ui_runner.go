package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"apicompat/internal/analysis"
	"apicompat/internal/driver"
	"apicompat/internal/ui"
)

type batchOutcome struct {
	results []driver.JobResult
	err     error
}

// runBatchWithUI runs the batch in the background and renders its progress
// until every job reported. Quitting the UI early cancels the remaining jobs.
func runBatchWithUI(ctx context.Context, out io.Writer, a *analysis.Analyzer, jobs []driver.Job, opts driver.Options) ([]driver.JobResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Sink = driver.ChannelSink{Ch: events}
		res, err := driver.AnalyzeAll(ctx, a, jobs, opts)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name
	}
	model := ui.NewProgressModel("apicompat batch", names, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()

	// UI мог выйти раньше (ctrl+c): отменяем и вычитываем события,
	// чтобы воркеры не заблокировались на канале
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
