// Package driver runs many old/new comparisons in parallel, with an optional
// on-disk result cache.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"apicompat/internal/analysis"
	"apicompat/internal/diag"
	"apicompat/internal/trace"
)

// Job is one module pair of a batch.
type Job struct {
	Name string `toml:"name"`
	Old  string `toml:"old"`
	New  string `toml:"new"`
}

// JobResult содержит результат одного задания
type JobResult struct {
	Job     Job
	Result  *analysis.Result // nil when Err is set
	Err     error
	Cached  bool
	Key     Digest
	Elapsed time.Duration
}

// Options configures AnalyzeAll.
type Options struct {
	Jobs int // 0 - GOMAXPROCS
	// Cache is optional; nil disables caching.
	Cache *DiskCache
	// ConfigDigest is mixed into cache keys so a config change invalidates
	// cached results.
	ConfigDigest Digest
	Sink         ProgressSink
}

// AnalyzeAll runs every job and returns the results in job order. A failing
// job does not stop the others; its error is kept in its JobResult. The
// returned error is only set when ctx is canceled.
func AnalyzeAll(ctx context.Context, a *analysis.Analyzer, jobs []Job, opts Options) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}
	sink := opts.Sink
	if sink == nil {
		sink = FuncSink(nil)
	}
	for _, j := range jobs {
		sink.OnEvent(Event{Job: j.Name, Stage: StageLoad, Status: StatusQueued})
	}

	// Настраиваем параллелизм
	workers := opts.Jobs
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	batch := trace.Begin(tracer, trace.ScopeDriver, "batch", trace.ParentSpan(ctx))
	defer batch.End("")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(jobs)))
	for i, job := range jobs {
		g.Go(func() error {
			// контекст проверяется только между заданиями
			if err := gctx.Err(); err != nil {
				results[i] = JobResult{Job: job, Err: err}
				return err
			}
			span := trace.Begin(tracer, trace.ScopeJob, "job:"+job.Name, batch.ID())
			jctx := trace.WithParent(gctx, span)
			// индекс i уникален для каждой горутины, мьютекс не нужен
			results[i] = runJob(jctx, a, job, opts, sink)
			detail := "ok"
			if results[i].Err != nil {
				detail = results[i].Err.Error()
			} else if results[i].Cached {
				detail = "cached"
			}
			span.End(detail)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runJob(ctx context.Context, a *analysis.Analyzer, job Job, opts Options, sink ProgressSink) JobResult {
	start := time.Now()
	out := JobResult{Job: job}
	fail := func(stage Stage, err error) JobResult {
		out.Err = err
		out.Elapsed = time.Since(start)
		sink.OnEvent(Event{Job: job.Name, Stage: stage, Status: StatusError, Err: err, Elapsed: out.Elapsed})
		return out
	}

	var cacheDiags []diag.Diagnostic
	if opts.Cache != nil {
		sink.OnEvent(Event{Job: job.Name, Stage: StageCache, Status: StatusWorking})
		key, err := jobKey(job, opts.ConfigDigest)
		if err != nil {
			return fail(StageLoad, err)
		}
		out.Key = key
		var payload Payload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			cacheDiags = append(cacheDiags, diag.NewWarning(diag.CacheEntryCorrupted, diag.Location{Identity: job.Name}, err.Error()))
		case hit:
			out.Result = payloadToResult(&payload)
			out.Cached = true
			out.Elapsed = time.Since(start)
			sink.OnEvent(Event{Job: job.Name, Stage: StageCache, Status: StatusCached, Elapsed: out.Elapsed})
			return out
		}
	}

	sink.OnEvent(Event{Job: job.Name, Stage: StageAnalyze, Status: StatusWorking})
	res, err := a.RunFiles(ctx, job.Old, job.New)
	if err != nil {
		return fail(StageAnalyze, fmt.Errorf("%s: %w", job.Name, err))
	}

	if opts.Cache != nil {
		// результат пишем до добавления диагностик кеша: они относятся к этому прогону
		if err := opts.Cache.Put(out.Key, resultToPayload(res)); err != nil {
			cacheDiags = append(cacheDiags, diag.NewWarning(diag.CacheUnavailable, diag.Location{Identity: job.Name}, err.Error()))
		}
	}
	res.Diagnostics = append(res.Diagnostics, cacheDiags...)

	out.Result = res
	out.Elapsed = time.Since(start)
	sink.OnEvent(Event{Job: job.Name, Stage: StageAnalyze, Status: StatusDone, Elapsed: out.Elapsed})
	return out
}

// jobKey: H( old || new || config ).
func jobKey(job Job, config Digest) (Digest, error) {
	oldDigest, err := HashFile(job.Old)
	if err != nil {
		return Digest{}, err
	}
	newDigest, err := HashFile(job.New)
	if err != nil {
		return Digest{}, err
	}
	return Combine(oldDigest, newDigest, config), nil
}
