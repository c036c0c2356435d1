// Package trace provides a tracing subsystem for apicompat.
//
// The trace package records analysis runs, their phases and, at the most
// verbose level, single element pairs, to help diagnose slow or stuck runs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	apicompat check --trace=- --trace-level=phase old.mp new.mp
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer for crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: driver, run and phase boundaries
//   - LevelDetail: per-job events of a batch
//   - LevelDebug: everything including element pairs
//
// # Scopes
//
//   - ScopeDriver: top-level CLI operations
//   - ScopeRun: one old/new analysis
//   - ScopePhase: match+check and transform phases
//   - ScopeJob: per-module jobs of a batch
//   - ScopeElement: single element pairs
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeJob, "job:core", trace.ParentSpan(ctx))
//	defer span.End("")
//	ctx = trace.WithParent(ctx, span) // spans of the job hang from it
package trace
