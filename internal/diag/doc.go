// Package diag defines the side-channel diagnostics of an analysis run.
//
// # Purpose
//
//   - Carry findings about the run itself (a malformed input tree, a check
//     that could not resolve its context) separately from compatibility
//     problems, so consumers never confuse the two streams.
//   - Offer light-weight utilities (Reporter, Bag) that let the matcher and
//     the checks emit diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format, print or decide exit codes. Rendering lives in
// internal/report, orchestration in internal/analysis.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Location – which tree (old/new) and which element identity it concerns.
//   - Notes – optional secondary locations for additional context.
//
// Diagnostics are always lower priority than problems: none of them changes
// a compatibility verdict, and a diagnostic never aborts a run. Fatal rule
// bugs travel as errors, not as diagnostics.
//
// # Emitting diagnostics
//
// Producers hold a diag.Reporter. When extra notes are needed they build a
// ReportBuilder via NewReportBuilder (or ReportWarning/ReportInfo), chain
// WithNote and call Emit. BagReporter aggregates into a Bag, which supports
// sorting and deduplication; DedupReporter filters repeats on the fly.
package diag
