// Package analysis runs one old/new comparison end to end: pairing, checks,
// transform chain.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"apicompat/internal/check"
	"apicompat/internal/config"
	"apicompat/internal/diag"
	"apicompat/internal/element"
	"apicompat/internal/match"
	"apicompat/internal/observ"
	"apicompat/internal/problem"
	"apicompat/internal/trace"
	"apicompat/internal/transform"
)

// DefaultMaxDiagnostics ограничивает побочные диагностики одного прогона.
const DefaultMaxDiagnostics = 1000

// Options содержит опции прогона
type Options struct {
	MaxDiagnostics int
	EnableTimings  bool
}

// Reported is one problem that survived the transform chain.
type Reported struct {
	Check   string
	Old     string // identity on the old side, empty when added
	New     string // identity on the new side, empty when removed
	Kind    element.Kind
	Status  match.Status
	Problem problem.Problem
}

// Identity returns whichever side is present, old first.
func (r Reported) Identity() string {
	if r.Old != "" {
		return r.Old
	}
	return r.New
}

// Stats aggregates counters of a run.
type Stats struct {
	Pairs      match.Stats
	Checks     map[string]check.Stats
	Transforms map[string]transform.Stats
	Findings   int // problems emitted by checks
	Dropped    int // problems removed by the chain
	Disabled   int // problems whose code is switched off in [checks]
}

// Result is the outcome of a successful run.
type Result struct {
	RunID       uuid.UUID
	API         string
	OldVersion  string
	NewVersion  string
	Problems    []Reported
	Diagnostics []diag.Diagnostic
	Stats       Stats
	Timings     *observ.Report // nil unless timings were enabled
}

// Worst returns the highest severity over all axes of all problems, and
// false when there are no problems.
func (r *Result) Worst() (problem.Severity, bool) {
	if r == nil || len(r.Problems) == 0 {
		return problem.Equivalent, false
	}
	worst := problem.Equivalent
	for _, p := range r.Problems {
		worst = max(worst, p.Problem.Classification().Max())
	}
	return worst, true
}

// Fails reports whether some problem reaches threshold. A nil threshold
// never fails.
func (r *Result) Fails(threshold *problem.Severity) bool {
	if threshold == nil {
		return false
	}
	worst, ok := r.Worst()
	return ok && worst >= *threshold
}

// Analyzer holds what every run shares. Checks keep their per-run state on
// the dispatcher stacks, so one Analyzer may run concurrently.
type Analyzer struct {
	cfg      *config.Config
	known    []string
	registry *check.Registry
	opts     Options
}

// New prepares an analyzer; checks disabled by cfg are left out of the
// registry and never visited. A nil cfg means config.Default().
func New(cfg *config.Config, registry *check.Registry, opts Options) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return &Analyzer{
		cfg:      cfg,
		known:    registry.Names(),
		registry: registry.Filter(func(c check.Check) bool { return cfg.CheckEnabled(c.Name()) }),
		opts:     opts,
	}
}

// Checks lists the names of the checks that will run.
func (a *Analyzer) Checks() []string { return a.registry.Names() }

// RunFiles loads both snapshots and runs them.
func (a *Analyzer) RunFiles(ctx context.Context, oldPath, newPath string) (*Result, error) {
	var timer *observ.Timer
	if a.opts.EnableTimings {
		timer = observ.NewTimer()
	}
	loadIdx := timer.Begin(observ.PhaseLoad)
	oldTree, err := element.LoadFile(oldPath)
	if err != nil {
		return nil, fmt.Errorf("load old snapshot: %w", err)
	}
	newTree, err := element.LoadFile(newPath)
	if err != nil {
		return nil, fmt.Errorf("load new snapshot: %w", err)
	}
	timer.End(loadIdx, "")

	res, err := a.run(ctx, oldTree.Root, newTree.Root, timer)
	if err != nil {
		return nil, err
	}
	res.API = newTree.API
	if res.API == "" {
		res.API = oldTree.API
	}
	res.OldVersion = oldTree.Version
	res.NewVersion = newTree.Version
	return res, nil
}

// Run compares the trees under oldRoot and newRoot.
func (a *Analyzer) Run(ctx context.Context, oldRoot, newRoot *element.Element) (*Result, error) {
	var timer *observ.Timer
	if a.opts.EnableTimings {
		timer = observ.NewTimer()
	}
	return a.run(ctx, oldRoot, newRoot, timer)
}

func (a *Analyzer) run(ctx context.Context, oldRoot, newRoot *element.Element, timer *observ.Timer) (res *Result, err error) {
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	defer func() {
		// последний рубеж: паники внутри правил ловятся раньше и называют правило
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("analysis: internal panic: %v", r)
		}
	}()

	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeRun, "analysis", trace.ParentSpan(ctx))
	defer func() {
		detail := "ok"
		if err != nil {
			detail = err.Error()
		}
		runSpan.End(detail)
	}()

	bag := diag.NewBag(a.opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	a.cfg.Validate(a.known, reporter)

	res = &Result{RunID: uuid.New()}
	runSpan.WithExtra("run", res.RunID.String())

	chain, err := transform.Build(a.cfg.Transforms.Order, a.cfg.Transforms.Disabled, a.cfg.TransformSettings(reporter))
	if err != nil {
		return nil, fmt.Errorf("build transform chain: %w", err)
	}
	// Close идемпотентен: на успешном пути цепочка закрывается раньше,
	// чтобы диагностики неиспользованных правил попали в результат.
	defer func() {
		if cerr := chain.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close transform chain: %w", cerr))
			res = nil
		}
	}()

	// фаза 1: сопоставление и проверки
	checkIdx := timer.Begin(observ.PhaseCheck)
	checkSpan := trace.Begin(tracer, trace.ScopePhase, observ.PhaseCheck, runSpan.ID())
	var findings []check.Finding
	d := check.NewDispatcher(a.registry.Checks(), check.Options{
		Reporter: reporter,
		Emit: func(f check.Finding) {
			if !a.cfg.CodeEnabled(f.Problem.Code()) {
				res.Stats.Disabled++
				return
			}
			findings = append(findings, f)
		},
	})
	stream := match.Match(oldRoot, newRoot, match.Options{Reporter: reporter})
	err = drive(stream, d, tracer, checkSpan.ID())
	res.Stats.Pairs = stream.Stats()
	res.Stats.Checks = d.Stats()
	res.Stats.Findings = len(findings)
	checkSpan.WithExtra("pairs", fmt.Sprint(res.Stats.Pairs.Total())).
		WithExtra("findings", fmt.Sprint(len(findings))).
		End("")
	timer.End(checkIdx, fmt.Sprintf("checks=%d findings=%d", a.registry.Len(), len(findings)))
	if err != nil {
		return nil, fmt.Errorf("check phase: %w", err)
	}

	// фаза 2: цепочка трансформаций
	transIdx := timer.Begin(observ.PhaseTransform)
	transSpan := trace.Begin(tracer, trace.ScopePhase, observ.PhaseTransform, runSpan.ID())
	res.Problems = make([]Reported, 0, len(findings))
	for _, f := range findings {
		p, ok, terr := chain.Apply(f.Pair.Old, f.Pair.New, f.Problem)
		if terr != nil {
			err = fmt.Errorf("transform phase: %w", terr)
			break
		}
		if !ok {
			res.Stats.Dropped++
			continue
		}
		res.Problems = append(res.Problems, reported(f, p))
	}
	res.Stats.Transforms = chain.Stats()
	transSpan.WithExtra("dropped", fmt.Sprint(res.Stats.Dropped)).End("")
	timer.End(transIdx, fmt.Sprintf("transforms=%d dropped=%d", chain.Len(), res.Stats.Dropped))
	if err != nil {
		return nil, err
	}
	if cerr := chain.Close(); cerr != nil {
		return nil, fmt.Errorf("close transform chain: %w", cerr)
	}

	bag.Sort()
	res.Diagnostics = bag.Items()
	if n := reporter.Dropped(); n > 0 {
		runSpan.WithExtra("repeated_diagnostics", fmt.Sprint(n))
	}
	if timer != nil {
		report := timer.Report()
		res.Timings = &report
	}
	return res, nil
}

// drive feeds the stream into the dispatcher; at debug level every pair is
// also traced.
func drive(s *match.Stream, d *check.Dispatcher, tracer trace.Tracer, parent uint64) error {
	pairs := tracer.Level().ShouldEmit(trace.ScopeElement)
	for {
		ev, ok := s.Next()
		if !ok {
			break
		}
		if pairs && ev.Kind == match.Enter {
			trace.Point(tracer, trace.ScopeElement, ev.Pair.Status().String(), parent, ev.Pair.Display())
		}
		if err := d.Handle(ev); err != nil {
			return err
		}
	}
	return d.Finish()
}

func reported(f check.Finding, p problem.Problem) Reported {
	r := Reported{
		Check:   f.Check,
		Kind:    f.Pair.Kind(),
		Status:  f.Pair.Status(),
		Problem: p,
	}
	if f.Pair.Old != nil {
		r.Old = f.Pair.Old.Identity()
	}
	if f.Pair.New != nil {
		r.New = f.Pair.New.Identity()
	}
	return r
}
