package check

import (
	"apicompat/internal/diag"
	"apicompat/internal/element"
	"apicompat/internal/match"
)

// Options configures a Dispatcher.
type Options struct {
	// Reporter receives warnings raised through Context.Warn.
	Reporter diag.Reporter
	// Emit receives every finding in report order.
	Emit func(Finding)
}

// Stats counts activity of one check during a run.
type Stats struct {
	Visits  int
	Pushes  int
	Pops    int
	Reports int
}

type statsTable []Stats

func (t statsTable) at(i int) *Stats { return &t[i] }

// Dispatcher drives traversal events to checks and owns their stacks.
type Dispatcher struct {
	checks   []Check
	byKind   [8][]int
	stacks   [][]Frame
	path     []match.Pair
	reporter diag.Reporter
	emit     func(Finding)
	stats    statsTable
	err      error
}

// NewDispatcher prepares a run over checks. The slice order is the visit
// order for every pair.
func NewDispatcher(checks []Check, opts Options) *Dispatcher {
	d := &Dispatcher{
		checks:   checks,
		stacks:   make([][]Frame, len(checks)),
		reporter: opts.Reporter,
		emit:     opts.Emit,
		stats:    make(statsTable, len(checks)),
	}
	if d.reporter == nil {
		d.reporter = diag.NopReporter{}
	}
	for ci, c := range checks {
		interest := c.Interest()
		for k := range d.byKind {
			if interest.Has(element.Kind(k)) {
				d.byKind[k] = append(d.byKind[k], ci)
			}
		}
	}
	return d
}

// Run drains s and verifies that every stack is empty afterwards.
func (d *Dispatcher) Run(s *match.Stream) error {
	for {
		ev, ok := s.Next()
		if !ok {
			break
		}
		if err := d.Handle(ev); err != nil {
			return err
		}
	}
	return d.Finish()
}

// Handle processes one traversal event. After the first fatal error every
// further call returns that error.
func (d *Dispatcher) Handle(ev match.Event) error {
	if d.err != nil {
		return d.err
	}
	switch ev.Kind {
	case match.Enter:
		d.path = append(d.path[:min(ev.Depth-1, len(d.path))], ev.Pair)
		kind := ev.Pair.Kind()
		if int(kind) >= len(d.byKind) {
			kind = element.KindOther
		}
		for _, ci := range d.byKind[kind] {
			d.visit(ci, ev)
			if d.err != nil {
				return d.err
			}
		}
	case match.Leave:
		for ci := range d.checks {
			st := d.stacks[ci]
			if len(st) > 0 && st[len(st)-1].Depth == ev.Depth {
				d.finalize(ci)
				if d.err != nil {
					return d.err
				}
			}
		}
		d.path = d.path[:min(max(ev.Depth-1, 0), len(d.path))]
	}
	return d.err
}

// Finish reports frames left on any stack as a usage error.
func (d *Dispatcher) Finish() error {
	if d.err != nil {
		return d.err
	}
	for ci, st := range d.stacks {
		if len(st) > 0 {
			return d.fail(&UsageError{Kind: UsageUndrained, Check: d.checks[ci].Name(), Pending: len(st)})
		}
	}
	return nil
}

// Stats returns per-check counters keyed by check name.
func (d *Dispatcher) Stats() map[string]Stats {
	out := make(map[string]Stats, len(d.checks))
	for ci, c := range d.checks {
		out[c.Name()] = d.stats[ci]
	}
	return out
}

// Totals sums the counters of all checks.
func (d *Dispatcher) Totals() Stats {
	var t Stats
	for _, s := range d.stats {
		t.Visits += s.Visits
		t.Pushes += s.Pushes
		t.Pops += s.Pops
		t.Reports += s.Reports
	}
	return t
}

func (d *Dispatcher) visit(ci int, ev match.Event) {
	c := d.checks[ci]
	ctx := &Context{d: d, ci: ci, pair: ev.Pair, depth: ev.Depth}
	old, new := ev.Pair.Old, ev.Pair.New
	d.stats[ci].Visits++
	d.guard(ci, func() {
		switch ev.Pair.Kind() {
		case element.KindPackage:
			c.VisitPackage(ctx, old, new)
		case element.KindType:
			c.VisitType(ctx, old, new)
		case element.KindMethod:
			c.VisitMethod(ctx, old, new)
		case element.KindField:
			c.VisitField(ctx, old, new)
		case element.KindAnnotation:
			c.VisitAnnotation(ctx, old, new)
		case element.KindOther:
			c.VisitOther(ctx, old, new)
		default:
			c.VisitOther(ctx, old, new)
		}
	})
}

// finalize pops the top frame of check ci and runs End for it.
func (d *Dispatcher) finalize(ci int) {
	st := d.stacks[ci]
	f := st[len(st)-1]
	d.stacks[ci] = st[:len(st)-1]
	d.stats[ci].Pops++
	ctx := &Context{d: d, ci: ci, pair: f.Pair, depth: f.Depth, ending: true}
	d.guard(ci, func() { d.checks[ci].End(ctx, f) })
}

func (d *Dispatcher) guard(ci int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.fail(&PanicError{Check: d.checks[ci].Name(), Value: r})
		}
	}()
	fn()
}

func (d *Dispatcher) fail(err error) error {
	if d.err == nil {
		d.err = err
	}
	return err
}
