package check

import (
	"apicompat/internal/diag"
	"apicompat/internal/element"
	"apicompat/internal/match"
	"apicompat/internal/problem"
)

// Frame is one entry of a check's active-element stack.
type Frame struct {
	Pair      match.Pair
	Enclosing match.Pair // nearest ancestor pair; zero at depth 1
	Depth     int
	State     any
}

// Finding is a problem attributed to the pair it was reported for.
type Finding struct {
	Check   string
	Pair    match.Pair
	Problem problem.Problem
}

// Context is handed to every visit and End call. It is only valid for the
// duration of that call.
type Context struct {
	d      *Dispatcher
	ci     int
	pair   match.Pair
	depth  int
	ending bool
}

// Check returns the name of the running check.
func (c *Context) Check() string { return c.d.checks[c.ci].Name() }

// Pair is the pair being visited, or the frame's pair inside End.
func (c *Context) Pair() match.Pair { return c.pair }

// Depth of Pair; 1 for the children of the roots.
func (c *Context) Depth() int { return c.depth }

// Enclosing returns the parent pair of Pair.
func (c *Context) Enclosing() match.Pair {
	if c.depth < 2 || c.depth-2 >= len(c.d.path) {
		return match.Pair{}
	}
	return c.d.path[c.depth-2]
}

// Ancestor returns the nearest ancestor pair whose kind is kind.
func (c *Context) Ancestor(kind element.Kind) (match.Pair, bool) {
	for i := min(c.depth-1, len(c.d.path)) - 1; i >= 0; i-- {
		if p := c.d.path[i]; p.Kind() == kind {
			return p, true
		}
	}
	return match.Pair{}, false
}

// Report emits p for the current pair.
func (c *Context) Report(p problem.Problem) {
	c.d.stats.at(c.ci).Reports++
	if c.d.emit != nil {
		c.d.emit(Finding{Check: c.Check(), Pair: c.pair, Problem: p})
	}
}

// ReportOnEnclosing emits p for the parent pair of the current one. Rules
// visiting elements that only describe their parent, like annotation uses,
// report this way so transforms see the described element on both sides.
// At depth 1 there is no parent and p goes to the current pair.
func (c *Context) ReportOnEnclosing(p problem.Problem) {
	enc := c.Enclosing()
	if !enc.Valid() {
		c.Report(p)
		return
	}
	c.d.stats.at(c.ci).Reports++
	if c.d.emit != nil {
		c.d.emit(Finding{Check: c.Check(), Pair: enc, Problem: p})
	}
}

// Push starts a frame for the current pair. The frame is popped and passed to
// End when traversal leaves the current depth.
func (c *Context) Push(state any) error {
	st := c.d.stacks[c.ci]
	switch {
	case c.ending:
		return c.d.fail(&UsageError{Kind: UsagePushInEnd, Check: c.Check(), Depth: c.depth, Element: display(c.pair)})
	case len(st) > 0 && st[len(st)-1].Depth >= c.depth:
		return c.d.fail(&UsageError{Kind: UsageDoublePush, Check: c.Check(), Depth: c.depth, Element: display(c.pair)})
	}
	c.d.stacks[c.ci] = append(st, Frame{
		Pair:      c.pair,
		Enclosing: c.Enclosing(),
		Depth:     c.depth,
		State:     state,
	})
	c.d.stats.at(c.ci).Pushes++
	return nil
}

// Pop finalizes the frame of the current depth right away instead of waiting
// for traversal to leave it.
func (c *Context) Pop() error {
	st := c.d.stacks[c.ci]
	if c.ending || len(st) == 0 || st[len(st)-1].Depth != c.depth {
		return c.d.fail(&UsageError{Kind: UsagePopWithoutPush, Check: c.Check(), Depth: c.depth, Element: display(c.pair)})
	}
	c.d.finalize(c.ci)
	return nil
}

// Top returns the innermost active frame of the running check.
func (c *Context) Top() (Frame, bool) {
	st := c.d.stacks[c.ci]
	if len(st) == 0 {
		return Frame{}, false
	}
	return st[len(st)-1], true
}

// Active is the number of frames on the running check's stack.
func (c *Context) Active() int { return len(c.d.stacks[c.ci]) }

// Warn surfaces a non-fatal problem with the input on the diagnostic side
// channel. It never affects control flow.
func (c *Context) Warn(code diag.Code, msg string) {
	diag.ReportWarning(c.d.reporter, code, locationOf(c.pair), c.Check()+": "+msg).Emit()
}

func locationOf(p match.Pair) diag.Location {
	switch p.Status() {
	case match.StatusMatched:
		return diag.Location{Side: diag.SideBoth, Identity: p.New.Display()}
	case match.StatusRemoved:
		return diag.Location{Side: diag.SideOld, Identity: p.Old.Display()}
	default:
		if p.New == nil {
			return diag.Location{}
		}
		return diag.Location{Side: diag.SideNew, Identity: p.New.Display()}
	}
}

func display(p match.Pair) string {
	if !p.Valid() {
		return "<root>"
	}
	return p.Display()
}
