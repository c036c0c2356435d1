package transform

import (
	"errors"
	"fmt"
	"io"

	"apicompat/internal/diag"
	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// Stats counts outcomes of one transform.
type Stats struct {
	Seen     int
	Replaced int
	Dropped  int
	Skipped  int // one-sided pairs passed through by the chain
}

// Chain applies transforms in order.
type Chain struct {
	transforms []Transform
	stats      []Stats
	reporter   diag.Reporter
	closed     bool
}

// NewChain builds a chain; transforms run in the given order.
func NewChain(reporter diag.Reporter, transforms ...Transform) *Chain {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Chain{
		transforms: transforms,
		stats:      make([]Stats, len(transforms)),
		reporter:   reporter,
	}
}

// Len returns the number of transforms.
func (c *Chain) Len() int { return len(c.transforms) }

// Names returns transform names in chain order.
func (c *Chain) Names() []string {
	out := make([]string, len(c.transforms))
	for i, t := range c.transforms {
		out[i] = t.Name()
	}
	return out
}

// Apply runs p through the chain. ok is false when a transform dropped it.
func (c *Chain) Apply(old, new *element.Element, p problem.Problem) (out problem.Problem, ok bool, err error) {
	out = p
	for i, t := range c.transforms {
		st := &c.stats[i]
		st.Seen++
		if needsBoth(t) && (old == nil || new == nil) {
			if targets(t, out.Code()) {
				st.Skipped++
				diag.ReportInfo(c.reporter, diag.TransformNoContext, sideOf(old, new),
					fmt.Sprintf("%s: %s left as is, element is present on one side only", t.Name(), out.Code())).Emit()
			}
			continue
		}
		res, err := c.call(t, old, new, out)
		if err != nil {
			return problem.Problem{}, false, err
		}
		switch res.Kind {
		case OutcomeKeep:
		case OutcomeReplace:
			st.Replaced++
			out = res.Problem
		case OutcomeDrop:
			st.Dropped++
			return problem.Problem{}, false, nil
		default:
			return problem.Problem{}, false, &ContractError{Transform: t.Name(), Code: out.Code(), Reason: fmt.Sprintf("unknown outcome %d", res.Kind)}
		}
	}
	return out, true, nil
}

func (c *Chain) call(t Transform, old, new *element.Element, p problem.Problem) (res Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Transform: t.Name(), Value: r}
		}
	}()
	res, err = t.Transform(old, new, p)
	if err != nil {
		var ce *ContractError
		if !errors.As(err, &ce) {
			err = fmt.Errorf("transform %s: %w", t.Name(), err)
		}
	}
	return res, err
}

// Stats returns per-transform counters keyed by name.
func (c *Chain) Stats() map[string]Stats {
	out := make(map[string]Stats, len(c.transforms))
	for i, t := range c.transforms {
		out[t.Name()] = c.stats[i]
	}
	return out
}

// Close releases chain-scoped resources held by transforms that implement
// io.Closer. It closes every one of them even if some fail.
func (c *Chain) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	var errs []error
	for _, t := range c.transforms {
		if cl, ok := t.(io.Closer); ok {
			if err := cl.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", t.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}

func needsBoth(t Transform) bool {
	b, ok := t.(BothSides)
	return ok && b.NeedsBothSides()
}

func sideOf(old, new *element.Element) diag.Location {
	switch {
	case old != nil:
		return diag.Location{Side: diag.SideOld, Identity: old.Display()}
	case new != nil:
		return diag.Location{Side: diag.SideNew, Identity: new.Display()}
	default:
		return diag.Location{}
	}
}
