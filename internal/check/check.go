package check

import (
	"fmt"

	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// Check is a compatibility rule.
//
// Visit methods get the two sides of a pair; one of them may be nil for a
// removed or added element. Only kinds in Interest are visited.
type Check interface {
	Name() string
	Interest() element.KindSet
	// Codes lists the problem codes the rule may report.
	Codes() []problem.Code

	VisitPackage(ctx *Context, old, new *element.Element)
	VisitType(ctx *Context, old, new *element.Element)
	VisitMethod(ctx *Context, old, new *element.Element)
	VisitField(ctx *Context, old, new *element.Element)
	VisitAnnotation(ctx *Context, old, new *element.Element)
	VisitOther(ctx *Context, old, new *element.Element)

	// End finalizes a frame pushed by this check; called when traversal
	// leaves the frame's depth.
	End(ctx *Context, frame Frame)
}

// Base provides no-op visits. Embed it and override what the rule needs.
type Base struct{}

func (Base) Codes() []problem.Code                                        { return nil }
func (Base) VisitPackage(*Context, *element.Element, *element.Element)    {}
func (Base) VisitType(*Context, *element.Element, *element.Element)       {}
func (Base) VisitMethod(*Context, *element.Element, *element.Element)     {}
func (Base) VisitField(*Context, *element.Element, *element.Element)      {}
func (Base) VisitAnnotation(*Context, *element.Element, *element.Element) {}
func (Base) VisitOther(*Context, *element.Element, *element.Element)      {}
func (Base) End(*Context, Frame)                                          {}

// Registry is the ordered list of checks of a run.
type Registry struct {
	checks []Check
	byName map[string]int
}

// NewRegistry registers checks in the given order.
func NewRegistry(checks ...Check) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(checks))}
	for _, c := range checks {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a check; names must be unique.
func (r *Registry) Register(c Check) error {
	if c == nil {
		return fmt.Errorf("register: nil check")
	}
	name := c.Name()
	if name == "" {
		return fmt.Errorf("register: check %T has no name", c)
	}
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("register: duplicate check %q", name)
	}
	r.byName[name] = len(r.checks)
	r.checks = append(r.checks, c)
	return nil
}

// Checks returns the registered checks in registration order.
func (r *Registry) Checks() []Check {
	return append([]Check(nil), r.checks...)
}

// Lookup finds a check by name.
func (r *Registry) Lookup(name string) (Check, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.checks[i], true
}

// Len returns the number of checks.
func (r *Registry) Len() int { return len(r.checks) }

// Names returns check names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.checks))
	for i, c := range r.checks {
		out[i] = c.Name()
	}
	return out
}

// Filter returns a registry with only the checks for which enabled is true.
// Disabled checks are not part of the result and are therefore never visited.
func (r *Registry) Filter(enabled func(Check) bool) *Registry {
	out := &Registry{byName: make(map[string]int, len(r.checks))}
	for _, c := range r.checks {
		if enabled(c) {
			out.byName[c.Name()] = len(out.checks)
			out.checks = append(out.checks, c)
		}
	}
	return out
}
