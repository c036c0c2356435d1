// Package checks holds the built-in compatibility rules.
package checks

import (
	"apicompat/internal/check"
	"apicompat/internal/element"
	"apicompat/internal/match"
)

// All returns a fresh instance of every built-in check in registration order.
func All() []check.Check {
	return []check.Check{
		&Visibility{},
		&Classes{},
		&ClassModifiers{},
		&MethodsAdded{},
		&MethodsRemoved{},
		&MethodModifiers{},
		&Fields{},
		&FieldModifiers{},
		&Annotations{},
	}
}

// Registry registers All.
func Registry() *check.Registry {
	r, err := check.NewRegistry(All()...)
	if err != nil {
		// имена встроенных проверок уникальны
		panic(err)
	}
	return r
}

// exposed reports whether e is part of the API surface at all. Private and
// package-private elements are invisible to consumers.
func exposed(e *element.Element) bool {
	return e != nil && e.Modifiers().Visibility >= element.VisProtected
}

// containerKept reports whether the pair's container exists on both sides.
// Additions and removals inside an added or removed container are covered by
// the container's own problem.
func containerKept(ctx *check.Context) bool {
	enc := ctx.Enclosing()
	return !enc.Valid() || enc.Status() == match.StatusMatched
}
