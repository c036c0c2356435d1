package transform

import (
	"fmt"
	"os"
	"slices"

	"apicompat/internal/diag"
)

// Settings feeds the configurable built-in transforms.
type Settings struct {
	Reclassify []Override
	Ignore     []IgnoreRule
	// IgnoreLog is a file the ignore transform appends suppressions to.
	IgnoreLog string
	Reporter  diag.Reporter
}

type factory func(Settings) (Transform, error)

var builtins = map[string]factory{
	"deprecation.added":   func(Settings) (Transform, error) { return DeprecationAdded(), nil },
	"deprecation.removed": func(Settings) (Transform, error) { return DeprecationRemoved(), nil },
	"reclassify":          func(s Settings) (Transform, error) { return NewReclassify(s.Reclassify) },
	"ignore":              buildIgnore,
}

func buildIgnore(s Settings) (Transform, error) {
	ig, err := NewIgnore(s.Ignore, WithUnusedReport(s.Reporter))
	if err != nil {
		return nil, err
	}
	if s.IgnoreLog != "" {
		f, err := os.OpenFile(s.IgnoreLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open ignore log: %w", err)
		}
		WithAuditLog(f)(ig)
	}
	return ig, nil
}

// DefaultOrder is the chain order used when the configuration names none.
var DefaultOrder = []string{"deprecation.added", "deprecation.removed", "reclassify", "ignore"}

// Builtins lists the names of the built-in transforms.
func Builtins() []string {
	return slices.Clone(DefaultOrder)
}

// Known reports whether name is a built-in transform.
func Known(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Build assembles a chain in order, leaving out disabled transforms; they
// are never constructed. An empty order means DefaultOrder.
func Build(order, disabled []string, s Settings) (*Chain, error) {
	if len(order) == 0 {
		order = DefaultOrder
	}
	var ts []Transform
	fail := func(err error) (*Chain, error) {
		// освобождаем то, что уже успели открыть
		_ = NewChain(nil, ts...).Close()
		return nil, err
	}
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		mk, ok := builtins[name]
		if !ok {
			return fail(fmt.Errorf("unknown transform %q", name))
		}
		if seen[name] {
			return fail(fmt.Errorf("transform %q listed twice", name))
		}
		seen[name] = true
		if slices.Contains(disabled, name) {
			continue
		}
		t, err := mk(s)
		if err != nil {
			return fail(err)
		}
		ts = append(ts, t)
	}
	return NewChain(s.Reporter, ts...), nil
}
