package transform

import (
	"errors"
	"fmt"

	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// Transform rewrites or filters problems.
type Transform interface {
	Name() string
	// Codes lists the problem codes the transform looks at; every other code
	// must come back as Keep of the same problem.
	Codes() []problem.Code
	Transform(old, new *element.Element, p problem.Problem) (Outcome, error)
}

// BothSides is implemented by transforms that only make sense for matched
// pairs.
type BothSides interface {
	NeedsBothSides() bool
}

// OutcomeKind says what happened to a problem.
type OutcomeKind uint8

const (
	OutcomeKeep OutcomeKind = iota
	OutcomeReplace
	OutcomeDrop
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeKeep:
		return "keep"
	case OutcomeReplace:
		return "replace"
	case OutcomeDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Outcome is the result of one transform call.
type Outcome struct {
	Kind    OutcomeKind
	Problem problem.Problem // zero for OutcomeDrop
}

// Keep passes p on unchanged.
func Keep(p problem.Problem) Outcome { return Outcome{Kind: OutcomeKeep, Problem: p} }

// Replace passes q on instead of the input problem.
func Replace(q problem.Problem) Outcome { return Outcome{Kind: OutcomeReplace, Problem: q} }

// Drop suppresses the problem.
func Drop() Outcome { return Outcome{Kind: OutcomeDrop} }

// ErrContract is matched by every *ContractError.
var ErrContract = errors.New("transform contract violation")

// ContractError reports a transform that met a problem it targets but could
// not interpret, e.g. an attachment of the wrong shape.
type ContractError struct {
	Transform string
	Code      problem.Code
	Reason    string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("transform %s: %s: %s", e.Transform, e.Code, e.Reason)
}

func (e *ContractError) Unwrap() error { return ErrContract }

// PanicError wraps a panic raised inside a transform.
type PanicError struct {
	Transform string
	Value     any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("transform %s panicked: %v", e.Transform, e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func targets(t Transform, code problem.Code) bool {
	for _, c := range t.Codes() {
		if c == code {
			return true
		}
	}
	return false
}
