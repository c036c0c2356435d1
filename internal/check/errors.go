package check

import (
	"errors"
	"fmt"
)

// ErrUsage is matched by every *UsageError.
var ErrUsage = errors.New("check usage error")

// UsageErrorKind enumerates the ways a rule can misuse its stack.
type UsageErrorKind uint8

const (
	// UsageDoublePush is a second push at a depth that already holds a frame.
	UsageDoublePush UsageErrorKind = iota + 1
	// UsagePopWithoutPush is a pop with no frame at the current depth.
	UsagePopWithoutPush
	// UsagePushInEnd is a push issued while a frame is being finalized.
	UsagePushInEnd
	// UsageUndrained means frames were left on a stack when the run ended.
	UsageUndrained
)

func (k UsageErrorKind) String() string {
	switch k {
	case UsageDoublePush:
		return "double push"
	case UsagePopWithoutPush:
		return "pop without push"
	case UsagePushInEnd:
		return "push during end"
	case UsageUndrained:
		return "undrained stack"
	default:
		return "unknown"
	}
}

// UsageError reports a defective rule. It is fatal for the run.
type UsageError struct {
	Kind    UsageErrorKind
	Check   string
	Depth   int
	Element string // display name of the pair involved, if any
	Pending int    // for UsageUndrained
}

func (e *UsageError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case UsageDoublePush:
		return fmt.Sprintf("check %s: frame already active at depth %d (%s)", e.Check, e.Depth, e.Element)
	case UsagePopWithoutPush:
		return fmt.Sprintf("check %s: pop without matching push at depth %d (%s)", e.Check, e.Depth, e.Element)
	case UsagePushInEnd:
		return fmt.Sprintf("check %s: push while finalizing frame at depth %d (%s)", e.Check, e.Depth, e.Element)
	case UsageUndrained:
		return fmt.Sprintf("check %s: %d frame(s) left on the stack", e.Check, e.Pending)
	default:
		return fmt.Sprintf("check %s: usage error kind=%d", e.Check, e.Kind)
	}
}

// Unwrap makes errors.Is(err, ErrUsage) hold.
func (e *UsageError) Unwrap() error { return ErrUsage }

// PanicError wraps a panic raised inside a rule.
type PanicError struct {
	Check string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("check %s panicked: %v", e.Check, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
