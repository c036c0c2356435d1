package match

import "apicompat/internal/element"

// Status classifies a pair.
type Status uint8

const (
	StatusMatched Status = iota
	StatusRemoved
	StatusAdded
)

func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusRemoved:
		return "removed"
	case StatusAdded:
		return "added"
	default:
		return "unknown"
	}
}

// Pair correlates one position of the old tree with the new tree.
type Pair struct {
	Old *element.Element
	New *element.Element
}

// Status derives matched/removed/added from which sides are present.
func (p Pair) Status() Status {
	switch {
	case p.Old != nil && p.New != nil:
		return StatusMatched
	case p.Old != nil:
		return StatusRemoved
	default:
		return StatusAdded
	}
}

// Valid reports whether at least one side is present.
func (p Pair) Valid() bool {
	return p.Old != nil || p.New != nil
}

// Any returns the old side if present, else the new side.
func (p Pair) Any() *element.Element {
	if p.Old != nil {
		return p.Old
	}
	return p.New
}

// Kind is the old side's kind if present, else the new side's.
func (p Pair) Kind() element.Kind {
	if e := p.Any(); e != nil {
		return e.Kind()
	}
	return element.KindOther
}

// Display names the pair for reports.
func (p Pair) Display() string {
	return p.Any().Display()
}

func (p Pair) String() string {
	return p.Status().String() + " " + p.Any().String()
}
