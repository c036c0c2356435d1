package diag

// Side says which input tree a location refers to.
type Side uint8

const (
	SideNone Side = iota
	SideOld
	SideNew
	SideBoth
)

func (s Side) String() string {
	switch s {
	case SideOld:
		return "old"
	case SideNew:
		return "new"
	case SideBoth:
		return "old+new"
	default:
		return "-"
	}
}

// Location points at an element of one of the input trees.
type Location struct {
	Side     Side
	Identity string
}

func (l Location) String() string {
	if l.Identity == "" {
		return l.Side.String()
	}
	return l.Side.String() + ":" + l.Identity
}

type Note struct {
	Location Location
	Msg      string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Location Location
	Notes    []Note
}
