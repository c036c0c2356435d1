package problem

import (
	"fmt"
	"strings"
)

// Axis is one dimension of compatibility.
type Axis uint8

const (
	AxisBinary Axis = iota
	AxisSource
	AxisSemantic
	numAxes
)

// Axes lists every axis in display order.
var Axes = [...]Axis{AxisBinary, AxisSource, AxisSemantic}

func (a Axis) String() string {
	switch a {
	case AxisBinary:
		return "binary"
	case AxisSource:
		return "source"
	case AxisSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Severity of a problem on one axis; ordered from harmless to breaking.
type Severity uint8

const (
	Equivalent Severity = iota
	NonBreaking
	PotentiallyBreaking
	Breaking
)

func (s Severity) String() string {
	switch s {
	case Equivalent:
		return "equivalent"
	case NonBreaking:
		return "non-breaking"
	case PotentiallyBreaking:
		return "potentially-breaking"
	case Breaking:
		return "breaking"
	default:
		return "unknown"
	}
}

// ParseSeverity converts the configuration spelling.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equivalent":
		return Equivalent, nil
	case "non-breaking", "nonbreaking":
		return NonBreaking, nil
	case "potentially-breaking", "potentiallybreaking":
		return PotentiallyBreaking, nil
	case "breaking":
		return Breaking, nil
	default:
		return Equivalent, fmt.Errorf("unknown severity %q (expected equivalent|non-breaking|potentially-breaking|breaking)", s)
	}
}

// UnmarshalText lets config decoders read severities directly.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classification holds a severity per axis.
type Classification [numAxes]Severity

// Classify builds a classification for the binary and source axes; the
// semantic axis stays Equivalent.
func Classify(binary, source Severity) Classification {
	var c Classification
	c[AxisBinary] = binary
	c[AxisSource] = source
	return c
}

// Uniform assigns the same severity to every axis.
func Uniform(s Severity) Classification {
	var c Classification
	for _, a := range Axes {
		c[a] = s
	}
	return c
}

// Get returns the severity on axis a.
func (c Classification) Get(a Axis) Severity {
	if a >= numAxes {
		return Equivalent
	}
	return c[a]
}

// With returns a copy with axis a set to s.
func (c Classification) With(a Axis, s Severity) Classification {
	if a < numAxes {
		c[a] = s
	}
	return c
}

// Max is the worst severity over all axes.
func (c Classification) Max() Severity {
	worst := Equivalent
	for _, s := range c {
		if s > worst {
			worst = s
		}
	}
	return worst
}

func (c Classification) String() string {
	parts := make([]string, 0, len(Axes))
	for _, a := range Axes {
		parts = append(parts, a.String()+"="+c[a].String())
	}
	return strings.Join(parts, " ")
}
