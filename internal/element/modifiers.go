package element

import (
	"fmt"
	"strings"
)

// Visibility is ordered from least to most visible.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisPackage
	VisProtected
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	case VisPackage:
		return "package-private"
	case VisProtected:
		return "protected"
	case VisPublic:
		return "public"
	default:
		return "unknown"
	}
}

// ParseVisibility accepts the usual Java spellings; empty means package-private.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "private":
		return VisPrivate, nil
	case "", "package", "package-private", "default":
		return VisPackage, nil
	case "protected":
		return VisProtected, nil
	case "public":
		return VisPublic, nil
	default:
		return VisPackage, fmt.Errorf("unknown visibility %q", s)
	}
}

// Flag is a single non-visibility modifier.
type Flag uint16

const (
	FlagFinal Flag = 1 << iota
	FlagAbstract
	FlagStatic
	FlagDefault
	FlagSynchronized
	FlagNative
	FlagTransient
	FlagVolatile
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagFinal, "final"},
	{FlagAbstract, "abstract"},
	{FlagStatic, "static"},
	{FlagDefault, "default"},
	{FlagSynchronized, "synchronized"},
	{FlagNative, "native"},
	{FlagTransient, "transient"},
	{FlagVolatile, "volatile"},
}

// ParseFlag converts a modifier keyword.
func ParseFlag(s string) (Flag, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown modifier %q", s)
}

// Modifiers combines visibility with a flag set.
type Modifiers struct {
	Visibility Visibility
	Flags      Flag
}

// Mods is a shorthand constructor.
func Mods(vis Visibility, flags ...Flag) Modifiers {
	m := Modifiers{Visibility: vis}
	for _, f := range flags {
		m.Flags |= f
	}
	return m
}

// Has reports whether all given flags are set.
func (m Modifiers) Has(f Flag) bool {
	return m.Flags&f == f
}

// Names returns flag keywords in declaration order.
func (m Modifiers) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if m.Has(fn.flag) {
			out = append(out, fn.name)
		}
	}
	return out
}

func (m Modifiers) String() string {
	parts := append([]string{m.Visibility.String()}, m.Names()...)
	return strings.Join(parts, " ")
}
