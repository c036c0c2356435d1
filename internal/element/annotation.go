package element

import (
	"maps"
	"slices"
	"strings"
)

// Annotation is one annotation use: the annotation type identity plus its
// explicitly given attribute values, rendered as text.
type Annotation struct {
	Type   string
	Values map[string]string
}

// NewAnnotation copies values so the caller may reuse its map.
func NewAnnotation(typ string, values map[string]string) Annotation {
	var vs map[string]string
	if len(values) > 0 {
		vs = maps.Clone(values)
	}
	return Annotation{Type: typ, Values: vs}
}

// Value returns an attribute value.
func (a Annotation) Value(key string) (string, bool) {
	v, ok := a.Values[key]
	return v, ok
}

// Equal compares type and values.
func (a Annotation) Equal(other Annotation) bool {
	return a.Type == other.Type && maps.Equal(a.Values, other.Values)
}

func (a Annotation) String() string {
	if len(a.Values) == 0 {
		return "@" + a.Type
	}
	keys := slices.Sorted(maps.Keys(a.Values))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+a.Values[k])
	}
	return "@" + a.Type + "(" + strings.Join(parts, ", ") + ")"
}
