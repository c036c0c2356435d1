package element

import "strings"

// Signature is the ordered list of erased parameter types of a method.
type Signature []string

// NewSignature erases every parameter.
func NewSignature(params ...string) Signature {
	if len(params) == 0 {
		return Signature{}
	}
	out := make(Signature, len(params))
	for i, p := range params {
		out[i] = Erase(p)
	}
	return out
}

// Key is the canonical form used for overload matching.
func (s Signature) Key() string {
	return "(" + strings.Join(s, ",") + ")"
}

// Equal compares two signatures after erasure.
func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if Erase(s[i]) != Erase(other[i]) {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	return s.Key()
}

// Erase strips generic arguments and whitespace and normalises varargs, so a
// raw type and any of its parameterisations compare equal:
//
//	java.util.List<java.lang.String>  -> java.util.List
//	java.lang.String...               -> java.lang.String[]
func Erase(t string) string {
	var b strings.Builder
	depth := 0
	for _, r := range t {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case r == ' ' || r == '\t' || r == '\n':
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if strings.HasSuffix(out, "...") {
		out = strings.TrimSuffix(out, "...") + "[]"
	}
	return out
}
