package element

import "strings"

// Kind classifies an element. The set is closed: switches over Kind must list
// every value and keep an explicit default.
type Kind uint8

const (
	KindOther Kind = iota
	KindPackage
	KindType
	KindMethod
	KindField
	KindAnnotation
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindType:
		return "type"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	case KindAnnotation:
		return "annotation"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// ParseKind converts a snapshot kind name. Unknown names map to KindOther so
// newer front-ends stay readable.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "package":
		return KindPackage
	case "type", "class", "interface", "enum", "record":
		return KindType
	case "method", "constructor":
		return KindMethod
	case "field":
		return KindField
	case "annotation", "annotation-use":
		return KindAnnotation
	default:
		return KindOther
	}
}

// Overloadable reports whether several elements of this kind may share an
// identity and differ only by signature.
func (k Kind) Overloadable() bool {
	return k == KindMethod
}

// KindSet is a small bitset of kinds used to declare check interest.
type KindSet uint8

// Kinds builds a set from the given kinds.
func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// AllKinds contains every kind.
var AllKinds = Kinds(KindOther, KindPackage, KindType, KindMethod, KindField, KindAnnotation)

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return s&(1<<k) != 0
}

func (s KindSet) String() string {
	var parts []string
	for _, k := range []Kind{KindPackage, KindType, KindMethod, KindField, KindAnnotation, KindOther} {
		if s.Has(k) {
			parts = append(parts, k.String())
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// TypeKind refines KindType elements.
type TypeKind uint8

const (
	TypeClass TypeKind = iota
	TypeInterface
	TypeEnum
	TypeAnnotation
	TypeRecord
)

func (t TypeKind) String() string {
	switch t {
	case TypeClass:
		return "class"
	case TypeInterface:
		return "interface"
	case TypeEnum:
		return "enum"
	case TypeAnnotation:
		return "annotation"
	case TypeRecord:
		return "record"
	default:
		return "unknown"
	}
}

// ParseTypeKind converts a snapshot type kind; unknown values are classes.
func ParseTypeKind(s string) TypeKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interface":
		return TypeInterface
	case "enum":
		return TypeEnum
	case "annotation", "@interface":
		return TypeAnnotation
	case "record":
		return TypeRecord
	default:
		return TypeClass
	}
}
