package element

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrShared is returned when a child is attached to a second parent.
var ErrShared = errors.New("element already owned by another parent")

// Element is one immutable node of an API tree.
type Element struct {
	kind        Kind
	identity    string
	name        string
	typeKind    TypeKind
	signature   Signature
	modifiers   Modifiers
	children    []*Element
	annotations []Annotation
	parent      *Element
}

// Spec describes an element to construct.
type Spec struct {
	Kind        Kind
	Identity    string
	Name        string // simple name; derived from Identity when empty
	TypeKind    TypeKind
	Signature   Signature
	Modifiers   Modifiers
	Children    []*Element
	Annotations []Annotation
}

// New builds an element and takes ownership of spec.Children.
func New(spec Spec) (*Element, error) {
	e := &Element{
		kind:      spec.Kind,
		identity:  spec.Identity,
		name:      spec.Name,
		typeKind:  spec.TypeKind,
		modifiers: spec.Modifiers,
	}
	if e.name == "" {
		e.name = simpleName(spec.Identity)
	}
	if spec.Kind == KindMethod {
		e.signature = NewSignature(spec.Signature...)
	}
	if len(spec.Annotations) > 0 {
		e.annotations = make([]Annotation, len(spec.Annotations))
		for i, a := range spec.Annotations {
			e.annotations[i] = NewAnnotation(a.Type, a.Values)
		}
	}
	// сначала проверяем всех детей, иначе при ошибке часть из них
	// осталась бы привязана к выброшенному родителю
	for _, c := range spec.Children {
		if c != nil && c.parent != nil {
			return nil, fmt.Errorf("%s: %w (child %s)", spec.Identity, ErrShared, c.identity)
		}
	}
	if len(spec.Children) > 0 {
		e.children = make([]*Element, 0, len(spec.Children))
		for _, c := range spec.Children {
			if c == nil {
				continue
			}
			c.parent = e
			e.children = append(e.children, c)
		}
	}
	return e, nil
}

// Must is New for fixtures and tests.
func Must(spec Spec) *Element {
	e, err := New(spec)
	if err != nil {
		panic(err)
	}
	return e
}

// Option tweaks a Spec in the shorthand constructors.
type Option func(*Spec)

// WithModifiers sets visibility and flags.
func WithModifiers(m Modifiers) Option {
	return func(s *Spec) { s.Modifiers = m }
}

// WithChildren appends owned children.
func WithChildren(children ...*Element) Option {
	return func(s *Spec) { s.Children = append(s.Children, children...) }
}

// WithAnnotations appends annotation uses.
func WithAnnotations(anns ...Annotation) Option {
	return func(s *Spec) { s.Annotations = append(s.Annotations, anns...) }
}

func build(spec Spec, opts []Option) *Element {
	for _, o := range opts {
		o(&spec)
	}
	return Must(spec)
}

// NewRoot creates the API container whose children are the packages.
func NewRoot(children ...*Element) *Element {
	return Must(Spec{Kind: KindOther, Children: children})
}

// NewPackage creates a public package element.
func NewPackage(identity string, opts ...Option) *Element {
	return build(Spec{Kind: KindPackage, Identity: identity, Modifiers: Mods(VisPublic)}, opts)
}

// NewType creates a type element, public unless overridden.
func NewType(identity string, tk TypeKind, opts ...Option) *Element {
	return build(Spec{Kind: KindType, Identity: identity, TypeKind: tk, Modifiers: Mods(VisPublic)}, opts)
}

// NewMethod creates a method element with the given parameter types.
func NewMethod(identity string, params []string, opts ...Option) *Element {
	return build(Spec{Kind: KindMethod, Identity: identity, Signature: params, Modifiers: Mods(VisPublic)}, opts)
}

// NewAnnotationUse creates an annotation use modelled as a child element;
// its identity is the annotation type.
func NewAnnotationUse(annotationType string, opts ...Option) *Element {
	return build(Spec{Kind: KindAnnotation, Identity: annotationType, Modifiers: Mods(VisPublic)}, opts)
}

// NewField creates a field element.
func NewField(identity string, opts ...Option) *Element {
	return build(Spec{Kind: KindField, Identity: identity, Modifiers: Mods(VisPublic)}, opts)
}

func (e *Element) Kind() Kind           { return e.kind }
func (e *Element) Identity() string     { return e.identity }
func (e *Element) Name() string         { return e.name }
func (e *Element) TypeKind() TypeKind   { return e.typeKind }
func (e *Element) Modifiers() Modifiers { return e.modifiers }
func (e *Element) Parent() *Element     { return e.parent }

// Signature returns a copy of the erased signature.
func (e *Element) Signature() Signature { return slices.Clone(e.signature) }

// Children returns a copy of the owned children.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// NumChildren avoids the copy when only the count is needed.
func (e *Element) NumChildren() int { return len(e.children) }

// Child returns the i-th child.
func (e *Element) Child(i int) *Element { return e.children[i] }

// Annotations returns a copy of the annotation uses.
func (e *Element) Annotations() []Annotation { return slices.Clone(e.annotations) }

// Annotation finds an annotation use by type identity.
func (e *Element) Annotation(typ string) (Annotation, bool) {
	for _, a := range e.annotations {
		if a.Type == typ {
			return a, true
		}
	}
	return Annotation{}, false
}

// IsInterface reports whether e is an interface or annotation type.
func (e *Element) IsInterface() bool {
	return e != nil && e.kind == KindType && (e.typeKind == TypeInterface || e.typeKind == TypeAnnotation)
}

// Key is the matching key inside the parent: kind, identity and, for
// overloadable kinds, the erased signature.
func (e *Element) Key() string {
	if e.kind.Overloadable() {
		return e.kind.String() + ":" + e.identity + e.signature.Key()
	}
	return e.kind.String() + ":" + e.identity
}

// Path lists identities from the outermost named ancestor down to e.
func (e *Element) Path() []string {
	var path []string
	for cur := e; cur != nil; cur = cur.parent {
		if cur.identity == "" {
			continue
		}
		path = append(path, cur.identity)
	}
	slices.Reverse(path)
	return path
}

// Enclosing returns the nearest ancestor of the given kind.
func (e *Element) Enclosing(kind Kind) *Element {
	for cur := e.parent; cur != nil; cur = cur.parent {
		if cur.kind == kind {
			return cur
		}
	}
	return nil
}

// Walk visits e and its descendants depth-first; returning false from fn
// skips the subtree.
func (e *Element) Walk(fn func(*Element) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Display is a human oriented identifier: identity plus signature for methods.
func (e *Element) Display() string {
	if e == nil {
		return "<none>"
	}
	if e.kind == KindMethod {
		return e.identity + e.signature.Key()
	}
	if e.identity == "" {
		return "<" + e.kind.String() + ">"
	}
	return e.identity
}

func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	return e.kind.String() + " " + e.Display()
}

func simpleName(identity string) string {
	i := strings.LastIndexAny(identity, ".#$")
	if i < 0 {
		return identity
	}
	return identity[i+1:]
}
