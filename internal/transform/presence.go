package transform

import (
	"fmt"

	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// DeprecatedAnnotation is the annotation type the deprecation transforms
// look for.
const DeprecatedAnnotation = "java.lang.Deprecated"

// KindCodes maps the kind of the annotated element to a replacement code.
// An empty code means "leave the problem as is".
type KindCodes struct {
	Package problem.Code
	Type    problem.Code
	Method  problem.Code
	Field   problem.Code
}

// AnnotationPresence recodes ANNOTATION_ADDED or ANNOTATION_REMOVED for one
// annotation type into a code specific to the annotated element kind.
type AnnotationPresence struct {
	name       string
	annotation string
	source     problem.Code
	codes      KindCodes
}

// NewAnnotationPresence creates a transform recoding source problems whose
// annotation attachment has type annotation.
func NewAnnotationPresence(name, annotation string, source problem.Code, codes KindCodes) *AnnotationPresence {
	return &AnnotationPresence{name: name, annotation: annotation, source: source, codes: codes}
}

// DeprecationAdded recodes additions of @Deprecated.
func DeprecationAdded() *AnnotationPresence {
	return NewAnnotationPresence("deprecation.added", DeprecatedAnnotation, problem.AnnotationAdded, KindCodes{
		Package: problem.PackageDeprecationAdded,
		Type:    problem.ClassDeprecationAdded,
		Method:  problem.MethodDeprecationAdded,
		Field:   problem.FieldDeprecationAdded,
	})
}

// DeprecationRemoved recodes removals of @Deprecated.
func DeprecationRemoved() *AnnotationPresence {
	return NewAnnotationPresence("deprecation.removed", DeprecatedAnnotation, problem.AnnotationRemoved, KindCodes{
		Package: problem.PackageDeprecationRemove,
		Type:    problem.ClassDeprecationRemoved,
		Method:  problem.MethodDeprecationRemoved,
		Field:   problem.FieldDeprecationRemoved,
	})
}

func (t *AnnotationPresence) Name() string          { return t.name }
func (t *AnnotationPresence) Codes() []problem.Code { return []problem.Code{t.source} }
func (t *AnnotationPresence) NeedsBothSides() bool  { return true }

func (t *AnnotationPresence) Transform(old, new *element.Element, p problem.Problem) (Outcome, error) {
	if p.Code() != t.source {
		return Keep(p), nil
	}
	if old == nil || new == nil {
		return Keep(p), nil
	}
	use, ok := p.Attachment(0)
	if !ok || use.Kind != problem.AttachAnnotation {
		return Outcome{}, &ContractError{
			Transform: t.name,
			Code:      p.Code(),
			Reason:    fmt.Sprintf("first attachment must be an annotation use, got %s", describe(use, ok)),
		}
	}
	if use.Annotation.Type != t.annotation {
		return Keep(p), nil
	}
	if old.Kind() != new.Kind() {
		return Keep(p), nil
	}
	var code problem.Code
	switch new.Kind() {
	case element.KindPackage:
		code = t.codes.Package
	case element.KindType:
		code = t.codes.Type
	case element.KindMethod:
		code = t.codes.Method
	case element.KindField:
		code = t.codes.Field
	case element.KindAnnotation, element.KindOther:
		return Keep(p), nil
	default:
		return Keep(p), nil
	}
	if code == "" {
		return Keep(p), nil
	}
	return Replace(p.Recode(code)), nil
}

func describe(a problem.Attachment, ok bool) string {
	if !ok {
		return "no attachments"
	}
	return a.Kind.String() + " " + a.String()
}
