package problem

import (
	"maps"

	"apicompat/internal/element"
)

// AttachmentKind tags the variant held by an Attachment.
type AttachmentKind uint8

const (
	AttachValue AttachmentKind = iota
	AttachAnnotation
	AttachElement
)

func (k AttachmentKind) String() string {
	switch k {
	case AttachValue:
		return "value"
	case AttachAnnotation:
		return "annotation"
	case AttachElement:
		return "element"
	default:
		return "unknown"
	}
}

// Attachment is a piece of context carried by a problem. The framework never
// interprets it; transforms do, keyed by the problem code that produced it.
type Attachment struct {
	Kind       AttachmentKind
	Key        string
	Value      string
	Annotation element.Annotation
}

// Value attaches a key/value pair.
func Value(key, value string) Attachment {
	return Attachment{Kind: AttachValue, Key: key, Value: value}
}

// AnnotationUse attaches the annotation use that triggered a problem.
func AnnotationUse(a element.Annotation) Attachment {
	return Attachment{Kind: AttachAnnotation, Key: "annotationType", Value: a.Type, Annotation: element.NewAnnotation(a.Type, a.Values)}
}

// ElementRef attaches the identity of a related element.
func ElementRef(key string, e *element.Element) Attachment {
	return Attachment{Kind: AttachElement, Key: key, Value: e.Display()}
}

func (a Attachment) clone() Attachment {
	if a.Annotation.Values != nil {
		a.Annotation.Values = maps.Clone(a.Annotation.Values)
	}
	return a
}

func (a Attachment) String() string {
	if a.Kind == AttachAnnotation {
		return a.Annotation.String()
	}
	return a.Key + "=" + a.Value
}
