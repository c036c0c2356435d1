package problem

import (
	"slices"
	"strings"
)

// Problem is one reported compatibility concern. It is a value: methods that
// change it return a modified copy.
type Problem struct {
	code           Code
	classification Classification
	attachments    []Attachment
}

// New creates a problem classified by the catalog defaults for code.
func New(code Code, attachments ...Attachment) Problem {
	p := Problem{code: code, classification: DefaultClassification(code)}
	if len(attachments) > 0 {
		p.attachments = make([]Attachment, len(attachments))
		for i, a := range attachments {
			p.attachments[i] = a.clone()
		}
	}
	return p
}

func (p Problem) Code() Code                     { return p.code }
func (p Problem) Classification() Classification { return p.classification }

// Attachments returns a copy of the attachments in order.
func (p Problem) Attachments() []Attachment {
	out := make([]Attachment, len(p.attachments))
	for i, a := range p.attachments {
		out[i] = a.clone()
	}
	return out
}

// NumAttachments avoids the copy when only the count is needed.
func (p Problem) NumAttachments() int { return len(p.attachments) }

// Attachment returns the i-th attachment.
func (p Problem) Attachment(i int) (Attachment, bool) {
	if i < 0 || i >= len(p.attachments) {
		return Attachment{}, false
	}
	return p.attachments[i].clone(), true
}

// Lookup returns the first attachment with the given key.
func (p Problem) Lookup(key string) (Attachment, bool) {
	for _, a := range p.attachments {
		if a.Key == key {
			return a.clone(), true
		}
	}
	return Attachment{}, false
}

// WithClassification returns a copy with a different classification.
func (p Problem) WithClassification(c Classification) Problem {
	p.attachments = slices.Clone(p.attachments)
	p.classification = c
	return p
}

// Recode returns a problem with another code and that code's default
// classification, keeping the attachments.
func (p Problem) Recode(code Code) Problem {
	return Problem{code: code, classification: DefaultClassification(code), attachments: slices.Clone(p.attachments)}
}

// Equal compares code, classification and attachments.
func (p Problem) Equal(other Problem) bool {
	if p.code != other.code || p.classification != other.classification {
		return false
	}
	return slices.EqualFunc(p.attachments, other.attachments, func(a, b Attachment) bool {
		return a.Kind == b.Kind && a.Key == b.Key && a.Value == b.Value && a.Annotation.Equal(b.Annotation)
	})
}

func (p Problem) String() string {
	var b strings.Builder
	b.WriteString(string(p.code))
	b.WriteString(" [")
	b.WriteString(p.classification.String())
	b.WriteString("]")
	for _, a := range p.attachments {
		b.WriteString(" ")
		b.WriteString(a.String())
	}
	return b.String()
}
