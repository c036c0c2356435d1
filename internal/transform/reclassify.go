package transform

import (
	"fmt"
	"slices"

	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// Override replaces the classification of one code on the axes that are set.
type Override struct {
	Code          problem.Code
	Binary        *problem.Severity
	Source        *problem.Severity
	Semantic      *problem.Severity
	Justification string
}

func (o Override) apply(c problem.Classification) problem.Classification {
	if o.Binary != nil {
		c = c.With(problem.AxisBinary, *o.Binary)
	}
	if o.Source != nil {
		c = c.With(problem.AxisSource, *o.Source)
	}
	if o.Semantic != nil {
		c = c.With(problem.AxisSemantic, *o.Semantic)
	}
	return c
}

// Reclassify overrides classifications per code.
type Reclassify struct {
	rules map[problem.Code]Override
	codes []problem.Code
}

// NewReclassify validates overrides; a code may be overridden only once.
func NewReclassify(overrides []Override) (*Reclassify, error) {
	r := &Reclassify{rules: make(map[problem.Code]Override, len(overrides))}
	for _, o := range overrides {
		if o.Code == "" {
			return nil, fmt.Errorf("reclassify: empty code")
		}
		if _, dup := r.rules[o.Code]; dup {
			return nil, fmt.Errorf("reclassify: %s is overridden more than once", o.Code)
		}
		if o.Binary == nil && o.Source == nil && o.Semantic == nil {
			return nil, fmt.Errorf("reclassify: %s sets no severity", o.Code)
		}
		r.rules[o.Code] = o
		r.codes = append(r.codes, o.Code)
	}
	slices.Sort(r.codes)
	return r, nil
}

func (r *Reclassify) Name() string          { return "reclassify" }
func (r *Reclassify) Codes() []problem.Code { return slices.Clone(r.codes) }

func (r *Reclassify) Transform(_, _ *element.Element, p problem.Problem) (Outcome, error) {
	o, ok := r.rules[p.Code()]
	if !ok {
		return Keep(p), nil
	}
	c := o.apply(p.Classification())
	if c == p.Classification() {
		return Keep(p), nil
	}
	return Replace(p.WithClassification(c)), nil
}
