package checks

import (
	"maps"
	"slices"

	"apicompat/internal/check"
	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// Annotations compares annotation uses of matched elements. Every problem
// carries the annotation use as an attachment so transforms can recode it.
type Annotations struct{ check.Base }

func (*Annotations) Name() string { return "annotations" }

func (*Annotations) Interest() element.KindSet {
	return element.Kinds(element.KindPackage, element.KindType, element.KindMethod, element.KindField, element.KindAnnotation)
}

func (*Annotations) Codes() []problem.Code {
	return []problem.Code{problem.AnnotationAdded, problem.AnnotationRemoved, problem.AnnotationValueChanged}
}

func (a *Annotations) VisitPackage(ctx *check.Context, old, new *element.Element) {
	compareAnnotations(ctx, old, new)
}

func (a *Annotations) VisitType(ctx *check.Context, old, new *element.Element) {
	compareAnnotations(ctx, old, new)
}

func (a *Annotations) VisitMethod(ctx *check.Context, old, new *element.Element) {
	compareAnnotations(ctx, old, new)
}

func (a *Annotations) VisitField(ctx *check.Context, old, new *element.Element) {
	compareAnnotations(ctx, old, new)
}

// VisitAnnotation handles annotation uses that a front-end modelled as tree
// elements; the identity is the annotation type. The problem belongs to the
// annotated element, not to the use.
func (a *Annotations) VisitAnnotation(ctx *check.Context, old, new *element.Element) {
	if !containerKept(ctx) {
		return
	}
	switch {
	case old == nil:
		ctx.ReportOnEnclosing(problem.New(problem.AnnotationAdded, problem.AnnotationUse(element.NewAnnotation(new.Identity(), nil))))
	case new == nil:
		ctx.ReportOnEnclosing(problem.New(problem.AnnotationRemoved, problem.AnnotationUse(element.NewAnnotation(old.Identity(), nil))))
	}
}

func compareAnnotations(ctx *check.Context, old, new *element.Element) {
	if old == nil || new == nil {
		return
	}
	olds, news := old.Annotations(), new.Annotations()
	if len(olds) == 0 && len(news) == 0 {
		return
	}
	for _, oa := range olds {
		na, ok := new.Annotation(oa.Type)
		if !ok {
			ctx.Report(problem.New(problem.AnnotationRemoved, problem.AnnotationUse(oa)))
			continue
		}
		if oa.Equal(na) {
			continue
		}
		keys := slices.Sorted(maps.Keys(unionKeys(oa.Values, na.Values)))
		for _, k := range keys {
			ov, _ := oa.Value(k)
			nv, _ := na.Value(k)
			if ov == nv {
				continue
			}
			ctx.Report(problem.New(problem.AnnotationValueChanged,
				problem.AnnotationUse(na),
				problem.Value("attribute", k),
				problem.Value("oldValue", ov),
				problem.Value("newValue", nv),
			))
		}
	}
	for _, na := range news {
		if _, ok := old.Annotation(na.Type); !ok {
			ctx.Report(problem.New(problem.AnnotationAdded, problem.AnnotationUse(na)))
		}
	}
}

func unionKeys(a, b map[string]string) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}
