package checks

import (
	"apicompat/internal/check"
	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// Visibility reports visibility changes of types, methods and fields.
type Visibility struct{ check.Base }

func (*Visibility) Name() string { return "visibility" }

func (*Visibility) Interest() element.KindSet {
	return element.Kinds(element.KindType, element.KindMethod, element.KindField)
}

func (*Visibility) Codes() []problem.Code {
	return []problem.Code{
		problem.ClassVisibilityIncrease, problem.ClassVisibilityReduced,
		problem.MethodVisibilityIncreased, problem.MethodVisibilityReduced,
		problem.FieldVisibilityIncrease, problem.FieldVisibilityReduced,
	}
}

func (v *Visibility) VisitType(ctx *check.Context, old, new *element.Element) {
	visibilityChanged(ctx, old, new, problem.ClassVisibilityIncrease, problem.ClassVisibilityReduced)
}

func (v *Visibility) VisitMethod(ctx *check.Context, old, new *element.Element) {
	visibilityChanged(ctx, old, new, problem.MethodVisibilityIncreased, problem.MethodVisibilityReduced)
}

func (v *Visibility) VisitField(ctx *check.Context, old, new *element.Element) {
	visibilityChanged(ctx, old, new, problem.FieldVisibilityIncrease, problem.FieldVisibilityReduced)
}

func visibilityChanged(ctx *check.Context, old, new *element.Element, increased, reduced problem.Code) {
	if old == nil || new == nil {
		return
	}
	ov, nv := old.Modifiers().Visibility, new.Modifiers().Visibility
	if ov == nv {
		return
	}
	code := increased
	if nv < ov {
		code = reduced
	}
	ctx.Report(problem.New(code,
		problem.Value("oldVisibility", ov.String()),
		problem.Value("newVisibility", nv.String()),
	))
}
