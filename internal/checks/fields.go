package checks

import (
	"apicompat/internal/check"
	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// Fields reports added and removed fields of kept types.
type Fields struct{ check.Base }

func (*Fields) Name() string              { return "fields" }
func (*Fields) Interest() element.KindSet { return element.Kinds(element.KindField) }

func (*Fields) Codes() []problem.Code {
	return []problem.Code{problem.FieldAdded, problem.FieldRemoved}
}

func (*Fields) VisitField(ctx *check.Context, old, new *element.Element) {
	if !containerKept(ctx) {
		return
	}
	switch {
	case old == nil && exposed(new):
		ctx.Report(problem.New(problem.FieldAdded))
	case new == nil && exposed(old):
		ctx.Report(problem.New(problem.FieldRemoved))
	}
}

// FieldModifiers reports final/static changes.
type FieldModifiers struct{ check.Base }

func (*FieldModifiers) Name() string              { return "fields.modifiers" }
func (*FieldModifiers) Interest() element.KindSet { return element.Kinds(element.KindField) }

var fieldFlagRules = []flagRule{
	{element.FlagFinal, problem.FieldNowFinal, problem.FieldNoLongerFinal},
	{element.FlagStatic, problem.FieldNowStatic, problem.FieldNoLongerStatic},
}

func (*FieldModifiers) Codes() []problem.Code { return ruleCodes(fieldFlagRules) }

func (*FieldModifiers) VisitField(ctx *check.Context, old, new *element.Element) {
	if old == nil || new == nil || !exposed(old) {
		return
	}
	flagChanges(ctx, old, new, fieldFlagRules)
}
