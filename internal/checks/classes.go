package checks

import (
	"apicompat/internal/check"
	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// Classes reports added and removed types.
type Classes struct{ check.Base }

func (*Classes) Name() string              { return "classes" }
func (*Classes) Interest() element.KindSet { return element.Kinds(element.KindType) }

func (*Classes) Codes() []problem.Code {
	return []problem.Code{problem.ClassAdded, problem.ClassRemoved}
}

func (*Classes) VisitType(ctx *check.Context, old, new *element.Element) {
	if !containerKept(ctx) {
		return
	}
	switch {
	case old == nil && exposed(new):
		ctx.Report(problem.New(problem.ClassAdded, problem.Value("typeKind", new.TypeKind().String())))
	case new == nil && exposed(old):
		ctx.Report(problem.New(problem.ClassRemoved, problem.Value("typeKind", old.TypeKind().String())))
	}
}

// ClassModifiers reports final/abstract changes and changes of the type kind.
type ClassModifiers struct{ check.Base }

func (*ClassModifiers) Name() string              { return "classes.modifiers" }
func (*ClassModifiers) Interest() element.KindSet { return element.Kinds(element.KindType) }

func (*ClassModifiers) Codes() []problem.Code {
	return []problem.Code{
		problem.ClassNowFinal, problem.ClassNoLongerFinal,
		problem.ClassNowAbstract, problem.ClassNoLongerAbstract,
		problem.ClassKindChanged,
	}
}

var classFlagRules = []flagRule{
	{element.FlagFinal, problem.ClassNowFinal, problem.ClassNoLongerFinal},
	{element.FlagAbstract, problem.ClassNowAbstract, problem.ClassNoLongerAbstract},
}

func (*ClassModifiers) VisitType(ctx *check.Context, old, new *element.Element) {
	if old == nil || new == nil || !exposed(old) {
		return
	}
	if old.TypeKind() != new.TypeKind() {
		ctx.Report(problem.New(problem.ClassKindChanged,
			problem.Value("oldKind", old.TypeKind().String()),
			problem.Value("newKind", new.TypeKind().String()),
		))
		// флаги разных видов типов несравнимы
		return
	}
	flagChanges(ctx, old, new, classFlagRules)
}

// flagRule maps one modifier flag to its gained/lost codes.
type flagRule struct {
	flag     element.Flag
	now      problem.Code
	noLonger problem.Code
}

func flagChanges(ctx *check.Context, old, new *element.Element, rules []flagRule) {
	om, nm := old.Modifiers(), new.Modifiers()
	for _, r := range rules {
		had, has := om.Has(r.flag), nm.Has(r.flag)
		switch {
		case !had && has:
			ctx.Report(problem.New(r.now))
		case had && !has:
			ctx.Report(problem.New(r.noLonger))
		}
	}
}
