package checks

import (
	"apicompat/internal/check"
	"apicompat/internal/diag"
	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// MethodsAdded classifies method additions by the enclosing type. The
// verdict is taken when traversal leaves the method, from the frame's
// enclosing pair:
//
//	interface                        -> METHOD_ADDED_TO_INTERFACE
//	final class                      -> METHOD_ADDED_TO_FINAL_CLASS
//	abstract method, non-final class -> METHOD_ABSTRACT_METHOD_ADDED
//	anything else                    -> METHOD_ADDED
//
// When the enclosing type cannot be resolved nothing is reported.
type MethodsAdded struct{ check.Base }

func (*MethodsAdded) Name() string              { return "methods.added" }
func (*MethodsAdded) Interest() element.KindSet { return element.Kinds(element.KindMethod) }

func (*MethodsAdded) Codes() []problem.Code {
	return []problem.Code{
		problem.MethodAdded, problem.MethodAddedToInterface,
		problem.MethodAddedToFinalClass, problem.MethodAbstractMethodAdded,
	}
}

func (*MethodsAdded) VisitMethod(ctx *check.Context, old, new *element.Element) {
	if old != nil || !exposed(new) {
		return
	}
	_ = ctx.Push(nil)
}

func (*MethodsAdded) End(ctx *check.Context, f check.Frame) {
	enc := f.Enclosing
	if !enc.Valid() || enc.Kind() != element.KindType || enc.New == nil {
		ctx.Warn(diag.CheckEnclosingUnresolved, "added method has no enclosing type")
		return
	}
	if enc.Old == nil {
		// весь тип новый: о нём сообщает classes
		return
	}
	typ, method := enc.New, f.Pair.New
	var code problem.Code
	switch {
	case typ.IsInterface():
		code = problem.MethodAddedToInterface
	case typ.Modifiers().Has(element.FlagFinal):
		code = problem.MethodAddedToFinalClass
	case method.Modifiers().Has(element.FlagAbstract):
		code = problem.MethodAbstractMethodAdded
	default:
		code = problem.MethodAdded
	}
	ctx.Report(problem.New(code, problem.ElementRef("enclosingType", typ)))
}

// MethodsRemoved reports methods that disappeared from a kept type.
type MethodsRemoved struct{ check.Base }

func (*MethodsRemoved) Name() string              { return "methods.removed" }
func (*MethodsRemoved) Interest() element.KindSet { return element.Kinds(element.KindMethod) }

func (*MethodsRemoved) Codes() []problem.Code { return []problem.Code{problem.MethodRemoved} }

func (*MethodsRemoved) VisitMethod(ctx *check.Context, old, new *element.Element) {
	if new != nil || !exposed(old) || !containerKept(ctx) {
		return
	}
	ctx.Report(problem.New(problem.MethodRemoved))
}

// MethodModifiers reports final/static/abstract/default changes.
type MethodModifiers struct{ check.Base }

func (*MethodModifiers) Name() string              { return "methods.modifiers" }
func (*MethodModifiers) Interest() element.KindSet { return element.Kinds(element.KindMethod) }

var methodFlagRules = []flagRule{
	{element.FlagFinal, problem.MethodNowFinal, problem.MethodNoLongerFinal},
	{element.FlagStatic, problem.MethodNowStatic, problem.MethodNoLongerStatic},
	{element.FlagAbstract, problem.MethodNowAbstract, problem.MethodNoLongerAbstract},
	{element.FlagDefault, problem.MethodNowDefault, problem.MethodNoLongerDefault},
}

func (*MethodModifiers) Codes() []problem.Code { return ruleCodes(methodFlagRules) }

func (*MethodModifiers) VisitMethod(ctx *check.Context, old, new *element.Element) {
	if old == nil || new == nil || !exposed(old) {
		return
	}
	flagChanges(ctx, old, new, methodFlagRules)
}

func ruleCodes(rules []flagRule) []problem.Code {
	out := make([]problem.Code, 0, 2*len(rules))
	for _, r := range rules {
		out = append(out, r.now, r.noLonger)
	}
	return out
}
