package checks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"apicompat/internal/check"
	"apicompat/internal/diag"
	"apicompat/internal/element"
	"apicompat/internal/match"
	"apicompat/internal/problem"
)

func pkg(children ...*element.Element) *element.Element {
	return element.NewRoot(element.NewPackage("p", element.WithChildren(children...)))
}

func runAll(t *testing.T, old, new *element.Element) ([]check.Finding, *diag.Bag) {
	t.Helper()
	var out []check.Finding
	bag := diag.NewBag(16)
	d := check.NewDispatcher(All(), check.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Emit:     func(f check.Finding) { out = append(out, f) },
	})
	require.NoError(t, d.Run(match.Match(old, new, match.Options{})))
	return out, bag
}

func codes(fs []check.Finding) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Pair.Display() + " " + string(f.Problem.Code())
	}
	return out
}

func TestVisibilityIncreasedOnMatchedType(t *testing.T) {
	old := pkg(element.NewType("p.Foo", element.TypeClass, element.WithModifiers(element.Mods(element.VisPackage))))
	new := pkg(element.NewType("p.Foo", element.TypeClass, element.WithModifiers(element.Mods(element.VisPublic))))

	fs, _ := runAll(t, old, new)
	require.Equal(t, []string{"p.Foo CLASS_VISIBILITY_INCREASED"}, codes(fs))
	require.Equal(t, match.StatusMatched, fs[0].Pair.Status())
	require.Equal(t, "visibility", fs[0].Check)
	a, ok := fs[0].Problem.Lookup("newVisibility")
	require.True(t, ok)
	require.Equal(t, "public", a.Value)
}

func TestVisibilityReducedOnMembers(t *testing.T) {
	old := pkg(element.NewType("p.T", element.TypeClass, element.WithChildren(
		element.NewMethod("p.T#m", nil),
		element.NewField("p.T#f", element.WithModifiers(element.Mods(element.VisProtected))),
	)))
	new := pkg(element.NewType("p.T", element.TypeClass, element.WithChildren(
		element.NewMethod("p.T#m", nil, element.WithModifiers(element.Mods(element.VisProtected))),
		element.NewField("p.T#f", element.WithModifiers(element.Mods(element.VisPublic))),
	)))
	fs, _ := runAll(t, old, new)
	require.Equal(t, []string{
		"p.T#m() METHOD_VISIBILITY_REDUCED",
		"p.T#f FIELD_VISIBILITY_INCREASED",
	}, codes(fs))
}

func TestMethodAddedClassifiedByEnclosingType(t *testing.T) {
	cases := []struct {
		name   string
		kind   element.TypeKind
		mods   element.Modifiers
		method element.Modifiers
		want   problem.Code
	}{
		{"interface", element.TypeInterface, element.Mods(element.VisPublic), element.Mods(element.VisPublic, element.FlagAbstract), problem.MethodAddedToInterface},
		{"final class", element.TypeClass, element.Mods(element.VisPublic, element.FlagFinal), element.Mods(element.VisPublic), problem.MethodAddedToFinalClass},
		{"abstract method", element.TypeClass, element.Mods(element.VisPublic, element.FlagAbstract), element.Mods(element.VisPublic, element.FlagAbstract), problem.MethodAbstractMethodAdded},
		{"concrete method", element.TypeClass, element.Mods(element.VisPublic), element.Mods(element.VisPublic), problem.MethodAdded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			old := pkg(element.NewType("p.Bar", tc.kind, element.WithModifiers(tc.mods), element.WithChildren(
				element.NewMethod("p.Bar#m1", nil, element.WithModifiers(tc.method)),
			)))
			new := pkg(element.NewType("p.Bar", tc.kind, element.WithModifiers(tc.mods), element.WithChildren(
				element.NewMethod("p.Bar#m1", nil, element.WithModifiers(tc.method)),
				element.NewMethod("p.Bar#m2", nil, element.WithModifiers(tc.method)),
			)))
			fs, bag := runAll(t, old, new)
			require.Equal(t, []string{"p.Bar#m2() " + string(tc.want)}, codes(fs))
			require.Equal(t, match.StatusAdded, fs[0].Pair.Status())
			ref, ok := fs[0].Problem.Lookup("enclosingType")
			require.True(t, ok)
			require.Equal(t, "p.Bar", ref.Value)
			require.Zero(t, bag.Len())
		})
	}
}

func TestInterfaceAdditionIsNotBreaking(t *testing.T) {
	c := problem.DefaultClassification(problem.MethodAddedToInterface)
	require.Equal(t, problem.NonBreaking, c.Get(problem.AxisBinary))
	require.Equal(t, problem.NonBreaking, c.Get(problem.AxisSource))
	require.NotEqual(t, problem.DefaultClassification(problem.MethodAbstractMethodAdded), c)
}

func TestMethodAddedWithoutEnclosingTypeWarns(t *testing.T) {
	old := element.NewRoot(element.NewPackage("p"))
	new := element.NewRoot(element.NewPackage("p", element.WithChildren(element.NewMethod("p#stray", nil))))

	fs, bag := runAll(t, old, new)
	require.Empty(t, fs)
	require.Equal(t, 1, bag.Len())
	require.Equal(t, diag.CheckEnclosingUnresolved, bag.Items()[0].Code)
	require.Equal(t, diag.SevWarning, bag.Items()[0].Severity)
}

func TestAddedAndRemovedTypesDoNotReportMembers(t *testing.T) {
	members := func() []*element.Element {
		return []*element.Element{element.NewMethod("p.X#m", nil), element.NewField("p.X#f")}
	}
	fs, _ := runAll(t,
		pkg(element.NewType("p.Gone", element.TypeClass, element.WithChildren(element.NewMethod("p.Gone#m", nil)))),
		pkg(element.NewType("p.X", element.TypeClass, element.WithChildren(members()...))),
	)
	require.Equal(t, []string{"p.Gone CLASS_REMOVED", "p.X CLASS_ADDED"}, codes(fs))
}

func TestHiddenElementsAreIgnored(t *testing.T) {
	hidden := element.WithModifiers(element.Mods(element.VisPrivate))
	old := pkg(element.NewType("p.T", element.TypeClass, element.WithChildren(
		element.NewMethod("p.T#secret", nil, hidden),
		element.NewField("p.T#x", hidden),
	)))
	new := pkg(element.NewType("p.T", element.TypeClass))
	fs, _ := runAll(t, old, new)
	require.Empty(t, fs)
}

func TestModifierChanges(t *testing.T) {
	old := pkg(element.NewType("p.T", element.TypeClass, element.WithChildren(
		element.NewMethod("p.T#m", nil, element.WithModifiers(element.Mods(element.VisPublic, element.FlagFinal))),
		element.NewField("p.T#f"),
	)))
	new := pkg(element.NewType("p.T", element.TypeClass,
		element.WithModifiers(element.Mods(element.VisPublic, element.FlagFinal)),
		element.WithChildren(
			element.NewMethod("p.T#m", nil, element.WithModifiers(element.Mods(element.VisPublic, element.FlagStatic))),
			element.NewField("p.T#f", element.WithModifiers(element.Mods(element.VisPublic, element.FlagFinal, element.FlagStatic))),
		)))
	fs, _ := runAll(t, old, new)
	require.Equal(t, []string{
		"p.T CLASS_NOW_FINAL",
		"p.T#m() METHOD_NO_LONGER_FINAL",
		"p.T#m() METHOD_NOW_STATIC",
		"p.T#f FIELD_NOW_FINAL",
		"p.T#f FIELD_NOW_STATIC",
	}, codes(fs))
}

func TestTypeKindChangeSkipsFlags(t *testing.T) {
	old := pkg(element.NewType("p.T", element.TypeClass, element.WithModifiers(element.Mods(element.VisPublic, element.FlagFinal))))
	new := pkg(element.NewType("p.T", element.TypeInterface, element.WithModifiers(element.Mods(element.VisPublic, element.FlagAbstract))))
	fs, _ := runAll(t, old, new)
	require.Equal(t, []string{"p.T CLASS_KIND_CHANGED"}, codes(fs))
}

func TestAnnotationChangesCarryTheUse(t *testing.T) {
	deprecated := element.NewAnnotation("java.lang.Deprecated", nil)
	oldRet := element.NewAnnotation("p.Retention", map[string]string{"value": "CLASS"})
	newRet := element.NewAnnotation("p.Retention", map[string]string{"value": "RUNTIME"})
	gone := element.NewAnnotation("p.Beta", nil)

	old := pkg(element.NewType("p.T", element.TypeClass, element.WithChildren(
		element.NewMethod("p.T#m", nil, element.WithAnnotations(oldRet, gone)),
	)))
	new := pkg(element.NewType("p.T", element.TypeClass, element.WithChildren(
		element.NewMethod("p.T#m", nil, element.WithAnnotations(newRet, deprecated)),
	)))
	fs, _ := runAll(t, old, new)
	require.Equal(t, []string{
		"p.T#m() ANNOTATION_ATTRIBUTE_VALUE_CHANGED",
		"p.T#m() ANNOTATION_REMOVED",
		"p.T#m() ANNOTATION_ADDED",
	}, codes(fs))

	use, ok := fs[2].Problem.Attachment(0)
	require.True(t, ok)
	require.Equal(t, problem.AttachAnnotation, use.Kind)
	require.True(t, use.Annotation.Equal(deprecated))

	attr, _ := fs[0].Problem.Lookup("attribute")
	require.Equal(t, "value", attr.Value)
	nv, _ := fs[0].Problem.Lookup("newValue")
	require.Equal(t, "RUNTIME", nv.Value)
}

func TestEveryCheckDeclaresCatalogCodes(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range All() {
		require.False(t, seen[c.Name()], c.Name())
		seen[c.Name()] = true
		require.NotEmpty(t, c.Codes(), c.Name())
		for _, code := range c.Codes() {
			_, ok := problem.Lookup(code)
			require.True(t, ok, "%s: %s", c.Name(), code)
		}
	}
	require.Equal(t, len(All()), Registry().Len())
}

func TestAnnotationElementsReportOnAnnotatedElement(t *testing.T) {
	old := pkg(element.NewType("p.T", element.TypeClass, element.WithChildren(
		element.NewMethod("p.T#m", nil, element.WithChildren(element.NewAnnotationUse("p.Beta"))),
	)))
	new := pkg(element.NewType("p.T", element.TypeClass, element.WithChildren(
		element.NewMethod("p.T#m", nil, element.WithChildren(element.NewAnnotationUse("java.lang.Deprecated"))),
	)))
	fs, _ := runAll(t, old, new)
	require.Equal(t, []string{
		"p.T#m() ANNOTATION_REMOVED",
		"p.T#m() ANNOTATION_ADDED",
	}, codes(fs))
	for _, f := range fs {
		require.Equal(t, match.StatusMatched, f.Pair.Status())
		require.Equal(t, element.KindMethod, f.Pair.Kind())
	}
	use, _ := fs[1].Problem.Attachment(0)
	require.Equal(t, "java.lang.Deprecated", use.Annotation.Type)
}
