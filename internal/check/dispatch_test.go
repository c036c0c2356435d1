package check

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"apicompat/internal/diag"
	"apicompat/internal/element"
	"apicompat/internal/match"
	"apicompat/internal/problem"
)

func fixture() (*element.Element, *element.Element) {
	old := element.NewRoot(element.NewPackage("p", element.WithChildren(
		element.NewType("p.A", element.TypeInterface, element.WithChildren(
			element.NewMethod("p.A#m1", nil),
		)),
		element.NewType("p.Gone", element.TypeClass),
	)))
	new := element.NewRoot(element.NewPackage("p", element.WithChildren(
		element.NewType("p.A", element.TypeInterface, element.WithChildren(
			element.NewMethod("p.A#m1", nil),
			element.NewMethod("p.A#m2", []string{"int"}),
		)),
	)))
	return old, new
}

// recorder logs visits and stack events.
type recorder struct {
	Base
	name     string
	interest element.KindSet
	log      []string
}

func (r *recorder) Name() string              { return r.name }
func (r *recorder) Interest() element.KindSet { return r.interest }

func (r *recorder) VisitType(ctx *Context, old, new *element.Element) {
	r.log = append(r.log, fmt.Sprintf("type %s %s d=%d", ctx.Pair().Status(), ctx.Pair().Display(), ctx.Depth()))
}

func (r *recorder) VisitMethod(ctx *Context, old, new *element.Element) {
	r.log = append(r.log, fmt.Sprintf("method %s %s d=%d", ctx.Pair().Status(), ctx.Pair().Display(), ctx.Depth()))
}

// deferredTypes pushes a frame per type and counts members seen below it.
type deferredTypes struct {
	Base
	ends []string
}

type memberCount struct{ n int }

func (*deferredTypes) Name() string              { return "test.deferred" }
func (*deferredTypes) Interest() element.KindSet { return element.Kinds(element.KindType, element.KindMethod) }

func (*deferredTypes) VisitType(ctx *Context, _, _ *element.Element) {
	_ = ctx.Push(&memberCount{})
}

func (*deferredTypes) VisitMethod(ctx *Context, _, _ *element.Element) {
	if f, ok := ctx.Top(); ok {
		f.State.(*memberCount).n++
	}
}

func (d *deferredTypes) End(ctx *Context, f Frame) {
	d.ends = append(d.ends, fmt.Sprintf("%s members=%d", f.Pair.Display(), f.State.(*memberCount).n))
	ctx.Report(problem.New(problem.ClassKindChanged, problem.Value("members", fmt.Sprint(f.State.(*memberCount).n))))
}

func run(t *testing.T, checks []Check, opts Options) (*Dispatcher, error) {
	t.Helper()
	old, new := fixture()
	d := NewDispatcher(checks, opts)
	return d, d.Run(match.Match(old, new, match.Options{}))
}

func TestDispatchVisitsOnlyInterestingKinds(t *testing.T) {
	r := &recorder{name: "test.rec", interest: element.Kinds(element.KindMethod)}
	_, err := run(t, []Check{r}, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{
		"method matched p.A#m1() d=3",
		"method added p.A#m2(int) d=3",
	}, r.log)
}

func TestDeferredFramesFinalizeOnLeave(t *testing.T) {
	c := &deferredTypes{}
	var findings []Finding
	d, err := run(t, []Check{c}, Options{Emit: func(f Finding) { findings = append(findings, f) }})
	require.NoError(t, err)
	require.Equal(t, []string{"p.A members=2", "p.Gone members=0"}, c.ends)

	require.Len(t, findings, 2)
	require.Equal(t, "p.A", findings[0].Pair.Display())
	require.Equal(t, match.StatusRemoved, findings[1].Pair.Status())
	require.Equal(t, "test.deferred", findings[0].Check)

	st := d.Stats()["test.deferred"]
	require.Equal(t, 2, st.Pushes)
	require.Equal(t, st.Pushes, st.Pops)
	require.Equal(t, 2, st.Reports)
}

type doublePush struct{ Base }

func (doublePush) Name() string              { return "test.double" }
func (doublePush) Interest() element.KindSet { return element.Kinds(element.KindType) }
func (doublePush) VisitType(ctx *Context, _, _ *element.Element) {
	_ = ctx.Push(1)
	_ = ctx.Push(2)
}

func TestDoublePushIsFatal(t *testing.T) {
	_, err := run(t, []Check{doublePush{}}, Options{})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUsage))
	var ue *UsageError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, UsageDoublePush, ue.Kind)
	require.Equal(t, 2, ue.Depth)
	require.Equal(t, "test.double", ue.Check)
}

type popWithoutPush struct{ Base }

func (popWithoutPush) Name() string              { return "test.pop" }
func (popWithoutPush) Interest() element.KindSet { return element.Kinds(element.KindPackage) }
func (popWithoutPush) VisitPackage(ctx *Context, _, _ *element.Element) {
	_ = ctx.Pop()
}

func TestPopWithoutPushIsFatal(t *testing.T) {
	_, err := run(t, []Check{popWithoutPush{}}, Options{})
	var ue *UsageError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, UsagePopWithoutPush, ue.Kind)
}

type earlyPop struct {
	Base
	ended int
}

func (*earlyPop) Name() string              { return "test.early" }
func (*earlyPop) Interest() element.KindSet { return element.Kinds(element.KindType) }
func (*earlyPop) VisitType(ctx *Context, _, _ *element.Element) {
	if err := ctx.Push(nil); err != nil {
		panic(err)
	}
	if err := ctx.Pop(); err != nil {
		panic(err)
	}
}
func (e *earlyPop) End(*Context, Frame) { e.ended++ }

func TestExplicitPopFinalizesOnce(t *testing.T) {
	c := &earlyPop{}
	d, err := run(t, []Check{c}, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, c.ended)
	require.Equal(t, Stats{Visits: 2, Pushes: 2, Pops: 2}, d.Totals())
}

type pushInEnd struct{ Base }

func (pushInEnd) Name() string                                  { return "test.pushend" }
func (pushInEnd) Interest() element.KindSet                     { return element.Kinds(element.KindType) }
func (pushInEnd) VisitType(ctx *Context, _, _ *element.Element) { _ = ctx.Push(nil) }
func (pushInEnd) End(ctx *Context, _ Frame)                     { _ = ctx.Push(nil) }

func TestPushDuringEndIsFatal(t *testing.T) {
	_, err := run(t, []Check{pushInEnd{}}, Options{})
	var ue *UsageError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, UsagePushInEnd, ue.Kind)
}

func TestUndrainedStackIsReportedByFinish(t *testing.T) {
	old, new := fixture()
	d := NewDispatcher([]Check{&deferredTypes{}}, Options{})
	s := match.Match(old, new, match.Options{})
	// stop right after entering the first type
	for {
		ev, ok := s.Next()
		require.True(t, ok)
		require.NoError(t, d.Handle(ev))
		if ev.Kind == match.Enter && ev.Pair.Kind() == element.KindType {
			break
		}
	}
	err := d.Finish()
	var ue *UsageError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, UsageUndrained, ue.Kind)
	require.Equal(t, 1, ue.Pending)
}

type panicky struct{ Base }

func (panicky) Name() string              { return "test.panic" }
func (panicky) Interest() element.KindSet { return element.AllKinds }
func (panicky) VisitMethod(*Context, *element.Element, *element.Element) {
	panic("boom")
}

func TestPanicInCheckBecomesError(t *testing.T) {
	_, err := run(t, []Check{panicky{}}, Options{})
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "test.panic", pe.Check)
	require.False(t, errors.Is(err, ErrUsage))
}

type ancestry struct {
	Base
	seen []string
}

func (*ancestry) Name() string              { return "test.ancestry" }
func (*ancestry) Interest() element.KindSet { return element.Kinds(element.KindMethod) }
func (a *ancestry) VisitMethod(ctx *Context, _, _ *element.Element) {
	typ, ok := ctx.Ancestor(element.KindType)
	pkg, _ := ctx.Ancestor(element.KindPackage)
	a.seen = append(a.seen, fmt.Sprintf("%s|%s|%s|%t", ctx.Enclosing().Display(), typ.Display(), pkg.Display(), ok))
	if ctx.Pair().Status() == match.StatusAdded {
		ctx.Warn(diag.CheckEnclosingUnresolved, "just testing")
	}
}

func TestContextAncestryAndWarnings(t *testing.T) {
	a := &ancestry{}
	bag := diag.NewBag(8)
	_, err := run(t, []Check{a}, Options{Reporter: diag.BagReporter{Bag: bag}})
	require.NoError(t, err)
	require.Equal(t, []string{"p.A|p.A|p|true", "p.A|p.A|p|true"}, a.seen)
	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	require.Equal(t, diag.SideNew, d.Location.Side)
	require.Equal(t, "p.A#m2(int)", d.Location.Identity)
	require.Contains(t, d.Message, "test.ancestry")
}

func TestRegistryOrderAndFilter(t *testing.T) {
	a := &recorder{name: "a", interest: element.AllKinds}
	b := &recorder{name: "b", interest: element.AllKinds}
	r, err := NewRegistry(a, b)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, r.Names())

	require.Error(t, r.Register(&recorder{name: "a"}))

	only := r.Filter(func(c Check) bool { return c.Name() != "a" })
	require.Equal(t, []string{"b"}, only.Names())
	_, ok := only.Lookup("a")
	require.False(t, ok)

	_, err = run(t, only.Checks(), Options{})
	require.NoError(t, err)
	require.Empty(t, a.log)
	require.NotEmpty(t, b.log)
}
