package match

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"apicompat/internal/diag"
	"apicompat/internal/element"
)

// genTree builds a deterministic pseudo-random tree; calling it twice with the
// same seed yields structurally identical but distinct trees.
func genTree(seed int64, extra ...*element.Element) *element.Element {
	rnd := rand.New(rand.NewSource(seed))
	var pkgs []*element.Element
	for p := range 1 + rnd.Intn(3) {
		pkgID := fmt.Sprintf("p%d", p)
		var types []*element.Element
		for ti := range 1 + rnd.Intn(4) {
			typeID := fmt.Sprintf("%s.T%d", pkgID, ti)
			var members []*element.Element
			for m := range rnd.Intn(5) {
				name := fmt.Sprintf("%s#m%d", typeID, m%2)
				params := []string{"int"}
				for range m {
					params = append(params, "java.util.List<java.lang.String>")
				}
				members = append(members, element.NewMethod(name, params))
			}
			for f := range rnd.Intn(3) {
				members = append(members, element.NewField(fmt.Sprintf("%s#f%d", typeID, f)))
			}
			types = append(types, element.NewType(typeID, element.TypeKind(rnd.Intn(2)), element.WithChildren(members...)))
		}
		pkgs = append(pkgs, element.NewPackage(pkgID, element.WithChildren(types...)))
	}
	pkgs = append(pkgs, extra...)
	return element.NewRoot(pkgs...)
}

func collect(old, new *element.Element) []Pair {
	return slices.Collect(Match(old, new, Options{}).Pairs())
}

func pathKey(p Pair) string {
	e := p.Any()
	key := e.Key()
	for cur := e.Parent(); cur != nil && cur.Identity() != ""; cur = cur.Parent() {
		key = cur.Key() + "/" + key
	}
	return p.Status().String() + " " + key
}

func TestMatchIdenticalTreesOnlyMatches(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		tree := genTree(seed)
		pairs := collect(tree, tree)
		require.NotEmpty(t, pairs)
		for _, p := range pairs {
			require.Equal(t, StatusMatched, p.Status(), "seed %d pair %s", seed, p)
			require.Equal(t, p.Old.Identity(), p.New.Identity())
			require.Equal(t, p.Old.Signature(), p.New.Signature())
		}
	}
}

func TestMatchAppendedSiblingYieldsSingleAddition(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		base := collect(genTree(seed), genTree(seed))

		x := element.NewPackage("fresh.pkg", element.WithChildren(element.NewType("fresh.pkg.X", element.TypeClass)))
		pairs := collect(genTree(seed), genTree(seed, x))

		var added []Pair
		var rest []string
		for _, p := range pairs {
			if p.Status() == StatusAdded {
				added = append(added, p)
				continue
			}
			rest = append(rest, pathKey(p))
		}
		// X itself plus its owned type, both new-only
		require.Len(t, added, 2, "seed %d", seed)
		require.Same(t, x, added[0].New)

		want := make([]string, len(base))
		for i, p := range base {
			want[i] = pathKey(p)
		}
		require.Equal(t, want, rest, "seed %d", seed)
	}
}

func TestMatchOverloadsNeverCrossPair(t *testing.T) {
	old := element.NewRoot(element.NewPackage("p", element.WithChildren(
		element.NewType("p.T", element.TypeClass, element.WithChildren(
			element.NewMethod("p.T#f", []string{"int"}),
			element.NewMethod("p.T#f", []string{"java.lang.String"}),
		)))))
	new := element.NewRoot(element.NewPackage("p", element.WithChildren(
		element.NewType("p.T", element.TypeClass, element.WithChildren(
			element.NewMethod("p.T#f", []string{"int"}),
			element.NewMethod("p.T#f", []string{"java.lang.String", "int"}),
		)))))

	pairs := collect(old, new)
	require.Len(t, pairs, 5)

	methods := pairs[2:]
	require.Equal(t, StatusMatched, methods[0].Status())
	require.Equal(t, "(int)", methods[0].Old.Signature().Key())
	require.Equal(t, "(int)", methods[0].New.Signature().Key())

	require.Equal(t, StatusRemoved, methods[1].Status())
	require.Equal(t, "(java.lang.String)", methods[1].Old.Signature().Key())

	require.Equal(t, StatusAdded, methods[2].Status())
	require.Equal(t, "(java.lang.String,int)", methods[2].New.Signature().Key())
}

func TestMatchGenericBoundChangeSurvives(t *testing.T) {
	old := element.NewRoot(element.NewPackage("p", element.WithChildren(
		element.NewType("p.T", element.TypeClass, element.WithChildren(
			element.NewMethod("p.T#f", []string{"java.util.List<? extends Number>"}))))))
	new := element.NewRoot(element.NewPackage("p", element.WithChildren(
		element.NewType("p.T", element.TypeClass, element.WithChildren(
			element.NewMethod("p.T#f", []string{"java.util.List"}))))))

	for _, p := range collect(old, new) {
		require.Equal(t, StatusMatched, p.Status(), p.String())
	}
}

func TestMatchOrderOldThenAdditions(t *testing.T) {
	old := element.NewRoot(
		element.NewPackage("a"),
		element.NewPackage("b"),
		element.NewPackage("c"),
	)
	new := element.NewRoot(
		element.NewPackage("z"),
		element.NewPackage("c"),
		element.NewPackage("a"),
		element.NewPackage("y"),
	)
	var got []string
	for _, p := range collect(old, new) {
		got = append(got, p.Status().String()+":"+p.Any().Identity())
	}
	require.Equal(t, []string{"matched:a", "removed:b", "matched:c", "added:z", "added:y"}, got)
}

func TestMatchDescendsIntoOneSidedPairs(t *testing.T) {
	old := element.NewRoot(element.NewPackage("p", element.WithChildren(
		element.NewType("p.Gone", element.TypeClass, element.WithChildren(
			element.NewMethod("p.Gone#a", nil),
			element.NewField("p.Gone#b"),
		)))))
	new := element.NewRoot(element.NewPackage("p"))

	pairs := collect(old, new)
	require.Len(t, pairs, 4)
	for _, p := range pairs[1:] {
		require.Equal(t, StatusRemoved, p.Status())
	}
}

func TestMatchDoesNotPairAcrossKinds(t *testing.T) {
	old := element.NewRoot(element.NewPackage("p", element.WithChildren(
		element.NewType("p.T", element.TypeClass, element.WithChildren(element.NewField("p.T#x"))))))
	new := element.NewRoot(element.NewPackage("p", element.WithChildren(
		element.NewType("p.T", element.TypeClass, element.WithChildren(element.NewMethod("p.T#x", nil))))))

	pairs := collect(old, new)
	require.Equal(t, StatusRemoved, pairs[2].Status())
	require.Equal(t, element.KindField, pairs[2].Kind())
	require.Equal(t, StatusAdded, pairs[3].Status())
	require.Equal(t, element.KindMethod, pairs[3].Kind())
}

func TestMatchDuplicatesAreDeterministicAndReported(t *testing.T) {
	mk := func(tag string) *element.Element {
		return element.NewType("p.T", element.TypeClass, element.WithChildren(element.NewField("p.T#"+tag)))
	}
	old := element.NewRoot(element.NewPackage("p", element.WithChildren(mk("first"), mk("second"))))
	new := element.NewRoot(element.NewPackage("p", element.WithChildren(mk("first"))))

	bag := diag.NewBag(10)
	pairs := slices.Collect(Match(old, new, Options{Reporter: diag.BagReporter{Bag: bag}}).Pairs())

	// first declared pairs with first declared
	require.Equal(t, StatusMatched, pairs[1].Status())
	require.Equal(t, "p.T#first", pairs[1].Old.Child(0).Identity())
	require.Equal(t, StatusRemoved, pairs[3].Status())
	require.Equal(t, "p.T#second", pairs[3].Old.Child(0).Identity())

	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	require.Equal(t, diag.TreeDuplicateIdentity, d.Code)
	require.Equal(t, diag.SideOld, d.Location.Side)
	require.Equal(t, diag.SevWarning, d.Severity)
}

func TestStreamEventsAreBalanced(t *testing.T) {
	tree := genTree(7)
	s := Match(tree, genTree(8), Options{})
	depth := 0
	enters, leaves := 0, 0
	var open []Pair
	for {
		ev, ok := s.Next()
		if !ok {
			break
		}
		switch ev.Kind {
		case Enter:
			depth++
			enters++
			require.Equal(t, depth, ev.Depth)
			open = append(open, ev.Pair)
		case Leave:
			require.Equal(t, depth, ev.Depth)
			require.Equal(t, open[len(open)-1], ev.Pair)
			open = open[:len(open)-1]
			depth--
			leaves++
		}
	}
	require.Equal(t, 0, depth)
	require.Equal(t, enters, leaves)
	require.Equal(t, enters, s.Stats().Total())
	require.True(t, s.Done())
}

func TestStreamIsSinglePass(t *testing.T) {
	tree := genTree(3)
	s := Match(tree, tree, Options{})
	first := slices.Collect(s.Pairs())
	require.NotEmpty(t, first)
	require.Empty(t, slices.Collect(s.Pairs()))
}

func TestMatchNilRoots(t *testing.T) {
	require.Empty(t, collect(nil, nil))
	tree := genTree(2)
	for _, p := range collect(nil, tree) {
		require.Equal(t, StatusAdded, p.Status())
	}
}
