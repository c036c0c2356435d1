package element

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTree() *Tree {
	iface := NewType("com.acme.Bar", TypeInterface,
		WithAnnotations(NewAnnotation("java.lang.FunctionalInterface", nil)),
		WithChildren(
			NewMethod("com.acme.Bar#m1", []string{"java.util.List<java.lang.String>"},
				WithModifiers(Mods(VisPublic, FlagAbstract))),
		))
	foo := NewType("com.acme.Foo", TypeClass,
		WithModifiers(Mods(VisPackage, FlagFinal)),
		WithChildren(
			NewField("com.acme.Foo#COUNT", WithModifiers(Mods(VisPublic, FlagStatic, FlagFinal))),
			NewMethod("com.acme.Foo#run", nil,
				WithAnnotations(NewAnnotation("java.lang.Deprecated", map[string]string{"since": "2.0"}))),
		))
	return &Tree{
		API:     "acme-core",
		Version: "1.0.0",
		Root:    NewRoot(NewPackage("com.acme", WithChildren(iface, foo))),
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatMsgpack, FormatYAML, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			orig := sampleTree()
			require.NoError(t, Encode(&buf, orig, format))

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			require.Equal(t, "acme-core", got.API)
			require.Equal(t, "1.0.0", got.Version)
			require.Equal(t, ToSnapshot(orig), ToSnapshot(got))

			pkg := got.Root.Child(0)
			require.Equal(t, KindPackage, pkg.Kind())
			bar := pkg.Child(0)
			require.True(t, bar.IsInterface())
			require.Equal(t, "(java.util.List)", bar.Child(0).Signature().Key())
			foo := pkg.Child(1)
			require.Equal(t, VisPackage, foo.Modifiers().Visibility)
			require.True(t, foo.Modifiers().Has(FlagFinal))
		})
	}
}

func TestDecodeYAMLByHand(t *testing.T) {
	src := `
schema: 1
api: demo
version: "2"
packages:
  - kind: package
    id: demo
    children:
      - kind: interface
        id: demo.Api
        visibility: public
        children:
          - kind: method
            id: demo.Api#call
            params: ["java.lang.String..."]
            modifiers: [abstract]
`
	tree, err := Decode(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)
	api := tree.Root.Child(0).Child(0)
	require.Equal(t, TypeInterface, api.TypeKind())
	call := api.Child(0)
	require.Equal(t, "(java.lang.String[])", call.Signature().Key())
	require.True(t, call.Modifiers().Has(FlagAbstract))
}

func TestDecodeRejectsUnknownModifier(t *testing.T) {
	src := `{"schema":1,"packages":[{"kind":"package","id":"p","modifiers":["sealed-ish"]}]}`
	_, err := Decode(strings.NewReader(src), FormatJSON)
	require.ErrorContains(t, err, "unknown modifier")
}

func TestDecodeRejectsNewerSchema(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"schema":99}`), FormatJSON)
	require.ErrorContains(t, err, "newer than supported")
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("api/old.MP")
	require.NoError(t, err)
	require.Equal(t, FormatMsgpack, f)
	_, err = FormatFromPath("api/old.txt")
	require.Error(t, err)
}
