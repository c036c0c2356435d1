package problem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"apicompat/internal/element"
)

func TestNewUsesCatalogClassification(t *testing.T) {
	p := New(ClassVisibilityIncrease)
	require.Equal(t, NonBreaking, p.Classification().Get(AxisBinary))
	require.Equal(t, NonBreaking, p.Classification().Get(AxisSource))

	removed := New(MethodRemoved)
	require.Equal(t, Breaking, removed.Classification().Max())
}

func TestUnknownCodeIsPotentiallyBreaking(t *testing.T) {
	p := New(Code("SOMETHING_NEW"))
	for _, a := range Axes {
		require.Equal(t, PotentiallyBreaking, p.Classification().Get(a))
	}
}

func TestProblemIsImmutable(t *testing.T) {
	ann := element.NewAnnotation("java.lang.Deprecated", map[string]string{"since": "1"})
	p := New(AnnotationAdded, AnnotationUse(ann))

	atts := p.Attachments()
	atts[0].Annotation.Values["since"] = "2"
	atts[0].Value = "mutated"

	got, ok := p.Attachment(0)
	require.True(t, ok)
	require.Equal(t, "1", got.Annotation.Values["since"])
	require.Equal(t, "java.lang.Deprecated", got.Value)

	re := p.WithClassification(Uniform(Breaking))
	require.Equal(t, Breaking, re.Classification().Get(AxisSemantic))
	require.Equal(t, Equivalent, p.Classification().Get(AxisBinary))
}

func TestRecodeKeepsAttachments(t *testing.T) {
	ann := element.NewAnnotation("java.lang.Deprecated", nil)
	p := New(AnnotationAdded, AnnotationUse(ann)).Recode(MethodDeprecationAdded)
	require.Equal(t, MethodDeprecationAdded, p.Code())
	require.Equal(t, DefaultClassification(MethodDeprecationAdded), p.Classification())
	a, ok := p.Lookup("annotationType")
	require.True(t, ok)
	require.Equal(t, AttachAnnotation, a.Kind)
}

func TestCatalogIsSortedAndComplete(t *testing.T) {
	infos := Catalog()
	require.NotEmpty(t, infos)
	for i := 1; i < len(infos); i++ {
		require.Less(t, infos[i-1].Code, infos[i].Code)
	}
	for _, info := range infos {
		require.NotEmpty(t, info.Name, info.Code)
		require.NotEmpty(t, info.Description, info.Code)
	}
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity("Potentially-Breaking")
	require.NoError(t, err)
	require.Equal(t, PotentiallyBreaking, s)

	var v Severity
	require.NoError(t, v.UnmarshalText([]byte("breaking")))
	require.Equal(t, Breaking, v)

	_, err = ParseSeverity("fatal")
	require.Error(t, err)
}
