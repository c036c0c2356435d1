package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"apicompat/internal/analysis"
	"apicompat/internal/diag"
	"apicompat/internal/element"
	"apicompat/internal/match"
	"apicompat/internal/message"
	"apicompat/internal/problem"
)

func sampleResult() *analysis.Result {
	return &analysis.Result{
		RunID:      uuid.MustParse("6f1c2a9e-4b7d-4c1e-9a3f-2d5e8b7c0a11"),
		API:        "acme",
		OldVersion: "1.0",
		NewVersion: "1.1",
		Problems: []analysis.Reported{
			{Check: "classes", Old: "p.B", Kind: element.KindType, Status: match.StatusRemoved, Problem: problem.New(problem.ClassRemoved)},
			{Check: "visibility", Old: "p.A", New: "p.A", Kind: element.KindType, Status: match.StatusMatched,
				Problem: problem.New(problem.ClassVisibilityIncrease, problem.Value("oldVisibility", "package-private"), problem.Value("newVisibility", "public"))},
		},
		Diagnostics: []diag.Diagnostic{
			diag.NewWarning(diag.CheckEnclosingUnresolved, diag.Location{Side: diag.SideNew, Identity: "p.X#m()"}, "methods.added: no enclosing type"),
		},
		Stats: analysis.Stats{Pairs: match.Stats{Matched: 2, Removed: 1}, Findings: 2},
	}
}

func renderer(t *testing.T) *message.Renderer {
	t.Helper()
	r, err := message.NewRenderer(4)
	require.NoError(t, err)
	return r
}

func TestShortIsSortedAndStable(t *testing.T) {
	res := sampleResult()
	want := "p.A CLASS_VISIBILITY_INCREASED binary=non-breaking source=non-breaking semantic=equivalent\n" +
		"p.B CLASS_REMOVED binary=breaking source=breaking semantic=equivalent"
	require.Equal(t, want, Short(res, false))

	// порядок входа не влияет на вывод
	res.Problems[0], res.Problems[1] = res.Problems[1], res.Problems[0]
	require.Equal(t, want, Short(res, false))

	withDiags := Short(res, true)
	require.True(t, strings.HasPrefix(withDiags, want+"\n"))
	require.Contains(t, withDiags, "warning CHK2001 new:p.X#m() methods.added: no enclosing type")

	require.Empty(t, Short(&analysis.Result{}, true))
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleResult(), renderer(t), JSONOpts{Locale: language.English, Diagnostics: true, Stats: true}))

	var out Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "6f1c2a9e-4b7d-4c1e-9a3f-2d5e8b7c0a11", out.RunID)
	require.Equal(t, 2, out.Count)
	require.Equal(t, "breaking", out.Worst)
	require.Equal(t, "CLASS_REMOVED", out.Problems[0].Code)
	require.Equal(t, "removed", out.Problems[0].Status)
	require.Equal(t, "Class was removed.", out.Problems[0].Message)
	require.Equal(t, "Visibility of the class increased from package-private to public.", out.Problems[1].Message)
	require.Equal(t, "non-breaking", out.Problems[1].Classification["binary"])
	require.Len(t, out.Problems[1].Attachments, 2)
	require.Len(t, out.Diagnostics, 1)
	require.Equal(t, "CHK2001", out.Diagnostics[0].Code)
	require.Equal(t, 1, out.Stats.Removed)
}

func TestJSONMaxAndNoRenderer(t *testing.T) {
	out := BuildOutput(sampleResult(), nil, JSONOpts{Max: 1})
	require.Equal(t, 1, out.Count)
	require.Empty(t, out.Problems[0].Message)
	require.Nil(t, out.Diagnostics)
	require.Nil(t, out.Stats)
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	err := Pretty(&buf, sampleResult(), renderer(t), PrettyOpts{Locale: language.English, Diagnostics: true, Classification: true})
	require.NoError(t, err)
	out := buf.String()

	require.NotContains(t, out, "\x1b[")
	lines := strings.Split(out, "\n")
	require.Equal(t, "apicompat: acme 1.0 → 1.1  (run 6f1c2a9e-4b7d-4c1e-9a3f-2d5e8b7c0a11)", lines[0])
	require.Equal(t, "  BREAKING      p.B  CLASS_REMOVED  Class was removed.", lines[1])
	require.Equal(t, "                binary: breaking, source: breaking, semantic: equivalent", lines[2])
	require.Equal(t, "  NON-BREAKING  p.A  CLASS_VISIBILITY_INCREASED  Visibility of the class increased from package-private to public.", lines[3])
	require.Contains(t, out, "2 problems: 1 breaking, 1 non-breaking")
	require.Contains(t, out, "diagnostics:\n  WARNING CHK2001 new:p.X#m(): methods.added: no enclosing type")
}

func TestPrettyColorAndLocale(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, sampleResult(), renderer(t), PrettyOpts{Color: true, Locale: language.Russian}))
	require.Contains(t, buf.String(), "\x1b[")
	require.Contains(t, buf.String(), "Класс удалён.")

	buf.Reset()
	require.NoError(t, Pretty(&buf, &analysis.Result{}, nil, PrettyOpts{}))
	require.Contains(t, buf.String(), "no problems")
}

func TestFitTruncatesWideIdentities(t *testing.T) {
	require.Equal(t, "p.Ab", fit("p.Ab", 10))
	require.Equal(t, "p.Клас...", fit("p.Классификатор", 9))
	require.Equal(t, "p.", fit("p.Long", 2))
}

func TestParseFormatAndWrite(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)
	_, err = ParseFormat("sarif")
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatShort, sampleResult(), Options{}))
	require.Equal(t, 2, strings.Count(buf.String(), "\n"))
}
