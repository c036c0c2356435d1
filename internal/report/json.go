package report

import (
	"encoding/json"
	"io"

	"apicompat/internal/analysis"
	"apicompat/internal/diag"
	"apicompat/internal/message"
	"apicompat/internal/observ"
	"apicompat/internal/problem"
)

// AttachmentJSON представляет вложение проблемы для JSON
type AttachmentJSON struct {
	Kind   string            `json:"kind"`
	Key    string            `json:"key"`
	Value  string            `json:"value"`
	Values map[string]string `json:"values,omitempty"`
}

// ProblemJSON представляет проблему в JSON формате
type ProblemJSON struct {
	Check          string            `json:"check"`
	Code           string            `json:"code"`
	Kind           string            `json:"kind"`
	Status         string            `json:"status"`
	Old            string            `json:"old,omitempty"`
	New            string            `json:"new,omitempty"`
	Message        string            `json:"message,omitempty"`
	Classification map[string]string `json:"classification"`
	Attachments    []AttachmentJSON  `json:"attachments,omitempty"`
}

// LocationJSON представляет место в одном из деревьев
type LocationJSON struct {
	Side     string `json:"side"`
	Identity string `json:"identity,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// StatsJSON is the counter summary of a run.
type StatsJSON struct {
	Matched  int `json:"matched"`
	Removed  int `json:"removed"`
	Added    int `json:"added"`
	Findings int `json:"findings"`
	Dropped  int `json:"dropped"`
}

// Output представляет корневую структуру JSON вывода
type Output struct {
	RunID       string           `json:"run_id"`
	API         string           `json:"api,omitempty"`
	OldVersion  string           `json:"old_version,omitempty"`
	NewVersion  string           `json:"new_version,omitempty"`
	Problems    []ProblemJSON    `json:"problems"`
	Count       int              `json:"count"`
	Worst       string           `json:"worst,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty"`
	Stats       *StatsJSON       `json:"stats,omitempty"`
	Timings     *observ.Report   `json:"timings,omitempty"`
}

func makeLocation(loc diag.Location) LocationJSON {
	return LocationJSON{Side: loc.Side.String(), Identity: loc.Identity}
}

// BuildOutput формирует структуру JSON-вывода без сериализации.
// Renderer может быть nil: тогда message не заполняется.
func BuildOutput(res *analysis.Result, r *message.Renderer, opts JSONOpts) Output {
	items := res.Problems
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	out := Output{
		RunID:      res.RunID.String(),
		API:        res.API,
		OldVersion: res.OldVersion,
		NewVersion: res.NewVersion,
		Problems:   make([]ProblemJSON, 0, len(items)),
		Timings:    res.Timings,
	}
	for _, rep := range items {
		p := rep.Problem
		pj := ProblemJSON{
			Check:          rep.Check,
			Code:           string(p.Code()),
			Kind:           rep.Kind.String(),
			Status:         rep.Status.String(),
			Old:            rep.Old,
			New:            rep.New,
			Classification: make(map[string]string, len(problem.Axes)),
		}
		if r != nil {
			pj.Message = r.Describe(opts.Locale, p)
		}
		for _, a := range problem.Axes {
			pj.Classification[a.String()] = p.Classification().Get(a).String()
		}
		for _, a := range p.Attachments() {
			pj.Attachments = append(pj.Attachments, AttachmentJSON{
				Kind:   a.Kind.String(),
				Key:    a.Key,
				Value:  a.Value,
				Values: a.Annotation.Values,
			})
		}
		out.Problems = append(out.Problems, pj)
	}
	out.Count = len(out.Problems)
	if worst, ok := res.Worst(); ok {
		out.Worst = worst.String()
	}

	if opts.Diagnostics {
		for _, d := range res.Diagnostics {
			dj := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Message:  d.Message,
				Location: makeLocation(d.Location),
			}
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: makeLocation(n.Location)})
			}
			out.Diagnostics = append(out.Diagnostics, dj)
		}
	}
	if opts.Stats {
		out.Stats = &StatsJSON{
			Matched:  res.Stats.Pairs.Matched,
			Removed:  res.Stats.Pairs.Removed,
			Added:    res.Stats.Pairs.Added,
			Findings: res.Stats.Findings,
			Dropped:  res.Stats.Dropped,
		}
	}
	return out
}

// JSON форматирует результат в JSON.
func JSON(w io.Writer, res *analysis.Result, r *message.Renderer, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildOutput(res, r, opts))
}
