package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"apicompat/internal/analysis"
	"apicompat/internal/message"
	"apicompat/internal/problem"
)

type palette struct {
	breaking    *color.Color
	potentially *color.Color
	harmless    *color.Color
	code        *color.Color
	dim         *color.Color
	header      *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		breaking:    color.New(color.FgRed, color.Bold),
		potentially: color.New(color.FgYellow, color.Bold),
		harmless:    color.New(color.FgGreen),
		code:        color.New(color.FgCyan),
		dim:         color.New(color.Faint),
		header:      color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.breaking, p.potentially, p.harmless, p.code, p.dim, p.header} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s problem.Severity) *color.Color {
	switch s {
	case problem.Breaking:
		return p.breaking
	case problem.PotentiallyBreaking:
		return p.potentially
	default:
		return p.harmless
	}
}

// Pretty форматирует результат в человекочитаемый вид.
// Печатает заголовок, таблицу проблем в порядке обнаружения и сводку;
// диагностики идут отдельным блоком.
func Pretty(w io.Writer, res *analysis.Result, r *message.Renderer, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	var b strings.Builder

	title := "apicompat"
	if res.API != "" {
		title += ": " + res.API
	}
	if res.OldVersion != "" || res.NewVersion != "" {
		title += " " + res.OldVersion + " → " + res.NewVersion
	}
	b.WriteString(pal.header.Sprint(title))
	b.WriteString(pal.dim.Sprintf("  (run %s)", res.RunID))
	b.WriteByte('\n')

	idWidth, sevWidth := 0, 0
	labels := make([]string, len(res.Problems))
	for i, rep := range res.Problems {
		idWidth = max(idWidth, runewidth.StringWidth(rep.Identity()))
		labels[i] = strings.ToUpper(severityText(r, opts, rep.Problem.Classification().Max()))
		sevWidth = max(sevWidth, runewidth.StringWidth(labels[i]))
	}
	if opts.Width > 0 {
		idWidth = min(idWidth, opts.Width)
	}

	counts := map[problem.Severity]int{}
	for i, rep := range res.Problems {
		worst := rep.Problem.Classification().Max()
		counts[worst]++

		id := fit(rep.Identity(), idWidth)
		fmt.Fprintf(&b, "  %s  %s  %s",
			pal.severity(worst).Sprint(runewidth.FillRight(labels[i], sevWidth)),
			runewidth.FillRight(id, idWidth),
			pal.code.Sprint(rep.Problem.Code()),
		)
		if r != nil {
			b.WriteString("  " + r.Describe(opts.Locale, rep.Problem))
		}
		b.WriteByte('\n')
		if opts.Classification {
			indent := strings.Repeat(" ", 2+sevWidth+2)
			b.WriteString(indent)
			b.WriteString(pal.dim.Sprint(classificationText(r, opts, rep.Problem.Classification())))
			b.WriteByte('\n')
		}
	}

	b.WriteString(summary(r, opts, pal, len(res.Problems), counts))
	b.WriteByte('\n')

	if opts.Diagnostics && len(res.Diagnostics) > 0 {
		b.WriteString(pal.header.Sprint("diagnostics:"))
		b.WriteByte('\n')
		for _, d := range res.Diagnostics {
			sev := pal.dim
			if d.Severity.Notable() {
				sev = pal.potentially
			}
			fmt.Fprintf(&b, "  %s %s %s: %s\n", sev.Sprint(d.Severity), d.Code.ID(), d.Location, d.Message)
			for _, n := range d.Notes {
				fmt.Fprintf(&b, "    note: %s: %s\n", n.Location, n.Msg)
			}
		}
	}
	if opts.Timings && res.Timings != nil {
		b.WriteString(res.Timings.Summary())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func summary(r *message.Renderer, opts PrettyOpts, pal palette, total int, counts map[problem.Severity]int) string {
	if total == 0 {
		return pal.harmless.Sprint("no problems")
	}
	noun := "problems"
	if total == 1 {
		noun = "problem"
	}
	parts := make([]string, 0, 4)
	for _, s := range []problem.Severity{problem.Breaking, problem.PotentiallyBreaking, problem.NonBreaking, problem.Equivalent} {
		if counts[s] == 0 {
			continue
		}
		parts = append(parts, pal.severity(s).Sprintf("%d %s", counts[s], severityText(r, opts, s)))
	}
	return fmt.Sprintf("%d %s: %s", total, noun, strings.Join(parts, ", "))
}

func severityText(r *message.Renderer, opts PrettyOpts, s problem.Severity) string {
	if r == nil {
		return s.String()
	}
	return r.Severity(opts.Locale, s)
}

func classificationText(r *message.Renderer, opts PrettyOpts, c problem.Classification) string {
	if r == nil {
		return c.String()
	}
	return r.Classification(opts.Locale, c)
}

// fit обрезает значение до ширины колонки с учётом широких символов.
func fit(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
