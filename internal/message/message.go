// Package message renders problem text for a locale. Locale never affects
// how a problem is classified, only how it reads.
package message

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"apicompat/internal/problem"
)

// english templates override the catalog description where the text takes
// arguments.
var english = map[problem.Code]string{
	problem.ClassVisibilityIncrease:   "Visibility of the class increased from %[1]s to %[2]s.",
	problem.ClassVisibilityReduced:    "Visibility of the class reduced from %[1]s to %[2]s.",
	problem.MethodVisibilityIncreased: "Visibility of the method increased from %[1]s to %[2]s.",
	problem.MethodVisibilityReduced:   "Visibility of the method reduced from %[1]s to %[2]s.",
	problem.FieldVisibilityIncrease:   "Visibility of the field increased from %[1]s to %[2]s.",
	problem.FieldVisibilityReduced:    "Visibility of the field reduced from %[1]s to %[2]s.",
	problem.AnnotationAdded:           "Annotation %[1]s was added.",
	problem.AnnotationRemoved:         "Annotation %[1]s was removed.",
	problem.AnnotationValueChanged:    "Attribute value of annotation %[1]s changed.",
}

// argKeys lists, per code, the attachment keys that feed the template.
var argKeys = map[problem.Code][]string{
	problem.ClassVisibilityIncrease:   {"oldVisibility", "newVisibility"},
	problem.ClassVisibilityReduced:    {"oldVisibility", "newVisibility"},
	problem.MethodVisibilityIncreased: {"oldVisibility", "newVisibility"},
	problem.MethodVisibilityReduced:   {"oldVisibility", "newVisibility"},
	problem.FieldVisibilityIncrease:   {"oldVisibility", "newVisibility"},
	problem.FieldVisibilityReduced:    {"oldVisibility", "newVisibility"},
	problem.AnnotationAdded:           {"annotationType"},
	problem.AnnotationRemoved:         {"annotationType"},
	problem.AnnotationValueChanged:    {"annotationType"},
}

// Supported lists the locales with a full catalog.
var Supported = []language.Tag{language.English, language.Russian}

// Renderer renders problem text. It is safe for concurrent use.
type Renderer struct {
	cat      catalog.Catalog
	matcher  language.Matcher
	printers *lru.Cache[string, *message.Printer]
}

// NewRenderer builds the catalog and a printer cache of the given size.
func NewRenderer(cacheSize int) (*Renderer, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, info := range problem.Catalog() {
		en := info.Description
		if tmpl, ok := english[info.Code]; ok {
			en = tmpl
		}
		if err := b.SetString(language.English, string(info.Code), en); err != nil {
			return nil, fmt.Errorf("catalog en %s: %w", info.Code, err)
		}
		if ru, ok := russian[info.Code]; ok {
			if err := b.SetString(language.Russian, string(info.Code), ru); err != nil {
				return nil, fmt.Errorf("catalog ru %s: %w", info.Code, err)
			}
		}
	}
	for sev, ru := range russianSeverity {
		if err := b.SetString(language.Russian, severityKey(sev), ru); err != nil {
			return nil, err
		}
	}
	for axis, ru := range russianAxis {
		if err := b.SetString(language.Russian, axisKey(axis), ru); err != nil {
			return nil, err
		}
	}
	if cacheSize <= 0 {
		cacheSize = 8
	}
	cache, err := lru.New[string, *message.Printer](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		cat:      b,
		matcher:  language.NewMatcher(Supported),
		printers: cache,
	}, nil
}

// Printer returns the cached printer for the closest supported locale.
func (r *Renderer) Printer(tag language.Tag) *message.Printer {
	_, idx, _ := r.matcher.Match(tag)
	best := Supported[idx]
	key := best.String()
	if p, ok := r.printers.Get(key); ok {
		return p
	}
	p := message.NewPrinter(best, message.Catalog(r.cat))
	r.printers.Add(key, p)
	return p
}

// Describe renders the localized description of p.
func (r *Renderer) Describe(tag language.Tag, p problem.Problem) string {
	pr := r.Printer(tag)
	fallback := string(p.Code())
	if info, ok := problem.Lookup(p.Code()); ok {
		fallback = info.Description
	}
	keys := argKeys[p.Code()]
	args := make([]any, len(keys))
	for i, k := range keys {
		if a, ok := p.Lookup(k); ok {
			args[i] = a.Value
		} else {
			args[i] = "?"
		}
	}
	return pr.Sprintf(message.Key(string(p.Code()), fallback), args...)
}

// Severity renders a severity name.
func (r *Renderer) Severity(tag language.Tag, s problem.Severity) string {
	return r.Printer(tag).Sprintf(message.Key(severityKey(s), s.String()))
}

// Axis renders an axis name.
func (r *Renderer) Axis(tag language.Tag, a problem.Axis) string {
	return r.Printer(tag).Sprintf(message.Key(axisKey(a), a.String()))
}

// Classification renders "binary: breaking, source: ..." in the locale.
func (r *Renderer) Classification(tag language.Tag, c problem.Classification) string {
	parts := make([]string, 0, len(problem.Axes))
	for _, a := range problem.Axes {
		parts = append(parts, r.Axis(tag, a)+": "+r.Severity(tag, c.Get(a)))
	}
	return strings.Join(parts, ", ")
}

// Len is the number of cached printers.
func (r *Renderer) Len() int { return r.printers.Len() }

func severityKey(s problem.Severity) string { return "severity." + s.String() }
func axisKey(a problem.Axis) string         { return "axis." + a.String() }
