package transform

import (
	"errors"
	"fmt"
	"io"
	"path"
	"slices"

	"gopkg.in/yaml.v3"

	"apicompat/internal/diag"
	"apicompat/internal/element"
	"apicompat/internal/problem"
)

// IgnoreRule suppresses problems of Code on elements whose identity
// (p.T#m, not the display form p.T#m()) matches the Identity glob; an empty
// Identity matches everything.
type IgnoreRule struct {
	Code          problem.Code
	Identity      string
	Justification string
}

// Suppression is one audit log record.
type Suppression struct {
	Code          problem.Code `yaml:"code"`
	Identity      string       `yaml:"identity"`
	Rule          string       `yaml:"rule,omitempty"`
	Justification string       `yaml:"justification,omitempty"`
}

// Ignore drops problems matched by a rule. Suppressions can be written to an
// audit log, a YAML document stream owned by the transform until Close.
type Ignore struct {
	rules    []IgnoreRule
	hits     []int
	codes    []problem.Code
	log      io.WriteCloser
	enc      *yaml.Encoder
	reporter diag.Reporter
}

// IgnoreOption configures Ignore.
type IgnoreOption func(*Ignore)

// WithAuditLog writes every suppression to w; Close closes w.
func WithAuditLog(w io.WriteCloser) IgnoreOption {
	return func(i *Ignore) {
		i.log = w
		i.enc = yaml.NewEncoder(w)
	}
}

// WithUnusedReport makes Close report rules that never matched.
func WithUnusedReport(r diag.Reporter) IgnoreOption {
	return func(i *Ignore) { i.reporter = r }
}

// NewIgnore validates rules and their globs.
func NewIgnore(rules []IgnoreRule, opts ...IgnoreOption) (*Ignore, error) {
	i := &Ignore{rules: slices.Clone(rules), hits: make([]int, len(rules))}
	for _, r := range rules {
		if r.Code == "" {
			return nil, fmt.Errorf("ignore: empty code")
		}
		if _, err := path.Match(r.Identity, ""); err != nil {
			return nil, fmt.Errorf("ignore %s: bad identity pattern %q: %w", r.Code, r.Identity, err)
		}
		if !slices.Contains(i.codes, r.Code) {
			i.codes = append(i.codes, r.Code)
		}
	}
	slices.Sort(i.codes)
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

func (i *Ignore) Name() string          { return "ignore" }
func (i *Ignore) Codes() []problem.Code { return slices.Clone(i.codes) }

func (i *Ignore) Transform(old, new *element.Element, p problem.Problem) (Outcome, error) {
	if !slices.Contains(i.codes, p.Code()) {
		return Keep(p), nil
	}
	identity := identityOf(old, new)
	for ri, r := range i.rules {
		if r.Code != p.Code() {
			continue
		}
		if r.Identity != "" {
			if ok, _ := path.Match(r.Identity, identity); !ok {
				continue
			}
		}
		i.hits[ri]++
		if i.enc != nil {
			rec := Suppression{Code: p.Code(), Identity: identity, Rule: r.Identity, Justification: r.Justification}
			if err := i.enc.Encode(rec); err != nil {
				return Outcome{}, fmt.Errorf("audit log: %w", err)
			}
		}
		return Drop(), nil
	}
	return Keep(p), nil
}

// Hits returns how many problems each rule suppressed, in rule order.
func (i *Ignore) Hits() []int { return slices.Clone(i.hits) }

// Close flushes and closes the audit log.
func (i *Ignore) Close() error {
	if i.reporter != nil {
		for ri, r := range i.rules {
			if i.hits[ri] == 0 {
				diag.ReportInfo(i.reporter, diag.ConfigUnusedIgnore, diag.Location{Identity: r.Identity},
					fmt.Sprintf("ignore rule for %s matched nothing", r.Code)).Emit()
			}
		}
	}
	if i.log == nil {
		return nil
	}
	err := i.enc.Close()
	err = errors.Join(err, i.log.Close())
	i.log, i.enc = nil, nil
	return err
}

func identityOf(old, new *element.Element) string {
	if new != nil {
		return new.Identity()
	}
	if old != nil {
		return old.Identity()
	}
	return ""
}
