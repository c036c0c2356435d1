// Package config loads apicompat.toml (or its YAML twin).
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"apicompat/internal/diag"
	"apicompat/internal/problem"
	"apicompat/internal/transform"
)

// FileName is the configuration file looked up by Find.
const FileName = "apicompat.toml"

// Config is the read-only configuration of a run.
type Config struct {
	// Locale only affects rendered problem text.
	Locale language.Tag
	// Checks disables or enables checks by name or single problem codes by
	// code; absent means enabled.
	Checks     map[string]bool
	Transforms Transforms
	Reclassify []transform.Override
	Ignore     []transform.IgnoreRule
	// FailOn is the lowest severity that makes the CLI exit non-zero; nil
	// never fails.
	FailOn *problem.Severity
	// Path is the file the configuration was read from, empty for Default.
	Path string
}

// Transforms configures the transform chain.
type Transforms struct {
	Order     []string
	Disabled  []string
	IgnoreLog string
}

// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("unknown configuration format")

// Default enables every check and every built-in transform.
func Default() *Config {
	br := problem.Breaking
	return &Config{
		Locale: language.English,
		Checks: map[string]bool{},
		Transforms: Transforms{
			Order: transform.Builtins(),
		},
		FailOn: &br,
	}
}

// CheckEnabled reports whether the named check should run.
func (c *Config) CheckEnabled(name string) bool {
	enabled, ok := c.Checks[name]
	return !ok || enabled
}

// CodeEnabled reports whether problems with the given code are kept.
func (c *Config) CodeEnabled(code problem.Code) bool {
	enabled, ok := c.Checks[string(code)]
	return !ok || enabled
}

// TransformSettings converts the configuration for transform.Build.
func (c *Config) TransformSettings(r diag.Reporter) transform.Settings {
	return transform.Settings{
		Reclassify: slices.Clone(c.Reclassify),
		Ignore:     slices.Clone(c.Ignore),
		IgnoreLog:  c.Transforms.IgnoreLog,
		Reporter:   r,
	}
}

// Validate warns about names the configuration mentions but nothing knows.
func (c *Config) Validate(knownChecks []string, r diag.Reporter) {
	loc := diag.Location{Identity: c.Path}
	for _, name := range sortedKeys(c.Checks) {
		if slices.Contains(knownChecks, name) {
			continue
		}
		// ключ может быть кодом проблемы, а не именем проверки
		if _, ok := problem.Lookup(problem.Code(name)); !ok {
			diag.ReportWarning(r, diag.ConfigUnknownCheck, loc, fmt.Sprintf("unknown check %q", name)).Emit()
		}
	}
	for _, o := range c.Reclassify {
		if _, ok := problem.Lookup(o.Code); !ok {
			diag.ReportWarning(r, diag.ConfigUnknownCode, loc, fmt.Sprintf("reclassify: unknown problem code %s", o.Code)).Emit()
		}
	}
	for _, ig := range c.Ignore {
		if _, ok := problem.Lookup(ig.Code); !ok {
			diag.ReportWarning(r, diag.ConfigUnknownCode, loc, fmt.Sprintf("ignore: unknown problem code %s", ig.Code)).Emit()
		}
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads a TOML or YAML configuration, chosen by extension.
func Load(path string) (*Config, error) {
	var (
		f       file
		defined func(keys ...string) bool
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, &f)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
		defined = meta.IsDefined
	case ".yaml", ".yml":
		r, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		// пустой файл допустим
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
		defined = f.yamlDefined
	default:
		return nil, fmt.Errorf("%s: %w (want .toml, .yaml or .yml)", path, ErrUnknownFormat)
	}
	cfg, err := f.resolve(defined)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadOrDefault loads path, or the nearest FileName above dir when path is
// empty, or falls back to Default.
func LoadOrDefault(path, dir string) (*Config, error) {
	if path == "" {
		found, ok, err := Find(dir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return Default(), nil
		}
		path = found
	}
	return Load(path)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	f := file{
		Locale: c.Locale.String(),
		FailOn: "never",
		Checks: c.Checks,
		Transforms: transformsFile{
			Order:     c.Transforms.Order,
			Disabled:  c.Transforms.Disabled,
			IgnoreLog: c.Transforms.IgnoreLog,
		},
	}
	if c.FailOn != nil {
		f.FailOn = c.FailOn.String()
	}
	for _, o := range c.Reclassify {
		f.Reclassify = append(f.Reclassify, reclassifyFile{
			Code:          string(o.Code),
			Binary:        severityText(o.Binary),
			Source:        severityText(o.Source),
			Semantic:      severityText(o.Semantic),
			Justification: o.Justification,
		})
	}
	for _, ig := range c.Ignore {
		f.Ignore = append(f.Ignore, ignoreFile{Code: string(ig.Code), Identity: ig.Identity, Justification: ig.Justification})
	}
	return toml.NewEncoder(w).Encode(f)
}

func severityText(s *problem.Severity) string {
	if s == nil {
		return ""
	}
	return s.String()
}
