package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"apicompat/internal/problem"
	"apicompat/internal/transform"
)

// file is the on-disk shape shared by TOML and YAML.
type file struct {
	Locale     string           `toml:"locale" yaml:"locale"`
	FailOn     string           `toml:"fail_on" yaml:"fail_on"`
	Checks     map[string]bool  `toml:"checks" yaml:"checks"`
	Transforms transformsFile   `toml:"transforms" yaml:"transforms"`
	Reclassify []reclassifyFile `toml:"reclassify" yaml:"reclassify"`
	Ignore     []ignoreFile     `toml:"ignore" yaml:"ignore"`
}

type transformsFile struct {
	Order     []string `toml:"order" yaml:"order"`
	Disabled  []string `toml:"disabled,omitempty" yaml:"disabled,omitempty"`
	IgnoreLog string   `toml:"ignore_log,omitempty" yaml:"ignore_log,omitempty"`
}

type reclassifyFile struct {
	Code          string `toml:"code" yaml:"code"`
	Binary        string `toml:"binary,omitempty" yaml:"binary,omitempty"`
	Source        string `toml:"source,omitempty" yaml:"source,omitempty"`
	Semantic      string `toml:"semantic,omitempty" yaml:"semantic,omitempty"`
	Justification string `toml:"justification,omitempty" yaml:"justification,omitempty"`
}

type ignoreFile struct {
	Code          string `toml:"code" yaml:"code"`
	Identity      string `toml:"identity,omitempty" yaml:"identity,omitempty"`
	Justification string `toml:"justification,omitempty" yaml:"justification,omitempty"`
}

// yamlDefined mirrors toml.MetaData.IsDefined for the keys resolve asks about.
func (f *file) yamlDefined(keys ...string) bool {
	if len(keys) != 1 {
		return false
	}
	switch keys[0] {
	case "locale":
		return f.Locale != ""
	case "fail_on":
		return f.FailOn != ""
	case "transforms":
		return f.Transforms.Order != nil || f.Transforms.Disabled != nil || f.Transforms.IgnoreLog != ""
	default:
		return false
	}
}

func (f *file) resolve(defined func(keys ...string) bool) (*Config, error) {
	cfg := Default()

	if defined("locale") {
		tag, err := language.Parse(strings.TrimSpace(f.Locale))
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", f.Locale, err)
		}
		cfg.Locale = tag
	}

	if defined("fail_on") {
		switch v := strings.ToLower(strings.TrimSpace(f.FailOn)); v {
		case "never", "none":
			cfg.FailOn = nil
		default:
			sev, err := problem.ParseSeverity(v)
			if err != nil {
				return nil, fmt.Errorf("fail_on: %w", err)
			}
			cfg.FailOn = &sev
		}
	}

	for name, enabled := range f.Checks {
		cfg.Checks[name] = enabled
	}

	if len(f.Transforms.Order) > 0 {
		cfg.Transforms.Order = f.Transforms.Order
	}
	cfg.Transforms.Disabled = f.Transforms.Disabled
	cfg.Transforms.IgnoreLog = f.Transforms.IgnoreLog
	for _, name := range append(append([]string(nil), cfg.Transforms.Order...), cfg.Transforms.Disabled...) {
		if !transform.Known(name) {
			return nil, fmt.Errorf("transforms: unknown transform %q", name)
		}
	}

	for i, r := range f.Reclassify {
		o := transform.Override{Code: problem.Code(strings.TrimSpace(r.Code)), Justification: r.Justification}
		if o.Code == "" {
			return nil, fmt.Errorf("reclassify[%d]: code is required", i)
		}
		var err error
		if o.Binary, err = optionalSeverity(r.Binary); err != nil {
			return nil, fmt.Errorf("reclassify[%d].binary: %w", i, err)
		}
		if o.Source, err = optionalSeverity(r.Source); err != nil {
			return nil, fmt.Errorf("reclassify[%d].source: %w", i, err)
		}
		if o.Semantic, err = optionalSeverity(r.Semantic); err != nil {
			return nil, fmt.Errorf("reclassify[%d].semantic: %w", i, err)
		}
		cfg.Reclassify = append(cfg.Reclassify, o)
	}

	for i, r := range f.Ignore {
		code := problem.Code(strings.TrimSpace(r.Code))
		if code == "" {
			return nil, fmt.Errorf("ignore[%d]: code is required", i)
		}
		cfg.Ignore = append(cfg.Ignore, transform.IgnoreRule{Code: code, Identity: r.Identity, Justification: r.Justification})
	}
	return cfg, nil
}

func optionalSeverity(s string) (*problem.Severity, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	sev, err := problem.ParseSeverity(s)
	if err != nil {
		return nil, err
	}
	return &sev, nil
}
