package driver

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"apicompat/internal/config"
)

// Manifest lists the module pairs of a batch:
//
//	[[module]]
//	name = "core"
//	old  = "snapshots/core-1.0.mp"
//	new  = "snapshots/core-1.1.mp"
type Manifest struct {
	Modules []Job `toml:"module"`
	// Path is the manifest file; relative module paths are resolved against
	// its directory.
	Path string `toml:"-"`
}

// LoadManifest reads and validates a batch manifest.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m.Path = path

	dir := filepath.Dir(path)
	seen := make(map[string]bool, len(m.Modules))
	var errs []error
	for i := range m.Modules {
		j := &m.Modules[i]
		switch {
		case strings.TrimSpace(j.Name) == "":
			errs = append(errs, fmt.Errorf("module #%d: name is required", i+1))
			continue
		case seen[j.Name]:
			errs = append(errs, fmt.Errorf("module %q listed twice", j.Name))
		case j.Old == "" || j.New == "":
			errs = append(errs, fmt.Errorf("module %q: old and new are required", j.Name))
		}
		seen[j.Name] = true
		if j.Old != "" && !filepath.IsAbs(j.Old) {
			j.Old = filepath.Join(dir, j.Old)
		}
		if j.New != "" && !filepath.IsAbs(j.New) {
			j.New = filepath.Join(dir, j.New)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// ConfigDigest hashes the canonical TOML form of cfg, so equivalent
// configurations in TOML and YAML share cache entries.
func ConfigDigest(cfg *config.Config) (Digest, error) {
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		return Digest{}, err
	}
	return HashBytes(buf.Bytes()), nil
}
