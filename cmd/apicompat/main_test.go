package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"apicompat/internal/driver"
	"apicompat/internal/element"
	"apicompat/internal/problem"
)

func pkg(children ...*element.Element) *element.Element {
	return element.NewRoot(element.NewPackage("p", element.WithChildren(children...)))
}

func writeSnapshot(t *testing.T, path, version string, root *element.Element) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := element.Encode(f, &element.Tree{API: "acme", Version: version, Root: root}, element.FormatMsgpack); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

// fixture writes a default config plus a visibility-increase pair and a
// removal pair into a temp dir.
func fixture(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	var out, errOut bytes.Buffer
	if err := execute(context.Background(), []string{"init", dir}, &out, &errOut); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfgPath = filepath.Join(dir, "apicompat.toml")

	writeSnapshot(t, filepath.Join(dir, "vis-old.mp"), "1.0",
		pkg(element.NewType("p.Foo", element.TypeClass, element.WithModifiers(element.Mods(element.VisPackage)))))
	writeSnapshot(t, filepath.Join(dir, "vis-new.mp"), "1.1",
		pkg(element.NewType("p.Foo", element.TypeClass)))
	writeSnapshot(t, filepath.Join(dir, "rm-old.mp"), "1.0",
		pkg(element.NewType("p.Gone", element.TypeClass)))
	writeSnapshot(t, filepath.Join(dir, "rm-new.mp"), "1.1", pkg())
	return dir, cfgPath
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func exitCode(err error) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return -1
}

func TestCheckShortNonBreakingPasses(t *testing.T) {
	dir, cfg := fixture(t)
	out, _, err := run(t, "--color", "off", "check", "--config", cfg, "--format", "short",
		filepath.Join(dir, "vis-old.mp"), filepath.Join(dir, "vis-new.mp"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := "p.Foo CLASS_VISIBILITY_INCREASED binary=non-breaking source=non-breaking semantic=equivalent\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestCheckFailOn(t *testing.T) {
	dir, cfg := fixture(t)
	oldPath, newPath := filepath.Join(dir, "rm-old.mp"), filepath.Join(dir, "rm-new.mp")

	_, _, err := run(t, "check", "--config", cfg, "--format", "short", oldPath, newPath)
	if code := exitCode(err); code != 1 {
		t.Fatalf("breaking removal: exit code %d (err %v), want 1", code, err)
	}

	_, _, err = run(t, "check", "--config", cfg, "--format", "short", "--fail-on", "never", oldPath, newPath)
	if err != nil {
		t.Fatalf("--fail-on never: %v", err)
	}

	visOld, visNew := filepath.Join(dir, "vis-old.mp"), filepath.Join(dir, "vis-new.mp")
	_, _, err = run(t, "check", "--config", cfg, "--format", "short", "--fail-on", "non-breaking", visOld, visNew)
	if code := exitCode(err); code != 1 {
		t.Fatalf("--fail-on non-breaking: exit code %d (err %v), want 1", code, err)
	}

	_, _, err = run(t, "check", "--config", cfg, "--fail-on", "sometimes", visOld, visNew)
	if err == nil || exitCode(err) != -1 {
		t.Fatalf("invalid --fail-on should be a plain error, got %v", err)
	}
}

func TestCheckJSON(t *testing.T) {
	dir, cfg := fixture(t)
	out, _, err := run(t, "check", "--config", cfg, "--format", "json", "--locale", "ru",
		filepath.Join(dir, "vis-old.mp"), filepath.Join(dir, "vis-new.mp"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var payload struct {
		API      string `json:"api"`
		Count    int    `json:"count"`
		Problems []struct {
			Code string `json:"code"`
		} `json:"problems"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if payload.API != "acme" || payload.Count != 1 || payload.Problems[0].Code != string(problem.ClassVisibilityIncrease) {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCheckMissingSnapshot(t *testing.T) {
	dir, cfg := fixture(t)
	_, _, err := run(t, "check", "--config", cfg, filepath.Join(dir, "nope.mp"), filepath.Join(dir, "vis-new.mp"))
	if err == nil {
		t.Fatal("expected an error for a missing snapshot")
	}
	if exitCode(err) != -1 {
		t.Fatalf("missing snapshot must not map to the fail_on exit code: %v", err)
	}
}

func TestInitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := run(t, "init", dir); err != nil {
		t.Fatalf("first init: %v", err)
	}
	_, _, err := run(t, "init", dir)
	if err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("second init: got %v", err)
	}
}

func TestBatchShortAndCache(t *testing.T) {
	dir, cfg := fixture(t)
	manifest := filepath.Join(dir, "batch.toml")
	content := `
[[module]]
name = "vis"
old = "vis-old.mp"
new = "vis-new.mp"

[[module]]
name = "rm"
old = "rm-old.mp"
new = "rm-new.mp"
`
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(dir, "cache")

	out, _, err := run(t, "batch", "--config", cfg, "--ui", "off", "--format", "short", "--cache", cacheDir, manifest)
	if code := exitCode(err); code != 1 {
		t.Fatalf("exit code %d (err %v), want 1 for the removal", code, err)
	}
	want := "vis: p.Foo CLASS_VISIBILITY_INCREASED binary=non-breaking source=non-breaking semantic=equivalent\n" +
		"rm: p.Gone CLASS_REMOVED binary=breaking source=breaking semantic=equivalent\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}

	out, _, err = run(t, "--color", "off", "batch", "--config", cfg, "--ui", "off", "--fail-on", "never", "--cache", cacheDir, manifest)
	if err != nil {
		t.Fatalf("cached batch: %v", err)
	}
	if !strings.Contains(out, "== vis (cached) ==") || !strings.Contains(out, "== rm (cached) ==") {
		t.Fatalf("expected cached modules in %q", out)
	}
}

func TestBatchReportsFailedModules(t *testing.T) {
	dir, cfg := fixture(t)
	manifest := filepath.Join(dir, "batch.toml")
	content := `
[[module]]
name = "broken"
old = "missing.mp"
new = "vis-new.mp"
`
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	_, errOut, err := run(t, "batch", "--config", cfg, "--ui", "off", manifest)
	if err == nil || !strings.Contains(err.Error(), "1 of 1 modules failed") {
		t.Fatalf("got %v", err)
	}
	if !strings.HasPrefix(errOut, "broken: ") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestBatchExit(t *testing.T) {
	br := problem.Breaking
	if err := batchExit(nil, &br); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	results := []driver.JobResult{{Job: driver.Job{Name: "a"}, Err: errors.New("boom")}}
	if err := batchExit(results, &br); err == nil || exitCode(err) != -1 {
		t.Fatalf("module error: got %v", err)
	}
}

func TestCodesJSONListsCatalog(t *testing.T) {
	out, _, err := run(t, "codes", "--format", "json")
	if err != nil {
		t.Fatalf("codes: %v", err)
	}
	var items []codeJSON
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != len(problem.Catalog()) {
		t.Fatalf("got %d codes, want %d", len(items), len(problem.Catalog()))
	}
	for _, it := range items {
		if len(it.Classification) != 3 {
			t.Fatalf("%s: classification %v", it.Code, it.Classification)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := run(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var p versionPayload
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if p.Tool != "apicompat" || p.Version == "" || p.GitCommit == "" {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected an error")
	}
	if shouldUseTUI(uiModeAuto, &bytes.Buffer{}) {
		t.Fatal("a buffer is never a terminal")
	}
}

func TestTraceToStderr(t *testing.T) {
	dir, cfg := fixture(t)
	_, errOut, err := run(t, "--trace", "-", "--trace-level", "phase", "check", "--config", cfg, "--format", "short",
		filepath.Join(dir, "vis-old.mp"), filepath.Join(dir, "vis-new.mp"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(errOut, "analysis") {
		t.Fatalf("expected trace output on stderr, got %q", errOut)
	}
}
