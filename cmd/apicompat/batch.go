package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"apicompat/internal/analysis"
	"apicompat/internal/checks"
	"apicompat/internal/driver"
	"apicompat/internal/observ"
	"apicompat/internal/problem"
	"apicompat/internal/report"
)

// cacheAuto selects the per-user cache directory.
const cacheAuto = "auto"

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <manifest>",
		Short: "Compare many module snapshot pairs in parallel",
		Long: `Compare every [[module]] pair listed in a TOML manifest. Jobs run in
parallel; a failing module does not stop the others. With --cache, results
are stored on disk keyed by the snapshot contents and the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}
	addReportFlags(cmd)
	cmd.Flags().Int("jobs", 0, "max parallel jobs (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().String("cache", "", "result cache directory (\"auto\" for the user cache dir, empty disables)")
	cmd.Flags().Bool("clear-cache", false, "drop every cached result before running")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest, err := driver.LoadManifest(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, filepath.Dir(manifest.Path))
	if err != nil {
		return err
	}
	threshold, err := failThreshold(cmd, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	setup, err := reportOptions(cmd, cfg, out)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	maxDiags, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}
	digest, err := driver.ConfigDigest(cfg)
	if err != nil {
		return err
	}

	a := analysis.New(cfg, checks.Registry(), analysis.Options{
		MaxDiagnostics: maxDiags,
		EnableTimings:  setup.opts.Pretty.Timings,
	})
	opts := driver.Options{
		Jobs:         jobs,
		Cache:        cache,
		ConfigDigest: digest,
	}

	var results []driver.JobResult
	if shouldUseTUI(mode, out) {
		results, err = runBatchWithUI(cmd.Context(), out, a, manifest.Modules, opts)
	} else {
		results, err = driver.AnalyzeAll(cmd.Context(), a, manifest.Modules, opts)
	}
	if err != nil {
		return err
	}

	if err := writeBatch(out, cmd.ErrOrStderr(), results, setup); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return batchExit(results, threshold)
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	dir, err := cmd.Flags().GetString("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	drop, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if dir == "" {
		return nil, nil
	}

	var cache *driver.DiskCache
	if dir == cacheAuto {
		cache, err = driver.OpenDiskCache("apicompat")
	} else {
		cache, err = driver.NewDiskCache(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	return cache, nil
}

// batchModuleJSON is one module of the JSON batch output.
type batchModuleJSON struct {
	Name   string         `json:"name"`
	Cached bool           `json:"cached,omitempty"`
	Error  string         `json:"error,omitempty"`
	Report *report.Output `json:"report,omitempty"`
}

func writeBatch(out, errOut io.Writer, results []driver.JobResult, setup reportSetup) error {
	if setup.format == report.FormatJSON {
		modules := make([]batchModuleJSON, 0, len(results))
		for _, jr := range results {
			m := batchModuleJSON{Name: jr.Job.Name, Cached: jr.Cached}
			if jr.Err != nil {
				m.Error = jr.Err.Error()
			} else {
				o := report.BuildOutput(jr.Result, setup.opts.Renderer, setup.opts.JSON)
				m.Report = &o
			}
			modules = append(modules, m)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(modules)
	}

	for i, jr := range results {
		if jr.Err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", jr.Job.Name, jr.Err)
			continue
		}
		switch setup.format {
		case report.FormatShort:
			// префикс модуля у каждой строки
			text := report.Short(jr.Result, setup.opts.Pretty.Diagnostics)
			if text == "" {
				continue
			}
			for line := range strings.SplitSeq(text, "\n") {
				if _, err := fmt.Fprintf(out, "%s: %s\n", jr.Job.Name, line); err != nil {
					return err
				}
			}
		default:
			if i > 0 {
				fmt.Fprintln(out)
			}
			suffix := ""
			if jr.Cached {
				suffix = " (cached)"
			}
			if _, err := fmt.Fprintf(out, "== %s%s ==\n", jr.Job.Name, suffix); err != nil {
				return err
			}
			if err := report.Write(out, setup.format, jr.Result, setup.opts); err != nil {
				return err
			}
		}
	}
	if setup.format == report.FormatPretty && setup.opts.Pretty.Timings {
		var reports []observ.Report
		for _, jr := range results {
			if jr.Err == nil && jr.Result.Timings != nil {
				reports = append(reports, *jr.Result.Timings)
			}
		}
		if len(reports) > 1 {
			fmt.Fprintf(out, "\nall modules, %s", observ.Merge(reports...).Summary())
		}
	}
	return nil
}

// batchExit turns per-module failures into the command error. Module
// errors take precedence over the fail_on exit status.
func batchExit(results []driver.JobResult, threshold *problem.Severity) error {
	failed, fails := 0, false
	for _, jr := range results {
		if jr.Err != nil {
			failed++
			continue
		}
		fails = fails || jr.Result.Fails(threshold)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d modules failed", failed, len(results))
	}
	if fails {
		return &exitError{code: 1}
	}
	return nil
}

