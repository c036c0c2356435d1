package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"apicompat/internal/config"
	"apicompat/internal/message"
	"apicompat/internal/problem"
	"apicompat/internal/report"
)

// rendererCacheSize bounds the per-locale printer cache of one process.
const rendererCacheSize = 8

// addReportFlags registers the flags shared by check and batch.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to apicompat.toml (default: nearest one above the working directory)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	cmd.Flags().String("fail-on", "", "override fail_on (breaking|potentially-breaking|non-breaking|never)")
	cmd.Flags().String("locale", "", "override the configured locale (en|ru)")
	cmd.Flags().Bool("with-diagnostics", false, "include diagnostics in the output")
	cmd.Flags().Bool("with-classification", false, "show per-axis classification in pretty output")
	cmd.Flags().Bool("timings", false, "show timing information")
	cmd.Flags().Int("max-diagnostics", 0, "maximum number of diagnostics to keep per run (0 - default)")
	cmd.Flags().Int("width", 60, "maximum width of the identity column in pretty output (0 - unlimited)")
}

// loadConfig reads --config, or the nearest config file above dir.
func loadConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.LoadOrDefault(path, dir)
	if err != nil {
		return nil, err
	}

	locale, err := cmd.Flags().GetString("locale")
	if err != nil {
		return nil, fmt.Errorf("failed to get locale flag: %w", err)
	}
	if locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid --locale %q: %w", locale, err)
		}
		cfg.Locale = tag
	}
	return cfg, nil
}

// failThreshold resolves --fail-on against the configured fail_on.
func failThreshold(cmd *cobra.Command, cfg *config.Config) (*problem.Severity, error) {
	value, err := cmd.Flags().GetString("fail-on")
	if err != nil {
		return nil, fmt.Errorf("failed to get fail-on flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return cfg.FailOn, nil
	case "never", "none":
		return nil, nil
	}
	sev, err := problem.ParseSeverity(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --fail-on: %w", err)
	}
	return &sev, nil
}

type reportSetup struct {
	format report.Format
	opts   report.Options
}

// reportOptions collects formatter settings from flags and cfg.
func reportOptions(cmd *cobra.Command, cfg *config.Config, out io.Writer) (reportSetup, error) {
	flags := cmd.Flags()
	formatStr, err := flags.GetString("format")
	if err != nil {
		return reportSetup{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return reportSetup{}, err
	}
	withDiags, err := flags.GetBool("with-diagnostics")
	if err != nil {
		return reportSetup{}, fmt.Errorf("failed to get with-diagnostics flag: %w", err)
	}
	withClass, err := flags.GetBool("with-classification")
	if err != nil {
		return reportSetup{}, fmt.Errorf("failed to get with-classification flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return reportSetup{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	width, err := flags.GetInt("width")
	if err != nil {
		return reportSetup{}, fmt.Errorf("failed to get width flag: %w", err)
	}
	colorOn, err := useColor(cmd, out)
	if err != nil {
		return reportSetup{}, err
	}
	renderer, err := message.NewRenderer(rendererCacheSize)
	if err != nil {
		return reportSetup{}, fmt.Errorf("failed to build message catalog: %w", err)
	}

	return reportSetup{
		format: format,
		opts: report.Options{
			Renderer: renderer,
			Pretty: report.PrettyOpts{
				Color:          colorOn,
				Locale:         cfg.Locale,
				Width:          width,
				Classification: withClass,
				Diagnostics:    withDiags,
				Timings:        timings,
			},
			JSON: report.JSONOpts{
				Locale:      cfg.Locale,
				Diagnostics: withDiags,
				Stats:       true,
			},
		},
	}, nil
}
