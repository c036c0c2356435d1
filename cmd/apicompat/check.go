package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apicompat/internal/analysis"
	"apicompat/internal/checks"
	"apicompat/internal/report"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <old> <new>",
		Short: "Compare two API snapshots",
		Long: `Compare two API snapshots (msgpack, YAML or JSON, chosen by extension)
and report every compatibility problem that survives the transform chain.
Exits with status 1 when a problem reaches the fail_on severity.`,
		Args: cobra.ExactArgs(2),
		RunE: runCheck,
	}
	addReportFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, ".")
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
	maxDiags, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	a := analysis.New(cfg, checks.Registry(), analysis.Options{
		MaxDiagnostics: maxDiags,
		EnableTimings:  setup.opts.Pretty.Timings,
	})
	res, err := a.RunFiles(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	if err := report.Write(out, setup.format, res, setup.opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if res.Fails(threshold) {
		return &exitError{code: 1}
	}
	return nil
}
