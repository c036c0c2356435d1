// Package report formats analysis results for people and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"apicompat/internal/analysis"
	"apicompat/internal/message"
)

// Format selects an output format.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatShort  Format = "short"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatPretty, FormatJSON, FormatShort}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatPretty, FormatJSON, FormatShort:
		return f, nil
	case "":
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected pretty|json|short)", s)
	}
}

// Options bundles what every formatter may need.
type Options struct {
	Pretty   PrettyOpts
	JSON     JSONOpts
	Renderer *message.Renderer
}

// Write renders res in format f.
func Write(w io.Writer, f Format, res *analysis.Result, opts Options) error {
	switch f {
	case FormatPretty:
		return Pretty(w, res, opts.Renderer, opts.Pretty)
	case FormatJSON:
		return JSON(w, res, opts.Renderer, opts.JSON)
	case FormatShort:
		out := Short(res, opts.Pretty.Diagnostics)
		if out == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, out)
		return err
	default:
		return fmt.Errorf("unknown format: %s", f)
	}
}
