package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"apicompat/internal/problem"
)

type codeJSON struct {
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Classification map[string]string `json:"classification"`
}

func newCodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List every problem code with its default classification",
		Args:  cobra.NoArgs,
		RunE:  runCodes,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runCodes(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	infos := problem.Catalog()
	out := cmd.OutOrStdout()

	switch strings.ToLower(format) {
	case "json":
		items := make([]codeJSON, 0, len(infos))
		for _, info := range infos {
			class := make(map[string]string, len(problem.Axes))
			for _, a := range problem.Axes {
				class[a.String()] = info.Classification.Get(a).String()
			}
			items = append(items, codeJSON{
				Code:           string(info.Code),
				Name:           info.Name,
				Description:    info.Description,
				Classification: class,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "pretty":
		codeWidth, nameWidth := 0, 0
		for _, info := range infos {
			codeWidth = max(codeWidth, runewidth.StringWidth(string(info.Code)))
			nameWidth = max(nameWidth, runewidth.StringWidth(info.Name))
		}
		for _, info := range infos {
			fmt.Fprintf(out, "%s  %s  %s\n    %s\n",
				runewidth.FillRight(string(info.Code), codeWidth),
				runewidth.FillRight(info.Name, nameWidth),
				info.Classification,
				info.Description)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}
