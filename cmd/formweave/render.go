package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/formweave/formweave/pkg/domain"
)

var renderCmd = &cobra.Command{
	Use:   "render <definition>",
	Short: "Flatten a definition into its printable rows",
	Long: `Renders the row sequence of a definition. With --values, rows reflect
the submission (data mode); with --template, a blank template is
rendered instead. Use --json for machine-readable output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runRender(cmd, args[0])
	},
}

func init() {
	renderCmd.Flags().String("values", "", "JSON file holding the submission values")
	renderCmd.Flags().Bool("template", false, "Render a blank template instead of a submission")
	renderCmd.Flags().Bool("json", false, "Emit rows as JSON")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, name string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}
	root, err := engine.LoadDefinition(cmd.Context(), name)
	if err != nil {
		return err
	}

	template, _ := cmd.Flags().GetBool("template")
	valuesPath, _ := cmd.Flags().GetString("values")
	if template && valuesPath != "" {
		return fmt.Errorf("--template and --values are mutually exclusive")
	}

	var rows []domain.Row
	if template {
		rows, err = engine.TemplateRows(cmd.Context(), root)
	} else {
		var values map[string]any
		if valuesPath != "" {
			if values, err = readValues(valuesPath); err != nil {
				return err
			}
		}
		rows, err = engine.Rows(cmd.Context(), root, values)
	}
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return writeRowsJSON(rows)
	}
	writeRowsText(rows)
	return nil
}

// writeRowsJSON emits one envelope per row, tagged with its kind.
func writeRowsJSON(rows []domain.Row) error {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		envelope := map[string]any{}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return err
		}
		envelope["kind"] = row.Kind()
		out = append(out, envelope)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeRowsText(rows []domain.Row) {
	for _, row := range rows {
		switch r := row.(type) {
		case domain.Headline:
			fmt.Printf("%s %s\n", strings.Repeat("#", r.Level), r.Text)
		case domain.Value:
			fmt.Printf("%s: %s\n", r.Label, r.Text)
		case domain.Table:
			fmt.Println(strings.Join(r.Headers, " | "))
			for _, cells := range r.Rows {
				fmt.Println(strings.Join(cells, " | "))
			}
		}
	}
}
