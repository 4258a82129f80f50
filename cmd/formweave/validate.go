package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <definition>",
	Short: "Check a definition, or validate a submission against it",
	Long: `Without --values, runs the authoring-time checks: structural
invariants, operator existence and a dangling-reference lint.
With --values, validates the submission and reports the first failure.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runValidate(cmd, args[0])
	},
}

func init() {
	validateCmd.Flags().String("values", "", "JSON file holding the submission values")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, name string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}
	root, err := engine.LoadDefinition(cmd.Context(), name)
	if err != nil {
		return err
	}

	valuesPath, _ := cmd.Flags().GetString("values")
	if valuesPath == "" {
		report := engine.CheckDefinition(root)
		fmt.Print(report.Summary())
		if !report.OK() {
			return fmt.Errorf("definition %q has %d error(s)", name, len(report.Errors))
		}
		fmt.Printf("Definition %q is valid.\n", name)
		return nil
	}

	values, err := readValues(valuesPath)
	if err != nil {
		return err
	}
	failure, err := engine.Validate(cmd.Context(), root, values)
	if err != nil {
		return fmt.Errorf("validation aborted: %w", err)
	}
	if failure != nil {
		return fmt.Errorf("invalid submission: %s: %s", failure.Label, failure.Message)
	}
	fmt.Println("Submission is valid.")
	return nil
}

func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	return values, nil
}
