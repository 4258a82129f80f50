package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	formweave "github.com/formweave/formweave"
	"github.com/formweave/formweave/internal/logging"
	"github.com/formweave/formweave/pkg/adapters/file"
)

var rootCmd = &cobra.Command{
	Use:   "formweave",
	Short: "Formweave derives documents from declarative form definitions",
	Long: `Formweave evaluates form definitions - element trees with visibility
rules, computed values and validation rules - against submissions, and
flattens them into printable row sequences.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing form definitions")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

// newEngine builds an Engine wired to the --dir definition directory.
func newEngine(cmd *cobra.Command) (*formweave.Engine, error) {
	dir, _ := cmd.Flags().GetString("dir")
	level, _ := cmd.Flags().GetString("log-level")

	loader, err := file.New(dir)
	if err != nil {
		return nil, err
	}
	return formweave.New(
		formweave.WithLoader(loader),
		formweave.WithLogger(logging.New(logging.ParseLevel(level))),
	), nil
}
