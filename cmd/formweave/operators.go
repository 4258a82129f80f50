package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/formweave/formweave/pkg/nocode"
)

var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "List the registered no-code operators",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PACKAGE\tOPERATOR\tARITY\tDESCRIPTION")
		for _, op := range nocode.Catalog() {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", op.Package, op.ID, op.Arity(), op.Description)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(operatorsCmd)
}
