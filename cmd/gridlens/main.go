package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var outputFormat string

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridlens",
		Short: "GridLens grid visualization CLI",
		Long:  `GridLens renders electrical-grid topology with simulation result overlays and reconciles two frameworks' results into comparable series.`,
	}

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json)")

	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
