// Package main provides the entry point for the tablescan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for tablescan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tablescan",
		Short: "Data quality inspection tool for tabular data",
		Long: `Tablescan is a data quality inspection tool for tabular data (CSV files).
It infers the dominant type of each column from cell content, flags values
that contradict the established types, and reports consistency issues such
as missing values, mixed types, and constant columns.

No schema is required: types are inferred from the data itself. A rules
file can optionally declare expected types and value ranges for stricter
validation.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
