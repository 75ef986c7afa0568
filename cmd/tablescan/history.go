package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/tablescan/internal/config"
	"github.com/nao1215/tablescan/internal/database"
	"github.com/nao1215/tablescan/internal/report"
)

// NewHistoryCmd creates the history command.
// This command browses quality reports stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [file]",
		Short: "Browse stored quality reports",
		Long: `History displays quality reports saved by previous check runs.

Reports are stored in a local SQLite database so that data quality can be
tracked over time. Each entry records the analyzed dimensions, the defect
count, and the per-severity finding summary.

Examples:
  # List all analyzed sources in the database
  tablescan history

  # List stored reports for one source
  tablescan history patients.csv

  # Print a stored report by ID (use the listing to find IDs)
  tablescan history --id 5

  # Print a stored report as JSON
  tablescan history --id 5 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("id", "i", 0,
		"Print the stored report with this ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output the report in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	reportID, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Use XDG data directory for database. The database must already exist;
	// history never creates one, a missing database just means nothing was
	// saved yet.
	dbDir := config.XDGDataDir()
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no stored reports (run 'tablescan check' first): %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Print a single report by ID
	if reportID > 0 {
		return printStoredReport(ctx, db, reportID, jsonOutput)
	}

	// List stored reports for one source
	if len(args) == 1 {
		return listReportHistory(ctx, db, args[0])
	}

	// No arguments: list all analyzed sources
	return listSources(ctx, db)
}

// listSources lists all sources that have reports in the database.
func listSources(ctx context.Context, db *database.HistoryDB) error {
	sources, err := db.ListSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		fmt.Println("No stored reports found in the database.")
		fmt.Println("\nUse 'tablescan check <file.csv>' to analyze a file.")
		return nil
	}

	fmt.Printf("Analyzed sources (%d):\n\n", len(sources))
	for _, source := range sources {
		fmt.Printf("  * %s\n", source)
	}
	fmt.Println("\nUse 'tablescan history <file>' to see stored reports for a source.")

	return nil
}

// listReportHistory lists all stored reports for a specific source.
func listReportHistory(ctx context.Context, db *database.HistoryDB, source string) error {
	reports, err := db.GetHistoryWithMetadata(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to get report history: %w", err)
	}

	if len(reports) == 0 {
		fmt.Printf("No stored reports found for %s\n", source)
		fmt.Println("\nUse 'tablescan check' to analyze this file.")
		return nil
	}

	fmt.Printf("Report history for %s (%d reports):\n\n", source, len(reports))
	fmt.Printf("  %-6s  %-20s  %-12s  %-8s  %s\n", "ID", "Date", "Dimensions", "Defects", "Findings")
	fmt.Println("  " + strings.Repeat("-", 76))

	for _, meta := range reports {
		fmt.Printf("  %-6d  %-20s  %-12s  %-8d  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%dx%d", meta.RowCount, meta.ColumnCount),
			meta.DefectCount,
			formatIssueSummary(meta.IssueSummary),
		)
	}

	fmt.Println("\nUse 'tablescan history --id <ID>' to print a stored report.")

	return nil
}

// formatIssueSummary renders per-severity counts, highest severity first.
// Severities with zero findings are omitted to keep the listing scannable.
func formatIssueSummary(summary map[string]int) string {
	if len(summary) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(summary))
	for _, severity := range []string{"critical", "high", "medium", "low", "info"} {
		if count := summary[severity]; count > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", severity, count))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// printStoredReport prints one stored report by its database ID.
func printStoredReport(ctx context.Context, db *database.HistoryDB, id int64, jsonOutput bool) error {
	qr, err := db.GetReportByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get report: %w", err)
	}
	if qr == nil {
		return errors.New("no report with that ID (use 'tablescan history <file>' to list IDs)")
	}

	if jsonOutput {
		writer := report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
		_, err = writer.Write(qr)
		return err
	}

	writer := report.NewSimpleWriter(os.Stdout)
	_, err = writer.Write(qr)
	return err
}
