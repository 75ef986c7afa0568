package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/tablescan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.QualityReport) (int, error) {
	return w.WriteSummary(model.NewSummary(report))
}

// WriteSummary outputs the summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeChecks(md, summary)
	w.writeInferences(md, summary)
	w.writeSeveritySummary(md, summary)
	w.writeFindings(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with dataset information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.Summary) {
	md.H1("Tablescan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + summary.Source + "`"},
			{"Analyzed At", summary.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"Rows", strconv.Itoa(summary.RowCount)},
			{"Columns", strconv.Itoa(summary.ColumnCount)},
			{"Status", w.getStatusText(summary)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on summary state.
func (w *MarkdownWriter) getStatusText(summary *model.Summary) string {
	if summary.Error != "" {
		return "❌ Error - " + summary.Error
	}
	if summary.Passed() {
		return "✅ Passed"
	}
	return "⚠️ Issues Found"
}

// writeChecks writes the per-check outcome table.
func (w *MarkdownWriter) writeChecks(md *markdown.Markdown, summary *model.Summary) {
	if len(summary.Checks) == 0 {
		return
	}

	md.H2("Checks")
	md.PlainText("")

	rows := make([][]string, len(summary.Checks))
	for i, check := range summary.Checks {
		status := "✅"
		if !check.Passed {
			status = "❌"
		}
		rows[i] = []string{check.Name, status, strconv.Itoa(check.Defects)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Check", "Status", "Defects"},
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainTextf("Success rate: **%.0f%%**", summary.SuccessRate()*100)
	md.PlainText("")
}

// writeInferences writes the inferred column type table.
func (w *MarkdownWriter) writeInferences(md *markdown.Markdown, summary *model.Summary) {
	if len(summary.Inferences) == 0 {
		return
	}

	md.H2("Column Types")
	md.PlainText("")

	rows := make([][]string, len(summary.Inferences))
	for i, inf := range summary.Inferences {
		rows[i] = []string{
			inf.Column,
			"`" + inf.Type.String() + "`",
			fmt.Sprintf("%.2f", inf.Confidence),
			strconv.Itoa(inf.NonMissing),
			strconv.Itoa(inf.Missing),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Column", "Inferred Type", "Confidence", "Present", "Missing"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSeveritySummary writes the severity summary section.
func (w *MarkdownWriter) writeSeveritySummary(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(summary.CriticalCount)},
			{"🟠 High", strconv.Itoa(summary.HighCount)},
			{"🟡 Medium", strconv.Itoa(summary.MediumCount)},
			{"🔵 Low", strconv.Itoa(summary.LowCount)},
			{"⚪ Info", strconv.Itoa(summary.InfoCount)},
			{"**Total**", "**" + strconv.Itoa(summary.TotalFindings()) + "**"},
		},
	})
	md.PlainText("")

	if summary.HasFindings() {
		w.writePieChart(md, summary)
	}

	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	if summary.CriticalCount > 0 {
		chart.LabelAndIntValue("Critical", uint64(summary.CriticalCount))
	}
	if summary.HighCount > 0 {
		chart.LabelAndIntValue("High", uint64(summary.HighCount))
	}
	if summary.MediumCount > 0 {
		chart.LabelAndIntValue("Medium", uint64(summary.MediumCount))
	}
	if summary.LowCount > 0 {
		chart.LabelAndIntValue("Low", uint64(summary.LowCount))
	}
	if summary.InfoCount > 0 {
		chart.LabelAndIntValue("Info", uint64(summary.InfoCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	switch {
	case summary.CriticalCount > 0:
		md.Cautionf(
			"Critical data defects detected! %d critical finding(s) make the dataset unreliable as-is.",
			summary.CriticalCount,
		)
	case summary.HighCount > 0:
		md.Warningf(
			"High severity defects detected. %d finding(s) contradict the established column types.",
			summary.HighCount,
		)
	case summary.MediumCount > 0:
		md.Importantf(
			"Medium severity issues found. %d finding(s) may affect downstream processing.",
			summary.MediumCount,
		)
	case summary.TotalFindings() > 0:
		md.Note("Only low severity and informational findings detected.")
	default:
		md.Tip("No data quality issues detected.")
	}
	md.PlainText("")
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Findings")
	md.PlainText("")

	if !summary.HasFindings() {
		md.PlainText("No data quality findings.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityCritical, "### 🔴 Critical"},
		{model.SeverityHigh, "### 🟠 High"},
		{model.SeverityMedium, "### 🟡 Medium"},
		{model.SeverityLow, "### 🔵 Low"},
		{model.SeverityInfo, "### ⚪ Info"},
	}

	for _, sev := range severities {
		findings := summary.GetFindingsBySeverity(sev.level)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	headers := []string{"Title", "Location", "Value", "Detail"}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		location := f.Column
		if f.Row >= 0 && f.Column != "" {
			location = fmt.Sprintf("%s, row %d", f.Column, f.Row)
		}
		if location == "" {
			location = "-"
		}
		value := f.Value
		if value == "" {
			value = "-"
		}
		detail := f.Description
		if detail == "" {
			detail = "-"
		}

		rows[i] = []string{
			f.Title,
			truncateString(location, 40),
			truncateString(value, 50),
			truncateString(detail, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")

	// Add remediation guidance for all findings
	for _, f := range findings {
		if f.Recommendation != "" {
			md.Details(f.Title, f.Recommendation)
		}
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [tablescan](https://github.com/nao1215/tablescan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
