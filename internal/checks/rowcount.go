package checks

import "github.com/nao1215/tablescan/internal/model"

// DefaultMinRows is the default minimum number of data rows. Any non-empty
// dataset passes unless the caller raises the bar.
const DefaultMinRows = 1

// CheckRowCount verifies the dataset has at least minRows data rows.
// Non-positive minRows falls back to the default.
func CheckRowCount(ds *model.Dataset, minRows int) model.RowCountResult {
	if minRows <= 0 {
		minRows = DefaultMinRows
	}
	rows := ds.RowCount()
	return model.RowCountResult{
		Rows:    rows,
		MinRows: minRows,
		Passed:  rows >= minRows,
	}
}
