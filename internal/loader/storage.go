package loader

import (
	"strings"

	"github.com/nao1215/tablescan/internal/model"
	"github.com/nao1215/tablescan/internal/pattern"
)

// detectStorage assigns a column its physical storage type from a whole-column
// parse of the present values, the way a dataframe library assigns a dtype.
// The rules are strict: one non-conforming value demotes the column to
// string. Columns with no present values are string.
func detectStorage(col *model.Column) model.StorageType {
	allInteger := true
	allNumeric := true
	allBoolean := true
	allDate := true
	present := 0

	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		present++
		v := strings.TrimSpace(cell.Raw)

		if !pattern.IsInteger(v) {
			allInteger = false
		}
		if !pattern.IsNumeric(v) {
			allNumeric = false
		}
		if !pattern.IsBoolean(v) {
			allBoolean = false
		}
		if !pattern.IsDate(v) {
			allDate = false
		}
	}

	if present == 0 {
		return model.StorageString
	}

	switch {
	case allInteger:
		return model.StorageInteger
	case allNumeric:
		return model.StorageFloat
	case allBoolean:
		return model.StorageBoolean
	case allDate:
		return model.StorageDate
	default:
		return model.StorageString
	}
}
