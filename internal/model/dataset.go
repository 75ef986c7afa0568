package model

// StorageType is the physical type a column's values were stored as when the
// dataset was loaded, determined by a whole-column parse the way a dataframe
// library would assign a dtype. It is independent of the content-level type
// inference performed by the engine: the schema validator compares declared
// types against storage types, while the inference engine classifies content.
type StorageType string

const (
	// StorageInteger means every present value parses as a whole number.
	StorageInteger StorageType = "integer"

	// StorageFloat means every present value parses as a number and at least
	// one is not a whole number.
	StorageFloat StorageType = "float"

	// StorageBoolean means every present value is a boolean-vocabulary token.
	StorageBoolean StorageType = "boolean"

	// StorageDate means every present value matches the accepted date grammar.
	StorageDate StorageType = "date"

	// StorageString is the fallback for everything else, including columns
	// with no present values.
	StorageString StorageType = "string"
)

// Cell is a single value in a column: the 0-based row index, the raw textual
// representation exactly as entered, and a present/missing flag. A cell is
// missing if it is empty or one of the configured null tokens.
type Cell struct {
	// Row is the 0-based row index, stable across all checks.
	Row int `json:"row"`

	// Raw is the cell content as parsed from text, with no coercion applied.
	Raw string `json:"raw"`

	// Missing is true for empty cells and null tokens.
	Missing bool `json:"missing,omitempty"`
}

// Column is an ordered sequence of cells under one name.
type Column struct {
	// Name is the column header. Names are unique within a dataset;
	// duplicates are rejected at load time.
	Name string `json:"name"`

	// Cells holds the column values indexed by row position.
	Cells []Cell `json:"cells"`

	// Storage is the physical storage type detected at load time.
	Storage StorageType `json:"storage"`
}

// PresentCount returns the number of non-missing cells.
func (c *Column) PresentCount() int {
	n := 0
	for _, cell := range c.Cells {
		if !cell.Missing {
			n++
		}
	}
	return n
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	return len(c.Cells) - c.PresentCount()
}

// PresentValues returns the raw values of all non-missing cells in row order.
func (c *Column) PresentValues() []string {
	values := make([]string, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Missing {
			values = append(values, cell.Raw)
		}
	}
	return values
}

// Dataset is an ordered sequence of named columns of equal length.
// It is read-only input to the engine: no check mutates it.
type Dataset struct {
	// Source identifies where the data came from: a file path, or a
	// placeholder such as "stdin" for pasted input.
	Source string `json:"source"`

	// Columns holds the table columns in original order. The loader
	// guarantees equal length across columns.
	Columns []Column `json:"columns"`
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Cells)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// ColumnNames returns the column names in original order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the column with the given name, or false if absent.
func (d *Dataset) Column(name string) (*Column, bool) {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i], true
		}
	}
	return nil, false
}
