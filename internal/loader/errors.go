package loader

import "errors"

var (
	// ErrEmptyInput is returned when the input contains no header row.
	ErrEmptyInput = errors.New("input contains no data")

	// ErrNoColumns is returned when the header row has no fields.
	ErrNoColumns = errors.New("header row contains no columns")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrRaggedRow is returned when a data row has a different number of
	// fields than the header.
	ErrRaggedRow = errors.New("row has wrong number of fields")
)
