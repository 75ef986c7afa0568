package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nao1215/tablescan/internal/inspect"
	"github.com/nao1215/tablescan/internal/model"
)

// Loader parses CSV input into a dataset. One Loader can serve any number of
// inputs; it holds only configuration.
type Loader struct {
	// classifier decides which cells are missing. It shares the null-token
	// vocabulary with the analysis engine so both agree on presence.
	classifier *inspect.Classifier

	// comma is the field delimiter.
	comma rune

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithNullTokens overrides the placeholders marked as missing at load time.
func WithNullTokens(tokens []string) Option {
	return func(l *Loader) {
		l.classifier = inspect.NewClassifier(inspect.WithNullTokens(tokens))
	}
}

// WithComma sets the field delimiter, e.g. '\t' for TSV input.
func WithComma(comma rune) Option {
	return func(l *Loader) {
		if comma != 0 {
			l.comma = comma
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader with comma-delimited input and default null
// tokens.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{comma: ','}
	for _, opt := range opts {
		opt(l)
	}
	if l.classifier == nil {
		l.classifier = inspect.NewClassifier()
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// LoadFile reads and parses one CSV file. The file path becomes the dataset
// source.
func (l *Loader) LoadFile(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return l.Parse(f, path)
}

// ParseString parses CSV content held in a string, e.g. pasted input.
func (l *Loader) ParseString(content, source string) (*model.Dataset, error) {
	return l.Parse(strings.NewReader(content), source)
}

// Parse reads CSV from r and materializes a dataset. A UTF-8 byte order mark
// is stripped if present. The first record is the header; header names must
// be unique after trimming. Every data row must have exactly as many fields
// as the header, otherwise the input is rejected as ragged.
func (l *Loader) Parse(r io.Reader, source string) (*model.Dataset, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.Comma = l.comma
	cr.TrimLeadingSpace = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}
	if len(header) == 0 || (len(header) == 1 && strings.TrimSpace(header[0]) == "") {
		return nil, fmt.Errorf("%s: %w", source, ErrNoColumns)
	}

	names := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s: %w: %q", source, ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
		names[i] = name
	}

	columns := make([]model.Column, len(names))
	for i, name := range names {
		columns[i] = model.Column{Name: name}
	}

	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("%s row %d: %w", source, row, ErrRaggedRow)
			}
			return nil, fmt.Errorf("failed to parse %s: %w", source, err)
		}
		for i, raw := range record {
			columns[i].Cells = append(columns[i].Cells, model.Cell{
				Row:     row,
				Raw:     raw,
				Missing: l.classifier.IsMissing(raw),
			})
		}
		row++
	}

	for i := range columns {
		columns[i].Storage = detectStorage(&columns[i])
	}

	ds := &model.Dataset{Source: source, Columns: columns}
	l.logger.Debug("dataset loaded",
		"source", source,
		"rows", ds.RowCount(),
		"columns", ds.ColumnCount(),
	)
	return ds, nil
}
