// Package export renders grouped records as CSV and XLSX files for
// review outside the pipeline. Exports are flat projections of the
// grouped artifact; nothing here feeds back into validation.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"finstmt/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Bucket",
	"Name",
	"Key",
	"Current Year",
	"Previous Year",
	"Source Page",
	"Source Section",
}

// Writer wraps csv.Writer for exporting grouped records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecord writes one row per line item, canonical bucket order,
// extraction order within each bucket.
func (w *Writer) WriteRecord(rec *domain.GroupedRecord) error {
	for _, item := range rec.Items() {
		if err := w.csv.Write(itemToRow(item)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// itemToRow converts a single line item to a row. Missing year values
// render as empty cells, never as zero.
func itemToRow(item domain.GroupedLineItem) []string {
	row := make([]string, len(columns))
	row[0] = item.Bucket.Label()
	row[1] = item.Name
	row[2] = item.Key
	row[3] = formatValue(item.CurrentYear)
	row[4] = formatValue(item.PreviousYear)
	row[5] = strconv.Itoa(item.SourcePage)
	row[6] = item.SourceSection
	return row
}

func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
