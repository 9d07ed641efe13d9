package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"finstmt/internal/domain"
)

// itemColumns is the per-bucket sheet header. Bucket is implicit in the
// sheet name, so the column is dropped relative to the CSV layout.
var itemColumns = []string{
	"Name",
	"Key",
	"Current Year",
	"Previous Year",
	"Source Page",
	"Source Section",
}

// WriteXLSX renders a grouped record as a workbook: one sheet per
// bucket in canonical order, plus a Totals sheet with the per-bucket
// current-year sums.
func WriteXLSX(w io.Writer, rec *domain.GroupedRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, b := range domain.AllBuckets {
		sheet := b.Label()
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("naming sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet, err)
		}
		if err := writeBucketSheet(f, sheet, rec.Buckets[b]); err != nil {
			return err
		}
	}

	if err := writeTotalsSheet(f, rec); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeBucketSheet(f *excelize.File, sheet string, items []domain.GroupedLineItem) error {
	for col, h := range itemColumns {
		if err := setCell(f, sheet, col+1, 1, h); err != nil {
			return err
		}
	}
	for i, item := range items {
		row := i + 2
		values := []any{item.Name, item.Key, cellValue(item.CurrentYear), cellValue(item.PreviousYear), item.SourcePage, item.SourceSection}
		for col, v := range values {
			if err := setCell(f, sheet, col+1, row, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTotalsSheet(f *excelize.File, rec *domain.GroupedRecord) error {
	const sheet = "Totals"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %q: %w", sheet, err)
	}
	if err := setCell(f, sheet, 1, 1, "Bucket"); err != nil {
		return err
	}
	if err := setCell(f, sheet, 2, 1, "Current Year Total"); err != nil {
		return err
	}
	for i, b := range domain.AllBuckets {
		row := i + 2
		if err := setCell(f, sheet, 1, row, b.Label()); err != nil {
			return err
		}
		if err := setCell(f, sheet, 2, row, rec.Totals[b]); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, v)
}

// cellValue keeps missing year values as blank cells rather than zero.
func cellValue(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
