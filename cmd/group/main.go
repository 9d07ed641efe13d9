// Command group runs the grouping stage: classify the items of a raw
// extraction record into statement buckets and write the grouped record
// as JSON, optionally alongside CSV and XLSX exports.
//
// Usage: group [-out grouped.json] [-csv out.csv] [-xlsx out.xlsx] raw.json
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"finstmt/internal/artifact"
	"finstmt/internal/domain"
	"finstmt/internal/export"
	"finstmt/internal/grouper"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outPath := flag.String("out", "grouped.json", "output path for the grouped record")
	csvPath := flag.String("csv", "", "optional CSV export path")
	xlsxPath := flag.String("xlsx", "", "optional XLSX export path")
	flag.Parse()
	if flag.NArg() != 1 {
		return fmt.Errorf("usage: %s [flags] raw.json", filepath.Base(os.Args[0]))
	}

	var record domain.RawExtractionRecord
	if err := artifact.ReadJSON(flag.Arg(0), &record); err != nil {
		return err
	}

	grouped := grouper.Group(&record)
	if err := artifact.WriteJSON(*outPath, grouped); err != nil {
		return err
	}
	log.Printf("wrote %s: %d items across %d buckets", *outPath, len(grouped.Items()), len(domain.AllBuckets))

	if *csvPath != "" {
		if err := writeCSV(*csvPath, grouped); err != nil {
			return err
		}
		log.Printf("wrote %s", *csvPath)
	}
	if *xlsxPath != "" {
		if err := writeXLSX(*xlsxPath, grouped); err != nil {
			return err
		}
		log.Printf("wrote %s", *xlsxPath)
	}
	return nil
}

func writeCSV(path string, rec *domain.GroupedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(export.BOM); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w := export.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.WriteRecord(rec); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeXLSX(path string, rec *domain.GroupedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := export.WriteXLSX(f, rec); err != nil {
		return err
	}
	return f.Close()
}
