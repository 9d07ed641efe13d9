// Command compare diffs a grouped record against a baseline grouped
// record (typically a hand-verified extraction of the same document)
// and writes the comparison report as JSON.
//
// Usage: compare [-out comparison.json] [-epsilon 1e-9] grouped.json baseline.json
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"finstmt/internal/artifact"
	"finstmt/internal/domain"
	"finstmt/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outPath := flag.String("out", "comparison.json", "output path for the comparison report")
	epsilon := flag.Float64("epsilon", validator.DefaultEpsilon, "equality threshold for the accuracy metric")
	flag.Parse()
	if flag.NArg() != 2 {
		return fmt.Errorf("usage: %s [flags] grouped.json baseline.json", filepath.Base(os.Args[0]))
	}

	var ours, baseline domain.GroupedRecord
	if err := artifact.ReadJSON(flag.Arg(0), &ours); err != nil {
		return err
	}
	if err := artifact.ReadJSON(flag.Arg(1), &baseline); err != nil {
		return err
	}

	report := validator.Compare(&ours, &baseline, *epsilon)
	if err := artifact.WriteJSON(*outPath, report); err != nil {
		return err
	}

	log.Printf("%d/%d fields overlap (missing rate %.3f)", report.OverlapCount,
		report.FieldCountOurs+report.FieldCountBaseline-report.OverlapCount, report.MissingRate)
	log.Printf("accuracy %.1f%%, MAE %.4f, MAPE %.2f%% (%d samples), RMSE %.4f, R2 %.4f over %d samples",
		report.Metrics.AccuracyPct, report.Metrics.MAE, report.Metrics.MAPEPct,
		report.Metrics.MAPESamples, report.Metrics.RMSE, report.Metrics.R2, report.Metrics.Samples)
	return nil
}
