// Command validate runs the balance check on a grouped record and
// writes the report as JSON.
//
// Usage: validate [-config config.yaml] [-out balance.json] grouped.json
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"finstmt/internal/artifact"
	"finstmt/internal/config"
	"finstmt/internal/domain"
	"finstmt/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "", "optional YAML config file")
	outPath := flag.String("out", "balance.json", "output path for the balance report")
	flag.Parse()
	if flag.NArg() != 1 {
		return fmt.Errorf("usage: %s [flags] grouped.json", filepath.Base(os.Args[0]))
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var record domain.GroupedRecord
	if err := artifact.ReadJSON(flag.Arg(0), &record); err != nil {
		return err
	}

	report := validator.ValidateBalance(&record, cfg.Validation.ToleranceRatio)
	if err := artifact.WriteJSON(*outPath, report); err != nil {
		return err
	}

	log.Printf("assets %.2f, liabilities %.2f, equity %.2f, difference %.2f (tolerance %.2f)",
		report.TotalAssets, report.TotalLiabilities, report.TotalEquity, report.Difference, report.Tolerance)
	if report.MissingCount > 0 {
		log.Printf("%d line items missing current-year values", report.MissingCount)
	}
	if !report.Balanced {
		log.Printf("balance check FAILED, see %s", *outPath)
	}
	return nil
}
