// Command extract runs the extraction stage: load a page text dump,
// segment it, send each chunk to the completion endpoint, and write the
// raw extraction record as JSON.
//
// Usage: extract [-config config.yaml] [-out raw.json] pages.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"

	"finstmt/internal/artifact"
	"finstmt/internal/config"
	"finstmt/internal/extract"
	"finstmt/internal/llm"
	"finstmt/internal/pagetext"
	"finstmt/internal/prompt"
	"finstmt/internal/segmenter"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "", "optional YAML config file")
	outPath := flag.String("out", "raw.json", "output path for the raw extraction record")
	flag.Parse()
	if flag.NArg() != 1 {
		return fmt.Errorf("usage: %s [flags] pages.txt", filepath.Base(os.Args[0]))
	}
	inPath := flag.Arg(0)

	// Local .env is a convenience; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ValidateForExtraction(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	pages, err := pagetext.LoadFile(inPath)
	if err != nil {
		return err
	}

	lib, err := prompt.LoadLibrary(cfg.Prompts.File)
	if err != nil {
		return err
	}
	tmpl, err := lib.Get(cfg.Prompts.Key)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := llm.NewClient(cfg.LLM)
	extractor := llm.NewExtractor(client, tmpl, cfg.LLM.Retries, cfg.LLM.BackoffFactor)
	orch := extract.NewOrchestrator(segmenter.New(cfg.Segmenter.ChunkSize), extractor, cfg.LLM.Model, cfg.Extraction.Policy())

	record, err := orch.Run(ctx, filepath.Base(inPath), pages)
	if err != nil {
		return err
	}

	if err := artifact.WriteJSON(*outPath, record); err != nil {
		return err
	}
	log.Printf("wrote %s: %d items, %d skipped chunks", *outPath, len(record.Items), len(record.SkippedChunks))
	return nil
}
