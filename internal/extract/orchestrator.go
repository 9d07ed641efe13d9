// Package extract drives the extraction stage: segment the document,
// run each chunk through the extraction client, stamp provenance, and
// assemble the raw extraction record.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"finstmt/internal/domain"
	"finstmt/internal/pagetext"
	"finstmt/internal/port"
	"finstmt/internal/segmenter"
)

// Orchestrator assembles a RawExtractionRecord from page text.
type Orchestrator struct {
	seg       *segmenter.Segmenter
	extractor port.LineItemExtractor
	model     string
	policy    domain.SkipPolicy
}

// NewOrchestrator creates an Orchestrator. policy decides what happens
// to chunks whose retry budget is exhausted.
func NewOrchestrator(seg *segmenter.Segmenter, extractor port.LineItemExtractor, model string, policy domain.SkipPolicy) *Orchestrator {
	return &Orchestrator{
		seg:       seg,
		extractor: extractor,
		model:     model,
		policy:    policy,
	}
}

// Run processes all chunks of a document sequentially, in page order.
// Exhausted chunks are either recorded as skipped (default) or abort
// the run, per the configured policy; partial results stay usable.
func (o *Orchestrator) Run(ctx context.Context, sourceFile string, pages []pagetext.Page) (*domain.RawExtractionRecord, error) {
	chunks, err := o.seg.Segment(pages)
	if err != nil {
		return nil, fmt.Errorf("segmenting %s: %w", sourceFile, err)
	}

	record := &domain.RawExtractionRecord{
		RunID:       uuid.New(),
		SourceFile:  sourceFile,
		ExtractedAt: time.Now().UTC(),
		Model:       o.model,
		Sections:    sectionNames(chunks),
		Items:       []domain.RawLineItem{},
	}

	log.Printf("extract.Orchestrator: run %s: %d chunks from %d pages", record.RunID, len(chunks), len(pages))

	for _, chunk := range chunks {
		items, err := o.extractor.Extract(ctx, chunk)
		if err != nil {
			var exErr *domain.ExtractionError
			if errors.As(err, &exErr) {
				if o.policy == domain.SkipPolicyAbort {
					return nil, fmt.Errorf("extracting chunk %d: %w", chunk.Index, err)
				}
				record.SkippedChunks = append(record.SkippedChunks, domain.SkippedChunk{
					ChunkIndex:  exErr.ChunkIndex,
					PageIndex:   chunk.PageIndex,
					SectionHint: chunk.SectionHint,
					Attempts:    exErr.Attempts,
					LastError:   exErr.Err.Error(),
				})
				log.Printf("extract.Orchestrator: skipping chunk %d after %d attempts: %v", chunk.Index, exErr.Attempts, exErr.Err)
				continue
			}
			// Not an exhausted-retry error (e.g. canceled context): fatal.
			return nil, fmt.Errorf("extracting chunk %d: %w", chunk.Index, err)
		}

		for _, item := range items {
			item.SourcePage = chunk.PageIndex
			item.SourceSection = chunk.SectionHint
			record.Items = append(record.Items, item)
		}
	}

	log.Printf("extract.Orchestrator: run %s done: %d items, %d skipped chunks",
		record.RunID, len(record.Items), len(record.SkippedChunks))
	return record, nil
}

// sectionNames lists the distinct section hints in first-seen order.
func sectionNames(chunks []domain.Chunk) []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range chunks {
		if c.SectionHint == "" || seen[c.SectionHint] {
			continue
		}
		seen[c.SectionHint] = true
		names = append(names, c.SectionHint)
	}
	return names
}
