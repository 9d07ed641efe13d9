package llm

import (
	"context"
	"log"
	"time"

	"finstmt/internal/domain"
	"finstmt/internal/port"
	"finstmt/internal/prompt"
)

// Extractor turns one chunk into line items: fill the prompt template,
// call the generator, clean and parse the response. Transient failures
// (endpoint errors, malformed responses) are retried with exponential
// backoff; exhausting the budget yields a *domain.ExtractionError for
// the orchestrator to apply its skip policy to.
type Extractor struct {
	gen     port.TextGenerator
	tmpl    prompt.Template
	retries int
	factor  float64
	sleep   func(time.Duration)
}

var _ port.LineItemExtractor = (*Extractor)(nil)

// NewExtractor creates an Extractor. retries is the number of re-attempts
// after the initial call; backoffFactor feeds BackoffDelay.
func NewExtractor(gen port.TextGenerator, tmpl prompt.Template, retries int, backoffFactor float64) *Extractor {
	return newExtractor(gen, tmpl, retries, backoffFactor, time.Sleep)
}

func newExtractor(gen port.TextGenerator, tmpl prompt.Template, retries int, backoffFactor float64, sleep func(time.Duration)) *Extractor {
	return &Extractor{
		gen:     gen,
		tmpl:    tmpl,
		retries: retries,
		factor:  backoffFactor,
		sleep:   sleep,
	}
}

// Extract runs the retry state machine for one chunk.
func (e *Extractor) Extract(ctx context.Context, chunk domain.Chunk) ([]domain.RawLineItem, error) {
	state := stateAttempting
	attempt := 0
	var lastErr error

	for state == stateAttempting {
		attempt++
		items, err := e.attempt(ctx, chunk)
		if err == nil {
			state = stateSucceeded
			return items, nil
		}
		if ctx.Err() != nil {
			// The run itself is going away; don't burn retries on it.
			return nil, ctx.Err()
		}
		lastErr = err
		log.Printf("llm.Extractor: chunk %d (page %d) attempt %d/%d failed: %v",
			chunk.Index, chunk.PageIndex, attempt, e.retries+1, err)

		if attempt > e.retries {
			state = stateExhausted
		} else {
			e.sleep(BackoffDelay(e.factor, attempt))
		}
	}

	return nil, &domain.ExtractionError{ChunkIndex: chunk.Index, Attempts: attempt, Err: lastErr}
}

func (e *Extractor) attempt(ctx context.Context, chunk domain.Chunk) ([]domain.RawLineItem, error) {
	raw, err := e.gen.Generate(ctx, e.tmpl.Fill(chunk.SectionHint, chunk.Text))
	if err != nil {
		return nil, err
	}
	cleaned, err := CleanResponse(raw)
	if err != nil {
		return nil, err
	}
	return ParseLineItems(cleaned)
}
