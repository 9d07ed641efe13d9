package port

import (
	"context"

	"finstmt/internal/domain"
)

// TextGenerator abstracts a single text-completion call against an LLM
// endpoint. Implementations own transport concerns only; retry policy
// lives with the caller.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LineItemExtractor abstracts chunk-level line-item extraction,
// including prompt filling, retries and response cleaning.
type LineItemExtractor interface {
	Extract(ctx context.Context, chunk domain.Chunk) ([]domain.RawLineItem, error)
}
