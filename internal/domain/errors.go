package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument means the input has no extractable text at all.
	// It is structural: the run aborts before any model call.
	ErrEmptyDocument = errors.New("document has no extractable text")

	// ErrMalformedResponse means no valid JSON was recoverable from a
	// model response after cleaning. It is transient and retried.
	ErrMalformedResponse = errors.New("no valid JSON recoverable from model response")

	// ErrUnknownPromptKey means the prompt library has no template under
	// the configured key.
	ErrUnknownPromptKey = errors.New("unknown prompt template key")
)

// ExtractionError reports a chunk whose retry budget is exhausted. The
// orchestrator decides whether to skip the chunk or abort the run.
type ExtractionError struct {
	ChunkIndex int
	Attempts   int
	Err        error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("chunk %d failed after %d attempts: %v", e.ChunkIndex, e.Attempts, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
