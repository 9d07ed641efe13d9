package llm

import (
	"math"
	"time"
)

// retryState is the explicit state of one chunk's retry loop. Keeping
// the transitions visible (rather than an implicit loop-with-sleep)
// keeps the timing logic testable without real delays.
type retryState int

const (
	stateAttempting retryState = iota
	stateSucceeded
	stateExhausted
)

// BackoffDelay returns the pause before retry number attempt (1-based):
// factor^attempt seconds. Pure function of its inputs.
func BackoffDelay(factor float64, attempt int) time.Duration {
	secs := math.Pow(factor, float64(attempt))
	return time.Duration(secs * float64(time.Second))
}
