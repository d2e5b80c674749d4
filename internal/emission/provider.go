// Package emission implements the emission-provider contract: turning
// audio plus a target symbol sequence into a T×V log-probability matrix,
// a token-id sequence, and per-word token spans, via either a real
// acoustic-model-backed provider or a deterministic simulator.
package emission

import (
	"context"
	"errors"

	"github.com/example/voxalign/internal/trellis"
)

// ErrNotAvailable is returned by a provider that cannot serve a request
// (resource failed to load, encoding mismatch, vocabulary id out of
// range, inference error). Callers fall back to the next provider in the
// chain rather than treating this as fatal.
var ErrNotAvailable = errors.New("emission: provider not available")

// Audio is the decoded, resampled input to a real provider.
type Audio struct {
	Samples     []float32
	SampleRate  int
	DurationSec float64
}

// Pack is the result of a successful Encode call.
type Pack struct {
	Emissions      [][]float64 // T×V, row-normalized log-probabilities
	TokenIDs       []int
	WordTokenSpans []trellis.Span // half-open index ranges into TokenIDs, one per input word
	BlankID        int
	ModelID        string
	AlgorithmTag   string
}

// Provider answers the emission contract for one granularity (word or
// phoneme) and one variant (real or simulated).
type Provider interface {
	// Encode returns an emission pack for the given ordered symbols
	// (surface words for word-level providers, phoneme strings for
	// phoneme-level providers) and language code. It returns
	// ErrNotAvailable, never panics, on any failure.
	Encode(ctx context.Context, symbols []string, audio Audio, language string) (Pack, error)
}
