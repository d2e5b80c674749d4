package backend

import (
	"context"
	"fmt"

	"github.com/example/voxalign/internal/align"
	"github.com/example/voxalign/internal/emission"
)

// Backend is implemented by every alignment strategy named in the
// request contract: "uniform", "ctc_trellis", and "phoneme_first".
type Backend interface {
	AlignWords(ctx context.Context, tokens []string, durationSec float64, audio emission.Audio, language string) (align.Result, error)
}

// Name identifies one of the three backends a caller may request.
type Name string

const (
	NameUniform      Name = "uniform"
	NameCtcTrellis   Name = "ctc_trellis"
	NamePhonemeFirst Name = "phoneme_first"
)

// Registry resolves a backend name to the concrete instance wired
// against a given emission provider set.
type Registry struct {
	backends map[Name]Backend
}

// NewRegistry builds the three backends from a word-level provider pair
// and a phoneme-level provider pair, each (real, simulator). real may
// be nil when no acoustic model is configured; simulator must not be.
func NewRegistry(wordReal, wordSimulator, phonemeReal, phonemeSimulator emission.Provider) *Registry {
	word := NewWord(wordReal, wordSimulator)
	phonemeFirst := NewPhonemeFirst(word, phonemeReal, phonemeSimulator)

	return &Registry{
		backends: map[Name]Backend{
			NameUniform:      Uniform{},
			NameCtcTrellis:   word,
			NamePhonemeFirst: phonemeFirst,
		},
	}
}

// Resolve returns the backend registered under name, or an error if the
// name is not one of the three recognized backend identifiers.
func (r *Registry) Resolve(name Name) (Backend, error) {
	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("backend: unknown backend %q", name)
	}

	return b, nil
}
