// Package backend implements the three alignment backends named in the
// alignment request contract: uniform (a rule-based baseline), ctc_trellis
// (the word-level CTC Viterbi backend), and phoneme_first (the
// language-routed orchestrator that composes word and phoneme alignment).
package backend

import (
	"context"

	"github.com/example/voxalign/internal/align"
	"github.com/example/voxalign/internal/emission"
)

const (
	uniformModelID  = "baseline-rule-v1"
	uniformAlgoName = "uniform-token-distribution"
)

// Uniform evenly distributes token spans over total duration without
// consulting any emission provider. It exists as a zero-dependency
// sanity baseline and as the scenario-1 reference in the alignment
// contract's testable properties.
type Uniform struct{}

// AlignWords implements Backend. It consults no emission provider, so
// ctx, audio, and language are accepted only to satisfy the shared
// interface, and it never fails.
func (Uniform) AlignWords(_ context.Context, tokens []string, durationSec float64, _ emission.Audio, _ string) (align.Result, error) {
	if len(tokens) == 0 {
		return align.Result{ModelID: uniformModelID, Algorithm: uniformAlgoName}, nil
	}

	step := durationSec / float64(len(tokens))
	words := make([]align.WordAlignment, len(tokens))

	for i, tok := range tokens {
		start := align.Round3(step * float64(i))
		end := align.Round3(step * float64(i+1))
		if i == len(tokens)-1 {
			end = durationSec
		}

		confidence := 0.98 - float64(i)*0.01
		if confidence < 0.75 {
			confidence = 0.75
		}

		words[i] = align.WordAlignment{
			Word:       tok,
			StartSec:   start,
			EndSec:     end,
			Confidence: align.Round3(confidence),
		}
	}

	return align.Result{Words: words, ModelID: uniformModelID, Algorithm: uniformAlgoName}, nil
}
