package backend

import (
	"context"
	"fmt"
	"math"

	"github.com/example/voxalign/internal/align"
	"github.com/example/voxalign/internal/emission"
	"github.com/example/voxalign/internal/trellis"
)

// Word is the word-level CTC Viterbi backend ("ctc_trellis" in the
// request contract). It obtains an emission pack from the real provider
// when available, falling back to the deterministic simulator on any
// failure, decodes a Viterbi path, extracts per-token frame spans, and
// unions them into per-word spans and confidences.
type Word struct {
	Real      emission.Provider // optional; nil means simulator-only
	Simulator emission.Provider // required; must never return an error
}

// NewWord builds a Word backend. sim must be non-nil.
func NewWord(real, sim emission.Provider) *Word {
	return &Word{Real: real, Simulator: sim}
}

// AlignWords implements the per-word decode described in spec.md §4.3. A
// Viterbi decoder invariant failure (trellis.ErrDecoderInvariant) is
// fatal and aborts the call, per spec.md §7; it is returned rather than
// swallowed into a degraded result.
func (w *Word) AlignWords(ctx context.Context, tokens []string, durationSec float64, audio emission.Audio, language string) (align.Result, error) {
	pack, err := w.obtainPack(ctx, tokens, audio, language)
	if err != nil {
		// Simulator must never fail; a failure here means both
		// providers refused, which degrades to an empty alignment
		// rather than a panic.
		return align.Result{}, nil
	}

	states := trellis.BuildStateSymbols(pack.TokenIDs, pack.BlankID)

	path, err := trellis.Viterbi(pack.Emissions, states)
	if err != nil {
		return align.Result{}, fmt.Errorf("word backend: %w", err)
	}

	tokenSpans := trellis.TokenSpans(path, len(pack.TokenIDs))

	words := wordAlignmentsFromTokenSpans(tokens, durationSec, pack, tokenSpans)

	return align.Result{Words: words, ModelID: pack.ModelID, Algorithm: pack.AlgorithmTag}, nil
}

func (w *Word) obtainPack(ctx context.Context, tokens []string, audio emission.Audio, language string) (emission.Pack, error) {
	if w.Real != nil {
		if pack, err := w.Real.Encode(ctx, tokens, audio, language); err == nil {
			return pack, nil
		}
	}

	return w.Simulator.Encode(ctx, tokens, audio, language)
}

func wordAlignmentsFromTokenSpans(tokens []string, durationSec float64, pack emission.Pack, tokenSpans []trellis.Span) []align.WordAlignment {
	if len(tokens) == 0 {
		return nil
	}

	frameCount := len(pack.Emissions)
	if frameCount < 1 {
		frameCount = 1
	}

	frameSec := 0.0
	if durationSec > 0 {
		frameSec = durationSec / float64(frameCount)
	}

	words := make([]align.WordAlignment, len(tokens))

	for i, tok := range tokens {
		wordSpan := pack.WordTokenSpans[i]
		wordTokenIDs := pack.TokenIDs[wordSpan.Start:wordSpan.End]
		wordTokenSpans := tokenSpans[wordSpan.Start:wordSpan.End]

		startFrame, endFrame := 0, 0

		for _, s := range wordTokenSpans {
			if s.End <= s.Start {
				continue
			}

			if startFrame == 0 && endFrame == 0 {
				startFrame = s.Start
			}

			endFrame = s.End
		}

		startSec := align.Round3(float64(startFrame) * frameSec)
		endSec := align.Round3(float64(endFrame) * frameSec)
		if i == len(tokens)-1 {
			endSec = durationSec
		}

		confidence := align.Round3(wordConfidence(pack.Emissions, wordTokenIDs, wordTokenSpans))

		words[i] = align.WordAlignment{Word: tok, StartSec: startSec, EndSec: endSec, Confidence: confidence}
	}

	return words
}

func wordConfidence(emissions [][]float64, tokenIDs []int, spans []trellis.Span) float64 {
	var sum float64
	var count int

	for i, id := range tokenIDs {
		span := spans[i]
		if span.End <= span.Start {
			continue
		}

		for t := span.Start; t < span.End; t++ {
			sum += math.Exp(emissions[t][id])
			count++
		}
	}

	if count == 0 {
		return 0.55
	}

	mean := sum / float64(count)
	if mean < 0.55 {
		return 0.55
	}

	if mean > 0.95 {
		return 0.95
	}

	return mean
}
