package emission

import (
	"context"
	"math"

	"github.com/example/voxalign/internal/trellis"
)

// SimulatedSecondsPerToken is the rough English-prior duration heuristic
// (0.32 s/token) named per spec.md §9's design note (c): left as a
// constant rather than folded into the simulator, and used only when the
// caller has no better estimate of utterance duration.
const SimulatedSecondsPerToken = 0.32

const (
	simPeakLogit     = 2.0
	simBlankLogit    = 0.3
	simBaselineLogit = -2.0
)

// Simulator synthesizes emissions guaranteed to produce the correct
// monotone path, for offline and unit-test use. It assigns one token id
// per input symbol, never fails, and never returns ErrNotAvailable —
// callers at the end of a fallback chain depend on that.
type Simulator struct {
	ModelID      string
	AlgorithmTag string
}

// NewSimulator builds a Simulator tagged with the given model and
// algorithm identifiers, echoed back on every produced Pack.
func NewSimulator(modelID, algorithmTag string) *Simulator {
	return &Simulator{ModelID: modelID, AlgorithmTag: algorithmTag}
}

// Encode implements Provider. audio.DurationSec drives the simulated
// frame count; language is accepted but unused, since the simulated path
// is deterministic regardless of language.
func (s *Simulator) Encode(_ context.Context, symbols []string, audio Audio, _ string) (Pack, error) {
	n := len(symbols)
	if n == 0 {
		return Pack{
			Emissions:      [][]float64{},
			TokenIDs:       []int{},
			WordTokenSpans: []trellis.Span{},
			BlankID:        0,
			ModelID:        s.ModelID,
			AlgorithmTag:   s.AlgorithmTag,
		}, nil
	}

	const blankID = 0

	tokenIDs := make([]int, n)
	wordSpans := make([]trellis.Span, n)
	for i := range symbols {
		tokenIDs[i] = i + 1
		wordSpans[i] = trellis.Span{Start: i, End: i + 1}
	}

	states := trellis.BuildStateSymbols(tokenIDs, blankID)
	vocab := n + 1

	frames := int(math.Round(audio.DurationSec * 100))
	if minFrames := 3 * n; frames < minFrames {
		frames = minFrames
	}

	emissions := make([][]float64, frames)
	for t := 0; t < frames; t++ {
		target := 0
		if frames > 1 {
			target = int(math.Round(float64(t) * float64(len(states)-1) / float64(frames-1)))
		}

		row := make([]float64, vocab)
		for v := range row {
			row[v] = simBaselineLogit
		}

		row[blankID] = simBlankLogit
		row[states[target]] = simPeakLogit

		emissions[t] = logSoftmax(row)
	}

	return Pack{
		Emissions:      emissions,
		TokenIDs:       tokenIDs,
		WordTokenSpans: wordSpans,
		BlankID:        blankID,
		ModelID:        s.ModelID,
		AlgorithmTag:   s.AlgorithmTag,
	}, nil
}

// logSoftmax row-normalizes a row of logits into log-probabilities using
// the max-shift form of logsumexp, so that exp of the row sums to 1.
func logSoftmax(logits []float64) []float64 {
	maxV := math.Inf(-1)
	for _, v := range logits {
		if v > maxV {
			maxV = v
		}
	}

	sum := 0.0
	for _, v := range logits {
		sum += math.Exp(v - maxV)
	}

	logSum := maxV + math.Log(sum)

	out := make([]float64, len(logits))
	for i, v := range logits {
		out[i] = v - logSum
	}

	return out
}
