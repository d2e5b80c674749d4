package emission

import (
	"context"
	"math"
	"testing"

	"github.com/example/voxalign/internal/trellis"
)

func TestSimulatorEmptySymbols(t *testing.T) {
	sim := NewSimulator("sim-word-v1", "simulated")

	pack, err := sim.Encode(context.Background(), nil, Audio{DurationSec: 1.0}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pack.Emissions) != 0 || len(pack.TokenIDs) != 0 {
		t.Fatalf("expected empty pack, got %+v", pack)
	}
}

func TestSimulatorProducesDecodablePath(t *testing.T) {
	sim := NewSimulator("sim-word-v1", "viterbi+simulated")

	pack, err := sim.Encode(context.Background(), []string{"hello", "world"}, Audio{DurationSec: 1.2}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pack.TokenIDs) != 2 {
		t.Fatalf("token ids = %v, want 2 entries", pack.TokenIDs)
	}

	if len(pack.WordTokenSpans) != 2 || pack.WordTokenSpans[0] != (trellis.Span{Start: 0, End: 1}) {
		t.Fatalf("word spans = %+v", pack.WordTokenSpans)
	}

	minFrames := 3 * len(pack.TokenIDs)
	if len(pack.Emissions) < minFrames {
		t.Fatalf("frames = %d, want at least %d", len(pack.Emissions), minFrames)
	}

	states := trellis.BuildStateSymbols(pack.TokenIDs, pack.BlankID)

	path, err := trellis.Viterbi(pack.Emissions, states)
	if err != nil {
		t.Fatalf("viterbi failed on simulated emissions: %v", err)
	}

	if len(path) != len(pack.Emissions) {
		t.Fatalf("path length = %d, want %d", len(path), len(pack.Emissions))
	}

	spans := trellis.TokenSpans(path, len(pack.TokenIDs))
	for i, s := range spans {
		if s.Start == 0 && s.End == 0 {
			t.Fatalf("token %d never visited by decoded path", i)
		}
	}
}

func TestSimulatorRowsAreLogNormalized(t *testing.T) {
	sim := NewSimulator("sim-word-v1", "simulated")

	pack, err := sim.Encode(context.Background(), []string{"a"}, Audio{DurationSec: 0.5}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, row := range pack.Emissions {
		sum := 0.0
		for _, v := range row {
			sum += math.Exp(v)
		}

		if math.Abs(sum-1.0) > 1e-6 {
			t.Fatalf("row does not sum to 1 in probability space: %v", sum)
		}
	}
}

func TestSimulatorMinimumFrameCount(t *testing.T) {
	sim := NewSimulator("sim-word-v1", "simulated")

	// Tiny duration should still be clamped to at least 3N frames.
	pack, err := sim.Encode(context.Background(), []string{"a", "b", "c"}, Audio{DurationSec: 0.001}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pack.Emissions) < 9 {
		t.Fatalf("frames = %d, want at least 9 (3*3)", len(pack.Emissions))
	}
}
