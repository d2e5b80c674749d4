package backend

import (
	"context"
	"testing"

	"github.com/example/voxalign/internal/emission"
)

func TestUniformAlignWordsEmptyTokens(t *testing.T) {
	r, err := Uniform{}.AlignWords(context.Background(), nil, 3.0, emission.Audio{}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Words) != 0 {
		t.Fatalf("expected no words, got %d", len(r.Words))
	}

	if r.ModelID != uniformModelID || r.Algorithm != uniformAlgoName {
		t.Fatalf("unexpected metadata: %+v", r)
	}
}

func TestUniformAlignWordsEvenSpacing(t *testing.T) {
	r, err := Uniform{}.AlignWords(context.Background(), []string{"a", "b", "c", "d"}, 4.0, emission.Audio{}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.Words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(r.Words))
	}

	if r.Words[0].StartSec != 0 || r.Words[0].EndSec != 1 {
		t.Fatalf("word 0 = %+v", r.Words[0])
	}

	last := r.Words[3]
	if last.EndSec != 4.0 {
		t.Fatalf("last word end = %v, want pinned to duration", last.EndSec)
	}
}

func TestUniformAlignWordsConfidenceDecaysAndFloors(t *testing.T) {
	tokens := make([]string, 30)
	for i := range tokens {
		tokens[i] = "w"
	}

	r, err := Uniform{}.AlignWords(context.Background(), tokens, 30.0, emission.Audio{}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Words[0].Confidence != 0.98 {
		t.Fatalf("first word confidence = %v, want 0.98", r.Words[0].Confidence)
	}

	for _, w := range r.Words {
		if w.Confidence < 0.75 {
			t.Fatalf("confidence %v fell below the 0.75 floor", w.Confidence)
		}
	}
}
