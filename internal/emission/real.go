package emission

import (
	"context"
	"fmt"

	"github.com/example/voxalign/internal/onnx"
	"github.com/example/voxalign/internal/tokenizer"
	"github.com/example/voxalign/internal/trellis"
)

// Session is the narrow slice of onnx.Runner that RealProvider depends
// on, so tests can substitute a fake without loading an ONNX Runtime
// shared library.
type Session interface {
	Run(ctx context.Context, inputs map[string]*onnx.Tensor) (map[string]*onnx.Tensor, error)
}

// RealProviderConfig names the acoustic-model details a RealProvider
// needs beyond the session and tokenizer: which input/output tensor
// names the graph exposes, and the reserved vocabulary ids.
type RealProviderConfig struct {
	ModelID      string
	AlgorithmTag string
	InputName    string
	OutputName   string
	BlankID      int
	UnknownID    int
	HasUnknown   bool
	DelimiterID  int
	HasDelimiter bool // word-level only: inserted between (not after) words
}

// RealProvider runs an ONNX CTC acoustic model session to produce
// emissions for a word- or phoneme-level symbol sequence. It never
// embeds model-specific tensor math itself — sub-token encoding comes
// from tokenizer.Tokenizer and inference from an onnx.Runner session —
// it only assembles inputs and reshapes outputs per the emission
// contract.
type RealProvider struct {
	session   Session
	tokenizer tokenizer.Tokenizer
	cfg       RealProviderConfig
}

// NewRealProvider builds a RealProvider over an already-loaded session
// and tokenizer.
func NewRealProvider(session Session, tok tokenizer.Tokenizer, cfg RealProviderConfig) *RealProvider {
	return &RealProvider{session: session, tokenizer: tok, cfg: cfg}
}

// Encode implements Provider. On any failure — encoding mismatch,
// vocabulary id out of range, inference error — it returns
// ErrNotAvailable rather than propagating the underlying error, per the
// provider fallback contract.
func (p *RealProvider) Encode(ctx context.Context, symbols []string, audio Audio, _ string) (Pack, error) {
	if len(symbols) == 0 {
		return Pack{
			Emissions:      [][]float64{},
			TokenIDs:       []int{},
			WordTokenSpans: []trellis.Span{},
			BlankID:        p.cfg.BlankID,
			ModelID:        p.cfg.ModelID,
			AlgorithmTag:   p.cfg.AlgorithmTag,
		}, nil
	}

	tokenIDs, spans, err := p.encodeSymbols(symbols)
	if err != nil {
		return Pack{}, fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}

	features, err := onnx.NewTensor(audio.Samples, []int64{1, int64(len(audio.Samples))})
	if err != nil {
		return Pack{}, fmt.Errorf("%w: build input tensor: %v", ErrNotAvailable, err)
	}

	outputs, err := p.session.Run(ctx, map[string]*onnx.Tensor{p.cfg.InputName: features})
	if err != nil {
		return Pack{}, fmt.Errorf("%w: inference failed: %v", ErrNotAvailable, err)
	}

	logits, ok := outputs[p.cfg.OutputName]
	if !ok {
		return Pack{}, fmt.Errorf("%w: missing output %q", ErrNotAvailable, p.cfg.OutputName)
	}

	rows, err := reshapeLogits(logits)
	if err != nil {
		return Pack{}, fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}

	vocab := len(rows[0])
	for _, id := range tokenIDs {
		if id < 0 || id >= vocab {
			return Pack{}, fmt.Errorf("%w: token id %d out of range for vocab %d", ErrNotAvailable, id, vocab)
		}
	}

	emissions := make([][]float64, len(rows))
	for i, row := range rows {
		emissions[i] = logSoftmax(row)
	}

	return Pack{
		Emissions:      emissions,
		TokenIDs:       tokenIDs,
		WordTokenSpans: spans,
		BlankID:        p.cfg.BlankID,
		ModelID:        p.cfg.ModelID,
		AlgorithmTag:   p.cfg.AlgorithmTag,
	}, nil
}

// encodeSymbols sub-tokenizes each symbol, drops occurrences of the
// blank id from the encoded ids, substitutes the unknown-token id for an
// empty encoding (failing if none is configured), and — for word-level
// providers configured with a delimiter id — inserts that delimiter
// between (never after) symbols.
func (p *RealProvider) encodeSymbols(symbols []string) ([]int, []trellis.Span, error) {
	var tokenIDs []int
	spans := make([]trellis.Span, len(symbols))

	for i, sym := range symbols {
		encoded, err := p.tokenizer.Encode(sym)
		if err != nil {
			return nil, nil, fmt.Errorf("encode symbol %q: %w", sym, err)
		}

		ids := make([]int, 0, len(encoded))
		for _, e := range encoded {
			id := int(e)
			if id == p.cfg.BlankID {
				continue
			}

			ids = append(ids, id)
		}

		if len(ids) == 0 {
			if !p.cfg.HasUnknown {
				return nil, nil, fmt.Errorf("symbol %q encoded to no tokens and no unknown id is configured", sym)
			}

			ids = []int{p.cfg.UnknownID}
		}

		start := len(tokenIDs)
		tokenIDs = append(tokenIDs, ids...)
		spans[i] = trellis.Span{Start: start, End: len(tokenIDs)}

		if p.cfg.HasDelimiter && i < len(symbols)-1 {
			tokenIDs = append(tokenIDs, p.cfg.DelimiterID)
		}
	}

	return tokenIDs, spans, nil
}

func reshapeLogits(t *onnx.Tensor) ([][]float64, error) {
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("expected rank-2 logits tensor, got shape %v", shape)
	}

	frames := int(shape[0])
	vocab := int(shape[1])

	data, err := onnx.ExtractFloat32(t)
	if err != nil {
		return nil, err
	}

	if len(data) != frames*vocab {
		return nil, fmt.Errorf("logits tensor data length %d does not match shape %v", len(data), shape)
	}

	rows := make([][]float64, frames)
	for f := 0; f < frames; f++ {
		row := make([]float64, vocab)
		for v := 0; v < vocab; v++ {
			row[v] = float64(data[f*vocab+v])
		}

		rows[f] = row
	}

	return rows, nil
}
