package core

import (
	"log/slog"

	"github.com/example/voxalign/internal/backend"
	"github.com/example/voxalign/internal/config"
	"github.com/example/voxalign/internal/emission"
	"github.com/example/voxalign/internal/onnx"
	"github.com/example/voxalign/internal/tokenizer"
)

const (
	wordGraphName    = "ctc_word"
	phonemeGraphName = "ctc_phoneme"

	wordBlankID    = 0
	phonemeBlankID = 0
)

// BuildRegistry wires a backend.Registry from configuration: a
// deterministic simulator is always available; a real ONNX-backed
// provider is loaded best-effort for the word and phoneme graphs and
// left nil on any failure, so the registry degrades to simulator-only
// operation rather than failing startup. Failures are logged at warn
// level, matching the provider fallback contract's "never panic" rule.
func BuildRegistry(cfg config.Config) *backend.Registry {
	tok, err := tokenizer.NewSentencePieceTokenizer(cfg.Paths.TokenizerModel)
	if err != nil {
		slog.Warn("core: tokenizer unavailable, real providers disabled", "error", err)

		return newSimulatorOnlyRegistry()
	}

	wordReal := tryRealProvider(cfg, cfg.Paths.WordModelManifest, wordGraphName, tok, emission.RealProviderConfig{
		ModelID:      backend.ResolveModelID(""),
		AlgorithmTag: "ctc-viterbi-real",
		InputName:    "audio",
		OutputName:   "logits",
		BlankID:      wordBlankID,
		HasDelimiter: true,
	})

	phonemeReal := tryRealProvider(cfg, cfg.Paths.PhonemeModelManifest, phonemeGraphName, tok, emission.RealProviderConfig{
		ModelID:      "phoneme-ipa-xlsr-v1",
		AlgorithmTag: "phoneme-viterbi-real",
		InputName:    "audio",
		OutputName:   "logits",
		BlankID:      phonemeBlankID,
	})

	wordSim := emission.NewSimulator(backend.ResolveModelID(""), "ctc-viterbi-simulated")
	phonemeSim := emission.NewSimulator("phoneme-ipa-xlsr-v1", "phoneme-viterbi-simulated")

	return backend.NewRegistry(wordReal, wordSim, phonemeReal, phonemeSim)
}

func newSimulatorOnlyRegistry() *backend.Registry {
	wordSim := emission.NewSimulator(backend.ResolveModelID(""), "ctc-viterbi-simulated")
	phonemeSim := emission.NewSimulator("phoneme-ipa-xlsr-v1", "phoneme-viterbi-simulated")

	return backend.NewRegistry(nil, wordSim, nil, phonemeSim)
}

// tryRealProvider loads an ONNX engine from manifestPath and returns a
// RealProvider over its graphName runner, or nil if the manifest, graph,
// or runner cannot be loaded.
func tryRealProvider(cfg config.Config, manifestPath, graphName string, tok tokenizer.Tokenizer, providerCfg emission.RealProviderConfig) emission.Provider {
	if manifestPath == "" {
		return nil
	}

	engine, err := onnx.NewEngine(manifestPath, onnx.RunnerConfig{LibraryPath: cfg.Runtime.ORTLibraryPath})
	if err != nil {
		slog.Warn("core: ONNX engine unavailable, falling back to simulator", "manifest", manifestPath, "error", err)

		return nil
	}

	runner, ok := engine.Runner(graphName)
	if !ok {
		slog.Warn("core: ONNX graph not found in manifest, falling back to simulator", "manifest", manifestPath, "graph", graphName)

		return nil
	}

	return emission.NewRealProvider(runner, tok, providerCfg)
}
