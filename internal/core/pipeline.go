package core

import (
	"context"
	"fmt"
	"os"

	"github.com/example/voxalign/internal/align"
	"github.com/example/voxalign/internal/asr"
	"github.com/example/voxalign/internal/audio"
	"github.com/example/voxalign/internal/backend"
	"github.com/example/voxalign/internal/emission"
	"github.com/example/voxalign/internal/lang"
)

const (
	defaultBackendName  = backend.NamePhonemeFirst
	defaultLanguageCode = "auto"
)

// clock lets tests stub the generation timestamp; production code leaves
// it at time.Now.
var clock = defaultClock

// Pipeline orchestrates one alignment call against a resolved backend
// registry.
type Pipeline struct {
	Backends *backend.Registry
}

// New builds a Pipeline over the given backend registry.
func New(backends *backend.Registry) *Pipeline {
	return &Pipeline{Backends: backends}
}

// Align runs one alignment call: resolves the transcript (provided or
// via ASR), resolves duration and sample audio (WAV metadata or the
// heuristic prior), normalizes and tokenizes the transcript through the
// language pack, dispatches to the requested backend, and assembles the
// response contract.
func (p *Pipeline) Align(ctx context.Context, req AlignRequest) (AlignResponse, error) {
	backendName := req.Backend
	if backendName == "" {
		backendName = string(defaultBackendName)
	}

	impl, err := p.Backends.Resolve(backend.Name(backendName))
	if err != nil {
		return AlignResponse{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	requestedLanguage := req.Language
	if requestedLanguage == "" {
		requestedLanguage = defaultLanguageCode
	}

	transcript, transcriptSource, asrResult, licenseWarning, err := p.resolveTranscript(req, requestedLanguage)
	if err != nil {
		return AlignResponse{}, err
	}

	resolvedLanguage := requestedLanguage
	if resolvedLanguage == "auto" {
		resolvedLanguage = "und"
		if asrResult != nil && asrResult.LanguageCode != "" {
			resolvedLanguage = asrResult.LanguageCode
		}
	}

	pack := lang.Resolve(resolvedLanguage)
	normalized := pack.Normalize(transcript)

	decoded, sampleRateHz, timingSource := p.resolveTiming(req, len(normalized.Tokens))

	audioInput := emission.Audio{
		Samples:     decoded.Samples,
		SampleRate:  decoded.SampleRate,
		DurationSec: decoded.DurationSec,
	}

	result, err := impl.AlignWords(ctx, normalized.Tokens, decoded.DurationSec, audioInput, pack.Code())
	if err != nil {
		return AlignResponse{}, fmt.Errorf("backend %q: %w", backendName, err)
	}

	var phonemes []align.PhonemeAlignment
	if req.IncludePhonemes {
		phonemes = result.Phonemes
	}

	var asrBackend, asrModelID *string
	if asrResult != nil {
		backendName := string(asrResult.Backend)
		modelID := asrResult.ModelID
		asrBackend = &backendName
		asrModelID = &modelID
	}

	metadata := AlignmentMetadata{
		Language:         pack.Code(),
		AlignmentBackend: backendName,
		NormalizerID:     pack.NormalizerID(),
		TokenCount:       len(normalized.Tokens),
		TimingSource:     timingSource,
		TranscriptSource: transcriptSource,
		ASRBackend:       asrBackend,
		ASRModelID:       asrModelID,
		LicenseWarning:   licenseWarning,
		ModelID:          result.ModelID,
		Algorithm:        result.Algorithm,
		GeneratedAt:      clock(),
		DurationSec:      align.Round3(decoded.DurationSec),
		SampleRateHz:     sampleRateHz,
	}

	return AlignResponse{Metadata: metadata, Words: result.Words, Phonemes: phonemes}, nil
}

// resolveTranscript returns the transcript to align, its provenance tag,
// the ASR result when one was produced, and an optional license warning.
func (p *Pipeline) resolveTranscript(req AlignRequest, requestedLanguage string) (string, string, *asr.Result, *string, error) {
	if req.Transcript != "" {
		return req.Transcript, "provided", nil, nil, nil
	}

	asrBackend := asr.BackendName(req.ASR)
	if asrBackend == "" {
		asrBackend = asr.BackendAuto
	}

	result, err := asr.Transcribe(asr.Request{
		LanguageCode: requestedLanguage,
		Backend:      asrBackend,
		Verbatim:     req.Verbatim,
	})
	if err != nil {
		return "", "", nil, nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var warning *string
	if text, ok := asr.LicenseWarning(result.Backend); ok {
		warning = &text
	}

	return result.Transcript, "asr", &result, warning, nil
}

// resolveTiming decodes req.AudioPath as WAV when possible; on any
// failure it degrades to the heuristic duration prior rather than
// failing the call, per the AudioUnreadable disposition.
func (p *Pipeline) resolveTiming(req AlignRequest, tokenCount int) (audio.Decoded, *int, string) {
	if req.AudioPath != "" {
		if data, err := os.ReadFile(req.AudioPath); err == nil {
			if decoded, err := audio.DecodeWAV(data); err == nil {
				rate := decoded.SampleRate
				return decoded, &rate, "audio"
			}
		}
	}

	durationSec := emission.SimulatedSecondsPerToken * float64(tokenCount)
	if durationSec < 1.0 {
		durationSec = 1.0
	}

	var sampleRateHz *int
	if req.SampleRateHz > 0 {
		rate := req.SampleRateHz
		sampleRateHz = &rate
	}

	return audio.Decoded{DurationSec: align.Round3(durationSec)}, sampleRateHz, "heuristic"
}
