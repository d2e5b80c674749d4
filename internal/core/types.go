// Package core orchestrates one alignment call end to end: transcript
// resolution (provided or via ASR), timing resolution (WAV duration or
// the heuristic prior), language pack normalization, backend dispatch,
// and response assembly.
package core

import (
	"time"

	"github.com/example/voxalign/internal/align"
)

// AlignRequest is one alignment call, matching the request contract.
type AlignRequest struct {
	AudioPath       string
	Transcript      string
	Language        string
	Backend         string
	ASR             string
	Verbatim        bool
	IncludePhonemes bool
	SampleRateHz    int
}

// AlignmentMetadata describes how a response was produced.
type AlignmentMetadata struct {
	Language         string    `json:"language"`
	AlignmentBackend string    `json:"alignment_backend"`
	NormalizerID     string    `json:"normalizer_id"`
	TokenCount       int       `json:"token_count"`
	TimingSource     string    `json:"timing_source"`
	TranscriptSource string    `json:"transcript_source"`
	ASRBackend       *string   `json:"asr_backend"`
	ASRModelID       *string   `json:"asr_model_id"`
	LicenseWarning   *string   `json:"license_warning"`
	ModelID          string    `json:"model_id"`
	Algorithm        string    `json:"algorithm"`
	GeneratedAt      time.Time `json:"generated_at"`
	DurationSec      float64   `json:"duration_sec"`
	SampleRateHz     *int      `json:"sample_rate_hz"`
}

// AlignResponse is the full JSON response contract.
type AlignResponse struct {
	Metadata AlignmentMetadata       `json:"metadata"`
	Words    []align.WordAlignment   `json:"words"`
	Phonemes []align.PhonemeAlignment `json:"phonemes"`
}
