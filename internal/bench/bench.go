// Package bench provides benchmarking primitives for the voxalign bench
// command: per-utterance boundary-error collection against reference
// word timings, and release-gate summary statistics (MAE, percentiles,
// tolerance rates, RTF, throughput).
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/example/voxalign/internal/align"
)

// ReferenceWord is a reference word boundary annotation loaded from a
// benchmark manifest.
type ReferenceWord struct {
	Word     string
	StartSec float64
	EndSec   float64
}

// CaseResult holds one benchmark utterance's alignment run, matched
// against its reference words.
type CaseResult struct {
	CaseID         string
	Language       string
	Backend        string
	Runtime        time.Duration
	AudioSec       float64
	Words          []align.WordAlignment
	ReferenceWords []ReferenceWord
	ModelID        string
	TimingSource   string
}

// BoundaryErrorsMS returns the absolute start/end boundary errors, in
// milliseconds, for words matched by index against reference words. Only
// the overlapping prefix is compared, mirroring the evaluation corpus's
// index-based matching.
func BoundaryErrorsMS(words []align.WordAlignment, reference []ReferenceWord) []float64 {
	matched := min(len(words), len(reference))

	errs := make([]float64, 0, matched*2)
	for i := 0; i < matched; i++ {
		errs = append(errs, absMS(words[i].StartSec-reference[i].StartSec))
		errs = append(errs, absMS(words[i].EndSec-reference[i].EndSec))
	}

	return errs
}

func absMS(sec float64) float64 {
	if sec < 0 {
		sec = -sec
	}

	return sec * 1000.0
}

// Summary is the set of release-gate metrics computed over a benchmark
// run: boundary accuracy, coverage, and throughput.
type Summary struct {
	WordBoundaryMAEMS    float64 `json:"word_boundary_mae_ms"`
	WordBoundaryMedianMS float64 `json:"word_boundary_median_ms"`
	WordBoundaryP50MS    float64 `json:"word_boundary_p50_ms"`
	WordBoundaryP90MS    float64 `json:"word_boundary_p90_ms"`
	WordBoundaryP95MS    float64 `json:"word_boundary_p95_ms"`
	ToleranceLE20MS      float64 `json:"tolerance_le_20ms"`
	ToleranceLE50MS      float64 `json:"tolerance_le_50ms"`
	ToleranceLE100MS     float64 `json:"tolerance_le_100ms"`
	RTF                  float64 `json:"rtf"`
	ThroughputX          float64 `json:"throughput_x"`
	MatchedWordCoverage  float64 `json:"matched_word_coverage"`
	MatchedWords         int     `json:"matched_words"`
	ReferenceWords       int     `json:"reference_words"`
	BoundarySampleCount  int     `json:"boundary_sample_count"`
	TotalRuntimeSec      float64 `json:"total_runtime_sec"`
	TotalAudioSec        float64 `json:"total_audio_sec"`
}

// Summarize computes a Summary from a corpus of benchmark case results.
func Summarize(cases []CaseResult) Summary {
	var boundaryErrors []float64

	var totalRuntimeSec, totalAudioSec float64

	var matchedWords, referenceWords int

	for _, c := range cases {
		boundaryErrors = append(boundaryErrors, BoundaryErrorsMS(c.Words, c.ReferenceWords)...)
		totalRuntimeSec += c.Runtime.Seconds()
		totalAudioSec += c.AudioSec
		matchedWords += min(len(c.Words), len(c.ReferenceWords))
		referenceWords += len(c.ReferenceWords)
	}

	var rtf, throughput float64
	if totalAudioSec > 0 {
		rtf = totalRuntimeSec / totalAudioSec
	}
	if totalRuntimeSec > 0 {
		throughput = totalAudioSec / totalRuntimeSec
	}

	var coverage float64
	if referenceWords > 0 {
		coverage = float64(matchedWords) / float64(referenceWords)
	}

	return Summary{
		WordBoundaryMAEMS:    mean(boundaryErrors),
		WordBoundaryMedianMS: percentile(boundaryErrors, 50),
		WordBoundaryP50MS:    percentile(boundaryErrors, 50),
		WordBoundaryP90MS:    percentile(boundaryErrors, 90),
		WordBoundaryP95MS:    percentile(boundaryErrors, 95),
		ToleranceLE20MS:      rateLEQ(boundaryErrors, 20),
		ToleranceLE50MS:      rateLEQ(boundaryErrors, 50),
		ToleranceLE100MS:     rateLEQ(boundaryErrors, 100),
		RTF:                  rtf,
		ThroughputX:          throughput,
		MatchedWordCoverage:  coverage,
		MatchedWords:         matchedWords,
		ReferenceWords:       referenceWords,
		BoundarySampleCount:  len(boundaryErrors),
		TotalRuntimeSec:      totalRuntimeSec,
		TotalAudioSec:        totalAudioSec,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// percentile computes the linear-interpolated percentile, matching the
// percentile definition used by the evaluation corpus this harness
// mirrors.
func percentile(values []float64, pct float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := (pct / 100.0) * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper > len(sorted)-1 {
		upper = len(sorted) - 1
	}
	weight := rank - float64(lower)

	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func rateLEQ(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var count int
	for _, v := range values {
		if v <= threshold {
			count++
		}
	}

	return float64(count) / float64(len(values))
}

// CheckRTFThreshold returns an error if rtf exceeds threshold. A
// threshold of 0 disables the gate.
func CheckRTFThreshold(rtf, threshold float64) error {
	if threshold <= 0 {
		return nil
	}
	if rtf > threshold {
		return fmt.Errorf("mean RTF %.3f exceeds threshold %.3f", rtf, threshold)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of per-case results and
// the overall summary to w.
func FormatTable(cases []CaseResult, summary Summary, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-16s  %-6s  %-10s  %10s  %10s  %8s\n", "Case", "Lang", "Backend", "Runtime(ms)", "Audio(ms)", "Matched")
	fmt.Fprintln(sb, strings.Repeat("-", 72))

	for _, c := range cases {
		matched := min(len(c.Words), len(c.ReferenceWords))
		fmt.Fprintf(sb, "%-16s  %-6s  %-10s  %10.1f  %10.1f  %5d/%-3d\n",
			c.CaseID,
			c.Language,
			c.Backend,
			float64(c.Runtime.Milliseconds()),
			c.AudioSec*1000,
			matched,
			len(c.ReferenceWords),
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 72))
	fmt.Fprintf(sb, "word_boundary_mae_ms=%.3f  p50=%.3f  p90=%.3f  p95=%.3f\n",
		summary.WordBoundaryMAEMS, summary.WordBoundaryP50MS, summary.WordBoundaryP90MS, summary.WordBoundaryP95MS)
	fmt.Fprintf(sb, "tolerance_le_20ms=%.4f  tolerance_le_50ms=%.4f  tolerance_le_100ms=%.4f\n",
		summary.ToleranceLE20MS, summary.ToleranceLE50MS, summary.ToleranceLE100MS)
	fmt.Fprintf(sb, "rtf=%.4f  throughput_x=%.4f  matched_word_coverage=%.4f\n",
		summary.RTF, summary.ThroughputX, summary.MatchedWordCoverage)

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Cases   []jsonCase `json:"cases"`
	Summary Summary    `json:"summary"`
}

type jsonCase struct {
	CaseID         string  `json:"case_id"`
	Language       string  `json:"language"`
	Backend        string  `json:"backend"`
	RuntimeSec     float64 `json:"runtime_sec"`
	AudioSec       float64 `json:"audio_sec"`
	MatchedWords   int     `json:"matched_words"`
	ReferenceWords int     `json:"reference_words"`
	ModelID        string  `json:"model_id"`
	TimingSource   string  `json:"timing_source"`
}

// FormatJSON writes a JSON report of the benchmark run to w.
func FormatJSON(cases []CaseResult, summary Summary, w io.Writer) {
	jr := jsonReport{
		Cases:   make([]jsonCase, len(cases)),
		Summary: summary,
	}
	for i, c := range cases {
		jr.Cases[i] = jsonCase{
			CaseID:         c.CaseID,
			Language:       c.Language,
			Backend:        c.Backend,
			RuntimeSec:     c.Runtime.Seconds(),
			AudioSec:       c.AudioSec,
			MatchedWords:   min(len(c.Words), len(c.ReferenceWords)),
			ReferenceWords: len(c.ReferenceWords),
			ModelID:        c.ModelID,
			TimingSource:   c.TimingSource,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
