package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/voxalign/internal/bench"
	"github.com/example/voxalign/internal/core"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		manifestPath string
		backendName  string
		format       string
		rtfThreshold float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark alignment accuracy and realtime factor over a manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(manifestPath) == "" {
				return &errArgument{msg: "--manifest is required for bench"}
			}
			if format != "table" && format != "json" {
				return &errArgument{msg: "--format must be 'table' or 'json'"}
			}

			cases, err := loadBenchManifest(manifestPath)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}

			registry := core.BuildRegistry(cfg)
			pipeline := core.New(registry)

			results, err := runBenchCases(cmd.Context(), pipeline, cases, backendName)
			if err != nil {
				return err
			}

			summary := bench.Summarize(results)

			switch format {
			case "json":
				bench.FormatJSON(results, summary, os.Stdout)
			default:
				bench.FormatTable(results, summary, os.Stdout)
			}

			return bench.CheckRTFThreshold(summary.RTF, rtfThreshold)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Path to a benchmark JSONL manifest (required)")
	cmd.Flags().StringVar(&backendName, "backend", "ctc_trellis", "Alignment backend to benchmark")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&rtfThreshold, "rtf-threshold", 0, "Exit non-zero if RTF exceeds this value (0 = disabled)")

	return cmd
}

// benchManifestCase is one JSONL line of a benchmark manifest.
type benchManifestCase struct {
	ID             string                `json:"id"`
	AudioPath      string                `json:"audio_path"`
	Transcript     string                `json:"transcript"`
	Language       string                `json:"language"`
	ReferenceWords []benchReferenceWords `json:"reference_words"`
}

type benchReferenceWords struct {
	Word     string  `json:"word"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
}

func loadBenchManifest(path string) ([]benchManifestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []benchManifestCase

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var c benchManifestCase
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if c.ID == "" {
			c.ID = fmt.Sprintf("line-%d", lineNum)
		}
		if c.Language == "" {
			c.Language = "auto"
		}

		cases = append(cases, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cases, nil
}

func runBenchCases(ctx context.Context, pipeline *core.Pipeline, cases []benchManifestCase, backendName string) ([]bench.CaseResult, error) {
	results := make([]bench.CaseResult, 0, len(cases))

	for _, c := range cases {
		reference := make([]bench.ReferenceWord, len(c.ReferenceWords))
		for i, r := range c.ReferenceWords {
			reference[i] = bench.ReferenceWord{Word: r.Word, StartSec: r.StartSec, EndSec: r.EndSec}
		}

		started := time.Now()
		resp, err := pipeline.Align(ctx, core.AlignRequest{
			AudioPath:  c.AudioPath,
			Transcript: c.Transcript,
			Language:   c.Language,
			Backend:    backendName,
		})
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.ID, err)
		}
		elapsed := time.Since(started)

		results = append(results, bench.CaseResult{
			CaseID:         c.ID,
			Language:       resp.Metadata.Language,
			Backend:        resp.Metadata.AlignmentBackend,
			Runtime:        elapsed,
			AudioSec:       resp.Metadata.DurationSec,
			Words:          resp.Words,
			ReferenceWords: reference,
			ModelID:        resp.Metadata.ModelID,
			TimingSource:   resp.Metadata.TimingSource,
		})
	}

	return results, nil
}
