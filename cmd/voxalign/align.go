package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/example/voxalign/internal/core"
	"github.com/spf13/cobra"
)

// errArgument marks a CLI argument error, which the align command exits
// with status 2 instead of the generic failure status 1.
type errArgument struct{ msg string }

func (e *errArgument) Error() string { return e.msg }

// isArgumentError reports whether err (or anything it wraps) is an
// errArgument, or a cobra argument-count validation error.
func isArgumentError(err error) bool {
	var argErr *errArgument
	if errors.As(err, &argErr) {
		return true
	}

	return strings.Contains(err.Error(), "arg(s)")
}

func newAlignCmd() *cobra.Command {
	var language string
	var backendName string
	var asrBackend string
	var noPhonemes bool
	var verbatim bool
	var out string

	cmd := &cobra.Command{
		Use:   "align <audio> [transcript]",
		Short: "Align an audio file against a transcript",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return &errArgument{msg: "audio path must not be empty"}
			}

			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			req := core.AlignRequest{
				AudioPath:       args[0],
				Language:        language,
				Backend:         backendName,
				ASR:             asrBackend,
				Verbatim:        verbatim,
				IncludePhonemes: !noPhonemes,
			}
			if len(args) == 2 {
				req.Transcript = args[1]
			}

			registry := core.BuildRegistry(cfg)
			pipeline := core.New(registry)

			resp, err := pipeline.Align(cmd.Context(), req)
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return fmt.Errorf("encode response: %w", err)
			}

			if out == "" || out == "-" {
				_, err = fmt.Fprintln(os.Stdout, string(encoded))
				return err
			}

			return os.WriteFile(out, append(encoded, '\n'), 0o644)
		},
	}

	cmd.Flags().StringVar(&language, "language", "auto", "Target language code, or auto to detect")
	cmd.Flags().StringVar(&backendName, "backend", "", "Alignment backend (uniform|ctc_trellis|phoneme_first)")
	cmd.Flags().StringVar(&asrBackend, "asr", "", "ASR backend to use when no transcript is given")
	cmd.Flags().BoolVar(&noPhonemes, "no-phonemes", false, "Omit phoneme-level alignments from the response")
	cmd.Flags().BoolVar(&verbatim, "verbatim", false, "Align verbatim without disfluency normalization")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write JSON output to this path instead of stdout")

	return cmd
}
