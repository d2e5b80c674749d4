package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/voxalign/internal/config"
	"github.com/example/voxalign/internal/doctor"
	"github.com/example/voxalign/internal/onnx"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run local runtime and model checks",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			skipRuntime := cfg.Paths.WordModelManifest == "" && cfg.Paths.PhonemeModelManifest == ""

			dcfg := doctor.Config{
				ONNXRuntime: func() (string, string, error) {
					info, err := onnx.DetectRuntime(cfg.Runtime)
					if err != nil {
						return "", "", err
					}

					return info.LibraryPath, info.Version, nil
				},
				SkipONNXRuntime: skipRuntime,
				ModelManifests:  collectManifestPaths(cfg),
			}

			result := doctor.Run(dcfg, os.Stdout)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(os.Stdout, "doctor checks passed")

			return nil
		},
	}

	return cmd
}

func collectManifestPaths(cfg config.Config) []string {
	var paths []string
	if cfg.Paths.WordModelManifest != "" {
		paths = append(paths, cfg.Paths.WordModelManifest)
	}
	if cfg.Paths.PhonemeModelManifest != "" {
		paths = append(paths, cfg.Paths.PhonemeModelManifest)
	}
	if cfg.Paths.TokenizerModel != "" {
		paths = append(paths, cfg.Paths.TokenizerModel)
	}

	return paths
}
