// Package doctor provides environment preflight checks for voxalign.
package doctor

import (
	"fmt"
	"io"
	"os"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// RuntimeInfoFunc returns the detected ONNX Runtime library path and
// version, or an error if it cannot be located.
type RuntimeInfoFunc func() (path string, version string, err error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// ONNXRuntime returns the detected ONNX Runtime library info.
	ONNXRuntime RuntimeInfoFunc
	// SkipONNXRuntime skips the ONNX Runtime check (simulator-only mode).
	SkipONNXRuntime bool
	// ModelManifests is the list of model manifest file paths to verify on disk.
	ModelManifests []string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	if cfg.SkipONNXRuntime {
		fmt.Fprintf(w, "%s onnx runtime: skipped (simulator-only mode)\n", PassMark)
	} else {
		path, version, err := cfg.ONNXRuntime()
		if err != nil {
			res.fail(fmt.Sprintf("onnx runtime: %v", err))
			fmt.Fprintf(w, "%s onnx runtime: not found (%v)\n", FailMark, err)
		} else {
			fmt.Fprintf(w, "%s onnx runtime: %s (%s)\n", PassMark, path, version)
		}
	}

	for _, path := range cfg.ModelManifests {
		if _, err := os.Stat(path); err != nil {
			res.fail(fmt.Sprintf("model manifest %q: %v", path, err))
			fmt.Fprintf(w, "%s model manifest %s: not found\n", FailMark, path)
		} else {
			fmt.Fprintf(w, "%s model manifest: %s\n", PassMark, path)
		}
	}

	return res
}
