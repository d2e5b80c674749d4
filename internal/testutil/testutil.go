// Package testutil provides shared skip helpers for integration tests.
//
// Each helper calls t.Skip with a clear human-readable reason when the
// named prerequisite is absent, so integration tests remain runnable in
// partial environments without failing noisily.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// RequireONNXRuntime skips the test if no ONNX Runtime shared library
// can be located. It checks (in order): the ORT_LIBRARY_PATH env var,
// then VOXALIGN_ORT_LIB, then common system library paths.
func RequireONNXRuntime(t *testing.T) {
	t.Helper()

	for _, env := range []string{"ORT_LIBRARY_PATH", "VOXALIGN_ORT_LIB"} {
		if p := os.Getenv(env); p != "" {
			if _, err := os.Stat(p); err == nil {
				return
			}

			t.Skipf("ONNX Runtime library not found at %s=%q", env, p)
		}
	}

	candidates := []string{
		"/usr/lib/libonnxruntime.so",
		"/usr/local/lib/libonnxruntime.so",
		"/usr/lib/x86_64-linux-gnu/libonnxruntime.so",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return
		}
	}

	t.Skip("ONNX Runtime shared library not found; set ORT_LIBRARY_PATH or VOXALIGN_ORT_LIB")
}

// RequireModelManifest skips the test if the named model manifest file
// cannot be found relative to the current working directory.
func RequireModelManifest(t *testing.T, manifestPath string) {
	t.Helper()

	if _, err := os.Stat(manifestPath); err != nil {
		t.Skipf("model manifest not available at %q: %v", manifestPath, err)
	}
}

// SilenceWAVPath returns the repository-root-relative path at which a
// 100 ms silence fixture WAV is looked for. The repository does not
// contain that file; callers get only the path.
func SilenceWAVPath() string {
	return filepath.Join("cmd", "voxalign", "testdata", "silence_100ms.wav")
}
