package doctor_test

import (
	"strings"
	"testing"

	"github.com/example/voxalign/internal/doctor"
)

func TestRunAllChecksPass(t *testing.T) {
	cfg := doctor.Config{
		ONNXRuntime:    func() (string, string, error) { return "/usr/lib/libonnxruntime.so", "1.17.0", nil },
		ModelManifests: []string{},
	}

	var out strings.Builder

	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "onnx runtime") {
		t.Error("output should mention onnx runtime")
	}
}

func TestRunONNXRuntimeMissingFails(t *testing.T) {
	cfg := doctor.Config{
		ONNXRuntime:    func() (string, string, error) { return "", "", errLibraryNotFound },
		ModelManifests: []string{},
	}

	var out strings.Builder

	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when onnx runtime is not found")
	}

	if !hasFailureContaining(result.Failures(), "onnx runtime") {
		t.Errorf("expected failure mentioning onnx runtime, got: %v", result.Failures())
	}
}

func TestRunMissingModelManifestFails(t *testing.T) {
	cfg := doctor.Config{
		ONNXRuntime:    func() (string, string, error) { return "/usr/lib/libonnxruntime.so", "1.17.0", nil },
		ModelManifests: []string{"/nonexistent/manifest.json"},
	}

	var out strings.Builder

	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure for missing model manifest")
	}

	if !hasFailureContaining(result.Failures(), "manifest") {
		t.Errorf("expected failure mentioning manifest, got: %v", result.Failures())
	}
}

func TestRunOutputContainsPassAndFailMarkers(t *testing.T) {
	cfg := doctor.Config{
		ONNXRuntime:    func() (string, string, error) { return "", "", errLibraryNotFound },
		ModelManifests: []string{"/nonexistent/manifest.json"},
	}

	var out strings.Builder

	doctor.Run(cfg, &out)

	body := out.String()
	if !strings.Contains(body, doctor.FailMark) {
		t.Errorf("output missing fail marker %q:\n%s", doctor.FailMark, body)
	}
}

func TestRunSkipONNXRuntimeCheck(t *testing.T) {
	cfg := doctor.Config{SkipONNXRuntime: true, ModelManifests: []string{}}

	var out strings.Builder

	result := doctor.Run(cfg, &out)
	if result.Failed() {
		t.Fatalf("expected no failures when the runtime check is skipped, got: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "onnx runtime: skipped") {
		t.Fatalf("expected skipped output, got:\n%s", out.String())
	}
}

type sentinelErr string

func (e sentinelErr) Error() string { return string(e) }

var errLibraryNotFound = sentinelErr("library not found")

func hasFailureContaining(failures []string, substr string) bool {
	substr = strings.ToLower(substr)

	for _, f := range failures {
		if strings.Contains(strings.ToLower(f), substr) {
			return true
		}
	}

	return false
}
