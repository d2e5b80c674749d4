package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBenchManifestParsesJSONLines(t *testing.T) {
	tmp := t.TempDir()
	manifestPath := filepath.Join(tmp, "manifest.jsonl")

	content := `{"id":"utt-1","audio_path":"a.wav","transcript":"hello world","language":"en","reference_words":[{"word":"hello","start_sec":0.0,"end_sec":0.4},{"word":"world","start_sec":0.45,"end_sec":0.9}]}
{"audio_path":"b.wav","transcript":"bonjour","reference_words":[]}

`
	if err := os.WriteFile(manifestPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cases, err := loadBenchManifest(manifestPath)
	if err != nil {
		t.Fatalf("loadBenchManifest: %v", err)
	}

	if len(cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(cases))
	}
	if cases[0].ID != "utt-1" {
		t.Errorf("cases[0].ID = %q, want utt-1", cases[0].ID)
	}
	if len(cases[0].ReferenceWords) != 2 {
		t.Errorf("cases[0] has %d reference words, want 2", len(cases[0].ReferenceWords))
	}
	if cases[1].ID != "line-2" {
		t.Errorf("cases[1].ID = %q, want the auto-generated line-2", cases[1].ID)
	}
	if cases[1].Language != "auto" {
		t.Errorf("cases[1].Language = %q, want auto default", cases[1].Language)
	}
}

func TestLoadBenchManifestRejectsMissingFile(t *testing.T) {
	if _, err := loadBenchManifest("/nonexistent/manifest.jsonl"); err == nil {
		t.Fatal("expected error for a missing manifest file")
	}
}

func TestLoadBenchManifestRejectsInvalidJSON(t *testing.T) {
	tmp := t.TempDir()
	manifestPath := filepath.Join(tmp, "manifest.jsonl")
	if err := os.WriteFile(manifestPath, []byte("{not json}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := loadBenchManifest(manifestPath); err == nil {
		t.Fatal("expected error for invalid JSON line")
	}
}

func TestNewBenchCmdRequiresManifestFlag(t *testing.T) {
	orig := activeCfg
	t.Cleanup(func() { activeCfg = orig })
	activeCfg.Paths.TokenizerModel = "models/tokenizer.model"

	cmd := newBenchCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error when --manifest is not given")
	}
	if !isArgumentError(err) {
		t.Fatalf("expected an argument error, got %v", err)
	}
}
