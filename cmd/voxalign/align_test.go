package main

import (
	"errors"
	"testing"
)

func TestIsArgumentErrorMatchesErrArgument(t *testing.T) {
	if !isArgumentError(&errArgument{msg: "bad arg"}) {
		t.Fatal("expected errArgument to be recognized as an argument error")
	}
}

func TestIsArgumentErrorMatchesCobraArgCountError(t *testing.T) {
	if !isArgumentError(errors.New("accepts between 1 and 2 arg(s), received 0")) {
		t.Fatal("expected cobra arg-count error to be recognized as an argument error")
	}
}

func TestIsArgumentErrorRejectsUnrelatedError(t *testing.T) {
	if isArgumentError(errors.New("boom")) {
		t.Fatal("expected unrelated error to not be an argument error")
	}
}

func TestNewAlignCmdRejectsTooManyArgs(t *testing.T) {
	cmd := newAlignCmd()
	cmd.SetArgs([]string{"a.wav", "transcript", "extra"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for too many positional arguments")
	}
}

func TestNewAlignCmdRejectsEmptyAudioPath(t *testing.T) {
	orig := activeCfg
	t.Cleanup(func() { activeCfg = orig })
	activeCfg.Paths.TokenizerModel = "models/tokenizer.model"

	cmd := newAlignCmd()
	cmd.SetArgs([]string{"   "})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for blank audio path")
	}

	if !isArgumentError(err) {
		t.Fatalf("expected an argument error, got %v", err)
	}
}
