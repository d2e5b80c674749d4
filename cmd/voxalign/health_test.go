package main

import (
	"testing"

	"github.com/example/voxalign/internal/config"
)

func TestNewHealthCmdFailsAgainstUnreachableServer(t *testing.T) {
	orig := activeCfg
	t.Cleanup(func() { activeCfg = orig })
	activeCfg = config.Config{
		Paths:  config.PathsConfig{TokenizerModel: "models/tokenizer.model"},
		Server: config.ServerConfig{ListenAddr: "127.0.0.1:0"},
	}

	cmd := newHealthCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error probing an address nothing is listening on")
	}
}

func TestNewHealthCmdFailsWithoutConfig(t *testing.T) {
	orig := activeCfg
	t.Cleanup(func() { activeCfg = orig })
	activeCfg = config.Config{}

	cmd := newHealthCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when configuration has not been loaded")
	}
}
