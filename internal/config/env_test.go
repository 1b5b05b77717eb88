package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Rounds int `env:"TEST_ROUNDS" envDefault:"20"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Rounds != 20 {
		t.Fatalf("expected default rounds 20, got %d", cfg.Rounds)
	}
}

func TestParseEnvOverride(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TITFORTAT_TEST_ROUNDS", "75")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Rounds != 75 {
		t.Fatalf("expected rounds 75, got %d", cfg.Rounds)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TITFORTAT_TEST_ROUNDS", "many")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvIgnoresUnprefixed(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TEST_ROUNDS", "75")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Rounds != 20 {
		t.Fatalf("expected unprefixed variable to be ignored, got %d", cfg.Rounds)
	}
}
