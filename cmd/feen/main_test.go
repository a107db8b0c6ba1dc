package main

import (
	"testing"

	"github.com/ambientai/feen-go/internal/config"
)

func TestBuildConfigPresetIsValidatedCopy(t *testing.T) {
	preset = "linear"
	configFile = ""
	defer func() { preset = "" }()

	cfg, label, err := buildConfig(nil)
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}
	if label != "linear" {
		t.Errorf("expected label %q, got %q", "linear", label)
	}
	if cfg == config.Presets["linear"] {
		t.Error("preset config must be a copy, not the shared map entry")
	}

	cfg.Dt = -1
	if config.Presets["linear"].Dt == -1 {
		t.Error("mutating the returned config leaked into the preset map")
	}
}

func TestBuildConfigUnknownPreset(t *testing.T) {
	preset = "nope"
	configFile = ""
	defer func() { preset = "" }()

	if _, _, err := buildConfig(nil); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
