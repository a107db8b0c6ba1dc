package config

import (
	"math"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Steps() != 1000 {
		t.Errorf("expected 1000 steps, got %d", cfg.Steps())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Resonator.Beta = 0.7
	cfg.Excitation.Amplitude = 2.5
	cfg.InitState.V = -0.3
	cfg.Metric.Alpha = 0.05

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Resonator.Beta != 0.7 {
		t.Errorf("beta lost in round trip: %g", loaded.Resonator.Beta)
	}
	if loaded.Excitation.Amplitude != 2.5 {
		t.Errorf("amplitude lost in round trip: %g", loaded.Excitation.Amplitude)
	}
	if loaded.InitState.V != -0.3 {
		t.Errorf("init velocity lost in round trip: %g", loaded.InitState.V)
	}
	if loaded.Metric.Alpha != 0.05 {
		t.Errorf("metric alpha lost in round trip: %g", loaded.Metric.Alpha)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"zero q_factor", func(c *Config) { c.Resonator.QFactor = 0 }},
		{"negative frequency", func(c *Config) { c.Resonator.FrequencyHz = -1 }},
		{"negative excitation frequency", func(c *Config) { c.Excitation.FrequencyHz = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range PresetNames() {
		cfg, ok := Presets[name]
		if !ok {
			t.Fatalf("preset %q listed but missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}
	if len(PresetNames()) != len(Presets) {
		t.Errorf("preset list out of sync: %d names, %d presets", len(PresetNames()), len(Presets))
	}
}

func TestGetInitStateComputesEnergy(t *testing.T) {
	cfg := DefaultConfig()
	st := cfg.GetInitState()
	want := cfg.Resonator.Energy(cfg.InitState.X, cfg.InitState.V)
	if math.Abs(st.Energy-want) > 1e-12 {
		t.Errorf("expected init energy %g, got %g", want, st.Energy)
	}
}
