package config

import (
	"github.com/ambientai/feen-go/internal/ailee"
	"github.com/ambientai/feen-go/internal/resonator"
)

// Presets are ready-made run configurations for common regimes.
var Presets = map[string]*Config{
	"linear": {
		Resonator:  resonator.Config{FrequencyHz: 1.0, QFactor: 10, Beta: 0},
		Excitation: resonator.Excitation{Amplitude: 0, FrequencyHz: 1.0},
		InitState:  InitStateConfig{X: 1.0},
		Dt:         0.01, Duration: 10.0,
		Metric: ailee.DefaultParams(),
	},
	"resonant": {
		Resonator:  resonator.Config{FrequencyHz: 1.0, QFactor: 20, Beta: 0},
		Excitation: resonator.Excitation{Amplitude: 1.0, FrequencyHz: 1.0},
		Dt:         0.005, Duration: 20.0,
		Metric: ailee.DefaultParams(),
	},
	"detuned": {
		Resonator:  resonator.Config{FrequencyHz: 1.0, QFactor: 20, Beta: 0},
		Excitation: resonator.Excitation{Amplitude: 1.0, FrequencyHz: 1.4},
		Dt:         0.005, Duration: 20.0,
		Metric: ailee.DefaultParams(),
	},
	"duffing": {
		Resonator:  resonator.Config{FrequencyHz: 0.2, QFactor: 4, Beta: 1.0},
		Excitation: resonator.Excitation{Amplitude: 0.5, FrequencyHz: 0.19},
		InitState:  InitStateConfig{X: 1.0},
		Dt:         0.005, Duration: 60.0,
		Metric: ailee.DefaultParams(),
	},
	"undamped": {
		Resonator:  resonator.Config{FrequencyHz: 1.0, QFactor: 1e9, Beta: 0},
		Excitation: resonator.Excitation{Amplitude: 0, FrequencyHz: 1.0},
		InitState:  InitStateConfig{X: 1.0},
		Dt:         0.001, Duration: 10.0,
		Metric: ailee.DefaultParams(),
	},
}

// PresetNames lists available presets in a stable order.
func PresetNames() []string {
	return []string{"linear", "resonant", "detuned", "duffing", "undamped"}
}
