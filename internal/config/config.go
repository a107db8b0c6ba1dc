package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ambientai/feen-go/internal/ailee"
	"github.com/ambientai/feen-go/internal/resonator"
)

const (
	DefaultDt          = 0.01
	DefaultDuration    = 10.0
	DefaultFrequencyHz = 1.0
	DefaultQFactor     = 10.0
)

// Config drives one feen run: resonator parameters, excitation, initial
// state, integration cadence, and Δv calibration.
type Config struct {
	Resonator  resonator.Config     `yaml:"resonator"`
	Excitation resonator.Excitation `yaml:"excitation"`
	InitState  InitStateConfig      `yaml:"init_state"`
	Dt         float64              `yaml:"dt"`
	Duration   float64              `yaml:"duration"`
	Metric     ailee.Params         `yaml:"metric"`
}

type InitStateConfig struct {
	X float64 `yaml:"x"`
	V float64 `yaml:"v"`
}

func DefaultConfig() *Config {
	return &Config{
		Resonator: resonator.Config{
			FrequencyHz: DefaultFrequencyHz,
			QFactor:     DefaultQFactor,
		},
		Excitation: resonator.Excitation{
			Amplitude:   1.0,
			FrequencyHz: DefaultFrequencyHz,
		},
		InitState: InitStateConfig{X: 1.0},
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		Metric:    ailee.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the core would refuse anyway, so a bad
// file fails before the run starts.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.Resonator.QFactor <= 0 {
		return fmt.Errorf("q_factor must be positive, got %g", c.Resonator.QFactor)
	}
	if c.Resonator.FrequencyHz < 0 {
		return fmt.Errorf("frequency_hz must be >= 0, got %g", c.Resonator.FrequencyHz)
	}
	if c.Excitation.FrequencyHz < 0 {
		return fmt.Errorf("excitation frequency_hz must be >= 0, got %g", c.Excitation.FrequencyHz)
	}
	return nil
}

// GetInitState builds the initial resonator state, with energy consistent
// with the configured displacement and velocity.
func (c *Config) GetInitState() resonator.State {
	return resonator.State{
		X:      c.InitState.X,
		V:      c.InitState.V,
		Energy: c.Resonator.Energy(c.InitState.X, c.InitState.V),
	}
}

// Steps returns the number of integration steps covering Duration.
func (c *Config) Steps() int {
	return int(c.Duration / c.Dt)
}
