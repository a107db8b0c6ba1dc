package resonator

import (
	"fmt"
	"math"
)

// Config holds the immutable parameters of a single resonator.
type Config struct {
	FrequencyHz float64 `yaml:"frequency_hz" json:"frequency_hz"`
	QFactor     float64 `yaml:"q_factor" json:"q_factor"`
	Beta        float64 `yaml:"beta" json:"beta"`
}

// State is a value snapshot of a resonator at one instant. Energy is always
// recomputed from X and V, never carried forward.
type State struct {
	X      float64 `yaml:"x" json:"x"`
	V      float64 `yaml:"v" json:"v"`
	Energy float64 `yaml:"energy" json:"energy"`
	Phase  float64 `yaml:"phase" json:"phase"`
}

// Excitation describes the external periodic forcing term.
type Excitation struct {
	Amplitude   float64 `yaml:"amplitude" json:"amplitude"`
	FrequencyHz float64 `yaml:"frequency_hz" json:"frequency_hz"`
	Phase       float64 `yaml:"phase" json:"phase"`
}

// IsValid reports whether every field of the state is finite.
func (s State) IsValid() bool {
	return isFinite(s.X) && isFinite(s.V) && isFinite(s.Energy) && isFinite(s.Phase)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Energy evaluates the total mechanical energy of a resonator with this
// config at displacement x and velocity v: kinetic plus linear plus cubic
// potential terms.
func (c Config) Energy(x, v float64) float64 {
	omega0 := 2 * math.Pi * c.FrequencyHz
	return 0.5*v*v + 0.5*omega0*omega0*x*x + 0.25*c.Beta*x*x*x*x
}

func (c Config) validate() error {
	if c.FrequencyHz < 0 {
		return fmt.Errorf("%w: frequency_hz must be >= 0, got %g", ErrInvalidArgument, c.FrequencyHz)
	}
	if c.QFactor <= 0 {
		return fmt.Errorf("%w: q_factor must be positive, got %g", ErrInvalidArgument, c.QFactor)
	}
	return nil
}

// Simulate advances a driven, damped, optionally cubic-nonlinear resonator
// by `steps` sub-steps of size dt:
//
//	x'' + (ω0/Q)·x' + ω0²·x + β·x³ = A·cos(2π·f_exc·t + φ)
//
// with ω0 = 2π·cfg.FrequencyHz. Each sub-step is one semi-implicit Euler
// update: the velocity is kicked from the acceleration first, then the
// position drifts using the updated velocity. This ordering is part of the
// contract; it bounds long-run energy drift and keeps results reproducible
// bit-for-bit across implementations.
//
// The driving phase is tracked unwrapped in State.Phase and advances by
// 2π·f_exc·dt per sub-step, so the drive term at each sub-step is
// A·cos(State.Phase + exc.Phase) evaluated before the kick. Energy is
// recomputed from x and v after every sub-step.
//
// steps == 0 returns state unchanged. dt == 0 makes every sub-step a no-op.
// dt < 0 and non-positive QFactor are rejected with ErrInvalidArgument.
// The function is pure: it retains nothing and never mutates its inputs.
func Simulate(cfg Config, state State, exc Excitation, dt float64, steps int) (State, error) {
	if err := cfg.validate(); err != nil {
		return state, err
	}
	if dt < 0 {
		return state, fmt.Errorf("%w: dt must be >= 0, got %g", ErrInvalidArgument, dt)
	}
	if steps < 0 {
		return state, fmt.Errorf("%w: steps must be >= 0, got %d", ErrInvalidArgument, steps)
	}
	if exc.FrequencyHz < 0 {
		return state, fmt.Errorf("%w: excitation frequency_hz must be >= 0, got %g", ErrInvalidArgument, exc.FrequencyHz)
	}
	if steps == 0 {
		return state, nil
	}

	omega0 := 2 * math.Pi * cfg.FrequencyHz
	omega0Sq := omega0 * omega0
	damping := omega0 / cfg.QFactor
	phaseInc := 2 * math.Pi * exc.FrequencyHz * dt

	x, v, phase := state.X, state.V, state.Phase

	for i := 0; i < steps; i++ {
		force := exc.Amplitude * math.Cos(phase+exc.Phase)
		acc := force - damping*v - omega0Sq*x - cfg.Beta*x*x*x

		// Kick then drift; the drift uses the already-updated velocity.
		v += acc * dt
		x += v * dt
		phase += phaseInc
	}

	next := State{
		X:      x,
		V:      v,
		Energy: cfg.Energy(x, v),
		Phase:  phase,
	}
	if !next.IsValid() {
		return state, fmt.Errorf("%w: non-finite state after %d steps", ErrUnstable, steps)
	}
	return next, nil
}
