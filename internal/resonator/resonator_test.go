package resonator

import (
	"errors"
	"math"
	"testing"
)

func linearConfig() Config {
	return Config{FrequencyHz: 1.0, QFactor: 10, Beta: 0}
}

func TestSimulateZeroStepsIdentity(t *testing.T) {
	cfg := linearConfig()
	state := State{X: 0.3, V: -1.2, Energy: 42.0, Phase: 7.5}
	exc := Excitation{Amplitude: 1.0, FrequencyHz: 2.0, Phase: 0.1}

	got, err := Simulate(cfg, state, exc, 0.01, 0)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if got != state {
		t.Errorf("expected identity for steps=0, got %+v", got)
	}
}

func TestSimulateZeroDtIsNoOp(t *testing.T) {
	cfg := linearConfig()
	state := State{X: 1.0, V: 0.5, Phase: 2.0}
	exc := Excitation{Amplitude: 3.0, FrequencyHz: 1.0}

	got, err := Simulate(cfg, state, exc, 0, 50)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if got.X != state.X || got.V != state.V || got.Phase != state.Phase {
		t.Errorf("dt=0 must not move the state, got %+v", got)
	}
	if want := cfg.Energy(state.X, state.V); got.Energy != want {
		t.Errorf("expected recomputed energy %g, got %g", want, got.Energy)
	}
}

func TestSimulateInvalidArguments(t *testing.T) {
	state := State{X: 1.0}

	tests := []struct {
		name  string
		cfg   Config
		exc   Excitation
		dt    float64
		steps int
	}{
		{"negative dt", linearConfig(), Excitation{}, -0.01, 1},
		{"zero q_factor", Config{FrequencyHz: 1, QFactor: 0}, Excitation{}, 0.01, 1},
		{"negative q_factor", Config{FrequencyHz: 1, QFactor: -1}, Excitation{}, 0.01, 1},
		{"negative frequency", Config{FrequencyHz: -1, QFactor: 10}, Excitation{}, 0.01, 1},
		{"negative excitation frequency", linearConfig(), Excitation{FrequencyHz: -2}, 0.01, 1},
		{"negative steps", linearConfig(), Excitation{}, 0.01, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Simulate(tt.cfg, state, tt.exc, tt.dt, tt.steps)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if got != state {
				t.Errorf("failed call must return the input state, got %+v", got)
			}
		})
	}
}

func TestDampedEnergyNonIncreasing(t *testing.T) {
	cfg := linearConfig()
	exc := Excitation{}
	state := State{X: 1.0}
	dt := 0.001

	prev := cfg.Energy(state.X, state.V)
	for i := 0; i < 1000; i++ {
		next, err := Simulate(cfg, state, exc, dt, 1)
		if err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		if next.Energy > prev {
			t.Fatalf("energy increased at step %d: %g -> %g", i, prev, next.Energy)
		}
		prev = next.Energy
		state = next
	}
}

func TestDampedRunLosesEnergy(t *testing.T) {
	cfg := linearConfig()
	state := State{X: 1.0, V: 0, Energy: 0.5, Phase: 0}

	got, err := Simulate(cfg, state, Excitation{}, 0.01, 100)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if initial := cfg.Energy(1.0, 0); got.Energy >= initial {
		t.Errorf("expected energy below %g after damped run, got %g", initial, got.Energy)
	}
}

func TestDecayBelowInitialHalfJoule(t *testing.T) {
	// With frequency 1/2π rad the angular frequency is exactly 1, so the
	// initial energy at x=1, v=0 is 0.5 and must drop strictly below it.
	cfg := Config{FrequencyHz: 1.0 / (2 * math.Pi), QFactor: 10, Beta: 0}
	state := State{X: 1.0}

	got, err := Simulate(cfg, state, Excitation{}, 0.01, 100)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if got.Energy >= 0.5 {
		t.Errorf("expected energy < 0.5, got %g", got.Energy)
	}
}

func TestUndampedEnergyConservation(t *testing.T) {
	cfg := Config{FrequencyHz: 1.0, QFactor: 1e9, Beta: 0}
	state := State{X: 1.0}
	initial := cfg.Energy(state.X, state.V)
	dt := 0.001

	for chunk := 0; chunk < 50; chunk++ {
		next, err := Simulate(cfg, state, Excitation{}, dt, 100)
		if err != nil {
			t.Fatalf("chunk %d failed: %v", chunk, err)
		}
		drift := math.Abs(next.Energy-initial) / initial
		if drift > 0.01 {
			t.Fatalf("energy drift %.4f at chunk %d exceeds tolerance", drift, chunk)
		}
		state = next
	}
}

func TestResonantDrivePumpsEnergy(t *testing.T) {
	cfg := linearConfig()
	exc := Excitation{Amplitude: 1.0, FrequencyHz: 1.0}

	got, err := Simulate(cfg, State{}, exc, 0.001, 500)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if got.Energy <= 0 {
		t.Errorf("expected driven resonator to gain energy from rest, got %g", got.Energy)
	}
}

func TestPhaseStaysUnwrapped(t *testing.T) {
	cfg := linearConfig()
	exc := Excitation{Amplitude: 0.1, FrequencyHz: 2.0}
	dt := 0.01
	steps := 200

	got, err := Simulate(cfg, State{X: 0.5}, exc, dt, steps)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	want := 2 * math.Pi * exc.FrequencyHz * dt * float64(steps)
	if got.Phase <= 2*math.Pi {
		t.Errorf("phase must not be wrapped into [0, 2π), got %g", got.Phase)
	}
	if math.Abs(got.Phase-want) > 1e-9*want {
		t.Errorf("expected phase ~%g, got %g", want, got.Phase)
	}
}

func TestNonlinearTermEntersEnergy(t *testing.T) {
	cfg := Config{FrequencyHz: 1.0, QFactor: 10, Beta: 2.0}
	want := cfg.Energy(1.0, 0)
	omega0 := 2 * math.Pi
	expected := 0.5*omega0*omega0 + 0.25*2.0
	if math.Abs(want-expected) > 1e-12 {
		t.Errorf("expected energy %g, got %g", expected, want)
	}
}

func TestDivergentRunFailsUnstable(t *testing.T) {
	// A negative cubic coefficient makes the restoring force repulsive at
	// large displacement, so acceleration grows without bound and the
	// state overflows within the run.
	cfg := Config{FrequencyHz: 1.0, QFactor: 10, Beta: -1.0}
	state := State{X: 10.0}

	got, err := Simulate(cfg, state, Excitation{}, 1.0, 200)
	if !errors.Is(err, ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}
	if got != state {
		t.Errorf("failed call must return the input state, got %+v", got)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	cfg := Config{FrequencyHz: 1.3, QFactor: 5, Beta: 0.4}
	state := State{X: 0.7, V: -0.2, Phase: 1.1}
	exc := Excitation{Amplitude: 0.8, FrequencyHz: 1.1, Phase: 0.3}

	a, err := Simulate(cfg, state, exc, 0.005, 400)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := Simulate(cfg, state, exc, 0.005, 400)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if a != b {
		t.Errorf("identical inputs must be bit-reproducible: %+v vs %+v", a, b)
	}
}

func TestChunkedStepsMatchSingleCall(t *testing.T) {
	cfg := Config{FrequencyHz: 1.0, QFactor: 8, Beta: 0.1}
	exc := Excitation{Amplitude: 0.5, FrequencyHz: 0.9, Phase: 0.2}
	dt := 0.002

	whole, err := Simulate(cfg, State{X: 1}, exc, dt, 300)
	if err != nil {
		t.Fatalf("single call failed: %v", err)
	}

	chained := State{X: 1}
	for i := 0; i < 300; i++ {
		chained, err = Simulate(cfg, chained, exc, dt, 1)
		if err != nil {
			t.Fatalf("chained step %d failed: %v", i, err)
		}
	}

	if whole.X != chained.X || whole.V != chained.V {
		t.Errorf("sub-step chaining diverged: %+v vs %+v", whole, chained)
	}
	if math.Abs(whole.Phase-chained.Phase) > 1e-12 {
		t.Errorf("phase diverged: %g vs %g", whole.Phase, chained.Phase)
	}
}
