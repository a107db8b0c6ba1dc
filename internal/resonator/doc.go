// Package resonator implements the FEEN physics step: a stateless,
// deterministic advance of a driven, damped, optionally cubic-nonlinear
// oscillator.
//
// The package exposes plain value types ([Config], [State], [Excitation])
// and a single operation, [Simulate]. The caller owns all state; successive
// calls are chained by passing the returned [State] back in. Identical
// inputs always produce bit-identical outputs, so results are reproducible
// across hosts and runs.
//
//	cfg := resonator.Config{FrequencyHz: 1.0, QFactor: 10, Beta: 0}
//	st := resonator.State{X: 1}
//	st, err := resonator.Simulate(cfg, st, resonator.Excitation{}, 0.01, 100)
package resonator
