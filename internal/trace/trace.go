package trace

import (
	"github.com/ambientai/feen-go/internal/resonator"
)

// Recorder accumulates the time series of one simulation run.
type Recorder struct {
	Times  []float64
	States []resonator.State
}

// NewRecorder pre-sizes the buffers for the expected number of steps.
func NewRecorder(capacity int) *Recorder {
	if capacity < 0 {
		capacity = 0
	}
	return &Recorder{
		Times:  make([]float64, 0, capacity+1),
		States: make([]resonator.State, 0, capacity+1),
	}
}

// Record appends one snapshot.
func (r *Recorder) Record(t float64, s resonator.State) {
	r.Times = append(r.Times, t)
	r.States = append(r.States, s)
}

// Len reports the number of recorded snapshots.
func (r *Recorder) Len() int { return len(r.Times) }

// Displacements returns the x series.
func (r *Recorder) Displacements() []float64 {
	return r.series(func(s resonator.State) float64 { return s.X })
}

// Velocities returns the v series.
func (r *Recorder) Velocities() []float64 {
	return r.series(func(s resonator.State) float64 { return s.V })
}

// Energies returns the energy series.
func (r *Recorder) Energies() []float64 {
	return r.series(func(s resonator.State) float64 { return s.Energy })
}

func (r *Recorder) series(f func(resonator.State) float64) []float64 {
	out := make([]float64, len(r.States))
	for i, s := range r.States {
		out[i] = f(s)
	}
	return out
}
