package ailee

import (
	"fmt"
	"math"
)

const (
	// inertiaFloor guards the division when a sample reports zero inertia.
	inertiaFloor = 1e-9

	// expClamp bounds every exponent fed to math.Exp so that extreme
	// telemetry values saturate instead of overflowing to Inf.
	expClamp = 700.0
)

// Params holds the calibration constants of the Δv functional.
type Params struct {
	Isp   float64 `yaml:"isp" json:"isp"`
	Eta   float64 `yaml:"eta" json:"eta"`
	Alpha float64 `yaml:"alpha" json:"alpha"`
	V0    float64 `yaml:"v0" json:"v0"`
}

// DefaultParams returns the standard calibration: unit gain, mild
// resonance sensitivity, unit reference velocity.
func DefaultParams() Params {
	return Params{Isp: 1.0, Eta: 1.0, Alpha: 0.1, V0: 1.0}
}

func (p Params) validate() error {
	if p.Isp <= 0 {
		return fmt.Errorf("%w: isp must be positive, got %g", ErrInvalidArgument, p.Isp)
	}
	if p.Eta <= 0 {
		return fmt.Errorf("%w: eta must be positive, got %g", ErrInvalidArgument, p.Eta)
	}
	return nil
}

// Sample is one telemetry observation over a measurement interval of
// length Dt.
type Sample struct {
	PInput   float64 `yaml:"p_input" json:"p_input"`
	Workload float64 `yaml:"workload" json:"workload"`
	Velocity float64 `yaml:"velocity" json:"velocity"`
	Inertia  float64 `yaml:"inertia" json:"inertia"`
	Dt       float64 `yaml:"dt" json:"dt"`
}

// NewSample builds a telemetry sample, clamping PInput, Inertia and Dt to
// their valid ranges. Use this constructor when feeding a [Metric] from raw
// host telemetry that may carry sensor glitches; ComputeDeltaV instead
// rejects out-of-range samples outright.
func NewSample(pInput, workload, velocity, inertia, dt float64) Sample {
	return Sample{
		PInput:   math.Max(pInput, 0),
		Workload: workload,
		Velocity: velocity,
		Inertia:  math.Max(inertia, inertiaFloor),
		Dt:       math.Max(dt, 0),
	}
}

func (s Sample) validate(i int) error {
	if s.Inertia < 0 {
		return fmt.Errorf("%w: sample %d: inertia must be >= 0, got %g", ErrInvalidArgument, i, s.Inertia)
	}
	if s.Dt <= 0 {
		return fmt.Errorf("%w: sample %d: dt must be positive, got %g", ErrInvalidArgument, i, s.Dt)
	}
	return nil
}

// integrand evaluates one sample's contribution before time weighting:
//
//	P_input · e^(−α·w²) · e^(2α·v₀·v) / max(M, floor)
//
// The workload gate suppresses off-resonant operation, the velocity gate
// rewards coherent adaptation, and the inertia divisor penalises
// brute-force scaling.
func integrand(s Sample, alpha, v0 float64) float64 {
	workloadGate := math.Exp(clamp(-alpha*s.Workload*s.Workload, -expClamp, expClamp))
	velocityGate := math.Exp(clamp(2*alpha*v0*s.Velocity, -expClamp, expClamp))
	return s.PInput * workloadGate * velocityGate / math.Max(s.Inertia, inertiaFloor)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// ComputeDeltaV reduces an ordered sequence of telemetry samples to the
// AILEE Δv scalar:
//
//	Δv = Isp · η · e^(−α·v₀²) · Σ P_i · e^(−α·w_i²) · e^(2α·v₀·v_i) / M_i · dt_i
//
// The sum is accumulated strictly in input order; reordering would change
// floating-point rounding and break reproducibility. An empty sequence
// yields 0. Non-positive isp or eta, a negative sample inertia, or a
// non-positive sample dt fail with ErrInvalidArgument. A non-finite result
// fails with ErrUnstable rather than returning NaN or Inf.
func ComputeDeltaV(samples []Sample, alpha, v0, isp, eta float64) (float64, error) {
	p := Params{Isp: isp, Eta: eta, Alpha: alpha, V0: v0}
	if err := p.validate(); err != nil {
		return 0, err
	}
	for i, s := range samples {
		if err := s.validate(i); err != nil {
			return 0, err
		}
	}

	accumulated := 0.0
	for _, s := range samples {
		accumulated += integrand(s, alpha, v0) * s.Dt
	}

	outer := isp * eta * math.Exp(clamp(-alpha*v0*v0, -expClamp, expClamp))
	result := outer * accumulated
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: delta-v is not finite", ErrUnstable)
	}
	return result, nil
}

// Metric is the incremental twin of [ComputeDeltaV]: it accumulates the
// weighted integrand one sample at a time so a host can track Δv across a
// long-running telemetry stream without retaining the samples.
type Metric struct {
	params      Params
	accumulated float64
	sampleCount uint64
}

// NewMetric returns an accumulator with the given calibration.
func NewMetric(params Params) *Metric {
	return &Metric{params: params}
}

// Integrate folds one sample into the running sum. Samples built with
// [NewSample] are already clamped to valid ranges.
func (m *Metric) Integrate(s Sample) {
	m.accumulated += integrand(s, m.params.Alpha, m.params.V0) * s.Dt
	m.sampleCount++
}

// DeltaV applies the outer scaling Isp·η·e^(−α·v₀²) to the running sum.
func (m *Metric) DeltaV() float64 {
	outer := m.params.Isp * m.params.Eta * math.Exp(clamp(-m.params.Alpha*m.params.V0*m.params.V0, -expClamp, expClamp))
	return outer * m.accumulated
}

// Reset clears the running sum while keeping the calibration.
func (m *Metric) Reset() {
	m.accumulated = 0
	m.sampleCount = 0
}

// SampleCount reports how many samples were integrated since the last Reset.
func (m *Metric) SampleCount() uint64 { return m.sampleCount }

// Params returns the accumulator's calibration.
func (m *Metric) Params() Params { return m.params }
