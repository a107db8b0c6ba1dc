// Package ailee implements the AILEE Δv efficiency functional.
//
// Δv is an operational performance metric, not a physical law: it reduces a
// time-ordered sequence of telemetry samples (power input, workload,
// adaptation velocity, inertia) to a single dimensionless gain scalar that
// can be compared across schedulers or hardware configurations.
//
//	Δv = Isp · η · e^(−α·v₀²) · ∫ P_input(t) · e^(−α·w(t)²) · e^(2α·v₀·v(t)) / M(t) dt
//
// Two surfaces are provided: [ComputeDeltaV] for a complete sample sequence
// and [Metric] for incremental accumulation over a live stream. Both are
// deterministic and evaluate the sum strictly in sample order.
package ailee
