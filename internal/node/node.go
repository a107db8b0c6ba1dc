package node

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/ambientai/feen-go/internal/ailee"
	"github.com/ambientai/feen-go/internal/resonator"
)

// CouplingConfig describes a directed coupling between two resonators in a
// FEEN network.
type CouplingConfig struct {
	SourceID   string  `yaml:"source_id" json:"source_id"`
	TargetID   string  `yaml:"target_id" json:"target_id"`
	Strength   float64 `yaml:"strength" json:"strength"`
	PhaseShift float64 `yaml:"phase_shift" json:"phase_shift"`
}

// Engine is the physics backend a node drives. The in-process [Local]
// implementation covers embedded deployments; hosts that bridge to an
// external engine supply their own.
type Engine interface {
	Simulate(ctx context.Context, cfg resonator.Config, state resonator.State, exc resonator.Excitation, dt float64, steps int) (resonator.State, error)
	UpdateCoupling(ctx context.Context, cc CouplingConfig) error
}

// Node owns one resonator's state across ticks and folds each tick's
// telemetry into an AILEE Δv accumulator. Nodes are not safe for
// concurrent use.
type Node struct {
	engine Engine
	config resonator.Config
	state  resonator.State
	metric *ailee.Metric
	logger *zap.Logger
}

// Option configures a Node.
type Option func(*Node)

// WithLogger sets the node's logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(n *Node) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithMetricParams sets the Δv calibration used by the node's accumulator.
func WithMetricParams(p ailee.Params) Option {
	return func(n *Node) { n.metric = ailee.NewMetric(p) }
}

// New creates a node at rest with a default-calibrated metric.
func New(engine Engine, cfg resonator.Config, opts ...Option) *Node {
	n := &Node{
		engine: engine,
		config: cfg,
		metric: ailee.NewMetric(ailee.DefaultParams()),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Tick advances the node's resonator by one step of size dt and integrates
// one telemetry sample derived from the step: power input is the squared
// excitation amplitude, workload is the detuning from the natural
// frequency, velocity is the magnitude of the new mechanical velocity, and
// inertia is unit. On engine failure the node's state is left untouched.
func (n *Node) Tick(ctx context.Context, exc resonator.Excitation, dt float64) error {
	next, err := n.engine.Simulate(ctx, n.config, n.state, exc, dt, 1)
	if err != nil {
		return err
	}

	s := ailee.NewSample(
		exc.Amplitude*exc.Amplitude,
		math.Abs(exc.FrequencyHz-n.config.FrequencyHz),
		math.Abs(next.V),
		1.0,
		dt,
	)
	n.metric.Integrate(s)
	n.state = next

	n.logger.Debug("tick",
		zap.Float64("x", next.X),
		zap.Float64("v", next.V),
		zap.Float64("energy", next.Energy),
		zap.Float64("delta_v", n.metric.DeltaV()),
	)
	return nil
}

// DeltaV reports the node's accumulated Δv gain.
func (n *Node) DeltaV() float64 { return n.metric.DeltaV() }

// State returns the node's current resonator state.
func (n *Node) State() resonator.State { return n.state }

// SetState replaces the node's resonator state, e.g. to seed an initial
// displacement before the first tick.
func (n *Node) SetState(s resonator.State) { n.state = s }

// Config returns the node's resonator configuration.
func (n *Node) Config() resonator.Config { return n.config }

// SampleCount reports how many ticks have been integrated into the metric.
func (n *Node) SampleCount() uint64 { return n.metric.SampleCount() }

// UpdateCoupling forwards a coupling change to the engine.
func (n *Node) UpdateCoupling(ctx context.Context, cc CouplingConfig) error {
	return n.engine.UpdateCoupling(ctx, cc)
}
