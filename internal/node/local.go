package node

import (
	"context"
	"fmt"

	"github.com/ambientai/feen-go/internal/resonator"
)

// Local is the in-process physics engine: simulation calls go straight to
// the resonator core, and coupling updates are kept in a table the host can
// inspect. Not safe for concurrent use.
type Local struct {
	couplings map[string]CouplingConfig
}

// NewLocal returns an engine with an empty coupling table.
func NewLocal() *Local {
	return &Local{couplings: make(map[string]CouplingConfig)}
}

// Simulate runs the resonator core. The context is accepted for interface
// symmetry with remote engines; the core itself never blocks.
func (l *Local) Simulate(ctx context.Context, cfg resonator.Config, state resonator.State, exc resonator.Excitation, dt float64, steps int) (resonator.State, error) {
	if err := ctx.Err(); err != nil {
		return state, err
	}
	return resonator.Simulate(cfg, state, exc, dt, steps)
}

// UpdateCoupling records a directed coupling, keyed by source and target.
func (l *Local) UpdateCoupling(ctx context.Context, cc CouplingConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cc.SourceID == "" || cc.TargetID == "" {
		return fmt.Errorf("%w: coupling needs both source_id and target_id", resonator.ErrInvalidArgument)
	}
	l.couplings[cc.SourceID+"->"+cc.TargetID] = cc
	return nil
}

// Couplings returns a copy of the current coupling table.
func (l *Local) Couplings() []CouplingConfig {
	out := make([]CouplingConfig, 0, len(l.couplings))
	for _, cc := range l.couplings {
		out = append(out, cc)
	}
	return out
}
