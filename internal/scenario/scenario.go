package scenario

import (
	"fmt"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/finance"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scoring"
)

// Parameters is one named scenario: dimension weights, gate thresholds, and
// cost assumptions. It is a pure value object, never mutated after load.
type Parameters struct {
	ID      string
	Name    string
	Weights scoring.Weights
	Gates   scoring.Gates
	Costs   finance.Params
	Source  string
}

// Validate re-checks every component invariant. Loaded scenarios are already
// validated; this exists for parameters constructed in code.
func (p Parameters) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("scenario_id is required")
	}
	if err := p.Weights.Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", p.ID, err)
	}
	if err := p.Gates.Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", p.ID, err)
	}
	if err := p.Costs.Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", p.ID, err)
	}
	return nil
}

// Find returns the scenario with the given id.
func Find(params []Parameters, id string) (Parameters, bool) {
	for _, p := range params {
		if p.ID == id {
			return p, true
		}
	}
	return Parameters{}, false
}
