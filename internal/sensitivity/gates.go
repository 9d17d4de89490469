package sensitivity

import (
	"fmt"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/runner"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scenario"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scoring"
)

// DefaultReadinessGates and DefaultRiskGates span the threshold grid used to
// weigh gate strictness against the candidate pool.
func DefaultReadinessGates() []float64 { return []float64{40, 50, 60, 70} }
func DefaultRiskGates() []float64     { return []float64{55, 65, 70, 75, 80} }

// GateCell is one (min_readiness, max_risk) combination's outcome.
type GateCell struct {
	MinReadiness       float64
	MaxRisk            float64
	Eligible           int
	Gated              int
	TotalAnnualSavings float64
}

// GateGridReport quantifies the gate strictness trade-off.
type GateGridReport struct {
	ScenarioID string
	Cells      []GateCell
}

// RunGateGrid reruns the scenario for every gate combination, keeping
// weights and costs fixed, and reports pool size and savings per cell.
// Cells are ordered by min_readiness then max_risk.
func RunGateGrid(store *portfolio.Store, baseline scenario.Parameters, minReadiness, maxRisk []float64) (*GateGridReport, error) {
	if len(minReadiness) == 0 {
		minReadiness = DefaultReadinessGates()
	}
	if len(maxRisk) == 0 {
		maxRisk = DefaultRiskGates()
	}

	report := &GateGridReport{ScenarioID: baseline.ID}
	for _, minR := range minReadiness {
		for _, maxR := range maxRisk {
			params := baseline
			params.Gates = scoring.Gates{MinReadiness: minR, MaxRisk: maxR}

			result, err := runner.Run(store, params)
			if err != nil {
				return nil, fmt.Errorf("gates (%g, %g): %w", minR, maxR, err)
			}

			report.Cells = append(report.Cells, GateCell{
				MinReadiness:       minR,
				MaxRisk:            maxR,
				Eligible:           result.Summary.Eligible,
				Gated:              result.Summary.Gated,
				TotalAnnualSavings: result.Summary.TotalAnnualSavings,
			})
		}
	}
	return report, nil
}
