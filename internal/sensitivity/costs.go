package sensitivity

import (
	"fmt"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/runner"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scenario"
)

// DefaultAgentCosts and DefaultImplMultipliers span the cost grid used to
// probe ROI robustness against estimation error.
func DefaultAgentCosts() []float64      { return []float64{20, 25, 28, 32, 40, 50} }
func DefaultImplMultipliers() []float64 { return []float64{0.5, 0.75, 1.0, 1.25, 1.5} }

// CostCell is one (agent cost, implementation multiplier) outcome.
type CostCell struct {
	AgentCostPerHour   float64
	ImplMultiplier     float64
	Eligible           int
	TotalAnnualSavings float64
	TotalImplCost      float64
	PortfolioROIRatio  float64
}

// CostGridReport shows how cost assumptions move portfolio ROI.
type CostGridReport struct {
	ScenarioID string
	Cells      []CostCell
}

// RunCostGrid reruns the scenario for every cost combination, keeping
// weights and gates fixed. Cells are ordered by agent cost then multiplier.
func RunCostGrid(store *portfolio.Store, baseline scenario.Parameters, agentCosts, implMultipliers []float64) (*CostGridReport, error) {
	if len(agentCosts) == 0 {
		agentCosts = DefaultAgentCosts()
	}
	if len(implMultipliers) == 0 {
		implMultipliers = DefaultImplMultipliers()
	}

	report := &CostGridReport{ScenarioID: baseline.ID}
	for _, cost := range agentCosts {
		for _, mult := range implMultipliers {
			params := baseline
			params.Costs.AgentCostPerHour = cost
			params.Costs.BaseImplementationCost = baseline.Costs.BaseImplementationCost * mult

			result, err := runner.Run(store, params)
			if err != nil {
				return nil, fmt.Errorf("cost ($%g/hr, %.2fx): %w", cost, mult, err)
			}

			report.Cells = append(report.Cells, CostCell{
				AgentCostPerHour:   cost,
				ImplMultiplier:     mult,
				Eligible:           result.Summary.Eligible,
				TotalAnnualSavings: result.Summary.TotalAnnualSavings,
				TotalImplCost:      result.Summary.TotalImplementationCost,
				PortfolioROIRatio:  result.Summary.PortfolioROIRatio,
			})
		}
	}
	return report, nil
}
