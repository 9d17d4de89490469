package finance

import (
	"fmt"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
)

// PaybackNever is the sentinel payback period for items whose monthly savings
// are not positive. It is large enough that the payback score rounds to zero.
const PaybackNever = 1e9

// Implementation cost scales linearly with volume around ReferenceVolume and
// is clamped to this band so it can never collapse to zero or explode.
const (
	minCostScale = 0.5
	maxCostScale = 2.0
)

// ShiftRates maps each automation type to the fraction of manual work it
// displaces. The mapping is exhaustive over the closed enum.
type ShiftRates struct {
	Full    float64 `yaml:"full"`
	Partial float64 `yaml:"partial"`
	Assist  float64 `yaml:"assist"`
}

// For returns the shift rate for an automation type. Unknown types are a
// fatal input error, caught here rather than deep inside a calculation.
func (s ShiftRates) For(at portfolio.AutomationType) (float64, error) {
	switch at {
	case portfolio.AutomationFull:
		return s.Full, nil
	case portfolio.AutomationPartial:
		return s.Partial, nil
	case portfolio.AutomationAssist:
		return s.Assist, nil
	default:
		return 0, fmt.Errorf("no shift rate for automation type %q", at)
	}
}

// Validate checks that every rate is a fraction.
func (s ShiftRates) Validate() error {
	for name, rate := range map[string]float64{"full": s.Full, "partial": s.Partial, "assist": s.Assist} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("shift rate %s = %g outside [0, 1]", name, rate)
		}
	}
	return nil
}

// Params are the scenario cost assumptions feeding the financial model.
type Params struct {
	AgentCostPerHour       float64    `yaml:"agent_cost_per_hour"`
	OverheadMultiplier     float64    `yaml:"overhead_multiplier"`
	BaseImplementationCost float64    `yaml:"base_implementation_cost"`
	AdoptionRate           float64    `yaml:"adoption_rate"`
	ReferenceVolume        float64    `yaml:"reference_volume"`
	ShiftRates             ShiftRates `yaml:"shift_rates"`
	TargetPaybackMonths    float64    `yaml:"target_payback_months"`
	TargetROIRatio         float64    `yaml:"target_roi_ratio"`
}

// Validate rejects non-positive costs, rates outside their ranges, and
// degenerate targets.
func (p Params) Validate() error {
	if p.AgentCostPerHour <= 0 {
		return fmt.Errorf("agent_cost_per_hour must be positive, got %g", p.AgentCostPerHour)
	}
	if p.OverheadMultiplier <= 0 {
		return fmt.Errorf("overhead_multiplier must be positive, got %g", p.OverheadMultiplier)
	}
	if p.BaseImplementationCost <= 0 {
		return fmt.Errorf("base_implementation_cost must be positive, got %g", p.BaseImplementationCost)
	}
	if p.AdoptionRate <= 0 || p.AdoptionRate > 1 {
		return fmt.Errorf("adoption_rate %g outside (0, 1]", p.AdoptionRate)
	}
	if p.ReferenceVolume <= 0 {
		return fmt.Errorf("reference_volume must be positive, got %g", p.ReferenceVolume)
	}
	if p.TargetPaybackMonths <= 0 {
		return fmt.Errorf("target_payback_months must be positive, got %g", p.TargetPaybackMonths)
	}
	if p.TargetROIRatio <= 0 {
		return fmt.Errorf("target_roi_ratio must be positive, got %g", p.TargetROIRatio)
	}
	return p.ShiftRates.Validate()
}

// Result carries the financial figures for one item under one scenario.
type Result struct {
	MonthlyManualCost  float64
	MonthlySavings     float64
	AnnualSavings      float64
	ImplementationCost float64
	PaybackMonths      float64
	ROIRatio           float64
	ROIScore           float64
}

// Compute runs the financial model for one item.
func Compute(item portfolio.Item, params Params) (Result, error) {
	if item.MonthlyVolume <= 0 {
		return Result{}, fmt.Errorf("item %s: monthly volume must be positive, got %g", item.ID, item.MonthlyVolume)
	}
	if item.AvgHandleTimeMins <= 0 {
		return Result{}, fmt.Errorf("item %s: handle time must be positive, got %g", item.ID, item.AvgHandleTimeMins)
	}

	shiftRate, err := params.ShiftRates.For(item.AutomationType)
	if err != nil {
		return Result{}, fmt.Errorf("item %s: %w", item.ID, err)
	}

	handleHours := item.AvgHandleTimeMins / 60.0
	manualCost := item.MonthlyVolume * handleHours * params.AgentCostPerHour * params.OverheadMultiplier
	monthlySavings := manualCost * shiftRate * params.AdoptionRate

	scale := minCostScale + minCostScale*(item.MonthlyVolume/params.ReferenceVolume)
	if scale < minCostScale {
		scale = minCostScale
	}
	if scale > maxCostScale {
		scale = maxCostScale
	}
	implementationCost := params.BaseImplementationCost * scale

	result := Result{
		MonthlyManualCost:  manualCost,
		MonthlySavings:     monthlySavings,
		AnnualSavings:      monthlySavings * 12,
		ImplementationCost: implementationCost,
		PaybackMonths:      PaybackNever,
	}
	if monthlySavings > 0 {
		result.PaybackMonths = implementationCost / monthlySavings
		result.ROIRatio = result.AnnualSavings / implementationCost
	}

	paybackScore := clamp01(params.TargetPaybackMonths/result.PaybackMonths) * 100
	ratioScore := clamp01(result.ROIRatio/params.TargetROIRatio) * 100
	result.ROIScore = 0.6*paybackScore + 0.4*ratioScore

	return result, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
