package report

import (
	"fmt"
	"strings"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/finance"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/runner"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/sensitivity"
)

// RenderResult renders one scenario run as a plain-text report.
func RenderResult(result *runner.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Scenario %s: %s\n\n", result.Scenario.ID, result.Scenario.Name)
	fmt.Fprintf(&b, "Weights: readiness=%.2f roi=%.2f risk=%.2f\n",
		result.Scenario.Weights.Readiness, result.Scenario.Weights.ROI, result.Scenario.Weights.Risk)
	fmt.Fprintf(&b, "Gates: min_readiness=%g max_risk=%g\n\n",
		result.Scenario.Gates.MinReadiness, result.Scenario.Gates.MaxRisk)

	b.WriteString("## Ranked Items\n")
	for _, row := range result.Rows {
		fmt.Fprintf(&b, "%3d. %-12s %-28s priority=%5.1f readiness=%5.1f suitability=%5.1f risk=%5.1f roi=%5.1f",
			row.Rank, row.ItemID, row.Name, row.Priority, row.Readiness, row.Suitability, row.Risk, row.ROIScore)
		if !row.Eligible {
			fmt.Fprintf(&b, " [%s]", row.GateReason)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "     savings=$%.2f/yr impl=$%.2f payback=%s\n",
			row.AnnualSavings, row.ImplementationCost, formatPayback(row.PaybackMonths))
		fmt.Fprintf(&b, "     %s\n", row.Recommendation)
	}

	s := result.Summary
	b.WriteString("\n## Summary\n")
	fmt.Fprintf(&b, "- items: %d (eligible %d, gated %d)\n", s.Items, s.Eligible, s.Gated)
	fmt.Fprintf(&b, "- total annual savings: $%.2f\n", s.TotalAnnualSavings)
	fmt.Fprintf(&b, "- total implementation cost: $%.2f\n", s.TotalImplementationCost)
	fmt.Fprintf(&b, "- portfolio roi ratio: %.2f\n", s.PortfolioROIRatio)
	fmt.Fprintf(&b, "- aggregate payback: %s\n", formatPayback(s.AggregatePaybackMonths))
	return b.String()
}

// RenderMonteCarlo renders the randomized robustness report.
func RenderMonteCarlo(report *sensitivity.MonteCarloReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Monte Carlo: scenario %s\n\n", report.ScenarioID)
	fmt.Fprintf(&b, "Trials: %d (seed %d)\n\n", report.Trials, report.Seed)

	b.WriteString("## Top-Ranked Frequency\n")
	for _, top := range report.TopRanked {
		fmt.Fprintf(&b, "- %-12s %-28s %4d trials (%.1f%%)\n", top.ItemID, top.Name, top.Count, top.Percent)
	}

	s := report.Savings
	b.WriteString("\n## Eligible Annual Savings\n")
	fmt.Fprintf(&b, "- mean: $%.2f\n", s.Mean)
	fmt.Fprintf(&b, "- median: $%.2f\n", s.Median)
	fmt.Fprintf(&b, "- stddev: $%.2f\n", s.StdDev)
	fmt.Fprintf(&b, "- p5..p95: $%.2f .. $%.2f\n", s.P5, s.P95)
	return b.String()
}

// RenderWeightSchemes renders rank stability across the named weight schemes.
func RenderWeightSchemes(report *sensitivity.WeightSchemeReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Weight Schemes: scenario %s (top %d)\n\n", report.ScenarioID, report.TopK)

	b.WriteString("## Schemes\n")
	for _, scheme := range report.Schemes {
		fmt.Fprintf(&b, "- %-16s readiness=%.2f roi=%.2f risk=%.2f\n",
			scheme.Name, scheme.Weights.Readiness, scheme.Weights.ROI, scheme.Weights.Risk)
	}

	b.WriteString("\n## Rank Stability\n")
	for _, item := range report.Items {
		fmt.Fprintf(&b, "%-12s %-28s", item.ItemID, item.Name)
		for _, r := range item.Ranks {
			if r.Gated {
				b.WriteString(" gated")
			} else {
				fmt.Fprintf(&b, " %d", r.Rank)
			}
		}
		if item.TimesGated == len(item.Ranks) {
			b.WriteString("  (gated under every scheme)\n")
			continue
		}
		fmt.Fprintf(&b, "  (range %d, avg %.1f", item.RankRange, item.AvgRank)
		if item.TimesGated > 0 {
			fmt.Fprintf(&b, ", gated %dx", item.TimesGated)
		}
		b.WriteString(")\n")
	}
	return b.String()
}

// RenderGateGrid renders the gate strictness grid.
func RenderGateGrid(report *sensitivity.GateGridReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Gate Grid: scenario %s\n\n", report.ScenarioID)
	for _, cell := range report.Cells {
		fmt.Fprintf(&b, "min_readiness=%-4g max_risk=%-4g eligible=%2d gated=%2d savings=$%.2f/yr\n",
			cell.MinReadiness, cell.MaxRisk, cell.Eligible, cell.Gated, cell.TotalAnnualSavings)
	}
	return b.String()
}

// RenderCostGrid renders the cost assumption grid.
func RenderCostGrid(report *sensitivity.CostGridReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Cost Grid: scenario %s\n\n", report.ScenarioID)
	for _, cell := range report.Cells {
		fmt.Fprintf(&b, "agent=$%-3g/hr impl=%.2fx eligible=%2d savings=$%.2f/yr impl_cost=$%.2f roi=%.2f\n",
			cell.AgentCostPerHour, cell.ImplMultiplier, cell.Eligible,
			cell.TotalAnnualSavings, cell.TotalImplCost, cell.PortfolioROIRatio)
	}
	return b.String()
}

func formatPayback(months float64) string {
	if months >= finance.PaybackNever {
		return "never"
	}
	return fmt.Sprintf("%.1f months", months)
}
