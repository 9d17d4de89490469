package runner

import (
	"fmt"
	"sort"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/finance"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scenario"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scoring"
)

// ScoreRow is the per-item output of one scenario run.
type ScoreRow struct {
	ItemID         string                   `json:"item_id"`
	Name           string                   `json:"name"`
	Category       string                   `json:"category"`
	AutomationType portfolio.AutomationType `json:"automation_type"`

	Readiness   float64 `json:"readiness_score"`
	Suitability float64 `json:"suitability_score"`
	Risk        float64 `json:"risk_score"`

	MonthlyManualCost  float64 `json:"monthly_manual_cost"`
	MonthlySavings     float64 `json:"monthly_savings"`
	AnnualSavings      float64 `json:"annual_savings"`
	ImplementationCost float64 `json:"implementation_cost"`
	PaybackMonths      float64 `json:"payback_months"`
	ROIRatio           float64 `json:"roi_ratio"`
	ROIScore           float64 `json:"roi_score"`

	Eligible       bool               `json:"eligible"`
	GateReason     scoring.GateReason `json:"gate_reason,omitempty"`
	Priority       float64            `json:"priority"`
	Rank           int                `json:"rank"`
	Recommendation string             `json:"recommendation"`
}

// Summary aggregates a scenario run over eligible items.
type Summary struct {
	ScenarioID              string  `json:"scenario_id"`
	Items                   int     `json:"items"`
	Eligible                int     `json:"eligible"`
	Gated                   int     `json:"gated"`
	TotalAnnualSavings      float64 `json:"total_annual_savings"`
	TotalMonthlySavings     float64 `json:"total_monthly_savings"`
	TotalImplementationCost float64 `json:"total_implementation_cost"`
	PortfolioROIRatio       float64 `json:"portfolio_roi_ratio"`
	AggregatePaybackMonths  float64 `json:"aggregate_payback_months"`
}

// Result is the full ranked table plus summary for one scenario.
type Result struct {
	Scenario scenario.Parameters `json:"-"`
	Rows     []ScoreRow          `json:"rows"`
	Summary  Summary             `json:"summary"`
}

// Run executes the scoring pipeline for every item under one scenario and
// returns the ranked result table. The runner holds no state: running N
// scenarios is N independent invocations.
func Run(store *portfolio.Store, params scenario.Parameters) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	rows := make([]ScoreRow, 0, len(store.Items))
	for _, id := range store.ItemIDs() {
		item, _ := store.Item(id)

		row := ScoreRow{
			ItemID:         item.ID,
			Name:           item.Name,
			Category:       item.Category,
			AutomationType: item.AutomationType,
		}

		var err error
		if row.Readiness, err = scoring.DimensionScore(store, item.ID, portfolio.DimensionReadiness); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", params.ID, err)
		}
		if row.Suitability, err = scoring.DimensionScore(store, item.ID, portfolio.DimensionSuitability); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", params.ID, err)
		}
		if row.Risk, err = scoring.DimensionScore(store, item.ID, portfolio.DimensionRisk); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", params.ID, err)
		}

		fin, err := finance.Compute(item, params.Costs)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", params.ID, err)
		}
		row.MonthlyManualCost = fin.MonthlyManualCost
		row.MonthlySavings = fin.MonthlySavings
		row.AnnualSavings = fin.AnnualSavings
		row.ImplementationCost = fin.ImplementationCost
		row.PaybackMonths = fin.PaybackMonths
		row.ROIRatio = fin.ROIRatio
		row.ROIScore = fin.ROIScore

		row.Eligible, row.GateReason = scoring.EvaluateGates(row.Readiness, row.Risk, params.Gates)
		row.Priority = scoring.Priority(row.Readiness, row.ROIScore, row.Risk, row.Eligible, params.Weights)
		row.Recommendation = recommend(row)

		rows = append(rows, row)
	}

	rankRows(rows)

	return &Result{
		Scenario: params,
		Rows:     rows,
		Summary:  summarize(params.ID, rows),
	}, nil
}

// rankRows orders by priority descending with item id ascending as the fixed
// tie-break, then assigns 1-based ranks.
func rankRows(rows []ScoreRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Priority != rows[j].Priority {
			return rows[i].Priority > rows[j].Priority
		}
		return rows[i].ItemID < rows[j].ItemID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
}

func summarize(scenarioID string, rows []ScoreRow) Summary {
	s := Summary{
		ScenarioID:             scenarioID,
		Items:                  len(rows),
		AggregatePaybackMonths: finance.PaybackNever,
	}
	for _, row := range rows {
		if !row.Eligible {
			s.Gated++
			continue
		}
		s.Eligible++
		s.TotalAnnualSavings += row.AnnualSavings
		s.TotalMonthlySavings += row.MonthlySavings
		s.TotalImplementationCost += row.ImplementationCost
	}
	if s.TotalImplementationCost > 0 {
		s.PortfolioROIRatio = s.TotalAnnualSavings / s.TotalImplementationCost
	}
	if s.TotalMonthlySavings > 0 {
		s.AggregatePaybackMonths = s.TotalImplementationCost / s.TotalMonthlySavings
	}
	return s
}

// ScenarioError ties a failure to the scenario that produced it.
type ScenarioError struct {
	ScenarioID string
	Err        error
}

func (e ScenarioError) Error() string {
	return fmt.Sprintf("scenario %s: %v", e.ScenarioID, e.Err)
}

func (e ScenarioError) Unwrap() error { return e.Err }

// RunAll executes every scenario independently. A malformed scenario aborts
// only itself; completed results are returned alongside per-scenario errors.
func RunAll(store *portfolio.Store, params []scenario.Parameters) ([]*Result, []ScenarioError) {
	var results []*Result
	var errs []ScenarioError
	for _, p := range params {
		result, err := Run(store, p)
		if err != nil {
			errs = append(errs, ScenarioError{ScenarioID: p.ID, Err: err})
			continue
		}
		results = append(results, result)
	}
	return results, errs
}
