package finance

import (
	"math"
	"strings"
	"testing"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
)

func baseParams() Params {
	return Params{
		AgentCostPerHour:       28,
		OverheadMultiplier:     1.15,
		BaseImplementationCost: 25000,
		AdoptionRate:           0.80,
		ReferenceVolume:        500,
		ShiftRates:             ShiftRates{Full: 0.70, Partial: 0.40, Assist: 0.20},
		TargetPaybackMonths:    12,
		TargetROIRatio:         2.0,
	}
}

func TestComputeProductSetupExample(t *testing.T) {
	item := portfolio.Item{
		ID:                "STEP_01",
		Name:              "Product Setup",
		MonthlyVolume:     529,
		AvgHandleTimeMins: 15,
		AutomationType:    portfolio.AutomationFull,
	}

	result, err := Compute(item, baseParams())
	if err != nil {
		t.Fatal(err)
	}

	// 529 x 0.25h x $28 x 1.15 overhead.
	if got, want := result.MonthlyManualCost, 529*0.25*28*1.15; math.Abs(got-want) > 0.01 {
		t.Fatalf("monthly manual cost = %.2f, want %.2f", got, want)
	}
	if math.Abs(result.MonthlyManualCost-4258.45) > 0.01 {
		t.Fatalf("monthly manual cost = %.2f, want 4258.45", result.MonthlyManualCost)
	}
	if math.Abs(result.MonthlySavings-2384.73) > 0.01 {
		t.Fatalf("monthly savings = %.2f, want 2384.73", result.MonthlySavings)
	}
	if math.Abs(result.AnnualSavings-28616.78) > 0.01 {
		t.Fatalf("annual savings = %.2f, want 28616.78", result.AnnualSavings)
	}

	// Scaling: 25000 x (0.5 + 0.5 x 529/500) = 25725.
	if math.Abs(result.ImplementationCost-25725) > 0.01 {
		t.Fatalf("implementation cost = %.2f, want 25725", result.ImplementationCost)
	}
	if result.PaybackMonths <= 0 || result.PaybackMonths > 11 {
		t.Fatalf("payback months = %.2f, want roughly 10.8", result.PaybackMonths)
	}
	if result.ROIScore <= 0 || result.ROIScore > 100 {
		t.Fatalf("roi score = %.2f outside (0, 100]", result.ROIScore)
	}
}

func TestComputeZeroShiftRateNeverPaysBack(t *testing.T) {
	params := baseParams()
	params.ShiftRates.Assist = 0

	item := portfolio.Item{ID: "STEP_09", MonthlyVolume: 100, AvgHandleTimeMins: 10, AutomationType: portfolio.AutomationAssist}
	result, err := Compute(item, params)
	if err != nil {
		t.Fatal(err)
	}

	if result.MonthlySavings != 0 {
		t.Fatalf("monthly savings = %g, want 0", result.MonthlySavings)
	}
	if result.PaybackMonths != PaybackNever {
		t.Fatalf("payback = %g, want PaybackNever", result.PaybackMonths)
	}
	if result.ROIRatio != 0 {
		t.Fatalf("roi ratio = %g, want 0", result.ROIRatio)
	}
	if math.IsNaN(result.ROIScore) || math.IsInf(result.ROIScore, 0) {
		t.Fatalf("roi score not finite: %g", result.ROIScore)
	}
}

func TestComputeImplementationCostClamped(t *testing.T) {
	params := baseParams()

	tiny := portfolio.Item{ID: "A", MonthlyVolume: 1, AvgHandleTimeMins: 5, AutomationType: portfolio.AutomationFull}
	result, err := Compute(tiny, params)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := result.ImplementationCost, 25000*0.501; math.Abs(got-want) > 0.5 {
		t.Fatalf("tiny volume cost = %.2f, want about %.2f", got, want)
	}

	huge := portfolio.Item{ID: "B", MonthlyVolume: 50000, AvgHandleTimeMins: 5, AutomationType: portfolio.AutomationFull}
	result, err = Compute(huge, params)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := result.ImplementationCost, 25000*maxCostScale; got != want {
		t.Fatalf("huge volume cost = %.2f, want clamped %.2f", got, want)
	}
}

func TestComputeRejectsBadInputs(t *testing.T) {
	params := baseParams()

	_, err := Compute(portfolio.Item{ID: "A", MonthlyVolume: 0, AvgHandleTimeMins: 5, AutomationType: portfolio.AutomationFull}, params)
	if err == nil || !strings.Contains(err.Error(), "monthly volume must be positive") {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = Compute(portfolio.Item{ID: "A", MonthlyVolume: 10, AvgHandleTimeMins: -1, AutomationType: portfolio.AutomationFull}, params)
	if err == nil || !strings.Contains(err.Error(), "handle time must be positive") {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = Compute(portfolio.Item{ID: "A", MonthlyVolume: 10, AvgHandleTimeMins: 5, AutomationType: portfolio.AutomationType("Robot")}, params)
	if err == nil || !strings.Contains(err.Error(), `no shift rate for automation type "Robot"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParamsValidate(t *testing.T) {
	if err := baseParams().Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Params)
		want   string
	}{
		{"zero agent cost", func(p *Params) { p.AgentCostPerHour = 0 }, "agent_cost_per_hour"},
		{"negative base cost", func(p *Params) { p.BaseImplementationCost = -5 }, "base_implementation_cost"},
		{"adoption above one", func(p *Params) { p.AdoptionRate = 1.2 }, "adoption_rate"},
		{"zero reference volume", func(p *Params) { p.ReferenceVolume = 0 }, "reference_volume"},
		{"shift rate above one", func(p *Params) { p.ShiftRates.Full = 1.5 }, "shift rate full"},
		{"zero target payback", func(p *Params) { p.TargetPaybackMonths = 0 }, "target_payback_months"},
	}
	for _, tc := range cases {
		params := baseParams()
		tc.mutate(&params)
		err := params.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}
