package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/finance"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/runner"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scenario"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scoring"
)

func testResult(t *testing.T) *runner.Result {
	t.Helper()

	items := []portfolio.Item{
		{ID: "STEP_01", Name: "Order Entry", Category: "Sales", MonthlyVolume: 600, AvgHandleTimeMins: 18, AutomationType: portfolio.AutomationFull},
		{ID: "STEP_02", Name: "Credit Hold Review", Category: "Finance", MonthlyVolume: 90, AvgHandleTimeMins: 25, AutomationType: portfolio.AutomationAssist},
	}
	metrics := []portfolio.Metric{
		{ID: "MR_01", Dimension: portfolio.DimensionReadiness, ScaleMin: 1, ScaleMax: 5, Direction: portfolio.HigherBetter, Weight: 1.0},
		{ID: "MS_01", Dimension: portfolio.DimensionSuitability, ScaleMin: 1, ScaleMax: 5, Direction: portfolio.HigherBetter, Weight: 1.0},
		{ID: "MK_01", Dimension: portfolio.DimensionRisk, ScaleMin: 1, ScaleMax: 5, Direction: portfolio.HigherWorse, Weight: 1.0},
	}
	assessments := []portfolio.Assessment{
		{ItemID: "STEP_01", MetricID: "MR_01", Rating: 5},
		{ItemID: "STEP_01", MetricID: "MS_01", Rating: 5},
		{ItemID: "STEP_01", MetricID: "MK_01", Rating: 1},
		{ItemID: "STEP_02", MetricID: "MR_01", Rating: 2},
		{ItemID: "STEP_02", MetricID: "MS_01", Rating: 3},
		{ItemID: "STEP_02", MetricID: "MK_01", Rating: 2},
	}

	store, err := portfolio.New(items, metrics, assessments)
	if err != nil {
		t.Fatal(err)
	}

	params := scenario.Parameters{
		ID:      "SCN_BASE",
		Name:    "Baseline",
		Weights: scoring.Weights{Readiness: 0.35, ROI: 0.45, Risk: 0.20},
		Gates:   scoring.Gates{MinReadiness: 50, MaxRisk: 70},
		Costs: finance.Params{
			AgentCostPerHour:       28,
			OverheadMultiplier:     1.15,
			BaseImplementationCost: 25000,
			AdoptionRate:           0.80,
			ReferenceVolume:        500,
			ShiftRates:             finance.ShiftRates{Full: 0.70, Partial: 0.40, Assist: 0.20},
			TargetPaybackMonths:    12,
			TargetROIRatio:         2.0,
		},
	}

	result, err := runner.Run(store, params)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestRenderResult(t *testing.T) {
	text := RenderResult(testResult(t))

	for _, want := range []string{
		"# Scenario SCN_BASE: Baseline",
		"  1. STEP_01",
		"  2. STEP_02",
		"[FAILED_READINESS]",
		"- items: 2 (eligible 1, gated 1)",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
	if strings.Index(text, "STEP_01") > strings.Index(text, "STEP_02") {
		t.Fatal("rows out of rank order")
	}
}

func TestFormatPaybackNever(t *testing.T) {
	if got := formatPayback(finance.PaybackNever); got != "never" {
		t.Fatalf("formatPayback(sentinel) = %q", got)
	}
	if got := formatPayback(10.75); got != "10.8 months" {
		t.Fatalf("formatPayback(10.75) = %q", got)
	}
}

func TestWriteRankedCSV(t *testing.T) {
	result := testResult(t)
	dir := t.TempDir()

	path, err := WriteRankedCSV(dir, result)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "ranked_SCN_BASE.csv" {
		t.Fatalf("path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(records))
	}
	if got, want := len(records[0]), len(RankedCSVColumns); got != want {
		t.Fatalf("header columns = %d, want %d", got, want)
	}
	if records[1][0] != "1" || records[1][1] != "STEP_01" {
		t.Fatalf("first row = %v", records[1][:2])
	}
	if records[2][16] != "FAILED_READINESS" {
		t.Fatalf("gate_reason = %q", records[2][16])
	}
}

func TestWriteTextReportDiffsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	diff, err := WriteTextReport(path, "alpha\nbeta\n")
	if err != nil {
		t.Fatal(err)
	}
	if diff != "" {
		t.Fatalf("first write produced diff:\n%s", diff)
	}

	diff, err = WriteTextReport(path, "alpha\nbeta\n")
	if err != nil {
		t.Fatal(err)
	}
	if diff != "" {
		t.Fatalf("identical rewrite produced diff:\n%s", diff)
	}

	diff, err = WriteTextReport(path, "alpha\ngamma\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(diff, "-beta") || !strings.Contains(diff, "+gamma") {
		t.Fatalf("unexpected diff:\n%s", diff)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "alpha\ngamma\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	result := testResult(t)
	dbPath := filepath.Join(t.TempDir(), "results.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ranAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	runID, err := store.SaveResult(result, ranAt)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveResult(result, ranAt.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	runs, err := store.ListRuns("SCN_BASE", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if !runs[0].RanAt.After(runs[1].RanAt) {
		t.Fatal("runs not newest first")
	}
	if runs[1].ID != runID || runs[1].ScenarioID != "SCN_BASE" {
		t.Fatalf("run record = %+v", runs[1])
	}
	if runs[1].Items != 2 || runs[1].Eligible != 1 || runs[1].Gated != 1 {
		t.Fatalf("run counts = %+v", runs[1])
	}

	rows, err := store.RunRows(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Rank != 1 || rows[0].ItemID != "STEP_01" {
		t.Fatalf("first row = %+v", rows[0])
	}
	if rows[1].Eligible || rows[1].GateReason != "FAILED_READINESS" {
		t.Fatalf("gated row = %+v", rows[1])
	}

	if other, err := store.ListRuns("SCN_OTHER", 10); err != nil || len(other) != 0 {
		t.Fatalf("other scenario runs = %v, %v", other, err)
	}
}
