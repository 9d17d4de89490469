package portfolio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	items := `item_id,name,category,description,owner,monthly_volume,avg_handle_time_minutes,automation_type
STEP_02,Installation Support,Support,Scheduling installs,ops,310,22,Partial
STEP_01,Product Setup,Onboarding,Initial product setup,ops,529,15,Full
`
	metrics := `metric_id,dimension,name,definition,scale_min,scale_max,direction,weight
MR_01,Readiness,Data quality,Structured inputs available,1,5,HigherBetter,0.6
MR_02,Readiness,Process stability,Process rarely changes,1,5,HigherBetter,0.4
MS_01,Suitability,Repetitiveness,Task is repetitive,1,5,HigherBetter,1.0
MK_01,Risk,Error impact,Cost of a wrong answer,1,5,HigherWorse,1.0
`
	assessments := `item_id,metric_id,rating,scored_by,scored_date,rationale
STEP_01,MR_01,5,ana,2026-02-10,clean CRM records
STEP_01,MR_02,4,ana,2026-02-10,
STEP_01,MS_01,5,ana,2026-02-10,
STEP_01,MK_01,2,ana,2026-02-10,
STEP_02,MR_01,3,ben,2026-02-11,
STEP_02,MR_02,3,ben,2026-02-11,
STEP_02,MS_01,4,ben,2026-02-11,
STEP_02,MK_01,4,ben,2026-02-11,
`
	for name, content := range map[string]string{
		"items.csv":       items,
		"metrics.csv":     metrics,
		"assessments.csv": assessments,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func fixtureRecords() ([]Item, []Metric, []Assessment) {
	items := []Item{
		{ID: "STEP_01", Name: "Product Setup", MonthlyVolume: 529, AvgHandleTimeMins: 15, AutomationType: AutomationFull},
	}
	metrics := []Metric{
		{ID: "MR_01", Dimension: DimensionReadiness, ScaleMin: 1, ScaleMax: 5, Direction: HigherBetter, Weight: 1.0},
		{ID: "MS_01", Dimension: DimensionSuitability, ScaleMin: 1, ScaleMax: 5, Direction: HigherBetter, Weight: 1.0},
		{ID: "MK_01", Dimension: DimensionRisk, ScaleMin: 1, ScaleMax: 5, Direction: HigherWorse, Weight: 1.0},
	}
	assessments := []Assessment{
		{ItemID: "STEP_01", MetricID: "MR_01", Rating: 4},
		{ItemID: "STEP_01", MetricID: "MS_01", Rating: 5},
		{ItemID: "STEP_01", MetricID: "MK_01", Rating: 2},
	}
	return items, metrics, assessments
}

func TestLoadFromDir(t *testing.T) {
	dir := writeFixtureDir(t)

	store, err := LoadFromDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := len(store.Items), 2; got != want {
		t.Fatalf("items = %d, want %d", got, want)
	}
	if got, want := len(store.Metrics), 4; got != want {
		t.Fatalf("metrics = %d, want %d", got, want)
	}

	item, ok := store.Item("STEP_01")
	if !ok {
		t.Fatal("STEP_01 not found")
	}
	if item.AutomationType != AutomationFull {
		t.Fatalf("automation type = %q, want Full", item.AutomationType)
	}
	if item.MonthlyVolume != 529 {
		t.Fatalf("monthly volume = %g, want 529", item.MonthlyVolume)
	}

	rating, ok := store.Rating("STEP_02", "MK_01")
	if !ok || rating != 4 {
		t.Fatalf("rating = %g, %v; want 4, true", rating, ok)
	}

	readiness := store.MetricsFor(DimensionReadiness)
	if len(readiness) != 2 || readiness[0].ID != "MR_01" || readiness[1].ID != "MR_02" {
		t.Fatalf("readiness metrics not sorted by id: %#v", readiness)
	}

	if got, want := store.ItemIDs(), []string{"STEP_01", "STEP_02"}; got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("item ids = %v, want %v", got, want)
	}
}

func TestLoadFromDirMissingColumn(t *testing.T) {
	dir := writeFixtureDir(t)
	broken := `item_id,name,monthly_volume
STEP_01,Product Setup,529
`
	if err := os.WriteFile(filepath.Join(dir, "items.csv"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromDir(dir)
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "missing required column") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "automation_type") {
		t.Fatalf("error does not name the missing column: %v", err)
	}
}

func TestLoadFromDirUnknownAutomationType(t *testing.T) {
	dir := writeFixtureDir(t)
	broken := `item_id,name,category,description,owner,monthly_volume,avg_handle_time_minutes,automation_type
STEP_01,Product Setup,Onboarding,,ops,529,15,Hybrid
`
	if err := os.WriteFile(filepath.Join(dir, "items.csv"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromDir(dir)
	if err == nil || !strings.Contains(err.Error(), `invalid automation_type "Hybrid"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewRejectsDuplicateAssessment(t *testing.T) {
	items, metrics, assessments := fixtureRecords()
	assessments = append(assessments, Assessment{ItemID: "STEP_01", MetricID: "MR_01", Rating: 3})

	_, err := New(items, metrics, assessments)
	if err == nil || !strings.Contains(err.Error(), "duplicate assessment for (STEP_01, MR_01)") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewRejectsMissingAssessment(t *testing.T) {
	items, metrics, assessments := fixtureRecords()
	assessments = assessments[:2]

	_, err := New(items, metrics, assessments)
	if err == nil || !strings.Contains(err.Error(), "missing assessments for 1 pair(s): (STEP_01, MK_01)") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewRejectsRatingOutsideScale(t *testing.T) {
	items, metrics, assessments := fixtureRecords()
	assessments[0].Rating = 6

	_, err := New(items, metrics, assessments)
	if err == nil || !strings.Contains(err.Error(), "outside scale [1, 5]") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewRejectsWeightSumDrift(t *testing.T) {
	items, metrics, assessments := fixtureRecords()
	metrics[0].Weight = 0.9

	_, err := New(items, metrics, assessments)
	if err == nil || !strings.Contains(err.Error(), "metric weights sum to 0.900000") {
		t.Fatalf("unexpected error: %v", err)
	}

	// A drift inside the tolerance is accepted.
	metrics[0].Weight = 1.0 + 5e-7
	if _, err := New(items, metrics, assessments); err != nil {
		t.Fatalf("tolerated drift rejected: %v", err)
	}
}
