package portfolio

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// WeightTolerance is the slack allowed when checking that weights sum to 1.0.
const WeightTolerance = 1e-6

// ValidationError captures a single field-specific validation issue.
type ValidationError struct {
	File    string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Message)
}

// ValidationErrors aggregates multiple validation problems.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

// New builds a validated Store from already-typed records. It enforces the
// cross-table invariants: unique ids, ids resolving across tables, ratings
// inside their metric's declared scale, exactly one assessment per
// (item, metric) pair, and per-dimension metric weights summing to 1.0.
func New(items []Item, metrics []Metric, assessments []Assessment) (*Store, error) {
	store := &Store{
		items:       make(map[string]Item, len(items)),
		metrics:     make(map[string]Metric, len(metrics)),
		assessments: make(map[string]Assessment, len(assessments)),
	}
	var errs ValidationErrors

	if len(items) == 0 {
		errs = append(errs, ValidationError{File: itemsFile, Message: "must contain at least one item"})
	}
	for _, item := range items {
		if _, dup := store.items[item.ID]; dup {
			errs = append(errs, ValidationError{
				File:    itemsFile,
				Field:   "item_id",
				Message: fmt.Sprintf("duplicate item_id %q", item.ID),
			})
			continue
		}
		store.items[item.ID] = item
		store.Items = append(store.Items, item)
	}

	if len(metrics) == 0 {
		errs = append(errs, ValidationError{File: metricsFile, Message: "must contain at least one metric"})
	}
	for _, metric := range metrics {
		if _, dup := store.metrics[metric.ID]; dup {
			errs = append(errs, ValidationError{
				File:    metricsFile,
				Field:   "metric_id",
				Message: fmt.Sprintf("duplicate metric_id %q", metric.ID),
			})
			continue
		}
		store.metrics[metric.ID] = metric
		store.Metrics = append(store.Metrics, metric)
	}

	for _, a := range assessments {
		if _, ok := store.items[a.ItemID]; !ok {
			errs = append(errs, ValidationError{
				File:    assessmentsFile,
				Field:   "item_id",
				Message: fmt.Sprintf("unknown item_id %q", a.ItemID),
			})
			continue
		}
		metric, ok := store.metrics[a.MetricID]
		if !ok {
			errs = append(errs, ValidationError{
				File:    assessmentsFile,
				Field:   "metric_id",
				Message: fmt.Sprintf("unknown metric_id %q", a.MetricID),
			})
			continue
		}

		key := assessmentKey(a.ItemID, a.MetricID)
		if _, dup := store.assessments[key]; dup {
			errs = append(errs, ValidationError{
				File:    assessmentsFile,
				Field:   "item_id",
				Message: fmt.Sprintf("duplicate assessment for (%s, %s)", a.ItemID, a.MetricID),
			})
			continue
		}

		if a.Rating < metric.ScaleMin || a.Rating > metric.ScaleMax {
			errs = append(errs, ValidationError{
				File:    assessmentsFile,
				Field:   "rating",
				Message: fmt.Sprintf("rating %g for (%s, %s) outside scale [%g, %g]", a.Rating, a.ItemID, a.MetricID, metric.ScaleMin, metric.ScaleMax),
			})
			continue
		}

		store.assessments[key] = a
	}

	// Missing assessments are an error, never silently defaulted.
	var missing []string
	for _, item := range store.Items {
		for _, metric := range store.Metrics {
			if _, ok := store.assessments[assessmentKey(item.ID, metric.ID)]; !ok {
				missing = append(missing, fmt.Sprintf("(%s, %s)", item.ID, metric.ID))
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		errs = append(errs, ValidationError{
			File:    assessmentsFile,
			Message: fmt.Sprintf("missing assessments for %d pair(s): %s", len(missing), strings.Join(missing, ", ")),
		})
	}

	for _, dim := range Dimensions() {
		dimMetrics := store.MetricsFor(dim)
		if len(dimMetrics) == 0 {
			errs = append(errs, ValidationError{
				File:    metricsFile,
				Message: fmt.Sprintf("dimension %s has no metrics", dim),
			})
			continue
		}
		var sum float64
		for _, m := range dimMetrics {
			sum += m.Weight
		}
		if math.Abs(sum-1.0) > WeightTolerance {
			errs = append(errs, ValidationError{
				File:    metricsFile,
				Message: fmt.Sprintf("dimension %s metric weights sum to %.6f, must sum to 1.0", dim, sum),
			})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return store, nil
}

func validateItemRow(row map[string]string, rowNum int, source string) (Item, ValidationErrors) {
	var errs ValidationErrors
	field := func(name string) string { return fmt.Sprintf("row[%d].%s", rowNum, name) }

	item := Item{
		ID:          strings.TrimSpace(row["item_id"]),
		Name:        strings.TrimSpace(row["name"]),
		Category:    strings.TrimSpace(row["category"]),
		Description: strings.TrimSpace(row["description"]),
		Owner:       strings.TrimSpace(row["owner"]),
	}

	if item.ID == "" {
		errs = append(errs, ValidationError{File: source, Field: field("item_id"), Message: "item_id is required"})
	}
	if item.Name == "" {
		errs = append(errs, ValidationError{File: source, Field: field("name"), Message: "name is required"})
	}

	volume, err := parsePositiveFloat(row["monthly_volume"])
	if err != nil {
		errs = append(errs, ValidationError{File: source, Field: field("monthly_volume"), Message: err.Error()})
	}
	item.MonthlyVolume = volume

	aht, err := parsePositiveFloat(row["avg_handle_time_minutes"])
	if err != nil {
		errs = append(errs, ValidationError{File: source, Field: field("avg_handle_time_minutes"), Message: err.Error()})
	}
	item.AvgHandleTimeMins = aht

	at, err := ParseAutomationType(row["automation_type"])
	if err != nil {
		errs = append(errs, ValidationError{File: source, Field: field("automation_type"), Message: err.Error()})
	}
	item.AutomationType = at

	return item, errs
}

func validateMetricRow(row map[string]string, rowNum int, source string) (Metric, ValidationErrors) {
	var errs ValidationErrors
	field := func(name string) string { return fmt.Sprintf("row[%d].%s", rowNum, name) }

	metric := Metric{
		ID:         strings.TrimSpace(row["metric_id"]),
		Name:       strings.TrimSpace(row["name"]),
		Definition: strings.TrimSpace(row["definition"]),
	}

	if metric.ID == "" {
		errs = append(errs, ValidationError{File: source, Field: field("metric_id"), Message: "metric_id is required"})
	}

	dim, err := ParseDimension(row["dimension"])
	if err != nil {
		errs = append(errs, ValidationError{File: source, Field: field("dimension"), Message: err.Error()})
	}
	metric.Dimension = dim

	dir, err := ParseDirection(row["direction"])
	if err != nil {
		errs = append(errs, ValidationError{File: source, Field: field("direction"), Message: err.Error()})
	}
	metric.Direction = dir

	scaleMin, err := parseFloat(row["scale_min"])
	if err != nil {
		errs = append(errs, ValidationError{File: source, Field: field("scale_min"), Message: err.Error()})
	}
	metric.ScaleMin = scaleMin

	scaleMax, scaleErr := parseFloat(row["scale_max"])
	if scaleErr != nil {
		errs = append(errs, ValidationError{File: source, Field: field("scale_max"), Message: scaleErr.Error()})
	}
	metric.ScaleMax = scaleMax

	if err == nil && scaleErr == nil && metric.ScaleMax <= metric.ScaleMin {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   field("scale_max"),
			Message: fmt.Sprintf("scale_max %g must be greater than scale_min %g", metric.ScaleMax, metric.ScaleMin),
		})
	}

	weight, err := parseFloat(row["weight"])
	if err != nil {
		errs = append(errs, ValidationError{File: source, Field: field("weight"), Message: err.Error()})
	} else if weight <= 0 {
		errs = append(errs, ValidationError{File: source, Field: field("weight"), Message: fmt.Sprintf("weight must be positive, got %g", weight)})
	}
	metric.Weight = weight

	return metric, errs
}

func validateAssessmentRow(row map[string]string, rowNum int, source string) (Assessment, ValidationErrors) {
	var errs ValidationErrors
	field := func(name string) string { return fmt.Sprintf("row[%d].%s", rowNum, name) }

	a := Assessment{
		ItemID:     strings.TrimSpace(row["item_id"]),
		MetricID:   strings.TrimSpace(row["metric_id"]),
		ScoredBy:   strings.TrimSpace(row["scored_by"]),
		ScoredDate: strings.TrimSpace(row["scored_date"]),
		Rationale:  strings.TrimSpace(row["rationale"]),
	}

	if a.ItemID == "" {
		errs = append(errs, ValidationError{File: source, Field: field("item_id"), Message: "item_id is required"})
	}
	if a.MetricID == "" {
		errs = append(errs, ValidationError{File: source, Field: field("metric_id"), Message: "metric_id is required"})
	}

	rating, err := parseFloat(row["rating"])
	if err != nil {
		errs = append(errs, ValidationError{File: source, Field: field("rating"), Message: err.Error()})
	}
	a.Rating = rating

	return a, errs
}

func parseFloat(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("value is required")
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return f, nil
}

func parsePositiveFloat(value string) (float64, error) {
	f, err := parseFloat(value)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("must be positive, got %g", f)
	}
	return f, nil
}
