package portfolio

import (
	"fmt"
	"sort"
	"strings"
)

// Dimension is one of the three top-level evaluation axes.
type Dimension string

const (
	DimensionReadiness   Dimension = "Readiness"
	DimensionSuitability Dimension = "Suitability"
	DimensionRisk        Dimension = "Risk"
)

// Dimensions lists every dimension in canonical order.
func Dimensions() []Dimension {
	return []Dimension{DimensionReadiness, DimensionSuitability, DimensionRisk}
}

// Direction states whether a higher raw rating is good or bad for a metric.
type Direction string

const (
	HigherBetter Direction = "HigherBetter"
	HigherWorse  Direction = "HigherWorse"
)

// AutomationType is the closed set of automation candidate types.
type AutomationType string

const (
	AutomationFull    AutomationType = "Full"
	AutomationPartial AutomationType = "Partial"
	AutomationAssist  AutomationType = "Assist"
)

// Item is a candidate process step. Immutable once loaded.
type Item struct {
	ID                string
	Name              string
	Category          string
	Description       string
	Owner             string
	MonthlyVolume     float64
	AvgHandleTimeMins float64
	AutomationType    AutomationType
}

// Metric is a single scored criterion belonging to exactly one dimension.
// Weight is the metric's fraction of its dimension total; weights within a
// dimension sum to 1.0.
type Metric struct {
	ID         string
	Dimension  Dimension
	Name       string
	Definition string
	ScaleMin   float64
	ScaleMax   float64
	Direction  Direction
	Weight     float64
}

// Assessment is one raw rating for an (item, metric) pair.
type Assessment struct {
	ItemID     string
	MetricID   string
	Rating     float64
	ScoredBy   string
	ScoredDate string
	Rationale  string
}

// Store is the validated in-memory portfolio: items, metrics, and exactly one
// assessment per (item, metric) pair.
type Store struct {
	Items   []Item
	Metrics []Metric

	items       map[string]Item
	metrics     map[string]Metric
	assessments map[string]Assessment
}

func assessmentKey(itemID, metricID string) string {
	return itemID + "\x00" + metricID
}

// Item returns the item with the given id, if present.
func (s *Store) Item(id string) (Item, bool) {
	if s == nil {
		return Item{}, false
	}
	it, ok := s.items[id]
	return it, ok
}

// Metric returns the metric with the given id, if present.
func (s *Store) Metric(id string) (Metric, bool) {
	if s == nil {
		return Metric{}, false
	}
	m, ok := s.metrics[id]
	return m, ok
}

// Rating returns the raw rating for an (item, metric) pair.
func (s *Store) Rating(itemID, metricID string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	a, ok := s.assessments[assessmentKey(itemID, metricID)]
	return a.Rating, ok
}

// Assessment returns the full assessment record for an (item, metric) pair.
func (s *Store) Assessment(itemID, metricID string) (Assessment, bool) {
	if s == nil {
		return Assessment{}, false
	}
	a, ok := s.assessments[assessmentKey(itemID, metricID)]
	return a, ok
}

// MetricsFor returns the metrics of one dimension sorted by metric id.
func (s *Store) MetricsFor(dim Dimension) []Metric {
	if s == nil {
		return nil
	}
	var out []Metric
	for _, m := range s.Metrics {
		if m.Dimension == dim {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ItemIDs returns all item ids in ascending order.
func (s *Store) ItemIDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.ID)
	}
	sort.Strings(ids)
	return ids
}

// ParseDimension validates a dimension enum value.
func ParseDimension(value string) (Dimension, error) {
	switch Dimension(strings.TrimSpace(value)) {
	case DimensionReadiness:
		return DimensionReadiness, nil
	case DimensionSuitability:
		return DimensionSuitability, nil
	case DimensionRisk:
		return DimensionRisk, nil
	default:
		return Dimension(value), fmt.Errorf("invalid dimension %q (expected Readiness, Suitability, or Risk)", value)
	}
}

// ParseDirection validates a direction enum value.
func ParseDirection(value string) (Direction, error) {
	switch Direction(strings.TrimSpace(value)) {
	case HigherBetter:
		return HigherBetter, nil
	case HigherWorse:
		return HigherWorse, nil
	default:
		return Direction(value), fmt.Errorf("invalid direction %q (expected HigherBetter or HigherWorse)", value)
	}
}

// ParseAutomationType validates an automation type enum value.
func ParseAutomationType(value string) (AutomationType, error) {
	switch AutomationType(strings.TrimSpace(value)) {
	case AutomationFull:
		return AutomationFull, nil
	case AutomationPartial:
		return AutomationPartial, nil
	case AutomationAssist:
		return AutomationAssist, nil
	default:
		return AutomationType(value), fmt.Errorf("invalid automation_type %q (expected Full, Partial, or Assist)", value)
	}
}

func (d Dimension) String() string      { return string(d) }
func (d Direction) String() string      { return string(d) }
func (a AutomationType) String() string { return string(a) }
