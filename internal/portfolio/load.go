package portfolio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	itemsFile       = "items.csv"
	metricsFile     = "metrics.csv"
	assessmentsFile = "assessments.csv"
)

var (
	itemColumns       = []string{"item_id", "name", "category", "description", "owner", "monthly_volume", "avg_handle_time_minutes", "automation_type"}
	metricColumns     = []string{"metric_id", "dimension", "name", "definition", "scale_min", "scale_max", "direction", "weight"}
	assessmentColumns = []string{"item_id", "metric_id", "rating"}
)

// LoadFromDir loads and validates the three portfolio tables from dataDir.
// Any schema or range problem is fatal: no partial store is returned.
func LoadFromDir(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "data"
	}

	itemRows, err := readTable(filepath.Join(dataDir, itemsFile), itemColumns)
	if err != nil {
		return nil, err
	}
	metricRows, err := readTable(filepath.Join(dataDir, metricsFile), metricColumns)
	if err != nil {
		return nil, err
	}
	assessmentRows, err := readTable(filepath.Join(dataDir, assessmentsFile), assessmentColumns)
	if err != nil {
		return nil, err
	}

	var errs ValidationErrors

	var items []Item
	for rowNum, row := range itemRows {
		item, itemErrs := validateItemRow(row, rowNum+1, itemsFile)
		errs = append(errs, itemErrs...)
		items = append(items, item)
	}

	var metrics []Metric
	for rowNum, row := range metricRows {
		metric, metricErrs := validateMetricRow(row, rowNum+1, metricsFile)
		errs = append(errs, metricErrs...)
		metrics = append(metrics, metric)
	}

	var assessments []Assessment
	for rowNum, row := range assessmentRows {
		a, aErrs := validateAssessmentRow(row, rowNum+1, assessmentsFile)
		errs = append(errs, aErrs...)
		assessments = append(assessments, a)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return New(items, metrics, assessments)
}

// readTable reads a CSV file into header-keyed rows, checking that every
// required column is present.
func readTable(path string, required []string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", filepath.Base(path))
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing required column(s): %s", filepath.Base(path), strings.Join(missing, ", "))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for col, i := range index {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
