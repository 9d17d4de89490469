package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/runner"
)

// RankedCSVColumns is the fixed header of an exported ranking table.
var RankedCSVColumns = []string{
	"rank", "item_id", "name", "category", "automation_type",
	"readiness_score", "suitability_score", "risk_score",
	"monthly_manual_cost", "monthly_savings", "annual_savings",
	"implementation_cost", "payback_months", "roi_ratio", "roi_score",
	"eligible", "gate_reason", "priority", "recommendation",
}

// WriteRankedCSV writes the ranked table to ranked_<scenario>.csv under dir
// and returns the written path.
func WriteRankedCSV(dir string, result *runner.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure output dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("ranked_%s.csv", result.Scenario.ID))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteRankedCSVTo(f, result); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteRankedCSVTo writes the ranked table as CSV to w.
func WriteRankedCSVTo(w io.Writer, result *runner.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RankedCSVColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range result.Rows {
		record := []string{
			strconv.Itoa(row.Rank),
			row.ItemID,
			row.Name,
			row.Category,
			string(row.AutomationType),
			money(row.Readiness),
			money(row.Suitability),
			money(row.Risk),
			money(row.MonthlyManualCost),
			money(row.MonthlySavings),
			money(row.AnnualSavings),
			money(row.ImplementationCost),
			money(row.PaybackMonths),
			money(row.ROIRatio),
			money(row.ROIScore),
			strconv.FormatBool(row.Eligible),
			string(row.GateReason),
			money(row.Priority),
			row.Recommendation,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", row.ItemID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteTextReport writes content to path, replacing any previous report.
// When a previous report existed, the returned diff shows what changed
// between runs; it is empty for a first write or an identical rerun.
func WriteTextReport(path string, content string) (string, error) {
	oldBytes, readErr := os.ReadFile(path)
	if readErr != nil && !os.IsNotExist(readErr) {
		return "", fmt.Errorf("read previous report: %w", readErr)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("ensure report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if readErr != nil {
		return "", nil
	}
	diff := difflib.UnifiedDiff{
		A:        strings.Split(string(oldBytes), "\n"),
		B:        strings.Split(content, "\n"),
		FromFile: filepath.Base(path) + " (previous)",
		ToFile:   filepath.Base(path),
		Context:  3,
	}
	diffText, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	if strings.TrimSpace(diffText) == "" {
		return "", nil
	}
	return diffText, nil
}

// money keeps exported numbers stable across platforms.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
