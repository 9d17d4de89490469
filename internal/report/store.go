package report

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/runner"
)

// Store keeps a history of scenario runs in SQLite so rankings can be
// compared across parameter changes over time.
type Store struct {
	DBPath string
	db     *sql.DB
}

// RunRecord is one persisted scenario run.
type RunRecord struct {
	ID                      int64
	ScenarioID              string
	RanAt                   time.Time
	Items                   int
	Eligible                int
	Gated                   int
	TotalAnnualSavings      float64
	TotalImplementationCost float64
	PortfolioROIRatio       float64
}

// RowRecord is one persisted ranked row.
type RowRecord struct {
	RunID          int64
	Rank           int
	ItemID         string
	Name           string
	Readiness      float64
	Suitability    float64
	Risk           float64
	ROIScore       float64
	Priority       float64
	AnnualSavings  float64
	Eligible       bool
	GateReason     string
	Recommendation string
}

// Open opens or creates the results database.
func Open(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve results db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure results db dir: %w", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}

	store := &Store{DBPath: absPath, db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ensureSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS scenario_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	scenario_id TEXT NOT NULL,
	ran_at TEXT NOT NULL,
	items INTEGER NOT NULL,
	eligible INTEGER NOT NULL,
	gated INTEGER NOT NULL,
	total_annual_savings REAL NOT NULL,
	total_implementation_cost REAL NOT NULL,
	portfolio_roi_ratio REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_scenario_ran ON scenario_runs(scenario_id, ran_at);

CREATE TABLE IF NOT EXISTS scenario_run_rows (
	run_id INTEGER NOT NULL REFERENCES scenario_runs(id),
	item_rank INTEGER NOT NULL,
	item_id TEXT NOT NULL,
	name TEXT NOT NULL,
	readiness_score REAL NOT NULL,
	suitability_score REAL NOT NULL,
	risk_score REAL NOT NULL,
	roi_score REAL NOT NULL,
	priority REAL NOT NULL,
	annual_savings REAL NOT NULL,
	eligible INTEGER NOT NULL,
	gate_reason TEXT NOT NULL,
	recommendation TEXT NOT NULL,
	PRIMARY KEY (run_id, item_id)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create results schema: %w", err)
	}
	return nil
}

// SaveResult persists one scenario run and its ranked rows atomically.
func (s *Store) SaveResult(result *runner.Result, ranAt time.Time) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	sum := result.Summary
	res, err := tx.Exec(`
		INSERT INTO scenario_runs (scenario_id, ran_at, items, eligible, gated,
			total_annual_savings, total_implementation_cost, portfolio_roi_ratio)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sum.ScenarioID, ranAt.UTC().Format(time.RFC3339), sum.Items, sum.Eligible, sum.Gated,
		sum.TotalAnnualSavings, sum.TotalImplementationCost, sum.PortfolioROIRatio)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for _, row := range result.Rows {
		_, err := tx.Exec(`
			INSERT INTO scenario_run_rows (run_id, item_rank, item_id, name,
				readiness_score, suitability_score, risk_score, roi_score,
				priority, annual_savings, eligible, gate_reason, recommendation)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, row.Rank, row.ItemID, row.Name,
			row.Readiness, row.Suitability, row.Risk, row.ROIScore,
			row.Priority, row.AnnualSavings, row.Eligible, string(row.GateReason), row.Recommendation)
		if err != nil {
			return 0, fmt.Errorf("insert row %s: %w", row.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return runID, nil
}

// ListRuns returns up to limit runs for a scenario, newest first. An empty
// scenario id lists runs across all scenarios.
func (s *Store) ListRuns(scenarioID string, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, scenario_id, ran_at, items, eligible, gated,
		       total_annual_savings, total_implementation_cost, portfolio_roi_ratio
		FROM scenario_runs
	`
	args := []any{}
	if scenarioID != "" {
		query += " WHERE scenario_id = ?"
		args = append(args, scenarioID)
	}
	query += " ORDER BY ran_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		var ranAt string
		if err := rows.Scan(&run.ID, &run.ScenarioID, &ranAt, &run.Items, &run.Eligible, &run.Gated,
			&run.TotalAnnualSavings, &run.TotalImplementationCost, &run.PortfolioROIRatio); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.RanAt, _ = time.Parse(time.RFC3339, ranAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunRows returns the ranked rows of one persisted run in rank order.
func (s *Store) RunRows(runID int64) ([]RowRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, item_rank, item_id, name, readiness_score, suitability_score,
		       risk_score, roi_score, priority, annual_savings, eligible,
		       gate_reason, recommendation
		FROM scenario_run_rows
		WHERE run_id = ?
		ORDER BY item_rank ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run rows: %w", err)
	}
	defer rows.Close()

	var records []RowRecord
	for rows.Next() {
		var r RowRecord
		if err := rows.Scan(&r.RunID, &r.Rank, &r.ItemID, &r.Name, &r.Readiness, &r.Suitability,
			&r.Risk, &r.ROIScore, &r.Priority, &r.AnnualSavings, &r.Eligible,
			&r.GateReason, &r.Recommendation); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	return records, nil
}
