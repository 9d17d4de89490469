package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/audit"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/report"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/runner"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scenario"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/sensitivity"
)

const appName = "roisim"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s: AI readiness and ROI scoring for a process portfolio\n\n", appName)
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [command] [flags]\n\n", appName)
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  run          Score and rank the portfolio under a scenario")
		fmt.Fprintln(os.Stderr, "  scenarios    List available scenarios")
		fmt.Fprintln(os.Stderr, "  sensitivity  Run the robustness analyses for a scenario")
		fmt.Fprintln(os.Stderr, "  help         Show this help")
	}

	args := os.Args[1:]
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		flag.Usage()
		return
	}

	switch args[0] {
	case "run":
		if err := runRun(args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "scenarios":
		if err := runScenarios(args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "sensitivity":
		if err := runSensitivity(args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
}

// loadInputs loads and validates the portfolio tables and scenario documents.
// Any schema or range error is fatal before scoring begins.
func loadInputs(dataDir string) (*portfolio.Store, []scenario.Parameters, error) {
	if dataDir == "" {
		return nil, nil, fmt.Errorf("-data is required")
	}
	store, err := portfolio.LoadFromDir(dataDir)
	if err != nil {
		return nil, nil, err
	}
	params, err := scenario.LoadFromDir(filepath.Join(dataDir, "scenarios"))
	if err != nil {
		return nil, nil, err
	}
	return store, params, nil
}

func runRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dataDir := fs.String("data", "", "Directory with items.csv, metrics.csv, assessments.csv and scenarios/")
	scenarioID := fs.String("scenario", "", "Scenario id to run")
	all := fs.Bool("all", false, "Run every scenario")
	outDir := fs.String("out", "", "Directory for ranked_<scenario>.csv exports")
	dbPath := fs.String("db", "", "SQLite results database to append runs to")
	format := fs.String("format", "text", "Output format: text, csv, or json")

	if err := fs.Parse(args); err != nil {
		return err
	}
	switch *format {
	case "text", "csv", "json":
	default:
		return fmt.Errorf("unknown -format %q (expected text, csv, or json)", *format)
	}

	store, params, err := loadInputs(*dataDir)
	if err != nil {
		return err
	}

	var selected []scenario.Parameters
	if *all {
		selected = params
	} else {
		if *scenarioID == "" {
			return fmt.Errorf("-scenario is required (or pass -all)")
		}
		p, ok := scenario.Find(params, *scenarioID)
		if !ok {
			return fmt.Errorf("scenario %s not found in %s", *scenarioID, *dataDir)
		}
		selected = []scenario.Parameters{p}
	}

	var resultsDB *report.Store
	if *dbPath != "" {
		resultsDB, err = report.Open(*dbPath)
		if err != nil {
			return err
		}
		defer resultsDB.Close()
	}

	logger := audit.NewLogger("")
	for _, p := range selected {
		_ = logger.LogEvent("cli", audit.EventRunStarted, map[string]any{
			"scenario_id": p.ID,
			"data_dir":    *dataDir,
		})
	}

	results, runErrs := runner.RunAll(store, selected)
	for _, result := range results {
		if err := emitResult(result, *format, *outDir, resultsDB); err != nil {
			return err
		}
		_ = logger.LogEvent("cli", audit.EventRunFinished, map[string]any{
			"scenario_id":          result.Summary.ScenarioID,
			"items":                result.Summary.Items,
			"eligible":             result.Summary.Eligible,
			"gated":                result.Summary.Gated,
			"total_annual_savings": result.Summary.TotalAnnualSavings,
		})
	}

	for _, runErr := range runErrs {
		fmt.Fprintln(os.Stderr, runErr.Error())
		_ = logger.LogEvent("cli", audit.EventRunFinished, map[string]any{
			"scenario_id": runErr.ScenarioID,
			"error":       runErr.Err.Error(),
		})
	}
	if len(runErrs) > 0 {
		return fmt.Errorf("%d of %d scenarios failed", len(runErrs), len(selected))
	}
	return nil
}

func emitResult(result *runner.Result, format, outDir string, resultsDB *report.Store) error {
	switch format {
	case "text":
		fmt.Fprintln(os.Stdout, report.RenderResult(result))
	case "csv":
		if err := report.WriteRankedCSVTo(os.Stdout, result); err != nil {
			return err
		}
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		data = append(data, '\n')
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
	}

	if outDir != "" {
		path, err := report.WriteRankedCSV(outDir, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote ranked table: %s\n", path)
	}
	if resultsDB != nil {
		runID, err := resultsDB.SaveResult(result, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved run %d to %s\n", runID, resultsDB.DBPath)
	}
	return nil
}

func runScenarios(args []string) error {
	fs := flag.NewFlagSet("scenarios", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dataDir := fs.String("data", "", "Directory with items.csv, metrics.csv, assessments.csv and scenarios/")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dataDir == "" {
		return fmt.Errorf("-data is required")
	}

	params, err := scenario.LoadFromDir(filepath.Join(*dataDir, "scenarios"))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Scenarios (%d):\n", len(params))
	for _, p := range params {
		fmt.Fprintf(os.Stdout, "  %-12s %-24s weights r=%.2f/roi=%.2f/risk=%.2f gates >=%g/<=%g\n",
			p.ID, p.Name, p.Weights.Readiness, p.Weights.ROI, p.Weights.Risk,
			p.Gates.MinReadiness, p.Gates.MaxRisk)
	}
	return nil
}

func runSensitivity(args []string) error {
	fs := flag.NewFlagSet("sensitivity", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dataDir := fs.String("data", "", "Directory with items.csv, metrics.csv, assessments.csv and scenarios/")
	scenarioID := fs.String("scenario", "", "Baseline scenario id")
	trials := fs.Int("trials", sensitivity.DefaultTrials, "Monte Carlo trial count")
	seed := fs.Int64("seed", sensitivity.DefaultSeed, "Monte Carlo random seed")
	topK := fs.Int("top", 5, "Items from the baseline ranking to track across weight schemes")
	outDir := fs.String("out", "", "Directory for the written robustness report")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenarioID == "" {
		return fmt.Errorf("-scenario is required")
	}

	store, params, err := loadInputs(*dataDir)
	if err != nil {
		return err
	}
	baseline, ok := scenario.Find(params, *scenarioID)
	if !ok {
		return fmt.Errorf("scenario %s not found in %s", *scenarioID, *dataDir)
	}

	logger := audit.NewLogger("")
	_ = logger.LogEvent("cli", audit.EventSensitivityStarted, map[string]any{
		"scenario_id": baseline.ID,
		"trials":      *trials,
		"seed":        *seed,
	})

	schemeReport, err := sensitivity.RunWeightSchemes(store, baseline, nil, *topK)
	if err != nil {
		return err
	}
	gateReport, err := sensitivity.RunGateGrid(store, baseline, nil, nil)
	if err != nil {
		return err
	}
	costReport, err := sensitivity.RunCostGrid(store, baseline, nil, nil)
	if err != nil {
		return err
	}
	mcConfig := sensitivity.DefaultMonteCarloConfig()
	mcConfig.Trials = *trials
	mcConfig.Seed = *seed
	mcReport, err := sensitivity.RunMonteCarlo(store, baseline, mcConfig)
	if err != nil {
		return err
	}

	text := report.RenderWeightSchemes(schemeReport) + "\n" +
		report.RenderGateGrid(gateReport) + "\n" +
		report.RenderCostGrid(costReport) + "\n" +
		report.RenderMonteCarlo(mcReport)
	fmt.Fprintln(os.Stdout, text)

	if *outDir != "" {
		path := filepath.Join(*outDir, fmt.Sprintf("sensitivity_%s.txt", baseline.ID))
		diff, err := report.WriteTextReport(path, text)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote robustness report: %s\n", path)
		if diff != "" {
			fmt.Fprintf(os.Stdout, "Changes since previous report:\n%s", diff)
		}
	}

	_ = logger.LogEvent("cli", audit.EventSensitivityFinished, map[string]any{
		"scenario_id": baseline.ID,
		"trials":      mcReport.Trials,
		"seed":        mcReport.Seed,
	})
	return nil
}
