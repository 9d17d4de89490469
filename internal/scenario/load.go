package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/finance"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scoring"
)

// Defaults applied when a scenario document omits the optional cost fields.
const (
	DefaultOverheadMultiplier  = 1.15
	DefaultAdoptionRate        = 0.80
	DefaultReferenceVolume     = 500
	DefaultTargetPaybackMonths = 12
	DefaultTargetROIRatio      = 2.0
)

type rawScenario struct {
	ID      string         `yaml:"scenario_id"`
	Name    string         `yaml:"name"`
	Weights *rawWeights    `yaml:"weights"`
	Gates   *rawGates      `yaml:"gates"`
	Costs   *rawCosts      `yaml:"costs"`
	Shift   *rawShiftRates `yaml:"shift_rates"`
	Targets *rawTargets    `yaml:"targets"`
}

type rawWeights struct {
	Readiness *float64 `yaml:"readiness"`
	ROI       *float64 `yaml:"roi"`
	Risk      *float64 `yaml:"risk"`
}

type rawGates struct {
	MinReadiness *float64 `yaml:"min_readiness"`
	MaxRisk      *float64 `yaml:"max_risk"`
}

type rawCosts struct {
	AgentCostPerHour       *float64 `yaml:"agent_cost_per_hour"`
	OverheadMultiplier     *float64 `yaml:"overhead_multiplier"`
	BaseImplementationCost *float64 `yaml:"base_implementation_cost"`
	AdoptionRate           *float64 `yaml:"adoption_rate"`
	ReferenceVolume        *float64 `yaml:"reference_volume"`
}

type rawShiftRates struct {
	Full    *float64 `yaml:"full"`
	Partial *float64 `yaml:"partial"`
	Assist  *float64 `yaml:"assist"`
}

type rawTargets struct {
	PaybackMonths *float64 `yaml:"payback_months"`
	ROIRatio      *float64 `yaml:"roi_ratio"`
}

// ParseAndValidate unmarshals and validates a single scenario YAML document.
func ParseAndValidate(data []byte, source string) (Parameters, error) {
	var raw rawScenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Parameters{}, portfolio.ValidationErrors{{
			File:    source,
			Field:   "yaml",
			Message: err.Error(),
		}}
	}
	return validateRaw(raw, source)
}

func validateRaw(raw rawScenario, source string) (Parameters, error) {
	var errs portfolio.ValidationErrors
	addErr := func(field, message string) {
		errs = append(errs, portfolio.ValidationError{File: source, Field: field, Message: message})
	}
	need := func(field string, v *float64) float64 {
		if v == nil {
			addErr(field, "value is required")
			return 0
		}
		return *v
	}
	optional := func(v *float64, fallback float64) float64 {
		if v == nil {
			return fallback
		}
		return *v
	}

	params := Parameters{
		ID:     raw.ID,
		Name:   raw.Name,
		Source: source,
	}
	if params.ID == "" {
		addErr("scenario_id", "scenario_id is required")
	}
	if params.Name == "" {
		params.Name = params.ID
	}

	if raw.Weights == nil {
		addErr("weights", "weights block is required")
	} else {
		params.Weights = scoring.Weights{
			Readiness: need("weights.readiness", raw.Weights.Readiness),
			ROI:       need("weights.roi", raw.Weights.ROI),
			Risk:      need("weights.risk", raw.Weights.Risk),
		}
	}

	if raw.Gates == nil {
		addErr("gates", "gates block is required")
	} else {
		params.Gates = scoring.Gates{
			MinReadiness: need("gates.min_readiness", raw.Gates.MinReadiness),
			MaxRisk:      need("gates.max_risk", raw.Gates.MaxRisk),
		}
	}

	costs := finance.Params{
		OverheadMultiplier:  DefaultOverheadMultiplier,
		AdoptionRate:        DefaultAdoptionRate,
		ReferenceVolume:     DefaultReferenceVolume,
		TargetPaybackMonths: DefaultTargetPaybackMonths,
		TargetROIRatio:      DefaultTargetROIRatio,
	}
	if raw.Costs == nil {
		addErr("costs", "costs block is required")
	} else {
		costs.AgentCostPerHour = need("costs.agent_cost_per_hour", raw.Costs.AgentCostPerHour)
		costs.BaseImplementationCost = need("costs.base_implementation_cost", raw.Costs.BaseImplementationCost)
		costs.OverheadMultiplier = optional(raw.Costs.OverheadMultiplier, costs.OverheadMultiplier)
		costs.AdoptionRate = optional(raw.Costs.AdoptionRate, costs.AdoptionRate)
		costs.ReferenceVolume = optional(raw.Costs.ReferenceVolume, costs.ReferenceVolume)
	}

	if raw.Shift == nil {
		addErr("shift_rates", "shift_rates block is required")
	} else {
		costs.ShiftRates = finance.ShiftRates{
			Full:    need("shift_rates.full", raw.Shift.Full),
			Partial: need("shift_rates.partial", raw.Shift.Partial),
			Assist:  need("shift_rates.assist", raw.Shift.Assist),
		}
	}

	if raw.Targets != nil {
		costs.TargetPaybackMonths = optional(raw.Targets.PaybackMonths, costs.TargetPaybackMonths)
		costs.TargetROIRatio = optional(raw.Targets.ROIRatio, costs.TargetROIRatio)
	}
	params.Costs = costs

	if len(errs) > 0 {
		return Parameters{}, errs
	}

	if err := params.Weights.Validate(); err != nil {
		addErr("weights", err.Error())
	}
	if err := params.Gates.Validate(); err != nil {
		addErr("gates", err.Error())
	}
	if err := params.Costs.Validate(); err != nil {
		addErr("costs", err.Error())
	}
	if len(errs) > 0 {
		return Parameters{}, errs
	}

	return params, nil
}

// LoadFromDir loads and validates all scenario YAML files from a directory.
// Scenarios are returned sorted by id.
func LoadFromDir(scenariosDir string) ([]Parameters, error) {
	if scenariosDir == "" {
		scenariosDir = "scenarios"
	}

	files, err := filepath.Glob(filepath.Join(scenariosDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("scan scenario dir: %w", err)
	}
	yamlFiles, err := filepath.Glob(filepath.Join(scenariosDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan scenario dir: %w", err)
	}
	files = append(files, yamlFiles...)
	if len(files) == 0 {
		return nil, fmt.Errorf("no scenario YAML files found in %s", scenariosDir)
	}
	sort.Strings(files)

	var out []Parameters
	var vErrs portfolio.ValidationErrors
	seen := make(map[string]string)

	for _, path := range files {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		params, parseErr := ParseAndValidate(data, path)
		if parseErr != nil {
			if ve, ok := parseErr.(portfolio.ValidationErrors); ok {
				vErrs = append(vErrs, ve...)
				continue
			}
			return nil, parseErr
		}
		if origin, dup := seen[params.ID]; dup {
			vErrs = append(vErrs, portfolio.ValidationError{
				File:    path,
				Field:   "scenario_id",
				Message: fmt.Sprintf("scenario_id %q already defined in %s", params.ID, origin),
			})
			continue
		}
		seen[params.ID] = path
		out = append(out, params)
	}

	if len(vErrs) > 0 {
		return nil, vErrs
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
