package sensitivity

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/runner"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scenario"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scoring"
)

// DefaultTrials matches the documented robustness run size.
const DefaultTrials = 500

// DefaultSeed keeps ad-hoc runs reproducible unless a seed is given.
const DefaultSeed = 42

// WeightRanges declares one triangular distribution per priority weight.
type WeightRanges struct {
	Readiness Triangular `yaml:"readiness"`
	ROI       Triangular `yaml:"roi"`
	Risk      Triangular `yaml:"risk"`
}

// DefaultWeightRanges spans the weight assumptions considered reasonable
// around the baseline 0.35/0.45/0.20 split.
func DefaultWeightRanges() WeightRanges {
	return WeightRanges{
		Readiness: Triangular{Min: 0.25, Mode: 0.35, Max: 0.45},
		ROI:       Triangular{Min: 0.35, Mode: 0.45, Max: 0.55},
		Risk:      Triangular{Min: 0.10, Mode: 0.20, Max: 0.30},
	}
}

// DefaultAdoptionRange spans the plausible share of work actually shifted
// to agents once staff settle into the workflow.
func DefaultAdoptionRange() Triangular {
	return Triangular{Min: 0.60, Mode: 0.80, Max: 0.95}
}

// DefaultAgentCostRange spans the expected effective hourly cost of agent
// capacity around the planning figure of 28.
func DefaultAgentCostRange() Triangular {
	return Triangular{Min: 22, Mode: 28, Max: 35}
}

// DefaultMonteCarloConfig samples weights, adoption rate, and agent cost
// over their default ranges. This is what the CLI runs.
func DefaultMonteCarloConfig() MonteCarloConfig {
	adoption := DefaultAdoptionRange()
	agentCost := DefaultAgentCostRange()
	return MonteCarloConfig{
		Trials:       DefaultTrials,
		Seed:         DefaultSeed,
		Weights:      DefaultWeightRanges(),
		AdoptionRate: &adoption,
		AgentCost:    &agentCost,
	}
}

// MonteCarloConfig drives one randomized robustness run. Gates always come
// from the baseline scenario; only weights vary unless the optional cost
// distributions are set.
type MonteCarloConfig struct {
	Trials  int
	Seed    int64
	Weights WeightRanges

	// Optional: when set, adoption rate and agent hourly cost are sampled
	// per trial as well.
	AdoptionRate *Triangular
	AgentCost    *Triangular
}

// Validate rejects empty runs and malformed distributions.
func (c MonteCarloConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	for name, dist := range map[string]Triangular{
		"readiness": c.Weights.Readiness,
		"roi":       c.Weights.ROI,
		"risk":      c.Weights.Risk,
	} {
		if err := dist.Validate(); err != nil {
			return fmt.Errorf("%s weight: %w", name, err)
		}
	}
	if c.AdoptionRate != nil {
		if err := c.AdoptionRate.Validate(); err != nil {
			return fmt.Errorf("adoption rate: %w", err)
		}
	}
	if c.AgentCost != nil {
		if err := c.AgentCost.Validate(); err != nil {
			return fmt.Errorf("agent cost: %w", err)
		}
	}
	return nil
}

// TopCount reports how often one item ranked #1 across trials.
type TopCount struct {
	ItemID  string
	Name    string
	Count   int
	Percent float64
}

// SavingsStats are the descriptive statistics over per-trial savings totals.
type SavingsStats struct {
	Mean   float64
	Median float64
	StdDev float64
	P5     float64
	P95    float64
}

// MonteCarloReport is the aggregated robustness output.
type MonteCarloReport struct {
	ScenarioID string
	Trials     int
	Seed       int64
	TopRanked  []TopCount
	Savings    SavingsStats
}

// RunMonteCarlo perturbs the priority weights across seeded trials and
// re-runs the full pipeline each time. Sampled weight triples are
// renormalized to sum to 1.0 before scoring.
func RunMonteCarlo(store *portfolio.Store, baseline scenario.Parameters, cfg MonteCarloConfig) (*MonteCarloReport, error) {
	if err := baseline.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	savings := make([]float64, 0, cfg.Trials)
	topCounts := make(map[string]int)
	topNames := make(map[string]string)

	for trial := 0; trial < cfg.Trials; trial++ {
		params := baseline
		params.Weights = scoring.Weights{
			Readiness: cfg.Weights.Readiness.Sample(rng),
			ROI:       cfg.Weights.ROI.Sample(rng),
			Risk:      cfg.Weights.Risk.Sample(rng),
		}.Normalized()

		if cfg.AdoptionRate != nil {
			params.Costs.AdoptionRate = cfg.AdoptionRate.Sample(rng)
		}
		if cfg.AgentCost != nil {
			params.Costs.AgentCostPerHour = cfg.AgentCost.Sample(rng)
		}

		result, err := runner.Run(store, params)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}

		savings = append(savings, result.Summary.TotalAnnualSavings)
		if top := result.Rows[0]; top.Priority > 0 {
			topCounts[top.ItemID]++
			topNames[top.ItemID] = top.Name
		}
	}

	report := &MonteCarloReport{
		ScenarioID: baseline.ID,
		Trials:     cfg.Trials,
		Seed:       cfg.Seed,
		Savings:    describe(savings),
	}
	for id, count := range topCounts {
		report.TopRanked = append(report.TopRanked, TopCount{
			ItemID:  id,
			Name:    topNames[id],
			Count:   count,
			Percent: 100 * float64(count) / float64(cfg.Trials),
		})
	}
	sort.Slice(report.TopRanked, func(i, j int) bool {
		if report.TopRanked[i].Count != report.TopRanked[j].Count {
			return report.TopRanked[i].Count > report.TopRanked[j].Count
		}
		return report.TopRanked[i].ItemID < report.TopRanked[j].ItemID
	})

	return report, nil
}

func describe(values []float64) SavingsStats {
	if len(values) == 0 {
		return SavingsStats{}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return SavingsStats{
		Mean:   mean,
		Median: percentile(sorted, 50),
		StdDev: math.Sqrt(sq / float64(len(values))),
		P5:     percentile(sorted, 5),
		P95:    percentile(sorted, 95),
	}
}

// percentile interpolates linearly between order statistics. The input must
// be sorted.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
