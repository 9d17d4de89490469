package scoring

import (
	"fmt"
	"math"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
)

// Weights blends the three priority components. All weights must sum to 1.0
// within portfolio.WeightTolerance.
type Weights struct {
	Readiness float64 `yaml:"readiness"`
	ROI       float64 `yaml:"roi"`
	Risk      float64 `yaml:"risk"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Readiness + w.ROI + w.Risk
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > portfolio.WeightTolerance {
		return fmt.Errorf("dimension weights sum to %.6f, must sum to 1.0", w.Sum())
	}
	for name, v := range map[string]float64{"readiness": w.Readiness, "roi": w.ROI, "risk": w.Risk} {
		if v < 0 {
			return fmt.Errorf("negative %s weight: %g", name, v)
		}
	}
	return nil
}

// Normalized rescales the weights so they sum to exactly 1.0. A zero sum is
// left untouched; Validate rejects it separately.
func (w Weights) Normalized() Weights {
	sum := w.Sum()
	if sum == 0 {
		return w
	}
	return Weights{
		Readiness: w.Readiness / sum,
		ROI:       w.ROI / sum,
		Risk:      w.Risk / sum,
	}
}

// Gates holds the non-compensatory eligibility thresholds.
type Gates struct {
	MinReadiness float64 `yaml:"min_readiness"`
	MaxRisk      float64 `yaml:"max_risk"`
}

// Validate checks that both thresholds sit on the 0-100 score scale.
func (g Gates) Validate() error {
	if g.MinReadiness < 0 || g.MinReadiness > 100 {
		return fmt.Errorf("min_readiness %g outside [0, 100]", g.MinReadiness)
	}
	if g.MaxRisk < 0 || g.MaxRisk > 100 {
		return fmt.Errorf("max_risk %g outside [0, 100]", g.MaxRisk)
	}
	return nil
}
