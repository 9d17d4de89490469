package scoring

import (
	"fmt"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
)

// DimensionScore computes the weighted 0-100 score of one item on one
// dimension. Each rating is normalized to [0, 1] on the metric's declared
// scale and oriented so that a higher output means more of the dimension:
// for Readiness and Suitability that is "more goodness" (HigherWorse metrics
// are inverted), for Risk it is "more risk" (HigherBetter metrics are
// inverted).
func DimensionScore(store *portfolio.Store, itemID string, dim portfolio.Dimension) (float64, error) {
	metrics := store.MetricsFor(dim)
	if len(metrics) == 0 {
		return 0, fmt.Errorf("dimension %s has no metrics", dim)
	}

	var weightedSum, weightSum float64
	for _, metric := range metrics {
		rating, ok := store.Rating(itemID, metric.ID)
		if !ok {
			return 0, fmt.Errorf("missing assessment for (%s, %s)", itemID, metric.ID)
		}

		norm := (rating - metric.ScaleMin) / (metric.ScaleMax - metric.ScaleMin)
		if invert(dim, metric.Direction) {
			norm = 1 - norm
		}

		weightedSum += metric.Weight * norm
		weightSum += metric.Weight
	}

	if weightSum <= 0 {
		return 0, fmt.Errorf("dimension %s has zero metric weight sum", dim)
	}
	return 100 * weightedSum / weightSum, nil
}

func invert(dim portfolio.Dimension, dir portfolio.Direction) bool {
	if dim == portfolio.DimensionRisk {
		return dir == portfolio.HigherBetter
	}
	return dir == portfolio.HigherWorse
}
