package sensitivity

import (
	"fmt"

	"github.com/emkwambe/ai-readiness-roi-simulator/internal/portfolio"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/runner"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scenario"
	"github.com/emkwambe/ai-readiness-roi-simulator/internal/scoring"
)

// WeightScheme is one named weight triple for the deterministic variant.
type WeightScheme struct {
	Name    string
	Weights scoring.Weights
}

// DefaultWeightSchemes covers the weight postures worth comparing: the
// baseline plus ROI-heavy, risk-averse, readiness-first, equal, and the two
// extremes.
func DefaultWeightSchemes() []WeightScheme {
	return []WeightScheme{
		{Name: "Baseline", Weights: scoring.Weights{Readiness: 0.35, ROI: 0.45, Risk: 0.20}},
		{Name: "ROI Heavy", Weights: scoring.Weights{Readiness: 0.20, ROI: 0.60, Risk: 0.20}},
		{Name: "Risk Averse", Weights: scoring.Weights{Readiness: 0.30, ROI: 0.30, Risk: 0.40}},
		{Name: "Readiness First", Weights: scoring.Weights{Readiness: 0.50, ROI: 0.35, Risk: 0.15}},
		{Name: "Equal Weights", Weights: scoring.Weights{Readiness: 0.33, ROI: 0.34, Risk: 0.33}},
		{Name: "Extreme ROI", Weights: scoring.Weights{Readiness: 0.15, ROI: 0.70, Risk: 0.15}},
		{Name: "Extreme Risk", Weights: scoring.Weights{Readiness: 0.25, ROI: 0.25, Risk: 0.50}},
	}
}

// SchemeRank is one item's rank under one scheme. Rank counts eligible items
// only; Gated marks schemes where the item scored 0.
type SchemeRank struct {
	Scheme string
	Rank   int
	Gated  bool
}

// ItemStability summarizes how one item's rank moves across schemes.
type ItemStability struct {
	ItemID     string
	Name       string
	Ranks      []SchemeRank
	MinRank    int
	MaxRank    int
	RankRange  int
	AvgRank    float64
	TimesGated int
}

// WeightSchemeReport compares rankings across named weight schemes for the
// baseline scenario's top items.
type WeightSchemeReport struct {
	ScenarioID string
	Schemes    []WeightScheme
	TopK       int
	Items      []ItemStability
}

// RunWeightSchemes reranks the portfolio under every scheme, holding the
// baseline gates and costs fixed, and reports rank stability for the items
// placed in the baseline scenario's top K.
func RunWeightSchemes(store *portfolio.Store, baseline scenario.Parameters, schemes []WeightScheme, topK int) (*WeightSchemeReport, error) {
	if len(schemes) == 0 {
		schemes = DefaultWeightSchemes()
	}
	for _, scheme := range schemes {
		if err := scheme.Weights.Validate(); err != nil {
			return nil, fmt.Errorf("scheme %q: %w", scheme.Name, err)
		}
	}

	baseResult, err := runner.Run(store, baseline)
	if err != nil {
		return nil, err
	}
	if topK <= 0 || topK > len(baseResult.Rows) {
		topK = len(baseResult.Rows)
	}

	// eligibleRank[scheme][item] counts eligible rows only.
	type rankInfo struct {
		rank  int
		gated bool
	}
	ranksByScheme := make([]map[string]rankInfo, len(schemes))

	for i, scheme := range schemes {
		params := baseline
		params.Weights = scheme.Weights
		result, err := runner.Run(store, params)
		if err != nil {
			return nil, fmt.Errorf("scheme %q: %w", scheme.Name, err)
		}

		ranks := make(map[string]rankInfo, len(result.Rows))
		eligible := 0
		for _, row := range result.Rows {
			if row.Priority > 0 {
				eligible++
				ranks[row.ItemID] = rankInfo{rank: eligible}
			} else {
				ranks[row.ItemID] = rankInfo{gated: true}
			}
		}
		ranksByScheme[i] = ranks
	}

	report := &WeightSchemeReport{
		ScenarioID: baseline.ID,
		Schemes:    schemes,
		TopK:       topK,
	}

	for _, row := range baseResult.Rows[:topK] {
		stability := ItemStability{ItemID: row.ItemID, Name: row.Name}

		var rankSum, ranked int
		for i, scheme := range schemes {
			info := ranksByScheme[i][row.ItemID]
			stability.Ranks = append(stability.Ranks, SchemeRank{
				Scheme: scheme.Name,
				Rank:   info.rank,
				Gated:  info.gated,
			})
			if info.gated {
				stability.TimesGated++
				continue
			}
			ranked++
			rankSum += info.rank
			if stability.MinRank == 0 || info.rank < stability.MinRank {
				stability.MinRank = info.rank
			}
			if info.rank > stability.MaxRank {
				stability.MaxRank = info.rank
			}
		}
		if ranked > 0 {
			stability.RankRange = stability.MaxRank - stability.MinRank
			stability.AvgRank = float64(rankSum) / float64(ranked)
		}

		report.Items = append(report.Items, stability)
	}

	return report, nil
}
