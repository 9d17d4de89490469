package runner

import "github.com/emkwambe/ai-readiness-roi-simulator/internal/scoring"

// recommend produces the banded advice string for one scored row.
func recommend(row ScoreRow) string {
	if !row.Eligible {
		if row.GateReason == scoring.ReasonFailedReadiness {
			return "NOT READY - improve data and process standardization first"
		}
		return "HIGH RISK - keep human-operated, monitor for changes"
	}

	switch {
	case row.Priority >= 70 && row.Risk < 40:
		return "PRIORITY 1 - strong candidate for full automation"
	case row.Priority >= 70:
		return "PRIORITY 1 - implement with human-in-loop safeguards"
	case row.Priority >= 50:
		return "PRIORITY 2 - good candidate for AI-assisted workflow"
	case row.Priority >= 30:
		return "PRIORITY 3 - consider for a later phase"
	default:
		return "LOW PRIORITY - defer or keep manual"
	}
}
