package scoring

// Priority combines readiness, ROI, and safety (100 - risk) into the final
// 0-100 priority score. Gated items score exactly 0 regardless of their
// component scores.
func Priority(readiness, roiScore, risk float64, eligible bool, w Weights) float64 {
	if !eligible {
		return 0
	}
	safety := 100 - risk
	return w.Readiness*readiness + w.ROI*roiScore + w.Risk*safety
}
