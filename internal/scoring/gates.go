package scoring

// GateReason identifies which gate excluded an item.
type GateReason string

const (
	ReasonNone            GateReason = ""
	ReasonFailedReadiness GateReason = "FAILED_READINESS"
	ReasonFailedRisk      GateReason = "FAILED_RISK"
)

// EvaluateGates applies the non-compensatory thresholds. The readiness gate
// is checked before the risk gate, so an item failing both reports
// FAILED_READINESS. This ordering is fixed.
func EvaluateGates(readiness, risk float64, gates Gates) (bool, GateReason) {
	if readiness < gates.MinReadiness {
		return false, ReasonFailedReadiness
	}
	if risk > gates.MaxRisk {
		return false, ReasonFailedRisk
	}
	return true, ReasonNone
}
