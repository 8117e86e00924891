package pkmodel

import (
	"math"

	"github.com/sotalya/tucuxi-go/logenv"
)

// checkCondition logs msg at warn and returns false when cond is false; it
// is the shared guard every calculator's CheckInputs chains through &&,
// matching checkInputs' "first violated condition logged" policy
// (spec.md §4.2, §7).
func checkCondition(log logenv.Logger, cond bool, msg string, args ...any) bool {
	if !cond {
		if log != nil {
			log.Warn(msg, args...)
		}
		return false
	}
	return true
}

func checkFinite(log logenv.Logger, v float64, name string) bool {
	return checkCondition(log, !math.IsNaN(v) && !math.IsInf(v, 0), "%s is not finite: %v", name, v)
}

func checkPositive(log logenv.Logger, v float64, name string) bool {
	return checkFinite(log, v, name) && checkCondition(log, v >= 0, "%s must be >= 0, got %v", name, v)
}

func checkStrictlyPositive(log logenv.Logger, v float64, name string) bool {
	return checkFinite(log, v, name) && checkCondition(log, v > 0, "%s must be > 0, got %v", name, v)
}
