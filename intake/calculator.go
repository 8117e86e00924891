package intake

import (
	"github.com/sotalya/tucuxi-go/param"
	"github.com/sotalya/tucuxi-go/status"
)

// Residuals is a fixed-length vector of compartment end-of-interval
// concentrations, carried from one cycle to the next (spec.md §3).
type Residuals []float64

// Clone returns an independent copy.
func (r Residuals) Clone() Residuals {
	out := make(Residuals, len(r))
	copy(out, r)
	return out
}

// Calculator is the common contract every intake-interval calculator
// implements (spec.md §4.2): analytical closed-form models and RK4-based
// numerical models alike. A Calculator instance is shared and immutable
// after construction; it carries no per-call mutable state (spec.md §9:
// "do not hoist [model state] into a base class that implies
// mutable-sharing semantics" forbids a single shared struct, but nothing
// forbids each concrete calculator from holding its own derived constants
// as long as they never change between calls — see pkmodel's calculators,
// which recompute everything from the passed-in parameters on every call
// instead of caching).
type Calculator interface {
	// CheckInputs verifies that every parameter this calculator needs is
	// present (by id, not just by count — spec.md §9 Open Question (b)) and
	// finite, and that intake fields are within domain.
	CheckInputs(ev *Event, parameters *param.Set) bool

	// CalculateIntakePoints fills timesOut (hours from cycle start) and
	// concentrationsOut (outer index = compartment, inner = point), and
	// returns residualsOut (length = ResidualSize()).
	CalculateIntakePoints(
		ev *Event,
		parameters *param.Set,
		residualsIn Residuals,
		computeAllCompartments bool,
		fixedDensity bool,
	) (timesOut []float64, concentrationsOut [][]float64, residualsOut Residuals, result status.Status)

	// CalculateIntakeSinglePoint computes one value at atTime (hours within
	// the cycle), plus residualsOut at interval end. If ev.Interval == 0 the
	// end-of-interval value is zeroed (marks the last cycle).
	CalculateIntakeSinglePoint(
		ev *Event,
		parameters *param.Set,
		residualsIn Residuals,
		atTime float64,
		computeAllCompartments bool,
	) (concentrationsAtTime []float64, residualsOut Residuals, result status.Status)

	// ResidualSize is the number of compartments this calculator tracks.
	ResidualSize() int

	// NbAnalytes is the number of observable analytes (usually 1: the
	// central/first compartment).
	NbAnalytes() int
}
