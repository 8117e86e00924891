package param

import (
	"math"

	"github.com/sotalya/tucuxi-go/logenv"
)

// Parameter is one (definition, current value) pair, with the eta-vector
// bookkeeping a variable parameter needs: which slot of the eta vector it
// starts at, and how many slots it consumes.
type Parameter struct {
	Definition Definition
	Value      float64

	omegaIndex int
	nbEtas     int
}

// NewParameter builds a Parameter at its population (default) value.
func NewParameter(def Definition) Parameter {
	return Parameter{Definition: def, Value: def.Default}
}

// ApplyEta is a pure function: given a variability law, a current value and
// an eta, it returns the transformed value. It never mutates its argument,
// per the "pure eta application" design note (spec.md §9) replacing the
// source's in-place Parameter::applyEta.
func ApplyEta(kind VariabilityKind, value, eta float64) float64 {
	switch kind {
	case Additive, Normal:
		return value + eta
	case Exponential, LogNormal:
		return value * math.Exp(eta)
	case Proportional:
		return value * (1 + eta)
	case Logit:
		logitP := math.Log(value / (1 - value))
		newLogitP := logitP + eta
		return 1.0 / (1 + math.Exp(-newLogitP))
	default:
		return value
	}
}

// withEta returns a copy of p with eta applied, and whether the result is
// finite. A negative post-eta value is left as-is (a warning is the caller's
// job), matching Open Question (c) in spec.md §9: the source's negative
// clamp branch is dead code, so negatives propagate unchanged.
func (p Parameter) withEta(eta float64, log logenv.Logger) (Parameter, bool) {
	if !p.Definition.IsVariable() {
		return p, true
	}
	v := ApplyEta(p.Definition.Variability.Kind, p.Value, eta)
	out := p
	out.Value = v
	if math.IsInf(v, 0) {
		if log != nil {
			log.Warn("applying eta to parameter %s makes it infinite", p.Definition.ID)
		}
		out.Value = math.MaxFloat64 * math.Copysign(1, v)
		return out, false
	}
	if math.IsNaN(v) {
		if log != nil {
			log.Warn("applying eta to parameter %s makes it not a number", p.Definition.ID)
		}
		return out, false
	}
	if v <= 0 {
		if log != nil {
			log.Warn("applying eta to parameter %s makes it negative", p.Definition.ID)
		}
	}
	return out, true
}
