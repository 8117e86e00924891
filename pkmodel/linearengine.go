package pkmodel

import "math"

// decayOnly evaluates the homogeneous response of a linear compartmental
// system (bolus dosing: the dose is folded into x0 before calling).
func decayOnly(m [][]float64, x0 []float64, t float64) []float64 {
	return modalDecay(m, x0, t)
}

// infusionResponse evaluates dX/dt = M X + rate*e1 while t <= infusionHours
// (constant input into compartment 1, the central compartment), and pure
// decay from the infusion-stop state afterward. rate is the amount
// delivered per hour (D/infusionHours), since X is in amount units.
func infusionResponse(m [][]float64, x0 []float64, rate, infusionHours, t float64) []float64 {
	n := len(x0)
	b := make([]float64, n)
	b[0] = -rate
	xp := solveLinear(m, b)

	xh0 := make([]float64, n)
	for i := range xh0 {
		xh0[i] = x0[i] - xp[i]
	}

	if t <= infusionHours {
		dec := modalDecay(m, xh0, t)
		out := make([]float64, n)
		for i := range out {
			out[i] = xp[i] + dec[i]
		}
		return out
	}

	decAtStop := modalDecay(m, xh0, infusionHours)
	xAtStop := make([]float64, n)
	for i := range xAtStop {
		xAtStop[i] = xp[i] + decAtStop[i]
	}
	return modalDecay(m, xAtStop, t-infusionHours)
}

// absorptionResponse evaluates dX/dt = M X + (ka*ad0)*exp(-ka*t)*e1, the
// response to a depot compartment of initial amount ad0 decaying at rate ka
// into the central compartment. X and ad0 are both in amount units; the
// caller converts to concentration by dividing each compartment by its own
// volume once the amount trajectory is known (spec.md: this keeps the ODE
// valid when the central and peripheral compartments have different
// volumes, rather than baking a single volume into the forcing term).
func absorptionResponse(m [][]float64, x0 []float64, ka, ad0, t float64) []float64 {
	n := len(x0)
	inputAmp := ka * ad0
	mPlusKa := addScaled(m, ka, identity(n))
	b := make([]float64, n)
	b[0] = -inputAmp
	w := solveLinear(mPlusKa, b)

	xh0 := make([]float64, n)
	for i := range xh0 {
		xh0[i] = x0[i] - w[i]
	}
	dec := modalDecay(m, xh0, t)

	out := make([]float64, n)
	e := math.Exp(-ka * t)
	for i := range out {
		out[i] = w[i]*e + dec[i]
	}
	return out
}

// depotAmount is the residual amount left in the depot compartment after t
// hours of first-order absorption at rate ka.
func depotAmount(ad0, ka, t float64) float64 {
	return ad0 * math.Exp(-ka*t)
}
