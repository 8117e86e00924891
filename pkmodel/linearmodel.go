package pkmodel

import (
	"github.com/cpmech/gosl/la"

	"github.com/sotalya/tucuxi-go/intake"
)

// linearCore holds the route-independent evaluation logic shared by the
// one/two/three-compartment analytical calculators: given the rate matrix M
// (dX/dt = M X for the homogeneous central+peripheral system) it derives the
// per-route dosing response via linearengine.go's modal-decay and
// superposition primitives. Each compartment-count file (onecompartment.go,
// twocompartment.go, threecompartment.go) builds M from the parameter set
// and delegates the dosing arithmetic here.
type linearCore struct {
	n     int // number of central+peripheral compartments tracked in M
	route intake.Route
}

// residualSize is n plus one depot slot for absorption routes.
func (c linearCore) residualSize() int {
	if c.route == intake.Extravascular || c.route == intake.ExtravascularLag {
		return c.n + 1
	}
	return c.n
}

func (c linearCore) timesCalculator(tlag float64) intake.TimesCalculator {
	switch c.route {
	case intake.IntravascularInfusion:
		return intake.InfusionTimes{}
	case intake.ExtravascularLag:
		return intake.LagTimes{Tlag: tlag}
	default:
		return intake.StandardTimes{}
	}
}

// evaluate computes the compartment state at every time in times (hours from
// cycle start) and the residual vector carried to the next cycle, for the
// given rate matrix m and dosing parameters. The ODE itself is solved in
// amount units throughout (so a single matrix works whether or not the
// peripheral compartments share the central compartment's volume), but
// residualsIn/residualsOut carry compartment concentrations, matching the
// contract every other calculator and the carried-over record window rely
// on: x0 is seeded by multiplying each incoming concentration back out to an
// amount (state[i] = residualsIn[i]*volumes[i]), and residualsOut is
// produced by dividing the end-of-interval amount by volumes[i] again. The
// depot slot (index n, absorption routes only) has no volume of its own and
// is carried as an amount throughout.
func (c linearCore) evaluate(
	m [][]float64,
	volumes []float64,
	dose, ka, f, tlag, infusionHours, interval float64,
	residualsIn intake.Residuals,
	times []float64,
) ([][]float64, intake.Residuals) {
	n := c.n
	x0 := make([]float64, n)
	for i := 0; i < n && i < len(residualsIn); i++ {
		x0[i] = residualsIn[i] * volumes[i]
	}

	var ad0 float64
	if c.route == intake.Extravascular || c.route == intake.ExtravascularLag {
		if len(residualsIn) > n {
			ad0 = residualsIn[n]
		}
		ad0 += f * dose
	}

	eval := func(t float64) []float64 {
		switch c.route {
		case intake.IntravascularBolus:
			boosted := append([]float64(nil), x0...)
			boosted[0] += dose
			return decayOnly(m, boosted, t)
		case intake.IntravascularInfusion:
			rate := dose / infusionHours
			return infusionResponse(m, x0, rate, infusionHours, t)
		case intake.Extravascular:
			return absorptionResponse(m, x0, ka, ad0, t)
		default: // ExtravascularLag
			if t <= tlag {
				return decayOnly(m, x0, t)
			}
			xAtLag := decayOnly(m, x0, tlag)
			return absorptionResponse(m, xAtLag, ka, ad0, t-tlag)
		}
	}

	concentrations := la.MatAlloc(n, len(times))
	for ti, t := range times {
		state := eval(t)
		for i := 0; i < n; i++ {
			concentrations[i][ti] = state[i] / volumes[i]
		}
	}

	var residualsOut intake.Residuals
	if interval == 0 {
		residualsOut = make(intake.Residuals, c.residualSize())
	} else {
		endState := eval(interval)
		residualsOut = make(intake.Residuals, c.residualSize())
		for i := 0; i < n; i++ {
			residualsOut[i] = endState[i] / volumes[i]
		}
		if c.route == intake.Extravascular {
			residualsOut[n] = depotAmount(ad0, ka, interval)
		} else if c.route == intake.ExtravascularLag {
			if interval <= tlag {
				residualsOut[n] = ad0
			} else {
				residualsOut[n] = depotAmount(ad0, ka, interval-tlag)
			}
		}
	}
	return concentrations, residualsOut
}

// singlePoint evaluates one concentration at atTime and the end-of-interval
// residual in one pass, matching CalculateIntakeSinglePoint's contract.
func (c linearCore) singlePoint(
	m [][]float64,
	volumes []float64,
	dose, ka, f, tlag, infusionHours, interval, atTime float64,
	residualsIn intake.Residuals,
) ([]float64, intake.Residuals) {
	concs, residuals := c.evaluate(m, volumes, dose, ka, f, tlag, infusionHours, interval, residualsIn, []float64{atTime})
	point := make([]float64, c.n)
	for i := range point {
		point[i] = concs[i][0]
	}
	return point, residuals
}

