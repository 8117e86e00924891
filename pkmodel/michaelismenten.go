package pkmodel

import (
	"github.com/sotalya/tucuxi-go/intake"
	"github.com/sotalya/tucuxi-go/logenv"
	"github.com/sotalya/tucuxi-go/param"
	"github.com/sotalya/tucuxi-go/status"
)

// VmaxForm selects whether Vmax is expressed as an amount rate (the
// elimination term is Vmax*Ac/(Km*V+Ac), Km given in concentration units) or
// as a concentration rate (dC/dt = -Vmax*C/(Km+C) with C = Ac/V, i.e. an
// amount elimination of V*Vmax*C/(Km+C)) — spec.md §9's
// redesign note calls out VmaxAmount as a parameterization variant of the
// same nonlinear model rather than a distinct calculator.
type VmaxForm int

const (
	VmaxConcentration VmaxForm = iota
	VmaxAmount
)

// MichaelisMenten implements intake.Calculator for the nonlinear
// Michaelis-Menten elimination model, in its one- and two-compartment forms,
// integrated with the generic RK4 stepper (ode.go) since no closed form
// exists for a saturable elimination term (spec.md §9).
type MichaelisMenten struct {
	NCompartments int // 1 or 2
	VmaxKind      VmaxForm
	Route         intake.Route
}

func (c MichaelisMenten) hasDepot() bool {
	return c.Route == intake.Extravascular || c.Route == intake.ExtravascularLag
}

// stateSize is the RK4 state vector length: central (+peripheral) (+depot).
func (c MichaelisMenten) stateSize() int {
	n := c.NCompartments
	if c.hasDepot() {
		n++
	}
	return n
}

func (c MichaelisMenten) ResidualSize() int { return c.stateSize() }
func (c MichaelisMenten) NbAnalytes() int   { return 1 }

func (c MichaelisMenten) requiredIDs() []param.ID {
	ids := []param.ID{param.Km, param.Vmax, param.V}
	if c.NCompartments == 2 {
		ids = append(ids, param.Q, param.V2)
	}
	if c.hasDepot() {
		ids = append(ids, param.Ka, param.F)
	}
	if c.Route == intake.ExtravascularLag {
		ids = append(ids, param.Tlag)
	}
	return ids
}

func (c MichaelisMenten) CheckInputs(ev *intake.Event, p *param.Set) bool {
	var log logenv.Logger = logenv.NopLogger{}
	if !checkCondition(log, p.Has(c.requiredIDs()...), "Michaelis-Menten model: missing required parameter(s)") {
		return false
	}
	v, _ := p.Value(param.V)
	km, _ := p.Value(param.Km)
	vmax, _ := p.Value(param.Vmax)
	if !checkStrictlyPositive(log, v, "V") || !checkStrictlyPositive(log, km, "Km") || !checkPositive(log, vmax, "Vmax") {
		return false
	}
	if !checkPositive(log, ev.Dose, "dose") {
		return false
	}
	if c.NCompartments == 2 {
		q, _ := p.Value(param.Q)
		v2, _ := p.Value(param.V2)
		if !checkPositive(log, q, "Q") || !checkStrictlyPositive(log, v2, "V2") {
			return false
		}
	}
	if c.hasDepot() {
		ka, _ := p.Value(param.Ka)
		f, _ := p.Value(param.F)
		if !checkStrictlyPositive(log, ka, "Ka") || !checkCondition(log, f > 0 && f <= 1, "F must be in (0, 1], got %v", f) {
			return false
		}
	}
	return true
}

// mmParams bundles the values extract reads out of the parameter set, purely
// to keep the two public methods' signatures from ballooning further.
type mmParams struct {
	v, km, vmax, q, v2, ka, f, tlag float64
}

func (c MichaelisMenten) extract(p *param.Set) mmParams {
	var mp mmParams
	mp.v, _ = p.Value(param.V)
	mp.km, _ = p.Value(param.Km)
	mp.vmax, _ = p.Value(param.Vmax)
	if c.NCompartments == 2 {
		mp.q, _ = p.Value(param.Q)
		mp.v2, _ = p.Value(param.V2)
	}
	if c.hasDepot() {
		mp.ka, _ = p.Value(param.Ka)
		mp.f, _ = p.Value(param.F)
		if mp.f == 0 {
			mp.f = 1
		}
	}
	if c.Route == intake.ExtravascularLag {
		mp.tlag, _ = p.Value(param.Tlag)
	}
	return mp
}

// derivativeFor builds the RK4 derivative closure for one cycle: index 0 is
// the central amount, index 1 (if present) the peripheral amount, and the
// last index (if present) the depot amount. infusionRate is the constant
// amount/hour entering the central compartment while t <= infusionHours
// (zero for non-infusion routes).
func (c MichaelisMenten) derivativeFor(mp mmParams, infusionRate, infusionHours float64) derivative {
	depotIdx := -1
	if c.hasDepot() {
		depotIdx = c.stateSize() - 1
	}
	return func(t float64, x []float64, dxdt []float64) {
		ac := x[0]
		conc := ac / mp.v
		var elim float64
		if c.VmaxKind == VmaxAmount {
			elim = mp.vmax * ac / (mp.km*mp.v + ac)
		} else {
			elim = mp.v * mp.vmax * conc / (mp.km + conc)
		}

		input := 0.0
		if infusionRate != 0 && t <= infusionHours {
			input = infusionRate
		}
		if depotIdx >= 0 {
			depot := x[depotIdx]
			absorbed := mp.ka * depot
			dxdt[depotIdx] = -absorbed
			input += absorbed
		}

		if c.NCompartments == 2 {
			ap := x[1]
			k12 := mp.q / mp.v
			k21 := mp.q / mp.v2
			transferOut := k12 * ac
			transferIn := k21 * ap
			dxdt[0] = input - elim - transferOut + transferIn
			dxdt[1] = transferOut - transferIn
		} else {
			dxdt[0] = input - elim
		}
	}
}

func (c MichaelisMenten) run(ev *intake.Event, p *param.Set, residualsIn intake.Residuals, times []float64) ([][]float64, intake.Residuals, status.Status) {
	mp := c.extract(p)
	n := c.stateSize()
	x0 := make([]float64, n)
	for i := 0; i < n && i < len(residualsIn); i++ {
		x0[i] = residualsIn[i]
	}
	// residualsIn carries central/peripheral compartment concentrations (the
	// depot slot, if any, has no volume and is already an amount); convert
	// back to amounts before seeding the RK4 state.
	x0[0] *= mp.v
	if c.NCompartments == 2 && n > 1 {
		x0[1] *= mp.v2
	}

	interval := ev.IntervalHours()
	infusionHours := ev.InfusionHours()
	var infusionRate float64
	breakpoints := []float64{}

	switch c.Route {
	case intake.IntravascularBolus:
		x0[0] += ev.Dose
	case intake.IntravascularInfusion:
		infusionRate = ev.Dose / infusionHours
		breakpoints = append(breakpoints, infusionHours)
	case intake.Extravascular:
		x0[n-1] += mp.f * ev.Dose
	case intake.ExtravascularLag:
		if mp.tlag > 0 && mp.tlag < interval {
			breakpoints = append(breakpoints, mp.tlag)
		}
	}

	deriv := c.derivativeFor(mp, infusionRate, infusionHours)

	if c.Route == intake.ExtravascularLag {
		// Dose enters the depot only once t >= tlag; integrate in two legs
		// so the discontinuity never falls inside an RK4 step.
		before := splitTimes(times, mp.tlag)
		maxStep := stepSize(interval)
		preSamples := integrate(deriv, 0, mp.tlag, x0, maxStep, before.pre, nil)
		atLag := lastOrInitial(preSamples, x0)
		atLag[n-1] += mp.f * ev.Dose
		postSamples := integrate(deriv, mp.tlag, interval, atLag, maxStep, before.post, nil)
		samples := stitch(times, mp.tlag, before, preSamples, postSamples)
		final := atEndOfInterval(deriv, atLag, mp.tlag, interval, maxStep)
		return toConcentrations(samples, mp.v, c.NCompartments), c.finishResiduals(mp, final, interval), status.Ok
	}

	maxStep := stepSize(interval)
	samples := integrate(deriv, 0, interval, x0, maxStep, times, breakpoints)
	finalSamples := integrate(deriv, 0, interval, x0, maxStep, []float64{interval}, breakpoints)
	return toConcentrations(samples, mp.v, c.NCompartments), c.finishResiduals(mp, finalSamples[0], interval), status.Ok
}

func stepSize(interval float64) float64 {
	if interval <= 0 {
		return 0.01
	}
	step := interval / 200
	if step <= 0 {
		return 0.01
	}
	return step
}

// finishResiduals converts the RK4 state at cycle end (central/peripheral
// amounts, plus an unconverted depot amount if present) into the residual
// vector carried to the next cycle (central/peripheral concentrations).
func (c MichaelisMenten) finishResiduals(mp mmParams, state []float64, interval float64) intake.Residuals {
	out := make(intake.Residuals, len(state))
	if interval == 0 {
		return out
	}
	copy(out, state)
	out[0] = state[0] / mp.v
	if c.NCompartments == 2 && len(out) > 1 {
		out[1] = state[1] / mp.v2
	}
	return out
}

func toConcentrations(samples [][]float64, v float64, nCompartments int) [][]float64 {
	out := make([][]float64, nCompartments)
	for i := range out {
		out[i] = make([]float64, len(samples))
	}
	for ti, s := range samples {
		if s == nil {
			continue
		}
		out[0][ti] = s[0] / v
		if nCompartments == 2 && len(s) > 1 {
			out[1][ti] = s[1] / v // peripheral amount reported over V, not V2 (finishResiduals uses V2)
		}
	}
	return out
}

type splitResult struct {
	pre, post []float64
}

func splitTimes(times []float64, tlag float64) splitResult {
	var r splitResult
	for _, t := range times {
		if t <= tlag {
			r.pre = append(r.pre, t)
		} else {
			r.post = append(r.post, t)
		}
	}
	return r
}

func lastOrInitial(samples [][]float64, x0 []float64) []float64 {
	if len(samples) == 0 {
		return append([]float64(nil), x0...)
	}
	last := samples[len(samples)-1]
	if last == nil {
		return append([]float64(nil), x0...)
	}
	return append([]float64(nil), last...)
}

func stitch(times []float64, tlag float64, split splitResult, pre, post [][]float64) [][]float64 {
	out := make([][]float64, len(times))
	pi, qi := 0, 0
	for i, t := range times {
		if t <= tlag {
			if pi < len(pre) {
				out[i] = pre[pi]
				pi++
			}
		} else {
			if qi < len(post) {
				out[i] = post[qi]
				qi++
			}
		}
	}
	return out
}

func atEndOfInterval(deriv derivative, atLag []float64, from, to, maxStep float64) []float64 {
	if to <= from {
		return atLag
	}
	samples := integrate(deriv, from, to, atLag, maxStep, []float64{to}, nil)
	return samples[0]
}

func (c MichaelisMenten) CalculateIntakePoints(ev *intake.Event, p *param.Set, residualsIn intake.Residuals, computeAllCompartments bool, fixedDensity bool) ([]float64, [][]float64, intake.Residuals, status.Status) {
	if !c.CheckInputs(ev, p) {
		return nil, nil, nil, status.BadParameters
	}
	var times []float64
	if c.Route == intake.IntravascularInfusion {
		times = intake.InfusionTimes{}.Compute(ev, ev.NbPoints)
	} else {
		times = intake.StandardTimes{}.Compute(ev, ev.NbPoints)
	}
	concs, residualsOut, st := c.run(ev, p, residualsIn, times)
	if st != status.Ok {
		return nil, nil, nil, st
	}
	if !computeAllCompartments && len(concs) > 1 {
		concs = concs[:1]
	}
	return times, concs, residualsOut, status.Ok
}

func (c MichaelisMenten) CalculateIntakeSinglePoint(ev *intake.Event, p *param.Set, residualsIn intake.Residuals, atTime float64, computeAllCompartments bool) ([]float64, intake.Residuals, status.Status) {
	if !c.CheckInputs(ev, p) {
		return nil, nil, status.BadParameters
	}
	concs, residualsOut, st := c.run(ev, p, residualsIn, []float64{atTime})
	if st != status.Ok {
		return nil, nil, st
	}
	point := make([]float64, len(concs))
	for i := range concs {
		point[i] = concs[i][0]
	}
	if !computeAllCompartments && len(point) > 1 {
		point = point[:1]
	}
	return point, residualsOut, status.Ok
}
