package pkmodel

import (
	"github.com/sotalya/tucuxi-go/intake"
	"github.com/sotalya/tucuxi-go/logenv"
	"github.com/sotalya/tucuxi-go/param"
	"github.com/sotalya/tucuxi-go/status"
)

// OneCompartment implements intake.Calculator for the one-compartment model
// across every absorption route (spec.md §4.2), reading either the micro
// (Ke, V) or macro (CL, V) parameterization.
type OneCompartment struct {
	Form  Form
	Route intake.Route
}

func (c OneCompartment) core() linearCore {
	return linearCore{n: 1, route: c.Route}
}

func (c OneCompartment) buildMatrix(p *param.Set) ([][]float64, bool) {
	ke, ok := oneCompartmentRates(c.Form, p)
	if !ok {
		return nil, false
	}
	return [][]float64{{-ke}}, true
}

func (c OneCompartment) requiredIDs() []param.ID {
	ids := oneCompartmentRequiredIDs(c.Form)
	if c.Route == intake.Extravascular || c.Route == intake.ExtravascularLag {
		ids = append(append([]param.ID(nil), ids...), param.Ka, param.F)
	}
	if c.Route == intake.ExtravascularLag {
		ids = append(ids, param.Tlag)
	}
	return ids
}

// CheckInputs verifies every required parameter is present and within domain.
func (c OneCompartment) CheckInputs(ev *intake.Event, p *param.Set) bool {
	var log logenv.Logger = logenv.NopLogger{}
	if !checkCondition(log, p.Has(c.requiredIDs()...), "one-compartment model: missing required parameter(s)") {
		return false
	}
	if _, ok := c.buildMatrix(p); !checkCondition(log, ok, "one-compartment model: could not derive rate constants") {
		return false
	}
	v, _ := p.Value(param.V)
	if !checkStrictlyPositive(log, v, "V") {
		return false
	}
	if !checkPositive(log, ev.Dose, "dose") {
		return false
	}
	if c.Route == intake.Extravascular || c.Route == intake.ExtravascularLag {
		ka, _ := p.Value(param.Ka)
		f, _ := p.Value(param.F)
		if !checkStrictlyPositive(log, ka, "Ka") || !checkCondition(log, f > 0 && f <= 1, "F must be in (0, 1], got %v", f) {
			return false
		}
	}
	return true
}

func (c OneCompartment) extract(ev *intake.Event, p *param.Set) (m [][]float64, dose, v1, ka, f, tlag float64, ok bool) {
	m, ok = c.buildMatrix(p)
	if !ok {
		return
	}
	v1, _ = p.Value(param.V)
	ka, _ = p.Value(param.Ka)
	f, _ = p.Value(param.F)
	if c.Route == intake.ExtravascularLag {
		tlag, _ = p.Value(param.Tlag)
	}
	if f == 0 {
		f = 1
	}
	dose = ev.Dose
	return
}

func (c OneCompartment) CalculateIntakePoints(ev *intake.Event, p *param.Set, residualsIn intake.Residuals, computeAllCompartments bool, fixedDensity bool) ([]float64, [][]float64, intake.Residuals, status.Status) {
	if !c.CheckInputs(ev, p) {
		return nil, nil, nil, status.BadParameters
	}
	m, dose, v1, ka, f, tlag, ok := c.extract(ev, p)
	if !ok {
		return nil, nil, nil, status.BadParameters
	}
	times := c.core().timesCalculator(tlag).Compute(ev, ev.NbPoints)
	concs, residualsOut := c.core().evaluate(m, []float64{v1}, dose, ka, f, tlag, ev.InfusionHours(), ev.IntervalHours(), residualsIn, times)
	return times, concs, residualsOut, status.Ok
}

func (c OneCompartment) CalculateIntakeSinglePoint(ev *intake.Event, p *param.Set, residualsIn intake.Residuals, atTime float64, computeAllCompartments bool) ([]float64, intake.Residuals, status.Status) {
	if !c.CheckInputs(ev, p) {
		return nil, nil, status.BadParameters
	}
	m, dose, v1, ka, f, tlag, ok := c.extract(ev, p)
	if !ok {
		return nil, nil, status.BadParameters
	}
	point, residualsOut := c.core().singlePoint(m, []float64{v1}, dose, ka, f, tlag, ev.InfusionHours(), ev.IntervalHours(), atTime, residualsIn)
	return point, residualsOut, status.Ok
}

func (c OneCompartment) ResidualSize() int { return c.core().residualSize() }
func (c OneCompartment) NbAnalytes() int   { return 1 }
