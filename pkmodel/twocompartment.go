package pkmodel

import (
	"github.com/sotalya/tucuxi-go/intake"
	"github.com/sotalya/tucuxi-go/logenv"
	"github.com/sotalya/tucuxi-go/param"
	"github.com/sotalya/tucuxi-go/status"
)

// TwoCompartment implements intake.Calculator for the two-compartment model
// (central + one peripheral), reading the micro (Ke, K12, K21), macro
// (CL, V1, Q, V2) or macro-ratios (CL, V1, RQCL, RV2V1) parameterization.
type TwoCompartment struct {
	Form  Form
	Route intake.Route
}

func (c TwoCompartment) core() linearCore {
	return linearCore{n: 2, route: c.Route}
}

func (c TwoCompartment) requiredIDs() []param.ID {
	ids := twoCompartmentRequiredIDs(c.Form)
	if c.Route == intake.Extravascular || c.Route == intake.ExtravascularLag {
		ids = append(append([]param.ID(nil), ids...), param.Ka, param.F)
	}
	if c.Route == intake.ExtravascularLag {
		ids = append(ids, param.Tlag)
	}
	return ids
}

func (c TwoCompartment) CheckInputs(ev *intake.Event, p *param.Set) bool {
	var log logenv.Logger = logenv.NopLogger{}
	if !checkCondition(log, p.Has(c.requiredIDs()...), "two-compartment model: missing required parameter(s)") {
		return false
	}
	_, k12, k21, ok := twoCompartmentRates(c.Form, p)
	if !checkCondition(log, ok, "two-compartment model: could not derive rate constants") {
		return false
	}
	v1, v2, ok := twoCompartmentVolumes(c.Form, p, k12, k21)
	if !checkCondition(log, ok, "two-compartment model: could not derive compartment volumes") {
		return false
	}
	if !checkStrictlyPositive(log, v1, "V1") || !checkStrictlyPositive(log, v2, "V2") {
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

// extract derives the rate matrix, per-compartment volumes and dosing
// parameters. volumes has one entry per compartment tracked in m (central,
// then peripheral), used to convert the amount-domain ODE state this
// calculator solves into the concentrations CalculateIntakePoints reports.
func (c TwoCompartment) extract(ev *intake.Event, p *param.Set) (m [][]float64, volumes []float64, dose, ka, f, tlag float64, ok bool) {
	ke, k12, k21, ok := twoCompartmentRates(c.Form, p)
	if !ok {
		return
	}
	m = [][]float64{
		{-(ke + k12), k21},
		{k12, -k21},
	}
	v1, v2, ok := twoCompartmentVolumes(c.Form, p, k12, k21)
	if !ok {
		return
	}
	volumes = []float64{v1, v2}
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

func (c TwoCompartment) CalculateIntakePoints(ev *intake.Event, p *param.Set, residualsIn intake.Residuals, computeAllCompartments bool, fixedDensity bool) ([]float64, [][]float64, intake.Residuals, status.Status) {
	if !c.CheckInputs(ev, p) {
		return nil, nil, nil, status.BadParameters
	}
	m, volumes, dose, ka, f, tlag, ok := c.extract(ev, p)
	if !ok {
		return nil, nil, nil, status.BadParameters
	}
	times := c.core().timesCalculator(tlag).Compute(ev, ev.NbPoints)
	concs, residualsOut := c.core().evaluate(m, volumes, dose, ka, f, tlag, ev.InfusionHours(), ev.IntervalHours(), residualsIn, times)
	if !computeAllCompartments {
		concs = concs[:1]
	}
	return times, concs, residualsOut, status.Ok
}

func (c TwoCompartment) CalculateIntakeSinglePoint(ev *intake.Event, p *param.Set, residualsIn intake.Residuals, atTime float64, computeAllCompartments bool) ([]float64, intake.Residuals, status.Status) {
	if !c.CheckInputs(ev, p) {
		return nil, nil, status.BadParameters
	}
	m, volumes, dose, ka, f, tlag, ok := c.extract(ev, p)
	if !ok {
		return nil, nil, status.BadParameters
	}
	point, residualsOut := c.core().singlePoint(m, volumes, dose, ka, f, tlag, ev.InfusionHours(), ev.IntervalHours(), atTime, residualsIn)
	if !computeAllCompartments {
		point = point[:1]
	}
	return point, residualsOut, status.Ok
}

func (c TwoCompartment) ResidualSize() int { return c.core().residualSize() }
func (c TwoCompartment) NbAnalytes() int   { return 1 }
