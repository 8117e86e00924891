package pkmodel

import (
	"math"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"

	"github.com/sotalya/tucuxi-go/intake"
	"github.com/sotalya/tucuxi-go/param"
)

// closedFormTwoCompartmentBolus is the textbook (Gibaldi-Perrier) two
// compartment bolus solution, computed independently of the modal-decay
// engine in linalg.go, to cross-check the generalized eigen-decomposition
// approach against the classical closed form it replaces.
func closedFormTwoCompartmentBolus(dose, v1, ke, k12, k21, t float64) float64 {
	b := ke + k12 + k21
	disc := math.Sqrt(b*b - 4*ke*k21)
	alpha := (b + disc) / 2
	beta := (b - disc) / 2
	a := (dose / v1) * (alpha - k21) / (alpha - beta)
	bb := (dose / v1) * (k21 - beta) / (alpha - beta)
	return a*math.Exp(-alpha*t) + bb*math.Exp(-beta*t)
}

func TestTwoCompartmentBolusMatchesClosedForm(t *testing.T) {
	chk.PrintTitle("TwoCompartment bolus matches the textbook closed form")
	ke, k12, k21 := 0.3, 0.5, 0.4
	dose, v1 := 500.0, 40.0

	ps := param.NewSet(time.Now())
	ps.AddEvent(param.Definition{ID: param.Ke}, ke)
	ps.AddEvent(param.Definition{ID: param.K12}, k12)
	ps.AddEvent(param.Definition{ID: param.K21}, k21)
	ps.AddEvent(param.Definition{ID: param.V1}, v1)

	ev := &intake.Event{Dose: dose, Interval: 24 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 6}
	calc := TwoCompartment{Form: Micro, Route: intake.IntravascularBolus}
	times, concs, _, st := calc.CalculateIntakePoints(ev, ps, nil, true, false)
	if st.String() != "Ok" {
		t.Fatalf("unexpected status: %v", st)
	}
	for i, tt := range times {
		want := closedFormTwoCompartmentBolus(dose, v1, ke, k12, k21, tt)
		chk.Scalar(t, "central concentration", 1e-6, concs[0][i], want)
	}
}

// TestTwoCompartmentAmountDomainWithUnequalVolumes guards against treating
// the rate matrix as if it operated directly on concentrations: with V1 !=
// V2 that shortcut and the amount-domain solution this calculator actually
// performs diverge, so the total amount recovered from the reported
// concentrations (central*V1 + peripheral*V2) must still decay by true
// elimination only, never exceeding the dose just administered.
func TestTwoCompartmentAmountDomainWithUnequalVolumes(t *testing.T) {
	chk.PrintTitle("TwoCompartment macro conserves mass with V1 != V2")
	cl, v1, q, v2 := 4.0, 20.0, 6.0, 80.0
	dose := 500.0

	ps := param.NewSet(time.Now())
	ps.AddEvent(param.Definition{ID: param.CL}, cl)
	ps.AddEvent(param.Definition{ID: param.V1}, v1)
	ps.AddEvent(param.Definition{ID: param.Q}, q)
	ps.AddEvent(param.Definition{ID: param.V2}, v2)

	ev := &intake.Event{Dose: dose, Interval: 48 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 5}
	calc := TwoCompartment{Form: Macro, Route: intake.IntravascularBolus}
	times, concs, _, st := calc.CalculateIntakePoints(ev, ps, nil, true, false)
	if st.String() != "Ok" {
		t.Fatalf("unexpected status: %v", st)
	}
	for i, tt := range times {
		totalAmount := concs[0][i]*v1 + concs[1][i]*v2
		if totalAmount > dose+1e-6 {
			t.Fatalf("at t=%v total amount %v exceeds administered dose %v", tt, totalAmount, dose)
		}
		if i == 0 {
			chk.Scalar(t, "amount at t=0 is the full dose in the central compartment", 1e-6, totalAmount, dose)
		}
	}
}

func TestTwoCompartmentMacroRatiosMatchesMacro(t *testing.T) {
	chk.PrintTitle("TwoCompartment macro-ratios (RQCL, RV2V1) matches macro (Q, V2)")
	cl, v1, q, v2 := 5.0, 40.0, 8.0, 60.0

	psMacro := param.NewSet(time.Now())
	psMacro.AddEvent(param.Definition{ID: param.CL}, cl)
	psMacro.AddEvent(param.Definition{ID: param.V1}, v1)
	psMacro.AddEvent(param.Definition{ID: param.Q}, q)
	psMacro.AddEvent(param.Definition{ID: param.V2}, v2)

	psRatios := param.NewSet(time.Now())
	psRatios.AddEvent(param.Definition{ID: param.CL}, cl)
	psRatios.AddEvent(param.Definition{ID: param.V1}, v1)
	psRatios.AddEvent(param.Definition{ID: param.RQCL}, q/cl)
	psRatios.AddEvent(param.Definition{ID: param.RV2V1}, v2/v1)

	ev := &intake.Event{Dose: 500, Interval: 24 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 6}
	macro := TwoCompartment{Form: Macro, Route: intake.IntravascularBolus}
	ratios := TwoCompartment{Form: MacroRatios, Route: intake.IntravascularBolus}

	_, c1, _, _ := macro.CalculateIntakePoints(ev, psMacro, nil, true, false)
	_, c2, _, _ := ratios.CalculateIntakePoints(ev, psRatios, nil, true, false)
	for i := range c1[0] {
		chk.Scalar(t, "macro vs macro-ratios", 1e-9, c2[0][i], c1[0][i])
	}
}
