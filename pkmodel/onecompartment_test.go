package pkmodel

import (
	"math"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"

	"github.com/sotalya/tucuxi-go/intake"
	"github.com/sotalya/tucuxi-go/param"
)

func TestOneCompartmentBolusMatchesExponentialDecay(t *testing.T) {
	chk.PrintTitle("OneCompartment bolus: C(t) = (dose/V) * exp(-ke*t)")
	ps := param.NewSet(time.Now())
	ps.AddEvent(param.Definition{ID: param.Ke}, 0.2)
	ps.AddEvent(param.Definition{ID: param.V}, 50)

	ev := &intake.Event{Dose: 500, Interval: 12 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 4}
	calc := OneCompartment{Form: Micro, Route: intake.IntravascularBolus}

	times, concs, residuals, st := calc.CalculateIntakePoints(ev, ps, nil, true, false)
	if st.String() != "Ok" {
		t.Fatalf("unexpected status: %v", st)
	}
	for i, tt := range times {
		want := (500.0 / 50.0) * math.Exp(-0.2*tt)
		chk.Scalar(t, "concentration", 1e-6, concs[0][i], want)
	}
	wantResidual := (500.0 * math.Exp(-0.2*12)) / 50.0
	chk.Scalar(t, "residual", 1e-6, residuals[0], wantResidual)
}

func TestOneCompartmentResidualPropagation(t *testing.T) {
	chk.PrintTitle("OneCompartment bolus: a second dose's initial state is dose/V + carried residual")
	ps := param.NewSet(time.Now())
	ps.AddEvent(param.Definition{ID: param.Ke}, 0.2)
	ps.AddEvent(param.Definition{ID: param.V}, 50)
	calc := OneCompartment{Form: Micro, Route: intake.IntravascularBolus}

	ev := &intake.Event{Dose: 500, Interval: 12 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 2}
	_, _, residual1, _ := calc.CalculateIntakePoints(ev, ps, nil, true, false)

	_, concs2, _, _ := calc.CalculateIntakePoints(ev, ps, residual1, true, false)
	want := residual1[0] + 500.0/50.0
	chk.Scalar(t, "second cycle start", 1e-9, concs2[0][0], want)
}

func TestOneCompartmentIntervalZeroZeroesResidual(t *testing.T) {
	chk.PrintTitle("OneCompartment: interval=0 marks the last cycle by zeroing the residual")
	ps := param.NewSet(time.Now())
	ps.AddEvent(param.Definition{ID: param.Ke}, 0.2)
	ps.AddEvent(param.Definition{ID: param.V}, 50)
	calc := OneCompartment{Form: Micro, Route: intake.IntravascularBolus}

	ev := &intake.Event{Dose: 500, Interval: 0, Route: intake.IntravascularBolus, NbPoints: 1}
	_, _, residual, st := calc.CalculateIntakePoints(ev, ps, nil, true, false)
	if st.String() != "Ok" {
		t.Fatalf("unexpected status: %v", st)
	}
	chk.Scalar(t, "residual", 1e-12, residual[0], 0)
}

func TestOneCompartmentMacroMatchesMicro(t *testing.T) {
	chk.PrintTitle("OneCompartment macro (CL, V) matches micro (Ke=CL/V, V)")
	psMicro := param.NewSet(time.Now())
	psMicro.AddEvent(param.Definition{ID: param.Ke}, 0.2)
	psMicro.AddEvent(param.Definition{ID: param.V}, 50)

	psMacro := param.NewSet(time.Now())
	psMacro.AddEvent(param.Definition{ID: param.CL}, 10) // CL/V = 10/50 = 0.2
	psMacro.AddEvent(param.Definition{ID: param.V}, 50)

	ev := &intake.Event{Dose: 500, Interval: 12 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 4}
	micro := OneCompartment{Form: Micro, Route: intake.IntravascularBolus}
	macro := OneCompartment{Form: Macro, Route: intake.IntravascularBolus}

	_, c1, _, _ := micro.CalculateIntakePoints(ev, psMicro, nil, true, false)
	_, c2, _, _ := macro.CalculateIntakePoints(ev, psMacro, nil, true, false)
	for i := range c1[0] {
		chk.Scalar(t, "macro vs micro", 1e-9, c2[0][i], c1[0][i])
	}
}
