package pkmodel

import (
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"

	"github.com/sotalya/tucuxi-go/intake"
	"github.com/sotalya/tucuxi-go/param"
)

func TestThreeCompartmentMicroAndMacroAgreeOnDerivedVolumes(t *testing.T) {
	chk.PrintTitle("ThreeCompartment micro (V2, V3 derived from Q=K*V identity) matches macro (Q1, V2, Q2, V3)")
	ke, k12, k21, k13, k31 := 0.25, 0.3, 0.2, 0.15, 0.1
	v1 := 30.0
	v2 := v1 * k12 / k21
	v3 := v1 * k13 / k31
	cl := ke * v1
	q1 := k12 * v1
	q2 := k13 * v1

	psMicro := param.NewSet(time.Now())
	psMicro.AddEvent(param.Definition{ID: param.Ke}, ke)
	psMicro.AddEvent(param.Definition{ID: param.V1}, v1)
	psMicro.AddEvent(param.Definition{ID: param.K12}, k12)
	psMicro.AddEvent(param.Definition{ID: param.K21}, k21)
	psMicro.AddEvent(param.Definition{ID: param.K13}, k13)
	psMicro.AddEvent(param.Definition{ID: param.K31}, k31)

	psMacro := param.NewSet(time.Now())
	psMacro.AddEvent(param.Definition{ID: param.CL}, cl)
	psMacro.AddEvent(param.Definition{ID: param.V1}, v1)
	psMacro.AddEvent(param.Definition{ID: param.Q1}, q1)
	psMacro.AddEvent(param.Definition{ID: param.V2}, v2)
	psMacro.AddEvent(param.Definition{ID: param.Q2}, q2)
	psMacro.AddEvent(param.Definition{ID: param.V3}, v3)

	ev := &intake.Event{Dose: 500, Interval: 24 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 6}
	micro := ThreeCompartment{Form: Micro, Route: intake.IntravascularBolus}
	macro := ThreeCompartment{Form: Macro, Route: intake.IntravascularBolus}

	_, c1, _, st1 := micro.CalculateIntakePoints(ev, psMicro, nil, true, false)
	_, c2, _, st2 := macro.CalculateIntakePoints(ev, psMacro, nil, true, false)
	if st1.String() != "Ok" || st2.String() != "Ok" {
		t.Fatalf("unexpected status: %v, %v", st1, st2)
	}
	for i := range c1[0] {
		chk.Scalar(t, "central", 1e-8, c2[0][i], c1[0][i])
		chk.Scalar(t, "peripheral 1", 1e-8, c2[1][i], c1[1][i])
		chk.Scalar(t, "peripheral 2", 1e-8, c2[2][i], c1[2][i])
	}
}

func TestThreeCompartmentMassNeverExceedsDose(t *testing.T) {
	chk.PrintTitle("ThreeCompartment macro conserves mass with V1, V2, V3 all distinct")
	cl, v1, q1, v2, q2, v3 := 3.0, 15.0, 5.0, 45.0, 4.0, 90.0
	dose := 500.0

	ps := param.NewSet(time.Now())
	ps.AddEvent(param.Definition{ID: param.CL}, cl)
	ps.AddEvent(param.Definition{ID: param.V1}, v1)
	ps.AddEvent(param.Definition{ID: param.Q1}, q1)
	ps.AddEvent(param.Definition{ID: param.V2}, v2)
	ps.AddEvent(param.Definition{ID: param.Q2}, q2)
	ps.AddEvent(param.Definition{ID: param.V3}, v3)

	ev := &intake.Event{Dose: dose, Interval: 48 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 5}
	calc := ThreeCompartment{Form: Macro, Route: intake.IntravascularBolus}
	times, concs, _, st := calc.CalculateIntakePoints(ev, ps, nil, true, false)
	if st.String() != "Ok" {
		t.Fatalf("unexpected status: %v", st)
	}
	for i, tt := range times {
		total := concs[0][i]*v1 + concs[1][i]*v2 + concs[2][i]*v3
		if total > dose+1e-6 {
			t.Fatalf("at t=%v total amount %v exceeds administered dose %v", tt, total, dose)
		}
	}
}
