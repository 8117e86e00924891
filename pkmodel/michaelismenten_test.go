package pkmodel

import (
	"math"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"

	"github.com/sotalya/tucuxi-go/intake"
	"github.com/sotalya/tucuxi-go/param"
)

// In the Km >> concentration regime the saturable term Vmax*C/(Km+C)
// collapses to first-order elimination at rate Vmax/Km, so the RK4
// integration here should reproduce the one-compartment closed form within
// the second-order correction the nonlinearity still contributes.
func TestMichaelisMentenQuasiLinearMatchesExponentialDecay(t *testing.T) {
	chk.PrintTitle("MichaelisMenten one-compartment bolus approaches first-order decay as Km >> C")
	v, km, vmax := 50.0, 1000.0, 200.0 // vmax/km = 0.2 ~= ke
	dose := 500.0

	ps := param.NewSet(time.Now())
	ps.AddEvent(param.Definition{ID: param.V}, v)
	ps.AddEvent(param.Definition{ID: param.Km}, km)
	ps.AddEvent(param.Definition{ID: param.Vmax}, vmax)

	ev := &intake.Event{Dose: dose, Interval: 12 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 5}
	calc := MichaelisMenten{NCompartments: 1, VmaxKind: VmaxConcentration, Route: intake.IntravascularBolus}
	times, concs, _, st := calc.CalculateIntakePoints(ev, ps, nil, true, false)
	if st.String() != "Ok" {
		t.Fatalf("unexpected status: %v", st)
	}
	for i, tt := range times {
		want := (dose / v) * math.Exp(-(vmax/km)*tt)
		chk.Scalar(t, "quasi-linear concentration", 2e-2, concs[0][i], want)
	}
}

func TestMichaelisMentenConcentrationMonotonicDecay(t *testing.T) {
	chk.PrintTitle("MichaelisMenten one-compartment bolus: concentration only decreases between sample points")
	ps := param.NewSet(time.Now())
	ps.AddEvent(param.Definition{ID: param.V}, 40)
	ps.AddEvent(param.Definition{ID: param.Km}, 5)
	ps.AddEvent(param.Definition{ID: param.Vmax}, 30)

	ev := &intake.Event{Dose: 400, Interval: 24 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 8}
	calc := MichaelisMenten{NCompartments: 1, VmaxKind: VmaxConcentration, Route: intake.IntravascularBolus}
	_, concs, _, st := calc.CalculateIntakePoints(ev, ps, nil, true, false)
	if st.String() != "Ok" {
		t.Fatalf("unexpected status: %v", st)
	}
	for i := 1; i < len(concs[0]); i++ {
		if concs[0][i] > concs[0][i-1]+1e-9 {
			t.Fatalf("concentration increased from %v to %v between samples %d and %d", concs[0][i-1], concs[0][i], i-1, i)
		}
		if concs[0][i] < 0 {
			t.Fatalf("concentration went negative at sample %d: %v", i, concs[0][i])
		}
	}
}

func TestMichaelisMentenTwoCompartmentMassNeverExceedsDose(t *testing.T) {
	chk.PrintTitle("MichaelisMenten two-compartment bolus: total amount never exceeds the administered dose")
	v, v2, q, km, vmax := 30.0, 60.0, 5.0, 8.0, 40.0
	dose := 500.0

	ps := param.NewSet(time.Now())
	ps.AddEvent(param.Definition{ID: param.V}, v)
	ps.AddEvent(param.Definition{ID: param.V2}, v2)
	ps.AddEvent(param.Definition{ID: param.Q}, q)
	ps.AddEvent(param.Definition{ID: param.Km}, km)
	ps.AddEvent(param.Definition{ID: param.Vmax}, vmax)

	ev := &intake.Event{Dose: dose, Interval: 24 * time.Hour, Route: intake.IntravascularBolus, NbPoints: 6}
	calc := MichaelisMenten{NCompartments: 2, VmaxKind: VmaxConcentration, Route: intake.IntravascularBolus}
	times, concs, _, st := calc.CalculateIntakePoints(ev, ps, nil, true, false)
	if st.String() != "Ok" {
		t.Fatalf("unexpected status: %v", st)
	}
	for i, tt := range times {
		total := concs[0][i]*v + concs[1][i]*v
		if total > dose+1e-6 {
			t.Fatalf("at t=%v total amount %v exceeds administered dose %v", tt, total, dose)
		}
	}
}
