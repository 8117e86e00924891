// Command pkpredict predicts a drug concentration-time profile for a single
// dosing regimen from command-line parameters (spec.md §6: one illustrative
// external consumer of the prediction core, not itself part of the spec).
package main

import (
	"flag"
	"time"

	"github.com/cpmech/gosl/utl"

	"github.com/sotalya/tucuxi-go/concentration"
	"github.com/sotalya/tucuxi-go/intake"
	"github.com/sotalya/tucuxi-go/logenv"
	"github.com/sotalya/tucuxi-go/param"
	"github.com/sotalya/tucuxi-go/pkmodel"
	"github.com/sotalya/tucuxi-go/stats"
	"github.com/sotalya/tucuxi-go/status"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			utl.PfRed("ERROR: %v\n", err)
		}
	}()

	dose := flag.Float64("dose", 100, "dose amount")
	intervalHours := flag.Float64("interval", 12, "dosing interval in hours")
	nbDoses := flag.Int("doses", 5, "number of repeated doses")
	nbPoints := flag.Int("points", 25, "number of points per cycle")
	ke := flag.Float64("ke", 0.1, "elimination rate constant (1/h)")
	v := flag.Float64("v", 50, "volume of distribution")
	flag.Parse()

	utl.PfWhite("\npkpredict -- one-compartment IV bolus prediction\n\n")

	log := logenv.NewSlogLogger()

	defs := param.NewSet(time.Now())
	defs.AddEvent(param.Definition{ID: param.Ke}, *ke)
	defs.AddEvent(param.Definition{ID: param.V}, *v)
	series := param.NewSeries()
	series.Add(defs)

	registry := pkmodel.NewRegistry()
	pkmodel.DefaultPopulate(registry)
	calc, err := registry.Get(pkmodel.OneCompartmentMicro, intake.IntravascularBolus)
	if err != nil {
		utl.Panic("%v", err)
	}

	start := time.Now()
	events := make([]*intake.Event, *nbDoses)
	for i := 0; i < *nbDoses; i++ {
		events[i] = &intake.Event{
			EventTime:  start.Add(time.Duration(i) * time.Duration(*intervalHours*float64(time.Hour))),
			Dose:       *dose,
			Interval:   time.Duration(*intervalHours * float64(time.Hour)),
			Route:      intake.IntravascularBolus,
			NbPoints:   *nbPoints,
			Calculator: calc,
		}
	}

	mcc := concentration.MultiConcentrationCalculator{Log: log}
	recordFrom, recordTo := concentration.FullRecordWindow()
	results, st := mcc.ComputeConcentrations(events, series, nil, recordFrom, recordTo, nil, nil, false, false)
	if st != status.Ok {
		utl.Panic("computation failed: %s", st)
	}

	statCalc := stats.Calculator{}
	cumulative := 0.0
	for i, r := range results {
		cs := statCalc.Compute(r.Times, r.Concentrations[0], cumulative, r.Intake.Interval)
		cumulative = cs.CumulativeAUC
		utl.Pf("cycle %d: peak=%.4f mean=%.4f auc=%.4f residual=%.4f\n", i, cs.Peak, cs.Mean, cs.AUC, cs.Residual)
	}
}
