// Package concentration chains a series of intakes through their
// calculators into one continuous concentration series (spec.md §5).
package concentration

import (
	"time"

	"github.com/sotalya/tucuxi-go/intake"
	"github.com/sotalya/tucuxi-go/logenv"
	"github.com/sotalya/tucuxi-go/param"
	"github.com/sotalya/tucuxi-go/status"
)

const steadyStateMaxIterations = 1000
const steadyStateTolerance = 1e-4

// FullRecordWindow returns a [recordFrom, recordTo] pair wide enough to
// record every cycle a series can produce, for callers that don't need to
// restrict output to a sub-window.
func FullRecordWindow() (time.Time, time.Time) {
	return time.Time{}, time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// CycleResult is the computed output of one intake's cycle: absolute times,
// per-compartment concentrations, and the residual vector carried into the
// following cycle.
type CycleResult struct {
	Intake          *intake.Event
	Times           []time.Time
	Concentrations  [][]float64
	ResidualAtStart intake.Residuals
	ResidualAtEnd   intake.Residuals
}

// MultiConcentrationCalculator chains intake.Event series through their
// Calculators, propagating residuals from one cycle into the next, exactly
// as multiconcentrationcalculator.cpp's computeConcentrations does: each
// intake's residualsIn is the previous intake's residualsOut.
type MultiConcentrationCalculator struct {
	Log logenv.Logger
}

func (m MultiConcentrationCalculator) log() logenv.Logger {
	if m.Log != nil {
		return m.Log
	}
	return logenv.NopLogger{}
}

// ComputeConcentrations walks every intake in events in order, looking up
// the parameter set valid at each intake's EventTime, and returns one
// CycleResult per *recorded* intake: a cycle is recorded when it intersects
// [recordFrom, recordTo] (intakeEnd = eventTime+interval; recorded iff
// intakeEnd > recordFrom AND eventTime < recordTo, spec.md §4.3 step 3b).
// Cycles outside the window still compute, to advance residuals correctly,
// but are neither error-modeled nor appended to the result. On recorded
// cycles, if residualErrorModels and epsilons are both non-empty, each
// compartment's concentration series has its residual-error model applied
// before recording (spec.md §4.3 step 3c); pass nil for either to skip error
// modeling entirely.
func (m MultiConcentrationCalculator) ComputeConcentrations(
	events []*intake.Event,
	parameters *param.Series,
	etas []float64,
	recordFrom, recordTo time.Time,
	residualErrorModels []param.ResidualErrorModel,
	epsilons [][]float64,
	computeAllCompartments, fixedDensity bool,
) ([]CycleResult, status.Status) {
	if err := intake.ValidateSeries(events); err != nil {
		m.log().Error("intake series invalid: %v", err)
		return nil, status.BadParameters
	}

	results := make([]CycleResult, 0, len(events))
	var residual intake.Residuals

	for i, ev := range events {
		ps := parameters.GetAtTime(ev.EventTime, etas, m.log())
		if ps == nil {
			m.log().Warn("no parameter set valid at intake %d (%s)", i, ev.EventTime)
			return results, status.ConcentrationCalculatorNoParameters
		}
		if ev.Calculator == nil {
			m.log().Error("intake %d (%s) has no calculator", i, ev.EventTime)
			return results, status.BadParameters
		}

		if len(residual) != ev.Calculator.ResidualSize() {
			residual = make(intake.Residuals, ev.Calculator.ResidualSize())
		}

		intakeEnd := ev.EventTime.Add(ev.Interval)
		recorded := intakeEnd.After(recordFrom) && ev.EventTime.Before(recordTo)

		times, concs, residualOut, st := ev.Calculator.CalculateIntakePoints(ev, ps, residual, computeAllCompartments, fixedDensity)
		if st != status.Ok {
			return results, st
		}

		if recorded {
			if len(residualErrorModels) > 0 && len(epsilons) > 0 {
				for ci := range concs {
					if ci < len(residualErrorModels) && ci < len(epsilons) {
						residualErrorModels[ci].ApplyEpsToArray(concs[ci], epsilons[ci])
					}
				}
			}

			absTimes := make([]time.Time, len(times))
			for j, h := range times {
				absTimes[j] = ev.EventTime.Add(time.Duration(h * float64(time.Hour)))
			}

			results = append(results, CycleResult{
				Intake:          ev,
				Times:           absTimes,
				Concentrations:  concs,
				ResidualAtStart: residual.Clone(),
				ResidualAtEnd:   residualOut,
			})
		}
		residual = residualOut
	}
	return results, status.Ok
}

// ComputeConcentrationsAtSteadyState repeats a single, perpetually-recurring
// intake against itself until the residual vector converges (L2 relative
// change below steadyStateTolerance) or steadyStateMaxIterations is
// exceeded, mirroring the source's fixed-point iteration for steady-state
// detection (spec.md §5).
func (m MultiConcentrationCalculator) ComputeConcentrationsAtSteadyState(
	ev *intake.Event,
	parameters *param.Series,
	etas []float64,
	computeAllCompartments, fixedDensity bool,
) (CycleResult, status.Status) {
	ps := parameters.GetAtTime(ev.EventTime, etas, m.log())
	if ps == nil {
		return CycleResult{}, status.ConcentrationCalculatorNoParameters
	}
	if ev.Calculator == nil {
		return CycleResult{}, status.BadParameters
	}

	residual := make(intake.Residuals, ev.Calculator.ResidualSize())
	var times []float64
	var concs [][]float64
	var residualOut intake.Residuals
	var st status.Status

	converged := false
	for iter := 0; iter < steadyStateMaxIterations; iter++ {
		times, concs, residualOut, st = ev.Calculator.CalculateIntakePoints(ev, ps, residual, computeAllCompartments, fixedDensity)
		if st != status.Ok {
			return CycleResult{}, st
		}
		if residualConverged(residual, residualOut, steadyStateTolerance) {
			converged = true
			break
		}
		residual = residualOut
	}
	if !converged {
		m.log().Warn("steady state not reached within %d iterations for intake at %s", steadyStateMaxIterations, ev.EventTime)
		return CycleResult{}, status.NoSteadyState
	}

	absTimes := make([]time.Time, len(times))
	for j, h := range times {
		absTimes[j] = ev.EventTime.Add(time.Duration(h * float64(time.Hour)))
	}
	return CycleResult{
		Intake:          ev,
		Times:           absTimes,
		Concentrations:  concs,
		ResidualAtStart: residual.Clone(),
		ResidualAtEnd:   residualOut,
	}, status.Ok
}

func residualConverged(prev, next intake.Residuals, tol float64) bool {
	if len(prev) != len(next) {
		return false
	}
	var num, den float64
	for i := range prev {
		d := next[i] - prev[i]
		num += d * d
		den += next[i] * next[i]
	}
	if den == 0 {
		return num == 0
	}
	return num/den < tol*tol
}

// ComputeConcentrationsAtTimes walks the intakes in order, chaining
// residuals from cycle to cycle the same way ComputeConcentrations does, and
// samples each calculator at the requested absolute times that fall within
// its cycle — the "at arbitrary sample times" entry point (spec.md §5, §6).
func (m MultiConcentrationCalculator) ComputeConcentrationsAtTimes(
	events []*intake.Event,
	parameters *param.Series,
	etas []float64,
	sampleTimes []time.Time,
) (map[time.Time][]float64, status.Status) {
	if err := intake.ValidateSeries(events); err != nil {
		return nil, status.BadParameters
	}

	out := make(map[time.Time][]float64, len(sampleTimes))
	var residual intake.Residuals

	si := 0
	for i, ev := range events {
		ps := parameters.GetAtTime(ev.EventTime, etas, m.log())
		if ps == nil {
			return out, status.ConcentrationCalculatorNoParameters
		}
		if ev.Calculator == nil {
			return out, status.BadParameters
		}
		if len(residual) != ev.Calculator.ResidualSize() {
			residual = make(intake.Residuals, ev.Calculator.ResidualSize())
		}

		var cycleEnd time.Time
		if i+1 < len(events) {
			cycleEnd = events[i+1].EventTime
		} else {
			cycleEnd = ev.EndTime()
		}

		for si < len(sampleTimes) && !sampleTimes[si].Before(ev.EventTime) && sampleTimes[si].Before(cycleEnd) {
			atHours := sampleTimes[si].Sub(ev.EventTime).Hours()
			point, _, st := ev.Calculator.CalculateIntakeSinglePoint(ev, ps, residual, atHours, false)
			if st != status.Ok {
				return out, st
			}
			out[sampleTimes[si]] = point
			si++
		}

		_, _, residualOut, st := ev.Calculator.CalculateIntakePoints(ev, ps, residual, false, false)
		if st != status.Ok {
			return out, st
		}
		residual = residualOut
	}
	return out, status.Ok
}
