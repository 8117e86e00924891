// Package stats computes the per-cycle summary statistics derived from a
// concentration series (spec.md §5 "Cycle statistics").
package stats

import "time"

// Stats holds the statistics computed for one dosing cycle.
type Stats struct {
	Peak            float64
	PeakTime        time.Time
	Maximum         float64
	MaximumTime     time.Time
	Minimum         float64
	MinimumTime     time.Time
	Mean            float64
	AUC             float64
	AUC24           float64 // -1 if the cycle interval is zero
	CumulativeAUC   float64
	Residual        float64
	CycleInterval   time.Duration
}

// Calculator computes Stats for one cycle given its absolute times and
// concentration series (a single analyte, e.g. compartment 0), plus the AUC
// accumulated by all cycles before it.
type Calculator struct{}

// Compute derives Stats for one cycle. times and concentrations must be the
// same length and times sorted ascending. cumulativeAUCBefore is the AUC
// accumulated strictly before this cycle (0 for the first cycle).
func (Calculator) Compute(times []time.Time, concentrations []float64, cumulativeAUCBefore float64, cycleInterval time.Duration) Stats {
	var st Stats
	st.CycleInterval = cycleInterval
	if len(times) == 0 {
		return st
	}

	st.Peak = concentrations[0]
	st.PeakTime = times[0]
	st.Minimum = concentrations[0]
	st.MinimumTime = times[0]

	auc := 0.0
	for i := 1; i < len(times); i++ {
		dt := times[i].Sub(times[i-1]).Hours()
		if dt > 0 {
			auc += 0.5 * (concentrations[i] + concentrations[i-1]) * dt
		}
		if concentrations[i] > st.Peak {
			st.Peak = concentrations[i]
			st.PeakTime = times[i]
		}
		if concentrations[i] < st.Minimum {
			st.Minimum = concentrations[i]
			st.MinimumTime = times[i]
		}
	}
	st.AUC = auc
	st.CumulativeAUC = cumulativeAUCBefore + auc

	st.Maximum, st.MaximumTime = localMaximum(times, concentrations)

	span := times[len(times)-1].Sub(times[0]).Hours()
	if span > 0 {
		st.Mean = auc / span
	}

	if cycleInterval == 0 {
		st.AUC24 = -1.0
	} else {
		st.AUC24 = auc * (24 * time.Hour).Hours() / cycleInterval.Hours()
	}

	st.Residual = concentrations[len(concentrations)-1]
	return st
}

// localMaximum finds the first local maximum of the concentration series by
// gradient sign change (the "Maximum" spec.md distinguishes from the cycle's
// global Peak: the first point where the slope turns from positive or
// zero to negative, or the series' own maximum if it never turns).
func localMaximum(times []time.Time, concentrations []float64) (float64, time.Time) {
	n := len(concentrations)
	if n == 1 {
		return concentrations[0], times[0]
	}
	rising := concentrations[1] >= concentrations[0]
	for i := 1; i < n-1; i++ {
		nextRising := concentrations[i+1] >= concentrations[i]
		if rising && !nextRising {
			return concentrations[i], times[i]
		}
		rising = nextRising
	}
	// No turn from rising to falling: fall back to the series' own maximum
	// (the first point for a non-increasing series).
	peak, peakTime := concentrations[0], times[0]
	for i, c := range concentrations {
		if c > peak {
			peak, peakTime = c, times[i]
		}
	}
	return peak, peakTime
}

// LocalMinimum finds the first local minimum, the mirror of localMaximum;
// exported since callers that need both peak-detection passes (e.g. a
// trough-based dosing-interval check) shouldn't have to reimplement it.
func LocalMinimum(times []time.Time, concentrations []float64) (float64, time.Time) {
	n := len(concentrations)
	if n == 1 {
		return concentrations[0], times[0]
	}
	falling := concentrations[1] <= concentrations[0]
	for i := 1; i < n-1; i++ {
		nextFalling := concentrations[i+1] <= concentrations[i]
		if falling && !nextFalling {
			return concentrations[i], times[i]
		}
		falling = nextFalling
	}
	min, minTime := concentrations[0], times[0]
	for i, c := range concentrations {
		if c < min {
			min, minTime = c, times[i]
		}
	}
	return min, minTime
}
