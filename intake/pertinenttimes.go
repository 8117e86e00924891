package intake

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// TimesCalculator fills an N-length vector of times (hours from cycle
// start, endpoint inclusive) for one intake (spec.md §4.1).
type TimesCalculator interface {
	Compute(ev *Event, n int) []float64
}

// StandardTimes is the uniform-grid variant: t[i] = (i/(n-1))*interval for
// n >= 2, and t[0] = interval for n == 1.
type StandardTimes struct{}

func (StandardTimes) Compute(ev *Event, n int) []float64 {
	interval := ev.IntervalHours()
	if n == 1 {
		return []float64{interval}
	}
	return utl.LinSpace(0, interval, n)
}

// InfusionTimes is the infusion-aware variant: it guarantees the
// infusion-stop instant lands exactly on a grid point.
type InfusionTimes struct{}

func (InfusionTimes) Compute(ev *Event, n int) []float64 {
	interval := ev.IntervalHours()
	infEffective := math.Min(ev.InfusionHours(), interval)

	if n == 1 {
		return []float64{interval}
	}
	if n == 2 {
		return []float64{0, interval}
	}

	nInfus := clampInt(int(math.Round(float64(n)*infEffective/interval)), 2, n)
	nPost := n - nInfus

	times := make([]float64, 0, n)
	times = append(times, utl.LinSpace(0, infEffective, nInfus)...)
	if nPost > 0 {
		times = append(times, utl.LinSpace(infEffective, interval, nPost+1)[1:]...)
	}
	return times
}

// LagTimes is the lag-aware variant (spec.md's SPEC_FULL extension,
// §4.1): the grid below Tlag is a single pinned point at Tlag, with the
// remaining points allocated uniformly over [Tlag, interval].
type LagTimes struct {
	Tlag float64
}

func (l LagTimes) Compute(ev *Event, n int) []float64 {
	interval := ev.IntervalHours()
	if n == 1 {
		return []float64{interval}
	}
	if l.Tlag <= 0 || l.Tlag >= interval {
		return StandardTimes{}.Compute(ev, n)
	}
	remaining := n - 1
	times := make([]float64, 0, n)
	times = append(times, l.Tlag)
	times = append(times, utl.LinSpace(l.Tlag, interval, remaining+1)[1:]...)
	return times
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
