package pkmodel

// derivative computes dX/dt at time t given the current state x, writing the
// result into dxdt (caller-owned, reused across steps to avoid per-call
// allocation in the inner RK4 loop).
type derivative func(t float64, x []float64, dxdt []float64)

// rk4Step advances state x by h using one classical fourth-order
// Runge-Kutta step, in place. scratch must provide four work vectors
// (k1..k4) and one combine buffer, all len(x); callers reuse these across
// the whole integration to avoid allocating on every step (spec.md §9's
// redesign note: a generic hand-rolled stepper instead of one RK4 clone per
// nonlinear model).
func rk4Step(f derivative, t, h float64, x []float64, scratch *rk4Scratch) {
	n := len(x)
	f(t, x, scratch.k1)
	for i := 0; i < n; i++ {
		scratch.tmp[i] = x[i] + 0.5*h*scratch.k1[i]
	}
	f(t+0.5*h, scratch.tmp, scratch.k2)
	for i := 0; i < n; i++ {
		scratch.tmp[i] = x[i] + 0.5*h*scratch.k2[i]
	}
	f(t+0.5*h, scratch.tmp, scratch.k3)
	for i := 0; i < n; i++ {
		scratch.tmp[i] = x[i] + h*scratch.k3[i]
	}
	f(t+h, scratch.tmp, scratch.k4)
	for i := 0; i < n; i++ {
		x[i] += (h / 6) * (scratch.k1[i] + 2*scratch.k2[i] + 2*scratch.k3[i] + scratch.k4[i])
	}
}

type rk4Scratch struct {
	k1, k2, k3, k4, tmp []float64
}

func newRK4Scratch(n int) *rk4Scratch {
	return &rk4Scratch{
		k1:  make([]float64, n),
		k2:  make([]float64, n),
		k3:  make([]float64, n),
		k4:  make([]float64, n),
		tmp: make([]float64, n),
	}
}

// integrate walks the ODE defined by f from t0 to t1 in steps no larger than
// maxStep, sampling the state at every time in sampleTimes (which must be
// sorted ascending and lie within [t0, t1]); breakpoints are extra instants
// (e.g. an infusion stop) the stepper is forced to land on exactly, so a
// discontinuity in the forcing term never falls inside a step (spec.md §9:
// "straddling" an infusion stop corrupts RK4 accuracy).
func integrate(f derivative, t0, t1 float64, x0 []float64, maxStep float64, sampleTimes, breakpoints []float64) (samples [][]float64) {
	n := len(x0)
	x := append([]float64(nil), x0...)
	scratch := newRK4Scratch(n)
	samples = make([][]float64, len(sampleTimes))

	stops := append([]float64(nil), breakpoints...)
	stops = append(stops, sampleTimes...)
	stops = append(stops, t1)
	stops = dedupSortedStops(stops, t0, t1)

	si := 0
	t := t0
	for _, stop := range stops {
		for t < stop {
			h := stop - t
			if h > maxStep {
				h = maxStep
			}
			rk4Step(f, t, h, x, scratch)
			t += h
		}
		for si < len(sampleTimes) && sampleTimes[si] <= stop+1e-9 {
			samples[si] = append([]float64(nil), x...)
			si++
		}
	}
	for ; si < len(sampleTimes); si++ {
		samples[si] = append([]float64(nil), x...)
	}
	return samples
}

func dedupSortedStops(stops []float64, t0, t1 float64) []float64 {
	filtered := stops[:0:0]
	for _, s := range stops {
		if s > t0-1e-9 && s <= t1+1e-9 {
			filtered = append(filtered, s)
		}
	}
	// insertion sort: these slices are tiny (points + 1 breakpoint)
	for i := 1; i < len(filtered); i++ {
		for j := i; j > 0 && filtered[j] < filtered[j-1]; j-- {
			filtered[j], filtered[j-1] = filtered[j-1], filtered[j]
		}
	}
	out := filtered[:0]
	for i, s := range filtered {
		if i == 0 || s > out[len(out)-1]+1e-9 {
			out = append(out, s)
		}
	}
	return out
}
