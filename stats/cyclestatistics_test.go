package stats

import (
	"testing"
	"time"
)

func hourlyTimes(t0 time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = t0.Add(time.Duration(i) * time.Hour)
	}
	return out
}

func TestComputePeakMinimumAndResidual(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(t0, 5)
	concs := []float64{1, 5, 3, 4, 2}

	st := Calculator{}.Compute(times, concs, 0, 12*time.Hour)

	if st.Peak != 5 || !st.PeakTime.Equal(times[1]) {
		t.Fatalf("expected peak 5 at %v, got %v at %v", times[1], st.Peak, st.PeakTime)
	}
	if st.Minimum != 1 || !st.MinimumTime.Equal(times[0]) {
		t.Fatalf("expected minimum 1 at %v, got %v at %v", times[0], st.Minimum, st.MinimumTime)
	}
	if st.Residual != concs[len(concs)-1] {
		t.Fatalf("expected residual %v, got %v", concs[len(concs)-1], st.Residual)
	}
}

func TestComputeMaximumIsFirstLocalMaximumNotGlobalPeak(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(t0, 5)
	// Rises to a local maximum of 4 at index 1, dips, then rises again to
	// the global peak of 5 at index 3: Maximum must report the first turn,
	// while Peak must still report the series-wide maximum.
	concs := []float64{1, 4, 2, 5, 3}

	st := Calculator{}.Compute(times, concs, 0, 12*time.Hour)

	if st.Maximum != 4 || !st.MaximumTime.Equal(times[1]) {
		t.Fatalf("expected first local maximum 4 at %v, got %v at %v", times[1], st.Maximum, st.MaximumTime)
	}
	if st.Peak != 5 || !st.PeakTime.Equal(times[3]) {
		t.Fatalf("expected global peak 5 at %v, got %v at %v", times[3], st.Peak, st.PeakTime)
	}
	if st.Peak < st.Maximum {
		t.Fatalf("expected Peak (%v) >= Maximum (%v)", st.Peak, st.Maximum)
	}
}

func TestComputeMonotonicSeriesMaximumIsFirstPoint(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(t0, 4)
	concs := []float64{10, 8, 6, 4}

	st := Calculator{}.Compute(times, concs, 0, 12*time.Hour)

	if st.Maximum != 10 || !st.MaximumTime.Equal(times[0]) {
		t.Fatalf("expected the first interior local maximum to be the first point (10 at %v) for a monotonic decline, got %v at %v",
			times[0], st.Maximum, st.MaximumTime)
	}
}

func TestComputeAUCTrapezoidalAndCumulative(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(t0, 3) // 0h, 1h, 2h
	concs := []float64{0, 10, 0}
	cumulativeBefore := 50.0

	st := Calculator{}.Compute(times, concs, cumulativeBefore, 12*time.Hour)

	wantAUC := 10.0 // two unit-width trapezoids: 0.5*(0+10)*1 + 0.5*(10+0)*1
	if st.AUC != wantAUC {
		t.Fatalf("expected AUC %v, got %v", wantAUC, st.AUC)
	}
	if st.CumulativeAUC != cumulativeBefore+wantAUC {
		t.Fatalf("expected cumulative AUC %v, got %v", cumulativeBefore+wantAUC, st.CumulativeAUC)
	}
}

func TestComputeAUC24ScalesByCycleInterval(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(t0, 3)
	concs := []float64{0, 10, 0}

	st := Calculator{}.Compute(times, concs, 0, 6*time.Hour)
	wantAUC24 := st.AUC * 4 // 24h / 6h cycle interval
	if st.AUC24 != wantAUC24 {
		t.Fatalf("expected AUC24 %v, got %v", wantAUC24, st.AUC24)
	}
}

func TestComputeAUC24IsNegativeOneForZeroInterval(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(t0, 3)
	concs := []float64{0, 10, 0}

	st := Calculator{}.Compute(times, concs, 0, 0)
	if st.AUC24 != -1.0 {
		t.Fatalf("expected AUC24 == -1 marking the last cycle, got %v", st.AUC24)
	}
}

func TestComputeEmptySeriesReturnsZeroValue(t *testing.T) {
	st := Calculator{}.Compute(nil, nil, 7, time.Hour)
	if (st != Stats{CycleInterval: time.Hour}) {
		t.Fatalf("expected a zero Stats (with CycleInterval preserved) for an empty series, got %+v", st)
	}
}

func TestLocalMinimumMirrorsLocalMaximum(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(t0, 5)
	concs := []float64{5, 1, 3, 0, 2}

	min, minTime := LocalMinimum(times, concs)
	if min != 1 || !minTime.Equal(times[1]) {
		t.Fatalf("expected first local minimum 1 at %v, got %v at %v", times[1], min, minTime)
	}
}
