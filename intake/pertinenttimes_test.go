package intake

import (
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"
)

func TestStandardTimesEndpoints(t *testing.T) {
	chk.PrintTitle("StandardTimes: grid spans [0, interval] with n points")
	ev := &Event{Interval: 10 * time.Hour}
	times := StandardTimes{}.Compute(ev, 5)
	chk.Scalar(t, "first", 1e-12, times[0], 0)
	chk.Scalar(t, "last", 1e-12, times[len(times)-1], 10)
}

func TestInfusionTimesHitsInfusionStop(t *testing.T) {
	chk.PrintTitle("InfusionTimes: infusion-stop instant lands exactly on a grid point")
	ev := &Event{Interval: 12 * time.Hour, InfusionTime: 2 * time.Hour}
	times := InfusionTimes{}.Compute(ev, 20)
	found := false
	for _, tt := range times {
		if tt == 2 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected the infusion-stop instant (2h) to be a grid point, got %v", times)
	}
}

func TestLagTimesPinsFirstPointAtTlag(t *testing.T) {
	chk.PrintTitle("LagTimes: first grid point is pinned at Tlag")
	ev := &Event{Interval: 24 * time.Hour}
	times := LagTimes{Tlag: 1.5}.Compute(ev, 10)
	chk.Scalar(t, "first point", 1e-12, times[0], 1.5)
	chk.Scalar(t, "last point", 1e-12, times[len(times)-1], 24)
}

func TestLagTimesFallsBackWhenTlagOutOfRange(t *testing.T) {
	chk.PrintTitle("LagTimes: falls back to StandardTimes when Tlag is out of (0, interval)")
	ev := &Event{Interval: 10 * time.Hour}
	times := LagTimes{Tlag: 0}.Compute(ev, 5)
	chk.Scalar(t, "first", 1e-12, times[0], 0)
}
