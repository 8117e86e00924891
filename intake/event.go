package intake

import (
	"fmt"
	"time"
)

// Event is one scheduled dose (spec.md §3).
type Event struct {
	EventTime     time.Time
	Dose          float64
	Interval      time.Duration
	InfusionTime  time.Duration
	Route         Route
	NbPoints      int
	Calculator    Calculator
}

// IntervalHours is the dosing interval in hours.
func (e *Event) IntervalHours() float64 { return e.Interval.Hours() }

// InfusionHours is the infusion duration in hours.
func (e *Event) InfusionHours() float64 { return e.InfusionTime.Hours() }

// EndTime is EventTime + Interval.
func (e *Event) EndTime() time.Time { return e.EventTime.Add(e.Interval) }

// Validate checks the structural invariants spec.md §3 requires of a single
// intake (infusion time vs. interval; strictly-increasing series order is
// checked at the series level, not here).
func (e *Event) Validate() error {
	if e.Route.IsInfusion() && e.InfusionTime > e.Interval {
		return fmt.Errorf("intake at %s: infusion time %s exceeds interval %s", e.EventTime, e.InfusionTime, e.Interval)
	}
	if e.NbPoints < 1 {
		return fmt.Errorf("intake at %s: nb points %d must be >= 1", e.EventTime, e.NbPoints)
	}
	return nil
}

// ValidateSeries checks that event times are strictly increasing.
func ValidateSeries(events []*Event) error {
	for i := 1; i < len(events); i++ {
		if !events[i].EventTime.After(events[i-1].EventTime) {
			return fmt.Errorf("intake series not strictly increasing at index %d (%s <= %s)", i, events[i].EventTime, events[i-1].EventTime)
		}
	}
	return nil
}
