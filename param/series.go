package param

import (
	"time"

	"github.com/sotalya/tucuxi-go/logenv"
)

// Series is an ordered sequence of parameter set events: the
// ParameterSetSeries analog.
type Series struct {
	events []*Set
}

// NewSeries builds an empty series.
func NewSeries() *Series { return &Series{} }

// Add appends a parameter set event. Events are expected in non-decreasing
// EventTime order, matching ParameterSetSeries::addParameterSetEvent.
func (s *Series) Add(set *Set) { s.events = append(s.events, set) }

// GetAtTime returns the last event with EventTime <= t, copied with etas
// applied (spec.md §3). It returns nil if no event qualifies, or if applying
// etas makes any value infinite or NaN.
func (s *Series) GetAtTime(t time.Time, etas []float64, log logenv.Logger) *Set {
	var found *Set
	for _, e := range s.events {
		if e.EventTime.After(t) {
			break
		}
		found = e
	}
	if found == nil {
		return nil
	}
	if len(etas) == 0 {
		return found.Copy()
	}
	out, ok := found.ApplyEtas(etas, log)
	if !ok {
		return nil
	}
	return out
}

// Len is the number of events in the series.
func (s *Series) Len() int { return len(s.events) }
