// Package sample extracts measured-sample-comparable values from a
// concentration series (spec.md §6 "Sample extraction").
package sample

import (
	"time"

	"github.com/sotalya/tucuxi-go/status"
	"github.com/sotalya/tucuxi-go/units"
)

// UnitConverter is the external collaborator sample extraction defers unit
// handling to; units.Converter is the reference implementation.
type UnitConverter interface {
	Convert(value float64, from, to units.Unit) (float64, error)
}

// Sample is one measured observation to compare predictions against.
type Sample struct {
	Time  time.Time
	Value float64
	Unit  units.Unit
}

// Point is one predicted concentration available for extraction.
type Point struct {
	Time  time.Time
	Value float64
	Unit  units.Unit
}

// Extracted pairs a Sample with the model value extracted at (or nearest)
// its time, both expressed in the sample's unit.
type Extracted struct {
	Sample      Sample
	ModelValue  float64
	Discrepancy float64 // ModelValue - Sample.Value, both in Sample.Unit
}

// Extractor extracts model predictions at sample times and converts them
// into the samples' units, aborting on the first unit mismatch it cannot
// resolve (spec.md §6: sample extraction is all-or-nothing, not
// best-effort).
type Extractor struct {
	Converter UnitConverter
}

// Extract pairs each sample with the nearest point in points within window,
// converting the matched point's value into the sample's unit. If no point
// lies within window of a sample, or a unit conversion fails, extraction
// aborts and returns status.SampleExtractionError.
func (e Extractor) Extract(samples []Sample, points []Point, window time.Duration) ([]Extracted, status.Status) {
	if len(samples) == 0 {
		return nil, status.Ok
	}
	conv := e.Converter
	if conv == nil {
		conv = units.Converter{}
	}

	out := make([]Extracted, 0, len(samples))
	for _, s := range samples {
		best, found := nearest(points, s.Time, window)
		if !found {
			return nil, status.SampleExtractionError
		}
		modelValue, err := conv.Convert(best.Value, best.Unit, s.Unit)
		if err != nil {
			return nil, status.SampleExtractionError
		}
		out = append(out, Extracted{
			Sample:      s,
			ModelValue:  modelValue,
			Discrepancy: modelValue - s.Value,
		})
	}
	return out, status.Ok
}

func nearest(points []Point, t time.Time, window time.Duration) (Point, bool) {
	var best Point
	var bestDelta time.Duration = -1
	found := false
	for _, p := range points {
		delta := p.Time.Sub(t)
		if delta < 0 {
			delta = -delta
		}
		if delta > window {
			continue
		}
		if !found || delta < bestDelta {
			best, bestDelta, found = p, delta, true
		}
	}
	return best, found
}
