// Package units implements the reference unit-conversion table
// (grounded on _examples/original_source/src/tucucommon/unit.h): the
// concrete sample.UnitConverter collaborator spec.md §6 leaves external.
package units

import "fmt"

// Unit is a physical unit symbol recognized by Converter.
type Unit string

const (
	None Unit = "-"

	Nanogram  Unit = "ng"
	Microgram Unit = "ug"
	Milligram Unit = "mg"
	Gram      Unit = "g"

	Liter      Unit = "l"
	Milliliter Unit = "ml"
	Deciliter  Unit = "dl"

	Hour   Unit = "h"
	Minute Unit = "min"
	Second Unit = "s"
	Day    Unit = "d"

	NanogramPerMilliliter  Unit = "ng/ml"
	MicrogramPerMilliliter Unit = "ug/ml"
	MicrogramPerLiter      Unit = "ug/l"
	MilligramPerLiter      Unit = "mg/l"

	NanogramHourPerMilliliter  Unit = "ng*h/ml"
	MicrogramHourPerMilliliter Unit = "ug*h/ml"
	MicrogramHourPerLiter      Unit = "ug*h/l"

	MicromolePerLiter Unit = "umol/l"
	MillimolePerLiter Unit = "mmol/l"

	LiterPerHour       Unit = "l/h"
	MilliliterPerHour  Unit = "ml/h"
	MilliliterPerMinute Unit = "ml/min"

	Celsius Unit = "degC"
	Kelvin  Unit = "K"
)

// dimension groups units that are interconvertible by a pure scale factor.
type dimension int

const (
	dimNone dimension = iota
	dimMass
	dimVolume
	dimTime
	dimConcentration
	dimConcentrationTime
	dimMoleConcentration
	dimFlowRate
	dimTemperature
)

var unitDimension = map[Unit]dimension{
	None: dimNone,

	Nanogram:  dimMass,
	Microgram: dimMass,
	Milligram: dimMass,
	Gram:      dimMass,

	Liter:      dimVolume,
	Milliliter: dimVolume,
	Deciliter:  dimVolume,

	Hour:   dimTime,
	Minute: dimTime,
	Second: dimTime,
	Day:    dimTime,

	NanogramPerMilliliter:  dimConcentration,
	MicrogramPerMilliliter: dimConcentration,
	MicrogramPerLiter:      dimConcentration,
	MilligramPerLiter:      dimConcentration,

	NanogramHourPerMilliliter:  dimConcentrationTime,
	MicrogramHourPerMilliliter: dimConcentrationTime,
	MicrogramHourPerLiter:      dimConcentrationTime,

	MicromolePerLiter: dimMoleConcentration,
	MillimolePerLiter: dimMoleConcentration,

	LiterPerHour:        dimFlowRate,
	MilliliterPerHour:   dimFlowRate,
	MilliliterPerMinute: dimFlowRate,

	Celsius: dimTemperature,
	Kelvin:  dimTemperature,
}

// toBase converts a Unit's quantity to its dimension's base unit
// (nanogram, liter, second, ng/ml, ng*h/ml, umol/l or l/h); temperatures
// are converted separately by convertTemperature.
var toBase = map[Unit]float64{
	Nanogram:  1,
	Microgram: 1e3,
	Milligram: 1e6,
	Gram:      1e9,

	Liter:      1,
	Milliliter: 1e-3,
	Deciliter:  1e-1,

	Hour:   3600,
	Minute: 60,
	Second: 1,
	Day:    86400,

	NanogramPerMilliliter:  1,
	MicrogramPerMilliliter: 1e3,
	MicrogramPerLiter:      1,
	MilligramPerLiter:      1e3,

	NanogramHourPerMilliliter:  1,
	MicrogramHourPerMilliliter: 1e3,
	MicrogramHourPerLiter:      1,

	MicromolePerLiter: 1,
	MillimolePerLiter: 1e3,

	LiterPerHour:        1,
	MilliliterPerHour:   1e-3,
	MilliliterPerMinute: 1e-3 * 60,
}

// Converter is the concrete sample.UnitConverter: a reference
// implementation of the same-dimension conversion table spec.md §6 leaves
// external to the core computation.
type Converter struct{}

// Convert converts value from one unit to another of the same physical
// dimension. It returns an error (instead of a Status, since this is a
// standalone collaborator, not a core Calculator) if the two units are not
// interconvertible.
func (Converter) Convert(value float64, from, to Unit) (float64, error) {
	if from == to {
		return value, nil
	}
	if from == None || to == None {
		return 0, fmt.Errorf("units: cannot convert between %q and %q", from, to)
	}
	if from == Celsius || from == Kelvin || to == Celsius || to == Kelvin {
		return convertTemperature(value, from, to)
	}

	df, ok1 := unitDimension[from]
	dt, ok2 := unitDimension[to]
	if !ok1 || !ok2 || df != dt {
		return 0, fmt.Errorf("units: %q and %q are not interconvertible", from, to)
	}
	fScale, ok1 := toBase[from]
	tScale, ok2 := toBase[to]
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("units: no conversion factor for %q or %q", from, to)
	}
	return value * fScale / tScale, nil
}

func convertTemperature(value float64, from, to Unit) (float64, error) {
	if from != Celsius && from != Kelvin || to != Celsius && to != Kelvin {
		return 0, fmt.Errorf("units: %q and %q are not interconvertible", from, to)
	}
	if from == to {
		return value, nil
	}
	if from == Celsius {
		return value + 273.15, nil
	}
	return value - 273.15, nil
}
