// Package status defines the result codes returned across the computation
// surface of the pharmacokinetic prediction core.
package status

// Status is the result code of one computation step.
type Status int

const (
	// Ok means the computation completed normally.
	Ok Status = iota
	// ConcentrationCalculatorNoParameters means no parameter set was valid at
	// an intake's event time.
	ConcentrationCalculatorNoParameters
	// DensityError means the requested point density was too low for the
	// calculator to place the pertinent times it needed (e.g. the
	// infusion-stop instant could not be made a grid point). The caller may
	// retry with a higher density.
	DensityError
	// NoSteadyState means the steady-state loop exceeded its iteration cap.
	NoSteadyState
	// BadParameters means checkInputs rejected the parameter/intake pair.
	BadParameters
	// SampleExtractionError means a sample's unit could not be converted to
	// the requested output unit.
	SampleExtractionError
	// Nan means a calculator produced a non-finite value (typically an RK4
	// derivative blow-up) and aborted the computation.
	Nan
)

func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case ConcentrationCalculatorNoParameters:
		return "ConcentrationCalculatorNoParameters"
	case DensityError:
		return "DensityError"
	case NoSteadyState:
		return "NoSteadyState"
	case BadParameters:
		return "BadParameters"
	case SampleExtractionError:
		return "SampleExtractionError"
	case Nan:
		return "Nan"
	default:
		return "Unknown"
	}
}
