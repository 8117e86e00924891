package pkmodel

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/sotalya/tucuxi-go/intake"
)

// Key identifies one registered calculator: a model id plus the absorption
// route it serves. spec.md §9's redesign note asks for "no hidden global
// state" in place of the source's static factory-map singletons (and the
// teacher's own mreten.GetModel/msolid.GetModel map-of-allocators pattern):
// Registry is an explicit value a caller constructs and threads through,
// never a package-level map populated by init().
type Key struct {
	ModelID string
	Route   intake.Route
}

// String renders the lookup key as an io.Sf-built composite name
// ("<model id>/<route>"), used in log lines and error messages rather than
// Go's default struct formatting.
func (k Key) String() string {
	return io.Sf("%s/%s", k.ModelID, k.Route)
}

// Registry maps a (model id, route) pair to a factory that builds a fresh
// Calculator for it.
type Registry struct {
	factories map[Key]func() intake.Calculator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Key]func() intake.Calculator)}
}

// Register adds or replaces the factory for key.
func (r *Registry) Register(key Key, factory func() intake.Calculator) {
	r.factories[key] = factory
}

// Get builds a Calculator for (modelID, route), or returns an error if
// nothing is registered for that pair.
func (r *Registry) Get(modelID string, route intake.Route) (intake.Calculator, error) {
	key := Key{ModelID: modelID, Route: route}
	factory, ok := r.factories[key]
	if !ok {
		return nil, chk.Err("pkmodel: no calculator registered for key %s", key)
	}
	return factory(), nil
}

// Model ids for the built-in analytical and numerical families.
const (
	OneCompartmentMicro       = "1comp.micro"
	OneCompartmentMacro       = "1comp.macro"
	TwoCompartmentMicro       = "2comp.micro"
	TwoCompartmentMacro       = "2comp.macro"
	TwoCompartmentMacroRatios = "2comp.macroratios"
	ThreeCompartmentMicro     = "3comp.micro"
	ThreeCompartmentMacro     = "3comp.macro"

	OneCompartmentMichaelisMenten       = "1comp.mm"
	OneCompartmentMichaelisMentenAmount = "1comp.mm.amount"
	TwoCompartmentMichaelisMenten       = "2comp.mm"
	TwoCompartmentMichaelisMentenAmount = "2comp.mm.amount"

	EnzymeInductionModel = "enzind"
)

var allRoutes = []intake.Route{
	intake.IntravascularBolus,
	intake.IntravascularInfusion,
	intake.Extravascular,
	intake.ExtravascularLag,
}

// DefaultPopulate registers every built-in calculator family across every
// absorption route it supports.
func DefaultPopulate(r *Registry) {
	for _, route := range allRoutes {
		route := route
		r.Register(Key{OneCompartmentMicro, route}, func() intake.Calculator { return OneCompartment{Form: Micro, Route: route} })
		r.Register(Key{OneCompartmentMacro, route}, func() intake.Calculator { return OneCompartment{Form: Macro, Route: route} })

		r.Register(Key{TwoCompartmentMicro, route}, func() intake.Calculator { return TwoCompartment{Form: Micro, Route: route} })
		r.Register(Key{TwoCompartmentMacro, route}, func() intake.Calculator { return TwoCompartment{Form: Macro, Route: route} })
		r.Register(Key{TwoCompartmentMacroRatios, route}, func() intake.Calculator { return TwoCompartment{Form: MacroRatios, Route: route} })

		r.Register(Key{ThreeCompartmentMicro, route}, func() intake.Calculator { return ThreeCompartment{Form: Micro, Route: route} })
		r.Register(Key{ThreeCompartmentMacro, route}, func() intake.Calculator { return ThreeCompartment{Form: Macro, Route: route} })

		r.Register(Key{OneCompartmentMichaelisMenten, route}, func() intake.Calculator {
			return MichaelisMenten{NCompartments: 1, VmaxKind: VmaxConcentration, Route: route}
		})
		r.Register(Key{OneCompartmentMichaelisMentenAmount, route}, func() intake.Calculator {
			return MichaelisMenten{NCompartments: 1, VmaxKind: VmaxAmount, Route: route}
		})
		r.Register(Key{TwoCompartmentMichaelisMenten, route}, func() intake.Calculator {
			return MichaelisMenten{NCompartments: 2, VmaxKind: VmaxConcentration, Route: route}
		})
		r.Register(Key{TwoCompartmentMichaelisMentenAmount, route}, func() intake.Calculator {
			return MichaelisMenten{NCompartments: 2, VmaxKind: VmaxAmount, Route: route}
		})

		r.Register(Key{EnzymeInductionModel, route}, func() intake.Calculator { return EnzymeInduction{Route: route} })
	}
}
