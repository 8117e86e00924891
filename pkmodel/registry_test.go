package pkmodel

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/sotalya/tucuxi-go/intake"
)

func TestRegistryGetReturnsRegisteredFactory(t *testing.T) {
	chk.PrintTitle("Registry.Get resolves a (model id, route) pair to a fresh Calculator")
	r := NewRegistry()
	DefaultPopulate(r)

	calc, err := r.Get(OneCompartmentMicro, intake.IntravascularBolus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := calc.(OneCompartment); !ok {
		t.Fatalf("expected a OneCompartment calculator, got %T", calc)
	}
}

func TestRegistryGetUnknownKeyErrors(t *testing.T) {
	chk.PrintTitle("Registry.Get reports an error for an unregistered key")
	r := NewRegistry()
	if _, err := r.Get("not-a-model", intake.IntravascularBolus); err == nil {
		t.Fatalf("expected an error for an unregistered model id")
	}
}

func TestRegistryIsNotGlobalState(t *testing.T) {
	chk.PrintTitle("Registry: two independently populated registries don't share state")
	r1 := NewRegistry()
	r2 := NewRegistry()
	r1.Register(Key{ModelID: "only-in-r1", Route: intake.IntravascularBolus}, func() intake.Calculator {
		return OneCompartment{Form: Micro, Route: intake.IntravascularBolus}
	})
	if _, err := r2.Get("only-in-r1", intake.IntravascularBolus); err == nil {
		t.Fatalf("expected r2 to be unaffected by registrations on r1")
	}
}
