// Package param implements the parameter model: typed parameter ids, the
// inter-individual variability laws applied to them through etas, parameter
// set events (one time-indexed snapshot of every parameter), and the series
// of such events a computation walks through.
//
// Modeled on github.com/cpmech/gofem/mreten's registry-and-model pattern
// (fun.Prm/fun.Prms as the ordered name/value parameter list every model's
// Init consumes) generalized with the variability bookkeeping from
// original_source/src/tucucore/parameter.cpp.
package param

import "sort"

// ID enumerates the fixed set of parameter identifiers the core understands.
type ID int

const (
	Ke ID = iota
	V
	V1
	V2
	V3
	CL
	Q
	Q1
	Q2
	Q3
	K12
	K21
	K13
	K31
	Ka
	F
	Tlag
	Km
	Vmax
	RQCL
	RV2V1
	Kenz
	Emax
	ECmid
	EDmid
	DoseMid
	Fmax
	NN
	MTT
	AllmCL
)

var idNames = map[ID]string{
	Ke: "Ke", V: "V", V1: "V1", V2: "V2", V3: "V3", CL: "CL", Q: "Q", Q1: "Q1",
	Q2: "Q2", Q3: "Q3", K12: "K12", K21: "K21", K13: "K13", K31: "K31", Ka: "Ka",
	F: "F", Tlag: "Tlag", Km: "Km", Vmax: "Vmax", RQCL: "RQCL", RV2V1: "RV2V1",
	Kenz: "Kenz", Emax: "Emax", ECmid: "ECmid", EDmid: "EDmid", DoseMid: "DoseMid",
	Fmax: "Fmax", NN: "NN", MTT: "MTT", AllmCL: "AllmCL",
}

var namesToID map[string]ID

func init() {
	namesToID = make(map[string]ID, len(idNames))
	for id, name := range idNames {
		namesToID[name] = id
	}
}

// String returns the canonical parameter name, used for ordering and for
// building registry/log keys (mirrors mreten's io.Sf-based key style).
func (id ID) String() string {
	if n, ok := idNames[id]; ok {
		return n
	}
	return "Unknown"
}

// ParseID resolves a parameter name to its ID. ok is false for unknown names.
func ParseID(name string) (ID, bool) {
	id, ok := namesToID[name]
	return id, ok
}

// VariabilityKind is the law used to turn a population value plus an eta
// into an individual value.
type VariabilityKind int

const (
	None VariabilityKind = iota
	Additive
	Normal
	Exponential
	LogNormal
	Proportional
	Logit
)

// Variability describes how a parameter's value responds to inter-individual
// etas: its kind, and the standard deviations of the etas it draws from (a
// parameter needing more than one std dev sums that many etas, as in
// ParameterSetEvent::addParameterEvent's m_nbEtas bookkeeping).
type Variability struct {
	Kind    VariabilityKind
	StdDevs []float64
}

// NbEtas is the number of eta slots this variability consumes.
func (v Variability) NbEtas() int {
	if v.Kind == None {
		return 0
	}
	if len(v.StdDevs) == 0 {
		return 1
	}
	return len(v.StdDevs)
}

// Definition is the static description of one parameter: its id, variability
// law, and population (default) value.
type Definition struct {
	ID          ID
	Variability Variability
	Default     float64
}

// IsVariable reports whether etas apply to this parameter at all.
func (d Definition) IsVariable() bool {
	return d.Variability.Kind != None
}

// byOrder sorts definitions the way ParameterSetEvent::addParameterEvent
// keeps m_parameters sorted: variable parameters first, then fixed,
// alphabetical by id name within each group.
func byOrder(a, b Definition) bool {
	if a.IsVariable() != b.IsVariable() {
		return a.IsVariable()
	}
	return a.ID.String() < b.ID.String()
}

// SortDefinitions reorders a slice of definitions per the canonical order.
func SortDefinitions(defs []Definition) {
	sort.SliceStable(defs, func(i, j int) bool { return byOrder(defs[i], defs[j]) })
}
