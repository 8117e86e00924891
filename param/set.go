package param

import (
	"time"

	"github.com/cpmech/gosl/fun"

	"github.com/sotalya/tucuxi-go/logenv"
)

// Set is one time-indexed snapshot of every parameter valid from EventTime
// onward: the ParameterSetEvent analog. Parameters are kept in the canonical
// order (variable first, then fixed, alphabetical within each group) with an
// id→index map for O(1) lookup, exactly as
// ParameterSetEvent::addParameterEvent maintains m_parameters/m_IdToIndex.
type Set struct {
	EventTime  time.Time
	parameters []Parameter
	index      map[ID]int
}

// NewSet builds an empty parameter set valid from t.
func NewSet(t time.Time) *Set {
	return &Set{EventTime: t, index: make(map[ID]int)}
}

// AddEvent inserts or updates the parameter for def.ID at value, keeping the
// canonical order, then refreshes the id→index map and the eta-slot
// bookkeeping (omegaIndex/nbEtas) for every variable parameter in the set.
func (s *Set) AddEvent(def Definition, value float64) {
	updated := false
	for i := range s.parameters {
		if s.parameters[i].Definition.ID == def.ID {
			s.parameters[i] = Parameter{Definition: def, Value: value}
			updated = true
			break
		}
	}
	if !updated {
		insertAt := len(s.parameters)
		for i, p := range s.parameters {
			if byOrder(def, p.Definition) {
				insertAt = i
				break
			}
		}
		s.parameters = append(s.parameters, Parameter{})
		copy(s.parameters[insertAt+1:], s.parameters[insertAt:])
		s.parameters[insertAt] = Parameter{Definition: def, Value: value}
	}
	s.reindex()
}

func (s *Set) reindex() {
	s.index = make(map[ID]int, len(s.parameters))
	omega := 0
	for i := range s.parameters {
		p := &s.parameters[i]
		if p.Definition.IsVariable() {
			p.omegaIndex = omega
			p.nbEtas = p.Definition.Variability.NbEtas()
			omega += p.nbEtas
		}
		s.index[p.Definition.ID] = i
	}
}

// Len is the number of parameters carried by the set.
func (s *Set) Len() int { return len(s.parameters) }

// Parameters returns the canonically-ordered parameter list (read-only use).
func (s *Set) Parameters() []Parameter { return s.parameters }

// Value looks up a parameter's current value by id. ok is false if absent.
func (s *Set) Value(id ID) (float64, bool) {
	i, ok := s.index[id]
	if !ok {
		return 0, false
	}
	return s.parameters[i].Value, true
}

// Has reports whether every one of the given ids is present in the set; this
// is the check-by-id contract spec.md §9 Open Question (b) formalizes in
// place of the source's "_parameters.size() >= N" count check.
func (s *Set) Has(ids ...ID) bool {
	for _, id := range ids {
		if _, ok := s.index[id]; !ok {
			return false
		}
	}
	return true
}

// ToPrms exports the set as an ordered fun.Prms list (one *fun.Prm per
// parameter, named by its canonical ID string), the same shape every gofem
// constitutive model's GetPrms returns. This is the interchange format
// external collaborators (population databases, request decoders) hand a
// Set through, rather than a bespoke wire struct.
func (s *Set) ToPrms() fun.Prms {
	out := make(fun.Prms, len(s.parameters))
	for i, p := range s.parameters {
		out[i] = &fun.Prm{N: p.Definition.ID.String(), V: p.Value}
	}
	return out
}

// FromPrms builds a Set valid from t by looking up each entry of prms
// against defs (the static definitions known for every ID, e.g. the
// population model's default Definition for each parameter), mirroring the
// Init(prms fun.Prms) contract gofem's solid models use to read their
// parameter list. Entries naming an ID absent from defs are ignored.
func FromPrms(t time.Time, prms fun.Prms, defs map[ID]Definition) *Set {
	s := NewSet(t)
	for _, p := range prms {
		id, ok := ParseID(p.N)
		if !ok {
			continue
		}
		def, ok := defs[id]
		if !ok {
			def = Definition{ID: id}
		}
		s.AddEvent(def, p.V)
	}
	return s
}

// Copy returns a deep copy of the set, independent of s.
func (s *Set) Copy() *Set {
	out := &Set{EventTime: s.EventTime}
	out.parameters = append([]Parameter(nil), s.parameters...)
	out.index = make(map[ID]int, len(s.index))
	for k, v := range s.index {
		out.index[k] = v
	}
	return out
}

// ApplyEtas returns a new Set with every variable parameter transformed by
// its slice of etas (summed when a parameter consumes more than one slot),
// per the "pure eta application" design note: the receiver is never
// mutated, unlike ParameterSetEvent::applyEtas which edits m_parameters in
// place. ok is false if any resulting value is infinite or NaN.
func (s *Set) ApplyEtas(etas []float64, log logenv.Logger) (out *Set, ok bool) {
	out = s.Copy()
	ok = true
	k := 0
	for i := range out.parameters {
		p := &out.parameters[i]
		if !p.Definition.IsVariable() {
			continue
		}
		var eta float64
		for j := 0; j < p.nbEtas; j++ {
			if k < len(etas) {
				eta += etas[k]
			}
			k++
		}
		np, fine := p.withEta(eta, log)
		*p = np
		if !fine {
			ok = false
		}
	}
	if len(etas) != k && log != nil {
		log.Warn("the eta vector does not fit the variable parameters size (got %d, expected %d)", len(etas), k)
	}
	return out, ok
}
