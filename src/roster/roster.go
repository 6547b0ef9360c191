package roster

import "fmt"

// Roster is the ordered, fixed set of personas operated by one node. Order
// matters only in that the persona at index 0 is the designated heartbeat
// emitter.
type Roster struct {
	Personas []*Persona          `json:"personas"`
	ByID     map[string]*Persona `json:"-"`
}

// NewRoster creates a Roster from a list of Personas.
func NewRoster(personas []*Persona) (*Roster, error) {
	r := &Roster{
		Personas: personas,
		ByID:     make(map[string]*Persona),
	}

	for _, p := range personas {
		if p.ID == "" {
			return nil, fmt.Errorf("persona %q has an empty id", p.Name)
		}
		if _, ok := r.ByID[p.ID]; ok {
			return nil, fmt.Errorf("duplicate persona id %q", p.ID)
		}
		r.ByID[p.ID] = p
	}

	if len(r.Personas) == 0 {
		return nil, fmt.Errorf("roster is empty")
	}

	return r, nil
}

// Len returns the number of personas.
func (r *Roster) Len() int {
	return len(r.Personas)
}

// Beacon returns the designated heartbeat emitter, ie. the persona at
// index 0.
func (r *Roster) Beacon() *Persona {
	return r.Personas[0]
}
