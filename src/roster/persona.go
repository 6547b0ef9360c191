package roster

// Archetype determines the behavior policy applied to a persona on every
// scheduling cycle.
type Archetype string

// publishing are the archetypes whose role is authorship. They are subject to
// the publish quota and probability.
var publishing = map[Archetype]bool{
	"mathematician": true, "chemist": true, "physicist": true,
	"biologist": true, "computer_scientist": true, "neuroscientist": true,
	"astronomer": true, "geologist": true, "statistician": true,
	"poet": true, "novelist": true, "dramatist": true, "essayist": true,
	"critic": true, "translator": true, "historian": true,
	"mythologist": true, "philosopher": true, "anthologist": true,
}

// validating are the archetypes whose role is review and audit. They process
// the mempool and submit validation votes.
var validating = map[Archetype]bool{
	"validator": true, "auditor": true, "witness": true, "moderator": true,
	"arbitrator": true, "inspector": true, "reviewer": true,
	"examiner": true, "verifier": true,
}

// social are the archetypes that post engagement messages.
var social = map[Archetype]bool{
	"social": true, "diplomat": true, "advocate": true, "mediator": true,
	"ambassador": true, "organizer": true, "liaison": true,
	"representative": true, "coordinator": true,
}

// Publishes reports whether personas of this archetype publish papers.
func (a Archetype) Publishes() bool {
	return publishing[a]
}

// Validates reports whether personas of this archetype validate papers.
func (a Archetype) Validates() bool {
	return validating[a]
}

// Social reports whether personas of this archetype post engagement messages.
func (a Archetype) Social() bool {
	return social[a]
}

// Persona is a simulated identity with a fixed behavioral role. Personas are
// immutable for the process lifetime.
type Persona struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Specialization string    `json:"specialization"`
	Archetype      Archetype `json:"archetype"`
}
