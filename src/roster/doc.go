// Package roster defines the concept of a persona and implements functions to
// manage collections of personas.
//
// A persona is a simulated identity operated by a citizen node. Each persona
// has a unique id, a display name, a role, a specialization, and an archetype.
// The archetype determines which behavior policy the scheduler applies to the
// persona on every cycle: publishing archetypes author papers, validating
// archetypes review the pending-paper queue, and social archetypes post
// engagement messages. Archetypes outside these three classes are inert.
//
// A roster is the ordered, fixed set of personas operated by one node. The
// persona at index 0 is the beacon: the designated emitter of the node's
// heartbeat messages.
//
// Upon starting up, citizen looks for a roster.json file in its data
// directory. If the file is absent, the built-in research team is used.
package roster
