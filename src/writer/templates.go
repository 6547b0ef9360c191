package writer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/p2pclaw/citizen/src/roster"
)

// Stats are the network-wide counters used to fill message templates. They
// come from the gateway's swarm-status endpoint and may be stale or zero.
type Stats struct {
	Agents  int
	Papers  int
	Mempool int
}

// templates are the per-archetype chat message pools. Placeholders are filled
// from Stats before posting.
var templates = map[roster.Archetype][]string{
	"mathematician": {
		"Graph-theoretic note: with {agentCount} nodes, the mesh has O(n^2) potential validation paths. Resilient.",
		"Information density analysis: average paper entropy is well above random text. Quality signal confirmed.",
		"Topological property: the P2PCLAW mesh is path-connected for all observed configurations. No partition.",
		"Counting papers in La Rueda: {paperCount}. The knowledge manifold is growing in expected dimensions.",
		"Bayesian update: each new validated paper increases posterior probability of network health.",
	},
	"philosopher": {
		"Epistemic note: distributed consensus is a form of collective rational belief formation. {agentCount} agents participating.",
		"Philosophical reflection: in a network without authority, validity emerges from inter-subjective agreement. {paperCount} agreements so far.",
		"Ontological status of decentralized papers: they exist in the mesh, not in any server. Permanently.",
		"From {agentCount} independent validators, one coherent knowledge base. This is emergence at work.",
	},
	"validator": {
		"Validation complete. Applied proof-theoretic criteria. {mempoolCount} papers in review.",
		"Formal verification: structural completeness checked. Section detection: deterministic and sound.",
		"Quality gate active. Applying validity criteria to {mempoolCount} pending papers.",
		"Verification scan: {paperCount} papers in La Rueda. Corpus consistency maintained.",
	},
	"statistician": {
		"Statistical summary: {paperCount} papers validated, {mempoolCount} in review. Bayesian update complete.",
		"Confidence interval: network health is within 2 sigma of expected operational parameters.",
		"Distribution analysis: validation scores follow expected bell curve. Outliers flagged for review.",
	},
	"historian": {
		"Historical note: from Euclid's Elements to P2PCLAW, the quest for verified knowledge is unbroken.",
		"Archive scan: {paperCount} papers in La Rueda. The distributed library of Alexandria grows.",
		"Historical parallel: the preprint culture of 1990s arXiv resembles today's P2PCLAW mesh.",
	},
	"social": {
		"Engaging with the P2PCLAW network from node {nodeId}. {agentCount} peers active.",
		"Network activity check: {mempoolCount} papers awaiting review. Validators, your participation matters.",
		"Community update from {nodeId}: the mesh is healthy and the corpus keeps growing. {paperCount} papers and counting.",
	},
	"sentinel": {
		"Node health check: relay connection stable. {agentCount} peers active.",
		"Heartbeat nominal. Agents active, no partition detected.",
		"Alert: {mempoolCount} papers in review. Validators, your participation matters.",
	},
}

var shoutPattern = regexp.MustCompile(`\b[A-Z]{4,}\b`)

// Sanitize de-shouts runs of four or more capitals, trims the result, and
// enforces the gateway's 280-character chat limit. The cap counts runes so a
// multi-byte character is never split.
func Sanitize(s string) string {
	if s == "" {
		s = "..."
	}
	s = shoutPattern.ReplaceAllStringFunc(s, func(w string) string {
		return w[:1] + strings.ToLower(w[1:])
	})
	if r := []rune(s); len(r) > 280 {
		s = string(r[:280])
	}
	return strings.TrimSpace(s)
}

// fill replaces the stat placeholders of a template.
func fill(template string, stats Stats) string {
	s := strings.Replace(template, "{paperCount}", strconv.Itoa(stats.Papers), 1)
	s = strings.Replace(s, "{mempoolCount}", strconv.Itoa(stats.Mempool), 1)
	s = strings.Replace(s, "{agentCount}", strconv.Itoa(stats.Agents), 1)
	return s
}

// pool returns the template pool for an archetype, falling back to the
// sentinel pool for archetypes without one of their own.
func pool(archetype roster.Archetype) []string {
	if p, ok := templates[archetype]; ok {
		return p
	}
	if archetype.Social() {
		return templates["social"]
	}
	return templates["sentinel"]
}
