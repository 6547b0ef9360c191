package writer

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/p2pclaw/citizen/src/roster"
	"github.com/sirupsen/logrus"
)

// Writer synthesizes chat messages and papers for personas. Template
// selection uses an injected random source so tests can be deterministic.
type Writer struct {
	nodeID string
	gen    *Generator
	rand   *rand.Rand
	logger *logrus.Entry
}

// NewWriter creates a Writer. gen may be a disabled Generator; it is only
// consulted when enabled.
func NewWriter(nodeID string, gen *Generator, r *rand.Rand, logger *logrus.Entry) *Writer {
	return &Writer{
		nodeID: nodeID,
		gen:    gen,
		rand:   r,
		logger: logger.WithField("component", "writer"),
	}
}

// Message produces a chat message for a persona: one line from the
// text-generation collaborator when available, otherwise a filled template
// from the persona's archetype pool.
func (w *Writer) Message(p *roster.Persona, stats Stats) string {
	if w.gen != nil && w.gen.Enabled() {
		prompt := fmt.Sprintf(
			"You are %s, a %s specializing in %s. Write one insight (max 2 sentences) relevant to distributed research networks. No all-caps.",
			p.Name, p.Role, p.Specialization)
		if text, ok := w.gen.Generate(prompt, 100); ok {
			return text
		}
		w.logger.WithField("persona", p.ID).Debug("LLM_FALLBACK")
	}
	return w.Template(p, stats)
}

// Template picks a message from the persona's archetype pool and fills the
// stat and node-identity placeholders.
func (w *Writer) Template(p *roster.Persona, stats Stats) string {
	pool := pool(p.Archetype)
	msg := fill(pool[w.rand.Intn(len(pool))], stats)
	msg = strings.Replace(msg, "{nodeId}", w.nodeID, 1)
	return Sanitize(msg)
}

// Submitted produces the chat announcement posted after a successful paper
// publication.
func (w *Writer) Submitted(title string) string {
	if r := []rune(title); len(r) > 55 {
		title = string(r[:55])
	}
	return Sanitize(fmt.Sprintf("Analysis submitted: %q. Entering peer review.", title))
}

// Heartbeat produces the presence message for the roster's beacon persona.
func (w *Writer) Heartbeat(p *roster.Persona) string {
	return fmt.Sprintf("HEARTBEAT: %s|CITIZEN_NODE|ONLINE | Role: %s | Node: %s", p.ID, p.Role, w.nodeID)
}

// Online produces the boot announcement for a persona.
func (w *Writer) Online(p *roster.Persona) string {
	return Sanitize(fmt.Sprintf("%s online. Role: %s. Specialization: %s. Node %s active.",
		p.Name, p.Role, p.Specialization, w.nodeID))
}

// Paper synthesizes a full paper for a publishing persona.
func (w *Writer) Paper(p *roster.Persona, now time.Time) (string, string) {
	return BuildPaper(p.Name, p.Specialization, w.nodeID, now)
}
