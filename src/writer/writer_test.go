package writer

import (
	"math/rand"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/p2pclaw/citizen/src/common"
	"github.com/p2pclaw/citizen/src/roster"
	"github.com/p2pclaw/citizen/src/score"
)

func testPersona() *roster.Persona {
	return &roster.Persona{
		ID:             "citizen6-mathematician-alpha",
		Name:           "Dr. Helena Markov",
		Role:           "Mathematician",
		Specialization: "Algebraic Topology and Network Science",
		Archetype:      "mathematician",
	}
}

func testWriter(t *testing.T, seed int64) *Writer {
	return NewWriter("kaggle-node-6", NewGenerator("", common.NewTestEntry(t)),
		rand.New(rand.NewSource(seed)), common.NewTestEntry(t))
}

func TestSanitize(t *testing.T) {
	cases := []struct{ in, out string }{
		{"", "..."},
		{"hello world", "hello world"},
		{"this is URGENT news", "this is Urgent news"},
		{"ABC stays", "ABC stays"},
		{"  padded  ", "padded"},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.out {
			t.Fatalf("Sanitize(%q) should be %q, not %q", c.in, c.out, got)
		}
	}

	long := strings.Repeat("a", 300)
	if got := Sanitize(long); len(got) != 280 {
		t.Fatalf("sanitized message should be capped at 280 chars, got %d", len(got))
	}

	// the cap counts runes; multi-byte text stays valid UTF-8
	accented := Sanitize(strings.Repeat("é", 300))
	if !utf8.ValidString(accented) {
		t.Fatalf("sanitized message should remain valid UTF-8")
	}
	if n := utf8.RuneCountInString(accented); n != 280 {
		t.Fatalf("sanitized message should be capped at 280 runes, got %d", n)
	}
}

func TestSubmittedCapsTitleOnRuneBoundary(t *testing.T) {
	w := testWriter(t, 11)

	msg := w.Submitted(strings.Repeat("Ω", 80))
	if !utf8.ValidString(msg) {
		t.Fatalf("announcement should remain valid UTF-8: %q", msg)
	}
	if !strings.Contains(msg, "peer review") {
		t.Fatalf("announcement should keep its suffix after capping: %q", msg)
	}
}

func TestTemplateFillsPlaceholders(t *testing.T) {
	w := testWriter(t, 1)
	stats := Stats{Agents: 42, Papers: 7, Mempool: 3}

	for i := 0; i < 20; i++ {
		msg := w.Template(testPersona(), stats)
		if strings.Contains(msg, "{paperCount}") ||
			strings.Contains(msg, "{mempoolCount}") ||
			strings.Contains(msg, "{agentCount}") {
			t.Fatalf("placeholder left unfilled: %q", msg)
		}
		if msg == "" {
			t.Fatalf("template message should not be empty")
		}
	}
}

func TestTemplateDeterministicWithSeed(t *testing.T) {
	stats := Stats{Agents: 1, Papers: 2, Mempool: 3}

	a := testWriter(t, 99).Template(testPersona(), stats)
	b := testWriter(t, 99).Template(testPersona(), stats)

	if a != b {
		t.Fatalf("same seed should pick the same template: %q vs %q", a, b)
	}
}

func TestTemplateFallbackPool(t *testing.T) {
	w := testWriter(t, 5)

	// archetype without a pool of its own
	p := &roster.Persona{ID: "x", Name: "X", Role: "Engineer", Archetype: "engineer"}
	if msg := w.Template(p, Stats{}); msg == "" {
		t.Fatalf("unknown archetype should fall back to the sentinel pool")
	}

	// social archetypes without a pool share the social pool
	p = &roster.Persona{ID: "y", Name: "Y", Role: "Diplomat", Archetype: "diplomat"}
	if msg := w.Template(p, Stats{}); msg == "" {
		t.Fatalf("social archetype should fall back to the social pool")
	}
}

func TestMessageFallsBackWithoutToken(t *testing.T) {
	w := testWriter(t, 7)

	msg := w.Message(testPersona(), Stats{Agents: 10})
	if msg == "" {
		t.Fatalf("Message should fall back to a template when the generator is disabled")
	}
}

func TestBuildPaperPassesOccamGate(t *testing.T) {
	title, content := BuildPaper("Dr. Helena Markov",
		"Algebraic Topology and Network Science", "kaggle-node-6",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	if !strings.Contains(title, "Algebraic Topology") {
		t.Fatalf("title should carry the specialization, got %q", title)
	}

	res := score.Occam(content)
	if res.Sections != 7 {
		t.Fatalf("paper should carry all 7 sections, has %d", res.Sections)
	}
	if res.Refs < 3 {
		t.Fatalf("paper should carry at least 3 citations, has %d", res.Refs)
	}
	if !res.Valid {
		t.Fatalf("synthesized paper should pass the Occam gate, scored %v", res.Score)
	}
}

func TestBuildPaperDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	_, a := BuildPaper("A", "Number Theory and Cryptography", "n1", now)
	_, b := BuildPaper("A", "Number Theory and Cryptography", "n1", now)

	if a != b {
		t.Fatalf("paper content should be deterministic")
	}
}

func TestHeartbeatCarriesIdentity(t *testing.T) {
	w := testWriter(t, 3)

	msg := w.Heartbeat(testPersona())
	if !strings.Contains(msg, "citizen6-mathematician-alpha") || !strings.Contains(msg, "kaggle-node-6") {
		t.Fatalf("heartbeat should carry persona and node identity: %q", msg)
	}
}

func TestGeneratorDisabledWithoutToken(t *testing.T) {
	g := NewGenerator("", common.NewTestEntry(t))

	if g.Enabled() {
		t.Fatalf("generator without token should be disabled")
	}
	if _, ok := g.Generate("prompt", 50); ok {
		t.Fatalf("disabled generator should not generate")
	}
}
