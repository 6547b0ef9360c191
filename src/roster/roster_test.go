package roster

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRoster(t *testing.T) {
	r, err := NewRoster([]*Persona{
		{ID: "a", Name: "A", Archetype: "mathematician"},
		{ID: "b", Name: "B", Archetype: "validator"},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("roster should have 2 personas, not %d", r.Len())
	}
	if r.Beacon().ID != "a" {
		t.Fatalf("beacon should be persona at index 0")
	}
}

func TestNewRosterDuplicateID(t *testing.T) {
	_, err := NewRoster([]*Persona{
		{ID: "a", Name: "A"},
		{ID: "a", Name: "B"},
	})
	if err == nil {
		t.Fatalf("duplicate ids should generate an error")
	}
}

func TestNewRosterEmpty(t *testing.T) {
	if _, err := NewRoster(nil); err == nil {
		t.Fatalf("empty roster should generate an error")
	}
}

func TestArchetypeClasses(t *testing.T) {
	cases := []struct {
		archetype Archetype
		publishes bool
		validates bool
		social    bool
	}{
		{"mathematician", true, false, false},
		{"poet", true, false, false},
		{"validator", false, true, false},
		{"auditor", false, true, false},
		{"social", false, false, true},
		{"diplomat", false, false, true},
		{"sentinel", false, false, false},
	}

	for _, c := range cases {
		if c.archetype.Publishes() != c.publishes {
			t.Fatalf("%s Publishes() should be %v", c.archetype, c.publishes)
		}
		if c.archetype.Validates() != c.validates {
			t.Fatalf("%s Validates() should be %v", c.archetype, c.validates)
		}
		if c.archetype.Social() != c.social {
			t.Fatalf("%s Social() should be %v", c.archetype, c.social)
		}
	}
}

func TestResearchTeam(t *testing.T) {
	team := ResearchTeam()

	if team.Len() != 20 {
		t.Fatalf("research team should have 20 personas, not %d", team.Len())
	}
	if !team.Beacon().Archetype.Publishes() {
		t.Fatalf("research team beacon should be a publishing persona")
	}

	publishers, validators, socials := 0, 0, 0
	for _, p := range team.Personas {
		switch {
		case p.Archetype.Publishes():
			publishers++
		case p.Archetype.Validates():
			validators++
		case p.Archetype.Social():
			socials++
		}
	}
	if publishers != 10 || validators != 5 || socials != 5 {
		t.Fatalf("unexpected team composition: %d/%d/%d", publishers, validators, socials)
	}
}

func TestJSONRoster(t *testing.T) {
	// Create a test dir
	dir, err := ioutil.TempDir("", "citizen")
	if err != nil {
		t.Fatalf("err: %v ", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "roster.json")
	store := NewJSONRoster(path)

	// Try a read, should get nothing
	r, err := store.Roster()
	if err == nil {
		t.Fatalf("store.Roster() should generate an error")
	}
	if r != nil {
		t.Fatalf("roster: %v", r)
	}

	// An empty file is an error, not a nil roster
	if err := ioutil.WriteFile(path, []byte{}, 0755); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := store.Roster(); err == nil {
		t.Fatalf("an empty roster file should generate an error")
	}

	personas := []*Persona{
		{ID: "p1", Name: "One", Role: "Mathematician", Specialization: "Topology", Archetype: "mathematician"},
		{ID: "p2", Name: "Two", Role: "Validator", Specialization: "Paper Validation", Archetype: "validator"},
	}
	if err := store.Write(personas); err != nil {
		t.Fatalf("err: %v", err)
	}

	// Try a read, should find 2 personas
	r, err = store.Roster()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("roster: %v", r)
	}

	for i, p := range r.Personas {
		if p.ID != personas[i].ID {
			t.Fatalf("personas[%d] ID should be %s, not %s", i, personas[i].ID, p.ID)
		}
		if p.Archetype != personas[i].Archetype {
			t.Fatalf("personas[%d] Archetype should be %s, not %s", i, personas[i].Archetype, p.Archetype)
		}
	}
}
