package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"sync"
)

// JSONRoster is used to provide a persona roster on disk in the form of a
// JSON file.
type JSONRoster struct {
	l    sync.Mutex
	path string
}

// NewJSONRoster creates a new JSONRoster with reference to the file where the
// roster resides.
func NewJSONRoster(path string) *JSONRoster {
	return &JSONRoster{
		path: path,
	}
}

// Roster parses the underlying JSON file and returns the corresponding
// Roster.
func (j *JSONRoster) Roster() (*Roster, error) {
	j.l.Lock()
	defer j.l.Unlock()

	// Read the file
	buf, err := ioutil.ReadFile(j.path)
	if err != nil {
		return nil, err
	}

	// An empty file cannot produce a usable roster
	if len(buf) == 0 {
		return nil, fmt.Errorf("roster file %s is empty", j.path)
	}

	// Decode the personas
	var personas []*Persona
	dec := json.NewDecoder(bytes.NewReader(buf))
	if err := dec.Decode(&personas); err != nil {
		return nil, err
	}

	return NewRoster(personas)
}

// Write persists a Roster to a JSON file.
func (j *JSONRoster) Write(personas []*Persona) error {
	j.l.Lock()
	defer j.l.Unlock()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(personas); err != nil {
		return err
	}

	// Write out as JSON
	return ioutil.WriteFile(j.path, buf.Bytes(), 0755)
}
