package notary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const jsonRosterPath = "roster.json"

// RosterEntry is one slot of a roster file.
type RosterEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// JSONRoster reads and writes a roster as a JSON file in a base directory.
// Slots missing from the file keep their DefaultRoster name, so a file only
// needs to list the seats that changed.
type JSONRoster struct {
	l    sync.Mutex
	path string
}

// NewJSONRoster creates a new JSONRoster with reference to a base directory
// where the JSON file resides.
func NewJSONRoster(base string) *JSONRoster {
	return &JSONRoster{
		path: filepath.Join(base, jsonRosterPath),
	}
}

// Path returns the location of the roster file.
func (j *JSONRoster) Path() string {
	return j.path
}

// Roster parses the underlying JSON file on top of DefaultRoster. A missing
// file yields an error satisfying os.IsNotExist.
func (j *JSONRoster) Roster() (*Roster, error) {
	j.l.Lock()
	defer j.l.Unlock()

	buf, err := os.ReadFile(j.path)
	if err != nil {
		return nil, err
	}

	roster := DefaultRoster

	if len(bytes.TrimSpace(buf)) == 0 {
		return &roster, nil
	}

	var entries []RosterEntry
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("%s: %w", j.path, err)
	}

	for _, e := range entries {
		if err := CheckSender(e.ID); err != nil {
			return nil, fmt.Errorf("%s: %w", j.path, err)
		}
		roster[e.ID] = e.Name
	}

	return &roster, nil
}

// Write persists every slot of roster to the JSON file.
func (j *JSONRoster) Write(roster *Roster) error {
	j.l.Lock()
	defer j.l.Unlock()

	entries := make([]RosterEntry, 0, Count)
	for id, name := range roster {
		entries = append(entries, RosterEntry{ID: id, Name: name})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return err
	}

	return os.WriteFile(j.path, buf.Bytes(), 0644)
}
