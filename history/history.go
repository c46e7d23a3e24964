// Package history keeps the ordered list of recently searched usernames.
// The list is JSON round-trippable so an external collaborator can persist
// it between sessions.
package history

import (
	"sync"
	"time"
)

const maxEntries = 10

// Entry is one recorded search
type Entry struct {
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url"`
}

// Store holds the most recent searches, newest first, deduplicated by
// username and capped at 10 entries.
type Store struct {
	mu      sync.Mutex
	entries []Entry
}

// NewStore returns an empty history
func NewStore() *Store {
	return &Store{}
}

// Add records a search for the username. An existing entry for the same
// username is moved to the front with a fresh timestamp.
func (s *Store) Add(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Entry, 0, len(s.entries)+1)
	kept = append(kept, Entry{
		Username:  username,
		Timestamp: time.Now(),
		URL:       "https://github.com/" + username,
	})

	for _, entry := range s.entries {
		if entry.Username != username {
			kept = append(kept, entry)
		}
	}

	if len(kept) > maxEntries {
		kept = kept[:maxEntries]
	}

	s.entries = kept
}

// List returns a copy of the entries, newest first
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)

	return entries
}

// Clear removes all entries
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
}
