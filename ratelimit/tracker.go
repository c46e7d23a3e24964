// Package ratelimit tracks the GitHub rate limit headers of the most
// recently completed request. The tracker is advisory display state only, it
// never gates outgoing calls.
package ratelimit

import (
	"sync"

	"github.com/google/go-github/v66/github"
)

// Info is the observable state of the tracker
type Info struct {
	Remaining int `json:"remaining"`
	Limit     int `json:"limit"`
}

// Tracker holds the last seen rate limit values. The zero defaults are the
// public unauthenticated ceiling of 60 requests per hour. Values are
// overwritten, never merged: the most recently completed request wins.
type Tracker struct {
	mu   sync.Mutex
	info Info
}

// NewTracker returns a tracker seeded with the unauthenticated ceiling
func NewTracker() *Tracker {
	return &Tracker{info: Info{Remaining: 60, Limit: 60}}
}

// Update overwrites the tracked values from a GitHub API response. Responses
// without rate headers are ignored.
func (t *Tracker) Update(resp *github.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.info.Remaining = resp.Rate.Remaining
	t.info.Limit = resp.Rate.Limit
}

// Set overwrites the tracked values directly, used by the explicit
// /rate_limit refresh.
func (t *Tracker) Set(remaining, limit int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.info.Remaining = remaining
	t.info.Limit = limit
}

// Snapshot returns a copy of the current values
func (t *Tracker) Snapshot() Info {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.info
}
