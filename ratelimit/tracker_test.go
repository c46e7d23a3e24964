package ratelimit

import (
	"net/http"
	"testing"

	"github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
)

// TestNewTrackerDefaults checks the tracker starts at the public unauthenticated ceiling
func TestNewTrackerDefaults(t *testing.T) {
	tracker := NewTracker()

	assert.Equal(t, Info{Remaining: 60, Limit: 60}, tracker.Snapshot())
}

// TestUpdate will test function Update
func TestUpdate(t *testing.T) {
	tests := []struct {
		name     string
		response *github.Response
		expected Info
	}{
		{
			name: "Response with rate headers overwrites the values",
			response: &github.Response{
				Response: &http.Response{StatusCode: 200},
				Rate:     github.Rate{Remaining: 4990, Limit: 5000},
			},
			expected: Info{Remaining: 4990, Limit: 5000},
		},
		{
			name:     "Nil response is ignored",
			response: nil,
			expected: Info{Remaining: 60, Limit: 60},
		},
		{
			name: "Response without rate headers is ignored",
			response: &github.Response{
				Response: &http.Response{StatusCode: 200},
			},
			expected: Info{Remaining: 60, Limit: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker()
			tracker.Update(tt.response)

			assert.Equal(t, tt.expected, tracker.Snapshot())
		})
	}
}

// TestUpdateOverwrites checks the most recently completed request wins
func TestUpdateOverwrites(t *testing.T) {
	tracker := NewTracker()

	tracker.Update(&github.Response{
		Response: &http.Response{StatusCode: 200},
		Rate:     github.Rate{Remaining: 58, Limit: 60},
	})

	tracker.Update(&github.Response{
		Response: &http.Response{StatusCode: 403},
		Rate:     github.Rate{Remaining: 0, Limit: 60},
	})

	assert.Equal(t, Info{Remaining: 0, Limit: 60}, tracker.Snapshot())
}

// TestSet will test function Set
func TestSet(t *testing.T) {
	tracker := NewTracker()
	tracker.Set(4999, 5000)

	assert.Equal(t, Info{Remaining: 4999, Limit: 5000}, tracker.Snapshot())
}
