package cache

import (
	"testing"
	"time"

	"github.com/AintJierie/GitVista/model"
	"github.com/stretchr/testify/assert"
)

// TestUserKey will test function UserKey
func TestUserKey(t *testing.T) {
	assert.Equal(t, "user_octocat", UserKey("octocat"))
	assert.Equal(t, "user_octocat", UserKey("OctoCat"))
}

// TestCacheRoundTrip checks a put followed by a get returns the same bundle
func TestCacheRoundTrip(t *testing.T) {
	responseCache := New(5 * time.Minute)

	bundle := model.UserBundle{
		Profile: model.UserProfile{Login: "octocat", PublicRepos: 2},
		Repositories: []model.Repository{
			{Name: "hello-world", StargazersCount: 10},
			{Name: "spoon-knife", StargazersCount: 5},
		},
	}

	responseCache.SetUser("octocat", bundle)

	cached, found := responseCache.GetUser("octocat")
	assert.True(t, found)
	assert.Equal(t, bundle, cached)

	// the key is case insensitive, profile and repos come back as one unit
	cached, found = responseCache.GetUser("OCTOCAT")
	assert.True(t, found)
	assert.Equal(t, bundle, cached)
}

// TestCacheMiss checks an unknown username is a miss
func TestCacheMiss(t *testing.T) {
	responseCache := New(5 * time.Minute)

	_, found := responseCache.GetUser("unknown")
	assert.False(t, found)
}

// TestCacheExpiry checks an entry older than the TTL is treated as absent
func TestCacheExpiry(t *testing.T) {
	responseCache := New(20 * time.Millisecond)

	responseCache.SetUser("octocat", model.UserBundle{
		Profile: model.UserProfile{Login: "octocat"},
	})

	// still inside the TTL
	_, found := responseCache.GetUser("octocat")
	assert.True(t, found)

	time.Sleep(30 * time.Millisecond)

	// past the TTL, the entry is gone without any background sweep
	_, found = responseCache.GetUser("octocat")
	assert.False(t, found)
}

// TestCacheFlush checks flushing drops all entries
func TestCacheFlush(t *testing.T) {
	responseCache := New(5 * time.Minute)

	responseCache.SetUser("octocat", model.UserBundle{})
	responseCache.Flush()

	_, found := responseCache.GetUser("octocat")
	assert.False(t, found)
}
