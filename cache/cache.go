// Package cache holds the short-lived response cache that avoids redundant
// GitHub fetches for the same username within a session.
package cache

import (
	"strings"
	"time"

	"github.com/AintJierie/GitVista/model"
	gocache "github.com/patrickmn/go-cache"
)

// ResponseCache is a TTL-bound store of profile+repository bundles. Expiry
// is checked lazily on Get, there is no background sweep: the cleanup
// interval of the backing store is disabled so no janitor goroutine runs.
type ResponseCache struct {
	inner *gocache.Cache
}

// New creates a cache whose entries expire after ttl
func New(ttl time.Duration) *ResponseCache {
	return &ResponseCache{inner: gocache.New(ttl, 0)}
}

// UserKey builds the cache key bundling the paired profile and repository
// fetch of one username as a single cache unit.
func UserKey(username string) string {
	return "user_" + strings.ToLower(username)
}

// GetUser returns the cached bundle for the username, or false when the
// entry is absent or older than the TTL. An expired entry is removed so
// staleness is self-healing.
func (c *ResponseCache) GetUser(username string) (model.UserBundle, bool) {
	key := UserKey(username)

	value, found := c.inner.Get(key)
	if !found {
		// drop the expired item kept by the janitor-less store
		c.inner.Delete(key)
		return model.UserBundle{}, false
	}

	bundle, ok := value.(model.UserBundle)
	if !ok {
		c.inner.Delete(key)
		return model.UserBundle{}, false
	}

	return bundle, true
}

// SetUser stores the bundle for the username. The caller only invokes this
// once both halves of the bundle have been fetched, so a half-populated
// entry is never observable.
func (c *ResponseCache) SetUser(username string, bundle model.UserBundle) {
	c.inner.Set(UserKey(username), bundle, gocache.DefaultExpiration)
}

// Flush clears all cached bundles, used on logout
func (c *ResponseCache) Flush() {
	c.inner.Flush()
}
