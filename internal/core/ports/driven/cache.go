package driven

// ResponseCache is a best-effort TTL cache for expensive results.
// It is advisory: a miss always falls through to live computation and
// entries are never required for correctness.
type ResponseCache interface {
	// Get returns the cached value and true on a fresh hit.
	Get(key string) (string, bool)

	// Set stores a value under the key with the cache's fixed expiry.
	Set(key, value string)
}
