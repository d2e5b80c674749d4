package emission

import "sync"

// cacheKey identifies one loaded provider resource by acoustic model id
// and device preference.
type cacheKey struct {
	modelID string
	device  string
}

// Cache memoizes loaded Provider resources keyed by (model_id, device).
// It tolerates concurrent readers once a key is populated; insertion is
// idempotent, so a second populator racing to fill the same key discards
// its own result rather than overwriting the first. This mirrors
// internal/onnx's SessionManager, which protects its session map the
// same way.
type Cache struct {
	mu    sync.RWMutex
	byKey map[cacheKey]Provider
}

// NewCache returns an empty, ready-to-use Cache.
func NewCache() *Cache {
	return &Cache{byKey: make(map[cacheKey]Provider)}
}

// Get returns the cached provider for (modelID, device), if present.
func (c *Cache) Get(modelID, device string) (Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byKey[cacheKey{modelID: modelID, device: device}]

	return p, ok
}

// GetOrLoad returns the cached provider for (modelID, device), loading
// it via load on a miss. If two callers race to load the same key, the
// first insertion wins and the second caller's loaded value is
// discarded in favor of the winner's.
func (c *Cache) GetOrLoad(modelID, device string, load func() (Provider, error)) (Provider, error) {
	if p, ok := c.Get(modelID, device); ok {
		return p, nil
	}

	loaded, err := load()
	if err != nil {
		return nil, err
	}

	key := cacheKey{modelID: modelID, device: device}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.byKey[key]; ok {
		return existing, nil
	}

	c.byKey[key] = loaded

	return loaded, nil
}
