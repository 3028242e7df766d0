package kind

import (
	"encoding/json"
	"fmt"
	"sync"

	"lukechampine.com/blake3"
)

// NormalizeOptions tunes a single Normalize call.
type NormalizeOptions struct {
	// From overrides kind detection when non-empty.
	From Kind
	// Context is passed to every edge function on the path.
	Context Context
	// BypassCache skips both cache lookup and cache store. Use it when the
	// underlying filesystem or URL mapping may have changed; the cache has
	// no TTL and no invalidation signal.
	BypassCache bool
}

// Normalize converts a value of any registered kind to the target kind,
// detecting the source kind from the value.
func (g *Graph) Normalize(value any, to Kind) (any, error) {
	return g.NormalizeWith(value, to, NormalizeOptions{})
}

// NormalizeWith is Normalize with explicit options.
//
// The source kind is detected unless opts.From is set. The shortest edge
// path is resolved, then folded left to right over the value. A failure on
// any edge aborts the whole chain and nothing is cached. On success the
// result is cached under the original (value, to) pair, so a repeated call
// never re-runs edge functions.
func (g *Graph) NormalizeWith(value any, to Kind, opts NormalizeOptions) (any, error) {
	from := opts.From
	if from == "" {
		detected, err := g.DetectKind(value)
		if err != nil {
			return nil, err
		}
		from = detected
	}

	path, err := g.FindPath(from, to)
	if err != nil {
		return nil, err
	}

	key := cacheKey(value, to)
	if !opts.BypassCache {
		if cached, ok := g.cache.get(key); ok {
			return cached, nil
		}
	}

	acc := value
	for _, e := range path {
		acc, err = g.ApplyEdge(e.From, e.To, acc, opts.Context)
		if err != nil {
			return nil, err
		}
	}

	if !opts.BypassCache {
		g.cache.put(key, acc)
	}
	return acc, nil
}

// ClearCache drops all memoized normalization results. This is the only
// invalidation mechanism: entries otherwise live for the process lifetime.
func (g *Graph) ClearCache() {
	g.cache.clear()
}

// CacheSize returns the number of memoized results.
func (g *Graph) CacheSize() int {
	return g.cache.size()
}

// resultCache memoizes (canonical value, target kind) -> result. Unbounded,
// no eviction; guarded by a mutex so concurrent Normalize calls are safe.
type resultCache struct {
	mu sync.Mutex
	m  map[string]any
}

func newResultCache() *resultCache {
	return &resultCache{m: make(map[string]any)}
}

func (c *resultCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *resultCache) put(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = v
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]any)
}

func (c *resultCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// cacheKey derives a canonical key from an input value and target kind.
// Strings are keyed verbatim; anything else is keyed by its JSON encoding,
// which gives structural equality for struct and map inputs (Go's
// encoding/json emits map keys sorted).
func cacheKey(value any, to Kind) string {
	var body []byte
	switch v := value.(type) {
	case string:
		body = append([]byte("s:"), v...)
	default:
		enc, err := json.Marshal(value)
		if err != nil {
			enc = []byte(fmt.Sprintf("%#v", value))
		}
		body = append([]byte("j:"), enc...)
	}
	body = append(body, 0)
	body = append(body, to...)
	sum := blake3.Sum256(body)
	return fmt.Sprintf("%x", sum[:])
}
