package router

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
)

// hopCache memoizes hop results keyed by the identity of the candidate
// nodes on each side plus a hash of routing attributes and options. A
// single mutex protects it; computed entries are immutable once
// inserted, so readers never block each other past the lock itself.
type hopCache struct {
	mu      sync.RWMutex
	entries map[string]Hop
}

func newHopCache() *hopCache {
	return &hopCache{entries: make(map[string]Hop)}
}

func (c *hopCache) key(fromIDs, toIDs []string, attrs RoutingAttrs, opts Options) string {
	sortedFrom := append([]string(nil), fromIDs...)
	sortedTo := append([]string(nil), toIDs...)
	sort.Strings(sortedFrom)
	sort.Strings(sortedTo)

	h := sha256.New()
	for _, id := range sortedFrom {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	h.Write([]byte{0xff})
	for _, id := range sortedTo {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	h.Write([]byte(attrs.ShortName))
	h.Write([]byte(attrs.FromName))
	h.Write([]byte(attrs.ToName))

	// Every routing and cost option feeds the key; %v prints each float
	// field in its shortest exact form.
	fmt.Fprintf(h, "|%d|%t|%t|%v", opts.SolveMethod, opts.NoSelfHops, opts.PopReachEdge, opts.CostOptions)

	return fmt.Sprintf("%x", h.Sum(nil))
}

// get returns the cached hop for the given key, if any.
func (c *hopCache) get(key string) (Hop, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	hop, ok := c.entries[key]

	return hop, ok
}

// put records hop under key. Safe to call concurrently; the last writer
// for a given key wins, but since hop computation is a pure function of
// the key's inputs, concurrent writers always agree on the value.
func (c *hopCache) put(key string, hop Hop) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = hop
}
