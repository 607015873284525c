package apiclient

import (
	"sync"
)

// Tag names a resource's cached lists.
type Tag string

const (
	TagCategories Tag = "categories"
	TagProducts   Tag = "products"
	TagOrders     Tag = "orders"
)

// ListCache is the read-through cache for list calls. Writes never patch
// entries: a successful mutation invalidates every list of its tag and the
// next read goes back to the server.
type ListCache struct {
	mu      sync.Mutex
	entries map[Tag]map[string]any
	gens    map[Tag]uint64
	subs    map[Tag]map[int]func(Tag)
	nextSub int
}

func NewListCache() *ListCache {
	return &ListCache{
		entries: make(map[Tag]map[string]any),
		gens:    make(map[Tag]uint64),
		subs:    make(map[Tag]map[int]func(Tag)),
	}
}

func (c *ListCache) get(tag Tag, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[tag][key]
	return v, ok
}

func (c *ListCache) generation(tag Tag) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[tag]
}

// put stores v only if no invalidation happened since the fetch began,
// otherwise a slow read started before a write could repopulate stale data.
func (c *ListCache) put(tag Tag, key string, v any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[tag] != gen {
		return
	}
	if c.entries[tag] == nil {
		c.entries[tag] = make(map[string]any)
	}
	c.entries[tag][key] = v
}

// Invalidate drops every cached list for tag and notifies subscribers.
func (c *ListCache) Invalidate(tag Tag) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.gens[tag]++
	delete(c.entries, tag)
	fns := make([]func(Tag), 0, len(c.subs[tag]))
	for _, fn := range c.subs[tag] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(tag)
	}
}

// InvalidateAll drops every cached list under every tag the cache has seen.
func (c *ListCache) InvalidateAll() {
	if c == nil {
		return
	}
	c.mu.Lock()
	seen := make(map[Tag]bool)
	for tag := range c.entries {
		seen[tag] = true
	}
	for tag := range c.gens {
		seen[tag] = true
	}
	for tag := range c.subs {
		seen[tag] = true
	}
	c.mu.Unlock()

	for tag := range seen {
		c.Invalidate(tag)
	}
}

// Subscribe registers fn to run after each invalidation of tag.
func (c *ListCache) Subscribe(tag Tag, fn func(Tag)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	if c.subs[tag] == nil {
		c.subs[tag] = make(map[int]func(Tag))
	}
	c.subs[tag][id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[tag], id)
	}
}

// Len reports how many lists are cached for tag.
func (c *ListCache) Len(tag Tag) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries[tag])
}

func cached[T any](c *ListCache, tag Tag, key string, fetch func() (T, error)) (T, error) {
	if c == nil {
		return fetch()
	}
	if v, ok := c.get(tag, key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	gen := c.generation(tag)
	v, err := fetch()
	if err != nil {
		return v, err
	}
	c.put(tag, key, v, gen)
	return v, nil
}
