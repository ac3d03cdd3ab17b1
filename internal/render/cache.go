package render

import (
	"bytes"
	"container/list"
	"fmt"
	"sync"

	"github.com/couchcryptid/temperature-heatmap/internal/layout"
)

// CachedRenderer memoizes rendered SVG documents per heatmap, mode and canvas
// size in an in-memory LRU cache.
type CachedRenderer struct {
	style Style
	cache *lruCache
}

// NewCachedRenderer creates a renderer that keeps up to maxEntries documents.
func NewCachedRenderer(style Style, maxEntries int) *CachedRenderer {
	return &CachedRenderer{
		style: style,
		cache: newLRUCache(maxEntries),
	}
}

// Style returns the style every document is rendered with.
func (r *CachedRenderer) Style() Style { return r.style }

// SVG returns hm rendered under mode and whether it came from the cache.
// The returned slice is shared and must not be modified.
func (r *CachedRenderer) SVG(hm *layout.Heatmap, mode layout.Mode) ([]byte, bool, error) {
	key := cacheKey(hm, mode)
	if doc, ok := r.cache.get(key); ok {
		return doc, true, nil
	}
	var buf bytes.Buffer
	if err := SVG(&buf, hm, mode, r.style); err != nil {
		return nil, false, err
	}
	doc := buf.Bytes()
	r.cache.put(key, doc)
	return doc, false, nil
}

// Len reports the number of cached documents.
func (r *CachedRenderer) Len() int { return r.cache.len() }

// cacheKey includes the build time so a reloaded dataset never hits entries
// rendered from the previous one.
func cacheKey(hm *layout.Heatmap, mode layout.Mode) string {
	d := hm.Layout.Dimensions
	return fmt.Sprintf("%d|%s|%gx%g", hm.GeneratedAt.UnixNano(), mode, d.Width, d.Height)
}

// lruCache is a mutex-guarded LRU of rendered documents. The list front is
// the most recently used entry.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List
	entries    map[string]*list.Element
}

type cacheEntry struct {
	key string
	doc []byte
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).doc, true
}

// put is a no-op when the cache is disabled (maxEntries <= 0).
func (c *lruCache) put(key string, doc []byte) {
	if c.maxEntries <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).doc = doc
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, doc: doc})

	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
