package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/temperature-heatmap/internal/layout"
)

// --- CachedRenderer tests ---

func TestCachedRenderer_Hit(t *testing.T) {
	r := NewCachedRenderer(DefaultStyle(), 10)
	hm := sampleHeatmap()

	doc1, hit, err := r.SVG(hm, layout.ShowMax)
	require.NoError(t, err)
	assert.False(t, hit)

	doc2, hit, err := r.SVG(hm, layout.ShowMax)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, doc1, doc2)
	assert.Equal(t, 1, r.Len())
}

func TestCachedRenderer_KeyedByModeAndSize(t *testing.T) {
	r := NewCachedRenderer(DefaultStyle(), 10)
	hm := sampleHeatmap()

	_, _, err := r.SVG(hm, layout.ShowMax)
	require.NoError(t, err)

	minDoc, hit, err := r.SVG(hm, layout.ShowMin)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Contains(t, string(minDoc), `fill="#5e4fa2" opacity="0.8"`)

	dims := layout.DefaultDimensions
	dims.Width = 600
	small, hit, err := r.SVG(hm.Resize(dims), layout.ShowMax)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Contains(t, string(small), `width="600"`)

	assert.Equal(t, 3, r.Len())
}

func TestCachedRenderer_NewDatasetMisses(t *testing.T) {
	r := NewCachedRenderer(DefaultStyle(), 10)
	hm := sampleHeatmap()
	_, _, err := r.SVG(hm, layout.ShowMax)
	require.NoError(t, err)

	reloaded := *hm
	reloaded.GeneratedAt = hm.GeneratedAt.Add(1)
	_, hit, err := r.SVG(&reloaded, layout.ShowMax)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCachedRenderer_Disabled(t *testing.T) {
	r := NewCachedRenderer(DefaultStyle(), 0)
	hm := sampleHeatmap()

	_, _, err := r.SVG(hm, layout.ShowMax)
	require.NoError(t, err)
	_, hit, err := r.SVG(hm, layout.ShowMax)
	require.NoError(t, err)

	assert.False(t, hit)
	assert.Equal(t, 0, r.Len())
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", string(result))

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))
	c.put("c", []byte("C")) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", string(result))

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", string(result))
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	c.get("a")

	// "b" is now least recently used.
	c.put("c", []byte("C"))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("A1"))
	c.put("a", []byte("A2"))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", string(result))
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_ShrinksToCapacity(t *testing.T) {
	c := newLRUCache(1)

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))
	c.put("c", []byte("C"))

	assert.Equal(t, 1, c.len())
	result, ok := c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", string(result))
}
