package texture

import (
	"image"
	"sync"

	"animal-rig/internal/mathutil"
)

// Resolver resolves an atlas path to a decoded image.
type Resolver interface {
	Resolve(path string) (*image.NRGBA, error)
}

// Cache is a concurrency-safe atlas cache shared by render workers. The
// empty path resolves to the generated default atlas.
type Cache struct {
	mu        sync.RWMutex
	items     map[string]*cacheEntry
	blockSize mathutil.Vec2
	cellPx    int
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a cache whose default atlas uses the given grid.
func NewCache(blockSize mathutil.Vec2, cellPx int) *Cache {
	return &Cache{
		items:     make(map[string]*cacheEntry),
		blockSize: blockSize,
		cellPx:    cellPx,
	}
}

// Resolve loads and caches an atlas. Failed loads are cached too.
func (c *Cache) Resolve(path string) (*image.NRGBA, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, ok := c.items[path]; ok {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	var entry cacheEntry
	if path == "" {
		entry.img = Generate(c.blockSize, c.cellPx)
	} else {
		entry.img, entry.err = Load(path)
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[path]; ok {
		return existing.img, existing.err
	}
	c.items[path] = &entry
	return entry.img, entry.err
}
