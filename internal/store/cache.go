package store

import (
	"sync"

	"github.com/ironsheep/imagekit/internal/raster"
)

// Cache is a Store that keeps loaded rasters in memory to avoid redundant
// disk reads and decodes.
//
// Rasters are keyed by the exact path string passed to Load. Different paths
// to the same file (e.g., relative vs absolute) result in separate entries.
// List, LoadAll and Save pass straight through to the wrapped store; Save does not
// populate the cache.
//
// Cached rasters stay in memory until Evict or Clear removes them. A
// long-running process that handles many images should clear the cache
// periodically.
//
// # Example Usage
//
//	cache := store.NewCache(store.NewFileStore())
//	r, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    return err
//	}
//	// Use r...
//	cache.Evict("/path/to/image.png") // Optional: free memory
type Cache struct {
	next Store

	mu      sync.RWMutex
	rasters map[string]*raster.Raster
}

// NewCache creates an empty cache in front of next.
func NewCache(next Store) *Cache {
	return &Cache{
		next:    next,
		rasters: make(map[string]*raster.Raster),
	}
}

// Load returns the cached raster for path, loading it from the wrapped
// store on a miss. Failed loads are not cached.
func (c *Cache) Load(path string) (*raster.Raster, error) {
	c.mu.RLock()
	if r, ok := c.rasters[path]; ok {
		c.mu.RUnlock()
		return r, nil
	}
	c.mu.RUnlock()

	r, err := c.next.Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.rasters[path] = r
	c.mu.Unlock()

	return r, nil
}

// List delegates to the wrapped store.
func (c *Cache) List(dir string) ([]string, error) {
	return c.next.List(dir)
}

// LoadAll delegates to the wrapped store.
func (c *Cache) LoadAll(dir string) ([]*raster.Raster, error) {
	return c.next.LoadAll(dir)
}

// Save delegates to the wrapped store.
func (c *Cache) Save(r *raster.Raster, path string) error {
	return c.next.Save(r, path)
}

// Evict removes the raster cached for path, if any.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.rasters, path)
	c.mu.Unlock()
}

// Clear removes every cached raster.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.rasters = make(map[string]*raster.Raster)
	c.mu.Unlock()
}

// Len returns the number of cached rasters.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rasters)
}
