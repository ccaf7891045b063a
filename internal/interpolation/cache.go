package interpolation

import (
	"sync"

	"seismic-api/internal/metrics"
	"seismic-api/internal/models"
)

// indexCache holds one spatial index per distinct set of valid table rows.
// Each index is built at most once and published only after construction finishes.
type indexCache struct {
	mu      sync.Mutex
	entries map[string]*indexEntry
}

type indexEntry struct {
	once  sync.Once
	index *spatialIndex
}

func newIndexCache() *indexCache {
	return &indexCache{entries: make(map[string]*indexEntry)}
}

// get returns the index for rows, building it on first use.
func (c *indexCache) get(coords []models.Coordinate, rows []int) *spatialIndex {
	key := rowSetKey(len(coords), rows)

	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		entry = &indexEntry{}
		c.entries[key] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.index = newSpatialIndex(coords, rows)
		metrics.IndexBuildsTotal.Inc()
	})
	return entry.index
}

func (c *indexCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// rowSetKey encodes the row set as a bitmap over the table.
func rowSetKey(n int, rows []int) string {
	bits := make([]byte, (n+7)/8)
	for _, r := range rows {
		bits[r/8] |= 1 << (r % 8)
	}
	return string(bits)
}
