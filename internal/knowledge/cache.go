package knowledge

import (
	"sync"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

// PartitionLoader fetches the records of one category partition.
type PartitionLoader func(category models.Category) ([]*models.Record, error)

// Cache memoizes per-category record slices. Each key is loaded at most
// once and immutable afterwards. When the loader fails or returns nothing
// the cache falls back to filtering the full corpus; callers never see an
// error, at worst an empty slice.
type Cache struct {
	loader PartitionLoader
	corpus *Corpus

	mu      sync.Mutex
	entries map[models.Category][]*models.Record
}

// NewCache builds a cache over the given loader and fallback corpus.
// loader may be nil, in which case every category is served by filtering
// the corpus.
func NewCache(loader PartitionLoader, corpus *Corpus) *Cache {
	return &Cache{
		loader:  loader,
		corpus:  corpus,
		entries: make(map[models.Category][]*models.Record),
	}
}

// Get returns the records of one category. The first call per category
// loads and memoizes; the mutex keeps check-then-load atomic per cache so
// concurrent first access does not duplicate I/O.
func (c *Cache) Get(category models.Category) []*models.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	if records, ok := c.entries[category]; ok {
		return records
	}

	var records []*models.Record
	if c.loader != nil {
		if loaded, err := c.loader(category); err == nil && len(loaded) > 0 {
			records = loaded
		}
	}
	if records == nil && c.corpus != nil {
		for _, rec := range c.corpus.Records {
			if rec.Category == category {
				records = append(records, rec)
			}
		}
	}
	c.entries[category] = records
	return records
}
