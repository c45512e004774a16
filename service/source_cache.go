package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ludo-technologies/prexpr/domain"
)

// FileReadResult holds the expressions read from a single file
type FileReadResult struct {
	Sources []domain.ExpressionSource
	ReadErr error
}

// SourceCache stores the expressions read from each input file. After Seal
// is called the cache is read-only and safe for concurrent access without
// locks.
type SourceCache struct {
	results map[string]*FileReadResult
	sealed  bool
}

// NewSourceCache creates a new empty SourceCache.
func NewSourceCache() *SourceCache {
	return &SourceCache{
		results: make(map[string]*FileReadResult),
	}
}

// Put stores a read result. Must be called before Seal().
func (c *SourceCache) Put(filePath string, result *FileReadResult) {
	if c.sealed {
		return
	}
	c.results[filePath] = result
}

// Seal marks the cache as read-only.
func (c *SourceCache) Seal() {
	c.sealed = true
}

// Get retrieves a cached read result. Returns (result, true) on hit.
func (c *SourceCache) Get(filePath string) (*FileReadResult, bool) {
	r, ok := c.results[filePath]
	return r, ok
}

// Len returns the number of entries in the cache.
func (c *SourceCache) Len() int {
	return len(c.results)
}

// PopulateSourceCache reads all files in parallel and returns a sealed
// cache. A concurrency of 0 means runtime.GOMAXPROCS(0). Files not read
// before ctx is done carry ctx's error.
func PopulateSourceCache(ctx context.Context, reader domain.ExpressionFileReader, files []string, concurrency int) *SourceCache {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]*FileReadResult, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i, filePath := range files {
		wg.Add(1)
		go func(idx int, fp string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = &FileReadResult{ReadErr: fmt.Errorf("reading %s cancelled: %w", fp, ctx.Err())}
				return
			}

			sources, err := reader.ReadExpressions(fp)
			results[idx] = &FileReadResult{Sources: sources, ReadErr: err}
		}(i, filePath)
	}

	wg.Wait()

	cache := NewSourceCache()
	for i, fp := range files {
		cache.Put(fp, results[i])
	}
	cache.Seal()

	return cache
}
