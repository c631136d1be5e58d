package sheet

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/fretforge/fretforge/engine/core"
	"github.com/fretforge/fretforge/pkg/config"
	"github.com/fretforge/fretforge/pkg/logger"
)

// CachedSource places a TTL row cache in front of any Source so repeated
// page loads do not hammer the sheet endpoint. Misses fall through to the
// wrapped source; a fetch failure is never cached.
type CachedSource struct {
	next  Source
	cache *ristretto.Cache[string, []core.Row]
	cfg   config.CacheConfig
}

func NewCachedSource(next Source, cfg config.CacheConfig) (*CachedSource, error) {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 256
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, []core.Row]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create row cache: %w", err)
	}
	return &CachedSource{next: next, cache: cache, cfg: cfg}, nil
}

func (s *CachedSource) Rows(ctx context.Context, tab string) ([]core.Row, error) {
	if rows, ok := s.cache.Get(tab); ok {
		logger.FromContext(ctx).Debug("row cache hit", "tab", tab)
		return rows, nil
	}
	rows, err := s.next.Rows(ctx, tab)
	if err != nil {
		return nil, err
	}
	s.cache.SetWithTTL(tab, rows, 1, s.cfg.TTL)
	return rows, nil
}

// Wait flushes pending cache writes. Ristretto applies sets asynchronously;
// tests call this to observe a deterministic cache state.
func (s *CachedSource) Wait() {
	s.cache.Wait()
}

// Invalidate drops one tab from the cache.
func (s *CachedSource) Invalidate(tab string) {
	s.cache.Del(tab)
}
