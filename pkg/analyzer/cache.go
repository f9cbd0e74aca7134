package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/sfcache"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/null"
)

// SummaryCache stores rendered summaries by request key. Concurrent GetSet
// calls for the same key share one computation.
type SummaryCache interface {
	GetSet(ctx context.Context, key string, fetch func(context.Context) ([]byte, error), ttl ...time.Duration) ([]byte, error)
	Close() error
}

// Summary cache defaults.
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 24 * time.Hour
)

// NewSummaryCache returns an in-memory cache holding at most size summaries,
// each for at most ttl. Nothing is persisted.
func NewSummaryCache(size int, ttl time.Duration) (SummaryCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c, err := sfcache.NewTiered[string, []byte](null.New[string, []byte](), sfcache.Size(size), sfcache.TTL(ttl))
	if err != nil {
		return nil, fmt.Errorf("create summary cache: %w", err)
	}
	return c, nil
}
