package cache

import (
	"context"
	"time"

	"github.com/matzehuels/citygraph/pkg/observability"
)

// instrumented reports cache traffic to the observability cache hooks.
type instrumented struct {
	Cache
}

// Instrument wraps c so that every Get reports a hit or miss and every Set
// reports its size, labelled with the key's [KeyType].
func Instrument(c Cache) Cache {
	return instrumented{Cache: c}
}

func (i instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := i.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, ok, err
}

func (i instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := i.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}
