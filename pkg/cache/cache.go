// Package cache stores rendered images and query reports between runs.
//
// # Backends
//
//   - [FileCache]: sharded JSON files under the user cache directory (CLI)
//   - [RedisCache]: a shared Redis instance (HTTP server, multiple replicas)
//   - [NullCache]: never stores anything (--no-cache)
//
// All backends satisfy [Cache]. Keys are built by a [Keyer] from a hash of
// the graph content plus the options that affect the output, so editing a
// graph file or changing a flag never serves a stale artifact.
//
// Wrap a backend with [Instrument] to report hits, misses, and writes to the
// registered observability cache hooks.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/citygraph/pkg/graph"
)

// Default entry lifetimes.
const (
	TTLReport   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GetJSON decodes the value under key into v.
// Returns ErrCacheMiss if the key is absent.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, v)
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}

// GraphHash returns a content hash of g covering node order, edge order, and
// weights. Two graphs with the same hash answer every query identically.
func GraphHash(g *graph.Graph) string {
	data, _ := json.Marshal(g.ToSpec())
	return Hash(data)
}
