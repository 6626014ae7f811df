// Package cache stores rendered artifacts keyed by scene content.
//
// Three backends implement [Cache]: [NullCache] (caching disabled),
// [FileCache] for the CLI and [RedisCache] for the server. Keys come from
// [ArtifactKey], which hashes the scene hash together with every option
// that changes the output.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// ArtifactTTL is how long rendered SVG, PNG, DOT and JSON output is kept.
const ArtifactTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value and true on a hit. Misses are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactOpts are the render options that affect an artifact.
type ArtifactOpts struct {
	Format   string `json:"format"`
	Dangling string `json:"dangling"`
	Detailed bool   `json:"detailed,omitempty"`
	// Settings is a hash of the graph settings in effect.
	Settings string `json:"settings,omitempty"`
}

// ArtifactKey returns the cache key of a rendered scene.
func ArtifactKey(sceneHash string, opts ArtifactOpts) string {
	// ArtifactOpts has only plain fields; Marshal cannot fail.
	data, _ := json.Marshal(struct {
		Scene string       `json:"scene"`
		Opts  ArtifactOpts `json:"opts"`
	}{sceneHash, opts})
	return "artifact:" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
