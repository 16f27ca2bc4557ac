// Package cache provides the byte cache shared by the lyrics client, the
// layout pipeline and the HTTP server.
//
// A [Cache] stores opaque values under string keys with an optional TTL.
// Backends:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON envelope per key under the XDG cache dir (CLI)
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: TTL-indexed collection for server deployments
//
// Keys are produced by a [Keyer] so that every consumer agrees on the key
// layout. Layout keys hash the text together with the canvas size and print
// mode; a layout is a pure function of those inputs and may be memoized
// indefinitely, the TTL only bounds storage.
package cache

import (
	"context"
	"time"
)

// TTLs for the different kinds of cached values.
const (
	TTLHTTP     = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get returns (nil, false, nil) on a miss. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the layout inputs besides the text.
type LayoutKeyOpts struct {
	CanvasSize float64 `json:"canvas_size"`
	PrintMode  bool    `json:"print_mode"`
}

// ArtifactKeyOpts are the render inputs besides the layout.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Theme       string  `json:"theme"`
	CenterLabel bool    `json:"center_label,omitempty"`
	QR          string  `json:"qr,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// HTTPKey keys a raw upstream response.
	HTTPKey(namespace, key string) string
	// LayoutKey keys a layout document by the hash of its text.
	LayoutKey(textHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the unscoped Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) LayoutKey(textHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", textHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
