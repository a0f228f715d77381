// Package cache provides the layered fetch cache that keeps repeated
// analysis runs from re-downloading articles and source pages.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage contract shared by all layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a URL
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "factlens:v1:" + hex.EncodeToString(sum[:])
}

// Noop is a disabled cache that stores nothing
type Noop struct{}

func (Noop) Get(string) ([]byte, bool)               { return nil, false }
func (Noop) Set(string, []byte, time.Duration) error { return nil }
func (Noop) Delete(string) error                     { return nil }
func (Noop) Clear() error                            { return nil }
