package api

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/pkg/metrics"
)

const cacheSize = 256

// responseCache holds raw GET response bodies keyed by request URL, with a
// single TTL for all entries. Mutating calls never pass through it.
type responseCache struct {
	lru *expirable.LRU[string, []byte]
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		lru: expirable.NewLRU[string, []byte](cacheSize, nil, ttl),
	}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	body, ok := c.lru.Get(key)
	if ok {
		metrics.APICacheHitsTotal.Inc()
	} else {
		metrics.APICacheMissesTotal.Inc()
	}
	return body, ok
}

func (c *responseCache) put(key string, body []byte) {
	c.lru.Add(key, body)
}
