package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRUCache is an in-process CacheRepository with size and TTL bounds.
type LRUCache struct {
	lru *expirable.LRU[string, string]
}

func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	return &LRUCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (c *LRUCache) Get(_ context.Context, key string) (string, bool) {
	return c.lru.Get(key)
}

func (c *LRUCache) Set(_ context.Context, key string, value string) error {
	c.lru.Add(key, value)
	return nil
}

func (c *LRUCache) Len() int {
	return c.lru.Len()
}
