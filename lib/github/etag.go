// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import lru "github.com/hashicorp/golang-lru/v2"

// defaultETagCacheSize bounds the number of URLs whose last response is
// kept for conditional requests.
const defaultETagCacheSize = 512

// etagEntry holds a cached response for a URL.
type etagEntry struct {
	etag string
	body []byte
}

// etagCache stores ETag → response body mappings for conditional GET
// requests. When a GET response includes an ETag header, the response
// body is cached. On subsequent GETs to the same URL, the If-None-Match
// header is sent. If GitHub returns 304 Not Modified, the cached body is
// used instead of consuming rate limit quota.
//
// Entries are evicted least-recently-used once the cache is full. A nil
// *etagCache is a valid, always-empty cache.
type etagCache struct {
	entries *lru.Cache[string, etagEntry]
}

// newETagCache returns a cache holding up to size URLs, or nil (caching
// disabled) when size is negative.
func newETagCache(size int) *etagCache {
	if size < 0 {
		return nil
	}
	if size == 0 {
		size = defaultETagCacheSize
	}
	entries, err := lru.New[string, etagEntry](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic("github: etag cache: " + err.Error())
	}
	return &etagCache{entries: entries}
}

// get returns the cached ETag for a URL, or empty string if not cached.
func (cache *etagCache) get(url string) string {
	if cache == nil {
		return ""
	}
	entry, ok := cache.entries.Peek(url)
	if !ok {
		return ""
	}
	return entry.etag
}

// body returns the cached response body for a URL, or nil if not cached.
func (cache *etagCache) body(url string) []byte {
	if cache == nil {
		return nil
	}
	entry, ok := cache.entries.Get(url)
	if !ok {
		return nil
	}
	return entry.body
}

// put stores an ETag and response body for a URL.
func (cache *etagCache) put(url string, etag string, body []byte) {
	if cache == nil || etag == "" {
		return
	}
	cache.entries.Add(url, etagEntry{etag: etag, body: body})
}

// len returns the number of cached URLs.
func (cache *etagCache) len() int {
	if cache == nil {
		return 0
	}
	return cache.entries.Len()
}
