/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cache memoizes synthesized mixin types by request.
//
// Keys are derived from the fully qualified names of the interface and the
// ordered backing types. Distinct types that render to the same name share a
// bucket and are told apart by reflect.Type identity. Concurrent requests for
// the same key are collapsed with singleflight, so a type is synthesized at
// most once per key; failed syntheses are never cached.
package cache

import (
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/mixin/apis"
	uref "dirpx.dev/mixin/utils/reflect"
)

var (
	// cacheLookups counts type cache lookups by result
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mixin_cache_lookups_total",
		Help: "Total mixin type cache lookups by result",
	}, []string{"result"})
)

// New constructs an empty, concurrency-safe apis.Cache.
func New() apis.Cache {
	return &cache{buckets: make(map[string][]apis.MixinType)}
}

// cache is a map of key buckets guarded by a RWMutex, plus a singleflight
// group deduplicating concurrent syntheses.
type cache struct {
	mu      sync.RWMutex
	buckets map[string][]apis.MixinType
	count   int
	flight  singleflight.Group
}

// Compile-time check that cache implements apis.Cache.
var _ apis.Cache = (*cache)(nil)

// cachedMarker is implemented by types that track publication.
type cachedMarker interface {
	MarkCached()
}

// GetOrCreate implements apis.Cache.
func (c *cache) GetOrCreate(req apis.Request, create func() (apis.MixinType, error)) (apis.MixinType, error) {
	key := uref.Key(req.Interface, req.Backings)

	// Check cache first (fast path)
	if t, ok := c.lookup(key, req); ok {
		cacheLookups.WithLabelValues("hit").Inc()
		return t, nil
	}

	for {
		// Singleflight: only one synthesis per key
		v, err, shared := c.flight.Do(key, func() (any, error) {
			if t, ok := c.lookup(key, req); ok {
				return t, nil
			}
			cacheLookups.WithLabelValues("miss").Inc()
			slog.Debug("Mixin type cache miss", slog.String("key", key))

			t, err := create()
			if err != nil {
				return nil, err
			}
			return c.insert(key, t), nil
		})
		if err != nil {
			return nil, err
		}

		t := v.(apis.MixinType)
		if t.Request().Same(req) {
			if shared {
				cacheLookups.WithLabelValues("shared").Inc()
			}
			return t, nil
		}
		// Joined a flight for a different request whose key collides; retry.
		if t, ok := c.lookup(key, req); ok {
			return t, nil
		}
	}
}

// insert stores t under key unless an equal request is already cached, in
// which case the cached type is returned.
func (c *cache) insert(key string, t apis.MixinType) apis.MixinType {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Check if an entry was added while we were synthesizing
	for _, existing := range c.buckets[key] {
		if existing.Request().Same(t.Request()) {
			return existing
		}
	}
	c.buckets[key] = append(c.buckets[key], t)
	c.count++
	if m, ok := t.(cachedMarker); ok {
		m.MarkCached()
	}
	slog.Debug("Mixin type cached", slog.String("type", t.Name()), slog.String("key", key))
	return t
}

// lookup finds the type for req in the bucket of key.
func (c *cache) lookup(key string, req apis.Request) (apis.MixinType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.buckets[key] {
		if t.Request().Same(req) {
			return t, true
		}
	}
	return nil, false
}

// Lookup implements apis.Cache.
func (c *cache) Lookup(req apis.Request) (apis.MixinType, bool) {
	return c.lookup(uref.Key(req.Interface, req.Backings), req)
}

// Entries implements apis.Cache.
func (c *cache) Entries() []apis.MixinType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]apis.MixinType, 0, c.count)
	for _, b := range c.buckets {
		out = append(out, b...)
	}
	return out
}

// Count implements apis.Cache.
func (c *cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// Reset implements apis.Cache.
func (c *cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buckets = make(map[string][]apis.MixinType)
	c.count = 0
}
