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

package mixin

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/samber/do"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/builder"
	"dirpx.dev/mixin/config"
	"dirpx.dev/mixin/registry"
	"dirpx.dev/mixin/synth"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig(), ext: registry.NewExtensions(), bld: builder.New()}
	publish(&state{}, s, true, true)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("mixin: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("mixin: builder returned nil resolver")
	// ErrNilCache is returned when a builder returns a nil cache.
	ErrNilCache = errors.New("mixin: builder returned nil cache")
)

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension payload handed to the builder.
	ext any
	// lookup is the synthesizer's lookup handle (may be nil).
	lookup *do.Injector
	// reg is the global annotation registry.
	reg apis.Registry
	// res is the global member resolver.
	res apis.Resolver
	// cache is the global type cache.
	cache apis.Cache
	// bld is the global builder.
	bld apis.Builder
	// syn is the default synthesizer over res and cache.
	syn *synth.Synthesizer
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pres indicates whether the res is pinned (immutable).
	pres bool
}

// clone returns a shallow copy of s for a writer to modify.
func (s *state) clone() *state {
	c := *s
	return &c
}

// publish completes next from old and stores it. The registry and resolver
// are rebuilt when requested and not pinned. The cache is always rebuilt
// because cached types depend on every other layer.
func publish(old, next *state, rebuildReg, rebuildRes bool) {
	if rebuildReg && !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
	}
	if rebuildRes && !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
	}
	next.cache = next.bld.BuildCache(next.cfg, old.cache, next.ext)

	// Ensure non-nil layers.
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	if next.cache == nil {
		panic(ErrNilCache)
	}

	next.syn = synth.New(next.cfg, next.res, synth.WithCache(next.cache), synth.WithLookup(next.lookup))
	st.Store(next)
}

// pin publishes a copy of the current snapshot with updated pins. Nothing is
// rebuilt and the cache is kept.
func pin(mut func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()
	next := st.Load().clone()
	mut(next)
	st.Store(next)
}

// refresh runs mut against the current snapshot under the writer lock and,
// when it succeeds, publishes a copy with a fresh cache. Synthesis still in
// flight completes against the old cache and never repopulates the new one.
func refresh(mut func(*state) error) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	if err := mut(old); err != nil {
		return err
	}
	publish(old, old.clone(), false, false)
	return nil
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged, except for ext
// which is always replaced. Registry and resolver are pinned iff given.
// The type cache is always rebuilt.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	if cfg != nil {
		next.cfg = *cfg
	}
	next.ext = ext
	if bld != nil {
		next.bld = bld
	}
	next.reg, next.preg = reg, reg != nil
	next.res, next.pres = res, res != nil
	publish(old, next, true, true)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg. It rebuilds the registry
// and resolver unless pinned, and drops every cached type.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	next.cfg = cfg
	publish(old, next, true, true)
}

// Registry returns the global annotation registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets and pins the global registry. The resolver is rebuilt
// over it unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	next.reg, next.preg = reg, true
	publish(old, next, false, true)
}

// Resolver returns the global member resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	next.res, next.pres = res, true
	publish(old, next, false, false)
}

// Cache returns the global type cache.
func Cache() apis.Cache {
	return st.Load().cache
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	next.bld = b
	publish(old, next, true, true)
}

// SetExt replaces the extension payload and rebuilds non-pinned layers via
// the builder. The default builder understands an apis.ExtensionSet or a
// value implementing builder.ExtensionCarrier.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	next.ext = ext
	publish(old, next, true, true)
}

// ExtAs returns the global extension payload as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// Lookup returns the synthesizer's lookup handle (may be nil).
func Lookup() *do.Injector {
	return st.Load().lookup
}

// SetLookup sets the synthesizer's lookup handle. Service overrides are
// resolved against it, and it may provide an alternate apis.Synthesizer.
// Cached types are dropped.
func SetLookup(i *do.Injector) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	next.lookup = i
	publish(old, next, false, false)
}

// IsRegistryPinned returns whether the global registry is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global registry immutable.
func PinRegistry() {
	pin(func(s *state) { s.preg = true })
}

// UnpinRegistry makes the global registry mutable again.
func UnpinRegistry() {
	pin(func(s *state) { s.preg = false })
}

// IsResolverPinned returns whether the global resolver is pinned (immutable).
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver makes the global resolver immutable.
func PinResolver() {
	pin(func(s *state) { s.pres = true })
}

// UnpinResolver makes the global resolver mutable again.
func UnpinResolver() {
	pin(func(s *state) { s.pres = false })
}
