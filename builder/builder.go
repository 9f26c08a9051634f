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

package builder

import (
	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/cache"
	"dirpx.dev/mixin/matcher"
	"dirpx.dev/mixin/registry"
	"dirpx.dev/mixin/resolver"
	"dirpx.dev/mixin/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided configuration
// and pre-existing registry. If a pre-existing registry is provided, its entries are copied
// into the new registry.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if preg != nil {
		for _, e := range preg.Entries() {
			_ = nreg.Register(e.Type, e.Overrides)
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver based on the provided configuration
// and registry. The chain is Static -> Open -> Backing -> Extension -> Field -> Unimplemented.
// If ext is (or carries) an apis.ExtensionSet, the extension strategy searches it.
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver, ext any) apis.Resolver {
	return resolver.New(reg, matcher.New(cfg), Extensions(ext),
		strategy.NewStaticStrategy(),
		strategy.NewOpenStrategy(),
		strategy.NewBackingStrategy(),
		strategy.NewExtensionStrategy(),
		strategy.NewFieldStrategy(),
		strategy.NewUnimplementedStrategy(),
	)
}

// BuildCache builds and returns a new, empty apis.Cache. Types already
// synthesized are bound to the Config they were built with, so the previous
// cache is never migrated.
func (b *builder) BuildCache(_ apis.Config, _ apis.Cache, _ any) apis.Cache {
	return cache.New()
}

// ExtensionCarrier is implemented by extension payloads that carry an
// apis.ExtensionSet among other things.
type ExtensionCarrier interface {
	ExtensionSet() apis.ExtensionSet
}

// Extensions extracts the apis.ExtensionSet from ext, if any.
func Extensions(ext any) apis.ExtensionSet {
	switch e := ext.(type) {
	case apis.ExtensionSet:
		return e
	case ExtensionCarrier:
		return e.ExtensionSet()
	default:
		return nil
	}
}
