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
	"fmt"
	"reflect"

	"github.com/samber/do"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/builder"
	"dirpx.dev/mixin/config"
	"dirpx.dev/mixin/dispatch"
)

// ErrNoExtensions is returned by Extend when the extension payload carries
// no apis.ExtensionSet.
var ErrNoExtensions = errors.New("mixin: extension payload carries no extension set")

// Synthesizer returns the synthesizer used by the package-level helpers.
// If the lookup handle provides an apis.Synthesizer, that one is used;
// otherwise the default synthesizer over the global resolver and cache.
func Synthesizer() apis.Synthesizer {
	s := st.Load()
	if s.lookup != nil {
		if alt, err := do.Invoke[apis.Synthesizer](s.lookup); err == nil && alt != nil {
			return alt
		}
	}
	return s.syn
}

// GetOrCreateType returns the synthesized type for interface T over the
// given backing types, creating it on first use.
func GetOrCreateType[T any](backings ...reflect.Type) (apis.MixinType, error) {
	return Synthesizer().GetOrCreateType(reflect.TypeFor[T](), backings...)
}

// CreateInstance returns a T backed by instances, in order. Members of T are
// serviced by the first instance offering a compatible method, by struct
// fields for getters and setters, or fail with *apis.NotImplementedError
// when invoked. A nil or empty instances list yields the zero T and no error.
//
// T must have a shim registered with dispatch.RegisterShim (see
// cmd/mixingen); otherwise apis.ErrNoShim is returned.
func CreateInstance[T any](instances ...any) (T, error) {
	return CreateInstanceWith[T](nil, instances...)
}

// CreateInstanceWith is like CreateInstance and attaches lookup to the
// instance. Service overrides prefer a same-typed service from lookup.
func CreateInstanceWith[T any](lookup *do.Injector, instances ...any) (T, error) {
	var zero T
	obj, err := Synthesizer().CreateInstance(reflect.TypeFor[T](), instances, lookup)
	if err != nil || obj == nil {
		return zero, err
	}
	if v, ok := obj.(T); ok {
		return v, nil
	}
	inst, ok := obj.(*dispatch.Instance)
	if !ok {
		return zero, fmt.Errorf("%w: %T", apis.ErrNoShim, obj)
	}
	return dispatch.As[T](inst)
}

// MustCreateInstance is like CreateInstance but panics on error.
func MustCreateInstance[T any](instances ...any) T {
	v, err := CreateInstance[T](instances...)
	if err != nil {
		panic(err)
	}
	return v
}

// IsMixin reports whether v exposes the mixin capability.
func IsMixin(v any) bool {
	_, ok := v.(apis.Object)
	return ok
}

// Objects returns the backing instances of a mixin instance, or nil when v
// is not one.
func Objects(v any) []any {
	if o, ok := v.(apis.Object); ok {
		return o.MixinObjects()
	}
	return nil
}

// Annotate attaches overrides to interface T in the global registry.
// A fresh type cache is published so the overrides apply to the next synthesis.
func Annotate[T any](ovs apis.Overrides) error {
	return refresh(func(s *state) error {
		return s.reg.Register(reflect.TypeFor[T](), ovs)
	})
}

// AnnotateYAML is like Annotate with overrides decoded by config.ParseOverrides.
func AnnotateYAML[T any](data []byte) error {
	ovs, err := config.ParseOverrides(data)
	if err != nil {
		return err
	}
	return Annotate[T](ovs)
}

// Extend registers an extension function in the global extension set.
// fn takes the backing instance first, e.g. func(p *Person, greeting string) string.
// A fresh type cache is published so the extension applies to the next synthesis.
func Extend(name string, fn any) error {
	return refresh(func(s *state) error {
		set := builder.Extensions(s.ext)
		if set == nil {
			return ErrNoExtensions
		}
		return set.Add(name, fn)
	})
}
