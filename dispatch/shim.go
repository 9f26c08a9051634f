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

package dispatch

import (
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/mixin/apis"
)

// shims maps interface types to their shim constructors.
var shims sync.Map // map[reflect.Type]func(*Instance) any

// RegisterShim registers the shim constructor for interface T. Generated
// shims call it from init. A later registration replaces an earlier one.
func RegisterShim[T any](fn func(*Instance) T) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("mixin(dispatch): shim target %v is not an interface", t))
	}
	shims.Store(t, func(i *Instance) any { return fn(i) })
}

// HasShim reports whether a shim is registered for t.
func HasShim(t reflect.Type) bool {
	_, ok := shims.Load(t)
	return ok
}

// As wraps i in the shim registered for T.
func As[T any](i *Instance) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	if i == nil {
		return zero, nil
	}
	if i.t.req.Interface != t {
		return zero, fmt.Errorf("%w: instance is a %v, not a %v", apis.ErrNoShim, i.t.req.Interface, t)
	}
	fn, ok := shims.Load(t)
	if !ok {
		return zero, fmt.Errorf("%w: %v", apis.ErrNoShim, t)
	}
	return fn.(func(*Instance) any)(i).(T), nil
}

// Out returns result k of a MustCall as T. A nil result yields the zero T.
func Out[T any](out []any, k int) T {
	v, _ := out[k].(T)
	return v
}
