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

	"github.com/samber/do"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/emitter"
	uref "dirpx.dev/mixin/utils/reflect"
)

// Instance is a mixin instance: a Type bound to backing instances.
type Instance struct {
	t       *Type
	objects []any
	lookup  *do.Injector
}

// Compile-time check that Instance exposes the mixin capability.
var _ apis.Object = (*Instance)(nil)

// MixinObjects implements apis.Object. It returns the slice given at
// construction, not a copy.
func (i *Instance) MixinObjects() []any { return i.objects }

// Lookup returns the instance's lookup handle (may be nil).
func (i *Instance) Lookup() *do.Injector { return i.lookup }

// MixinType returns the instance's type.
func (i *Instance) MixinType() *Type { return i.t }

// Call invokes the named member. Arguments are adapted to the member's
// declared parameter types; for variadic members the last argument is the
// slice of variadic values.
func (i *Instance) Call(name string, args ...any) ([]any, error) {
	idx, ok := i.t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", apis.ErrUnknownMember, i.t.req.Interface, name)
	}
	m := i.t.members[idx]
	if len(args) != m.Type.NumIn() {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", apis.ErrArity, name, m.Type.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for k, a := range args {
		v, err := emitter.Coerce(reflect.ValueOf(a), m.Type.In(k), uref.DefaultMaxUnwrap)
		if err != nil {
			return nil, fmt.Errorf("mixin(dispatch): %s argument %d: %w", name, k, err)
		}
		in[k] = v
	}

	out, err := i.t.forwarders[idx](apis.Invocation{Objects: i.objects, Lookup: i.lookup, Args: in})
	if err != nil {
		return nil, err
	}
	res := make([]any, len(out))
	for k, v := range out {
		res[k] = v.Interface()
	}
	return res, nil
}

// MustCall is like Call but panics with the error. Shims use it, so that an
// unresolved member fails with *apis.NotImplementedError when invoked.
func (i *Instance) MustCall(name string, args ...any) []any {
	out, err := i.Call(name, args...)
	if err != nil {
		panic(err)
	}
	return out
}

// Get reads the named property through its getter.
func (i *Instance) Get(prop string) (any, error) {
	p, ok := i.t.Property(prop)
	if !ok || p.Getter == "" {
		return nil, fmt.Errorf("%w: no getter for %s.%s", apis.ErrUnknownMember, i.t.req.Interface, prop)
	}
	out, err := i.Call(p.Getter)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Set stores the named property through its setter.
func (i *Instance) Set(prop string, v any) error {
	p, ok := i.t.Property(prop)
	if !ok || p.Setter == "" {
		return fmt.Errorf("%w: no setter for %s.%s", apis.ErrUnknownMember, i.t.req.Interface, prop)
	}
	_, err := i.Call(p.Setter, v)
	return err
}
