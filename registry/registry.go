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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/mixin/apis"
	uref "dirpx.dev/mixin/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("mixin(registry): nil reflect.Type provided")
	// ErrNotInterface is returned when overrides are attached to a non-interface type.
	ErrNotInterface = errors.New("mixin(registry): overrides can only be attached to interface types")
	// ErrEmptyMember is returned when an override has an empty member name.
	ErrEmptyMember = errors.New("mixin(registry): empty member name provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// an interface with different overrides.
	ErrConflictingRegistration = errors.New("mixin(registry): conflicting override registration")
)

// New constructs an annotation Registry. Pointer-to-interface types
// (reflect.TypeOf((*I)(nil))) are unwrapped up to cfg.MaxDepth levels.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = uref.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps interface reflect.Type to its overrides.
	m sync.Map // map[reflect.Type]apis.Overrides
	// count tracks the number of registered entries.
	count int
}

// Register attaches overrides to the interface t.
// It is idempotent for the same (type,overrides) pair.
func (r *registry) Register(t reflect.Type, ovs apis.Overrides) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	for name := range ovs {
		if name == "" {
			return ErrEmptyMember
		}
	}

	it, err := r.normalize(t)
	if err != nil {
		return err
	}
	ovs = ovs.Clone()

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(it); ok {
		if Equal(old.(apis.Overrides), ovs) {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(it); ok {
		if Equal(old.(apis.Overrides), ovs) {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(it, ovs)
	r.count++
	return nil
}

// Lookup returns the overrides attached to t, if any.
func (r *registry) Lookup(t reflect.Type) (apis.Overrides, bool) {
	if t == nil {
		return nil, false
	}
	it, err := r.normalize(t)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(it); ok {
		return v.(apis.Overrides).Clone(), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:      key.(reflect.Type),
			Overrides: value.(apis.Overrides).Clone(),
		})
		return true
	})
	return entries
}

// Count returns the number of annotated interfaces.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}

// normalize unwraps pointers to reach the interface type.
func (r *registry) normalize(t reflect.Type) (reflect.Type, error) {
	for i := 0; t.Kind() == reflect.Ptr && i < r.cfg.MaxDepth; i++ {
		t = t.Elem()
	}
	if t.Kind() != reflect.Interface {
		return nil, ErrNotInterface
	}
	return t, nil
}

// Equal reports whether two override sets are the same annotation.
// Static collaborators are compared with reflect.DeepEqual.
func Equal(a, b apis.Overrides) bool {
	if len(a) != len(b) {
		return false
	}
	for name, x := range a {
		y, ok := b[name]
		if !ok || x.Target != y.Target || x.Service != y.Service {
			return false
		}
		if !reflect.DeepEqual(x.Static, y.Static) {
			return false
		}
	}
	return true
}
