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
)

var (
	// ErrEmptyName is returned when an extension is added without a name.
	ErrEmptyName = errors.New("mixin(registry): empty extension name provided")
	// ErrNotExtension is returned when an extension is not a func taking at least one parameter.
	ErrNotExtension = errors.New("mixin(registry): extension must be a func with at least one parameter")
)

// NewExtensions constructs an empty, concurrency-safe ExtensionSet.
func NewExtensions() apis.ExtensionSet {
	return &extensions{m: make(map[string][]reflect.Value)}
}

// extensions is an ExtensionSet guarded by a RWMutex.
type extensions struct {
	mu    sync.RWMutex
	m     map[string][]reflect.Value
	count int
}

// Add registers fn under name.
func (e *extensions) Add(name string, fn any) error {
	if name == "" {
		return ErrEmptyName
	}
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() || v.Type().NumIn() == 0 {
		return ErrNotExtension
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.m[name] = append(e.m[name], v)
	e.count++
	return nil
}

// Lookup returns the funcs registered under name, in registration order.
func (e *extensions) Lookup(name string) []reflect.Value {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fns := e.m[name]
	if len(fns) == 0 {
		return nil
	}
	return append([]reflect.Value(nil), fns...)
}

// Len returns the number of registered funcs.
func (e *extensions) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.count
}
