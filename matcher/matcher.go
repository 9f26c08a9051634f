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

// Package matcher decides whether a candidate member can service an
// interface member whose declared types differ structurally.
//
// Two types are compatible when any of the following holds:
//
//   - they are identical;
//   - both are interfaces;
//   - the required type is an interface and the candidate is not;
//   - the candidate is the empty interface (an open parameter);
//   - the candidate is an interface implemented by the required type;
//   - both are named integer types of the same kind ("enums");
//   - both are slices, pointers, same-length arrays, maps, same-direction
//     channels or funcs with compatible element, key and signature types;
//   - both are instantiations of the same generic type with the same number
//     of type arguments and a compatible structure.
//
// Recursion is bounded by apis.Config.MaxDepth.
package matcher

import (
	"reflect"

	"dirpx.dev/mixin/apis"
	uref "dirpx.dev/mixin/utils/reflect"
)

// Compile-time check that matcher implements apis.Matcher.
var _ apis.Matcher = (*matcher)(nil)

// matcher is a stateless apis.Matcher bounded by a maximum depth.
type matcher struct {
	maxDepth int
}

// New constructs a Matcher from Config.
func New(cfg apis.Config) apis.Matcher {
	depth := cfg.MaxDepth
	if depth <= 0 {
		depth = uref.DefaultMaxUnwrap
	}
	return &matcher{maxDepth: depth}
}

// Compatible implements apis.Matcher.
func (m *matcher) Compatible(candidate, required reflect.Type) bool {
	return m.compatible(candidate, required, 0)
}

// Params implements apis.Matcher.
func (m *matcher) Params(candidate, required reflect.Type, skipSelf bool) bool {
	if candidate == nil || required == nil || candidate.Kind() != reflect.Func || required.Kind() != reflect.Func {
		return false
	}
	offset := 0
	if skipSelf {
		offset = 1
	}
	if candidate.NumIn()-offset != required.NumIn() || candidate.IsVariadic() != required.IsVariadic() {
		return false
	}
	for i := 0; i < required.NumIn(); i++ {
		// Arguments flow from the interface into the candidate.
		if !m.compatible(candidate.In(i+offset), required.In(i), 0) {
			return false
		}
	}
	return true
}

// Returns implements apis.Matcher.
func (m *matcher) Returns(candidate, required reflect.Type) bool {
	if candidate == nil || required == nil || candidate.Kind() != reflect.Func || required.Kind() != reflect.Func {
		return false
	}
	if candidate.NumOut() != required.NumOut() {
		return false
	}
	for i := 0; i < required.NumOut(); i++ {
		if !m.compatible(candidate.Out(i), required.Out(i), 0) {
			return false
		}
	}
	return true
}

func (m *matcher) compatible(c, r reflect.Type, depth int) bool {
	if c == nil || r == nil {
		return false
	}
	if c == r {
		return true
	}
	if depth >= m.maxDepth {
		return false
	}

	ci, ri := c.Kind() == reflect.Interface, r.Kind() == reflect.Interface
	switch {
	case ci && ri:
		return true
	case ri:
		return true
	case ci:
		return c.NumMethod() == 0 || r.Implements(c)
	}

	if isEnum(c) && isEnum(r) {
		return c.Kind() == r.Kind()
	}

	if uref.SameGenericOrigin(c, r) {
		return m.sameShape(c, r, depth+1)
	}

	if c.Kind() != r.Kind() {
		return false
	}
	switch c.Kind() {
	case reflect.Slice, reflect.Ptr:
		return m.compatible(c.Elem(), r.Elem(), depth+1)
	case reflect.Array:
		return c.Len() == r.Len() && m.compatible(c.Elem(), r.Elem(), depth+1)
	case reflect.Map:
		return m.compatible(c.Key(), r.Key(), depth+1) && m.compatible(c.Elem(), r.Elem(), depth+1)
	case reflect.Chan:
		return c.ChanDir() == r.ChanDir() && m.compatible(c.Elem(), r.Elem(), depth+1)
	case reflect.Func:
		return m.signature(c, r, depth+1)
	default:
		return false
	}
}

// sameShape compares two instantiations of one generic type through their
// underlying structure, since reflect does not expose type arguments.
func (m *matcher) sameShape(c, r reflect.Type, depth int) bool {
	if c.Kind() != r.Kind() {
		return false
	}
	switch c.Kind() {
	case reflect.Struct:
		if c.NumField() != r.NumField() {
			return false
		}
		for i := 0; i < c.NumField(); i++ {
			cf, rf := c.Field(i), r.Field(i)
			if cf.Name != rf.Name || !m.compatible(cf.Type, rf.Type, depth) {
				return false
			}
		}
		return true
	case reflect.Slice, reflect.Ptr:
		return m.compatible(c.Elem(), r.Elem(), depth)
	case reflect.Array:
		return c.Len() == r.Len() && m.compatible(c.Elem(), r.Elem(), depth)
	case reflect.Map:
		return m.compatible(c.Key(), r.Key(), depth) && m.compatible(c.Elem(), r.Elem(), depth)
	case reflect.Chan:
		return c.ChanDir() == r.ChanDir() && m.compatible(c.Elem(), r.Elem(), depth)
	case reflect.Func:
		return m.signature(c, r, depth)
	default:
		return c.ConvertibleTo(r)
	}
}

func (m *matcher) signature(c, r reflect.Type, depth int) bool {
	if c.NumIn() != r.NumIn() || c.NumOut() != r.NumOut() || c.IsVariadic() != r.IsVariadic() {
		return false
	}
	for i := 0; i < c.NumIn(); i++ {
		if !m.compatible(c.In(i), r.In(i), depth) {
			return false
		}
	}
	for i := 0; i < c.NumOut(); i++ {
		if !m.compatible(c.Out(i), r.Out(i), depth) {
			return false
		}
	}
	return true
}

// isEnum reports whether t is a named integer type.
func isEnum(t reflect.Type) bool {
	if t.Name() == "" || t.PkgPath() == "" {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}
