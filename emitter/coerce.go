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

package emitter

import (
	"reflect"

	"dirpx.dev/mixin/apis"
)

// Coerce adapts v to the type to. It performs, in order: identity,
// interface unwrapping, assignment (wrapping into interfaces), same-kind
// conversion, and element-wise rebuilding of slices, arrays, maps, pointers
// and structs. Anything else fails with *apis.CoercionError. maxDepth bounds
// the rebuild recursion; values are never converted when the types are
// already identical.
func Coerce(v reflect.Value, to reflect.Type, maxDepth int) (reflect.Value, error) {
	return coerce(v, to, 0, maxDepth)
}

func coerce(v reflect.Value, to reflect.Type, depth, maxDepth int) (reflect.Value, error) {
	if !v.IsValid() {
		if nilable(to) {
			return reflect.Zero(to), nil
		}
		return reflect.Value{}, &apis.CoercionError{To: to}
	}
	from := v.Type()
	if from == to {
		return v, nil
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			if nilable(to) {
				return reflect.Zero(to), nil
			}
			return reflect.Value{}, &apis.CoercionError{From: from, To: to}
		}
		return coerce(v.Elem(), to, depth, maxDepth)
	}

	if from.AssignableTo(to) {
		if to.Kind() == reflect.Interface {
			out := reflect.New(to).Elem()
			out.Set(v)
			return out, nil
		}
		return v.Convert(to), nil
	}
	if to.Kind() == reflect.Interface || from.Kind() != to.Kind() || depth >= maxDepth {
		return reflect.Value{}, &apis.CoercionError{From: from, To: to}
	}

	switch to.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(to), nil
		}
		out := reflect.MakeSlice(to, v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			e, err := coerce(v.Index(i), to.Elem(), depth+1, maxDepth)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(e)
		}
		return out, nil

	case reflect.Array:
		if v.Len() != to.Len() {
			break
		}
		out := reflect.New(to).Elem()
		for i := 0; i < v.Len(); i++ {
			e, err := coerce(v.Index(i), to.Elem(), depth+1, maxDepth)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(e)
		}
		return out, nil

	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(to), nil
		}
		out := reflect.MakeMapWithSize(to, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			k, err := coerce(iter.Key(), to.Key(), depth+1, maxDepth)
			if err != nil {
				return reflect.Value{}, err
			}
			e, err := coerce(iter.Value(), to.Elem(), depth+1, maxDepth)
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(k, e)
		}
		return out, nil

	case reflect.Ptr:
		if v.IsNil() {
			return reflect.Zero(to), nil
		}
		e, err := coerce(v.Elem(), to.Elem(), depth+1, maxDepth)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(to.Elem())
		out.Elem().Set(e)
		return out, nil

	case reflect.Struct:
		if from.ConvertibleTo(to) {
			return v.Convert(to), nil
		}
		if from.NumField() != to.NumField() {
			break
		}
		out := reflect.New(to).Elem()
		for i := 0; i < to.NumField(); i++ {
			tf, ff := to.Field(i), from.Field(i)
			if tf.Name != ff.Name || !tf.IsExported() {
				return reflect.Value{}, &apis.CoercionError{From: from, To: to}
			}
			e, err := coerce(v.Field(i), tf.Type, depth+1, maxDepth)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Field(i).Set(e)
		}
		return out, nil

	default:
		// Scalars, chans and funcs: enums and other named types sharing a kind.
		if from.ConvertibleTo(to) {
			return v.Convert(to), nil
		}
	}
	return reflect.Value{}, &apis.CoercionError{From: from, To: to}
}

// nilable reports whether the zero value of t is nil.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}
