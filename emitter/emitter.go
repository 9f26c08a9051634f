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

// Package emitter turns resolution records into forwarders: the closures
// that service interface members at call time by calling into backing
// instances, static collaborators, extension functions or struct fields.
package emitter

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/samber/do"

	"dirpx.dev/mixin/apis"
	uref "dirpx.dev/mixin/utils/reflect"
)

// ErrInvalidResolution is returned when a resolution record lacks the data
// its strategy kind requires.
var ErrInvalidResolution = errors.New("mixin(emitter): invalid resolution record")

// New constructs the default Emitter.
func New() apis.Emitter {
	return emitter{}
}

// emitter is a stateless apis.Emitter.
type emitter struct{}

// Compile-time check that emitter implements apis.Emitter.
var _ apis.Emitter = (*emitter)(nil)

// Emit implements apis.Emitter.
func (emitter) Emit(res apis.Resolution, cfg apis.Config) (apis.Forwarder, error) {
	if res.Member.Type == nil {
		return nil, fmt.Errorf("%w: member %q has no signature", ErrInvalidResolution, res.Member.Name)
	}
	depth := cfg.MaxDepth
	if depth <= 0 {
		depth = uref.DefaultMaxUnwrap
	}

	switch res.Kind {
	case apis.Backing:
		if res.Method.Type == nil || res.Backing == nil {
			return nil, fmt.Errorf("%w: %s has no backing method", ErrInvalidResolution, res.Member.Name)
		}
		return backing(res, depth), nil
	case apis.Static:
		if !res.Static.IsValid() && res.Service != "" {
			return service(res, depth), nil
		}
		if res.Method.Type == nil || !res.Static.IsValid() {
			return nil, fmt.Errorf("%w: %s has no static collaborator", ErrInvalidResolution, res.Member.Name)
		}
		return static(res, depth), nil
	case apis.Extension:
		if !res.Func.IsValid() || res.Backing == nil {
			return nil, fmt.Errorf("%w: %s has no extension func", ErrInvalidResolution, res.Member.Name)
		}
		return extension(res, depth), nil
	case apis.FieldGet, apis.FieldSet:
		if len(res.Field) == 0 || res.Backing == nil {
			return nil, fmt.Errorf("%w: %s has no field", ErrInvalidResolution, res.Member.Name)
		}
		if res.Kind == apis.FieldGet {
			return fieldGet(res, depth), nil
		}
		return fieldSet(res, depth), nil
	default:
		return unimplemented(res), nil
	}
}

// backing forwards to a method of objects[res.Index].
func backing(res apis.Resolution, depth int) apis.Forwarder {
	sig := apis.WithoutReceiver(res.Method.Type)
	mi := res.Method.Index
	return func(inv apis.Invocation) ([]reflect.Value, error) {
		recv, err := object(inv.Objects, res)
		if err != nil {
			return nil, err
		}
		args, err := arguments(inv.Args, sig, 0, res.Member, depth)
		if err != nil {
			return nil, err
		}
		return results(call(recv.Method(mi), args), res.Member, depth)
	}
}

// static forwards to a method of the static collaborator. When the member
// names a service and the instance's lookup handle provides a value of the
// same type under that name, the instance's value is used instead.
func static(res apis.Resolution, depth int) apis.Forwarder {
	sig := apis.WithoutReceiver(res.Method.Type)
	mi := res.Method.Index
	st := res.Static.Type()
	return func(inv apis.Invocation) ([]reflect.Value, error) {
		recv := res.Static
		if res.Service != "" && inv.Lookup != nil {
			if v, err := do.InvokeNamed[any](inv.Lookup, res.Service); err == nil && v != nil && reflect.TypeOf(v) == st {
				recv = reflect.ValueOf(v)
			}
		}

		skip := 0
		var self []reflect.Value
		if res.SkipSelf {
			obj, err := object(inv.Objects, res)
			if err != nil {
				return nil, err
			}
			s, err := Coerce(obj, sig.In(0), depth)
			if err != nil {
				return nil, err
			}
			self, skip = []reflect.Value{s}, 1
		}
		args, err := arguments(inv.Args, sig, skip, res.Member, depth)
		if err != nil {
			return nil, err
		}
		return results(call(recv.Method(mi), append(self, args...)), res.Member, depth)
	}
}

// service forwards to the collaborator named res.Service in the instance's
// lookup handle, resolved on every call. The collaborator's method may take
// a backing instance first; the first assignable backing is passed.
func service(res apis.Resolution, depth int) apis.Forwarder {
	want := res.Member.Type.NumIn()
	return func(inv apis.Invocation) ([]reflect.Value, error) {
		var v any
		if inv.Lookup != nil {
			v, _ = do.InvokeNamed[any](inv.Lookup, res.Service)
		}
		if v == nil {
			return nil, notImplemented(res)
		}
		fn := reflect.ValueOf(v).MethodByName(res.Target)
		if !fn.IsValid() {
			return nil, notImplemented(res)
		}

		sig := fn.Type()
		switch sig.NumIn() {
		case want:
			args, err := arguments(inv.Args, sig, 0, res.Member, depth)
			if err != nil {
				return nil, err
			}
			return results(call(fn, args), res.Member, depth)
		case want + 1:
			for _, obj := range inv.Objects {
				if obj == nil || !reflect.TypeOf(obj).AssignableTo(sig.In(0)) {
					continue
				}
				args, err := arguments(inv.Args, sig, 1, res.Member, depth)
				if err != nil {
					return nil, err
				}
				return results(call(fn, append([]reflect.Value{reflect.ValueOf(obj)}, args...)), res.Member, depth)
			}
		}
		return nil, notImplemented(res)
	}
}

// extension forwards to an extension func whose first parameter receives
// objects[res.Index].
func extension(res apis.Resolution, depth int) apis.Forwarder {
	ft := res.Func.Type()
	return func(inv apis.Invocation) ([]reflect.Value, error) {
		obj, err := object(inv.Objects, res)
		if err != nil {
			return nil, err
		}
		self, err := Coerce(obj, ft.In(0), depth)
		if err != nil {
			return nil, err
		}
		args, err := arguments(inv.Args, ft, 1, res.Member, depth)
		if err != nil {
			return nil, err
		}
		return results(call(res.Func, append([]reflect.Value{self}, args...)), res.Member, depth)
	}
}

// fieldGet reads an exported field of objects[res.Index].
func fieldGet(res apis.Resolution, depth int) apis.Forwarder {
	return func(inv apis.Invocation) ([]reflect.Value, error) {
		if len(inv.Args) != 0 {
			return nil, arity(res.Member, len(inv.Args))
		}
		obj, err := object(inv.Objects, res)
		if err != nil {
			return nil, err
		}
		f, err := field(obj, res)
		if err != nil {
			return nil, err
		}
		v, err := Coerce(f, res.Member.Type.Out(0), depth)
		if err != nil {
			return nil, err
		}
		return []reflect.Value{v}, nil
	}
}

// fieldSet stores into an exported field of objects[res.Index].
func fieldSet(res apis.Resolution, depth int) apis.Forwarder {
	return func(inv apis.Invocation) ([]reflect.Value, error) {
		if len(inv.Args) != 1 {
			return nil, arity(res.Member, len(inv.Args))
		}
		obj, err := object(inv.Objects, res)
		if err != nil {
			return nil, err
		}
		f, err := field(obj, res)
		if err != nil {
			return nil, err
		}
		if !f.CanSet() {
			return nil, fmt.Errorf("mixin(emitter): field %s of %s is not settable", res.Target, res.Backing)
		}
		v, err := Coerce(inv.Args[0], f.Type(), depth)
		if err != nil {
			return nil, err
		}
		f.Set(v)
		return nil, nil
	}
}

// unimplemented fails every invocation.
func unimplemented(res apis.Resolution) apis.Forwarder {
	return func(apis.Invocation) ([]reflect.Value, error) {
		return nil, notImplemented(res)
	}
}

func notImplemented(res apis.Resolution) error {
	return &apis.NotImplementedError{Interface: res.Member.Interface, Member: res.Member.Name}
}

// object returns objects[res.Index] after checking it has the backing type
// the member was resolved against.
func object(objects []any, res apis.Resolution) (reflect.Value, error) {
	if res.Index < 0 || res.Index >= len(objects) {
		return reflect.Value{}, fmt.Errorf("%w: no instance at position %d for %s", apis.ErrBackingMismatch, res.Index, res.Member.Name)
	}
	obj := objects[res.Index]
	if obj == nil || reflect.TypeOf(obj) != res.Backing {
		return reflect.Value{}, fmt.Errorf("%w: position %d holds %T, want %v", apis.ErrBackingMismatch, res.Index, obj, res.Backing)
	}
	return reflect.ValueOf(obj), nil
}

// field returns the struct field at res.Field, walking through pointers.
func field(obj reflect.Value, res apis.Resolution) (reflect.Value, error) {
	if obj.Kind() == reflect.Ptr {
		if obj.IsNil() {
			return reflect.Value{}, fmt.Errorf("mixin(emitter): nil %v instance for field %s", res.Backing, res.Target)
		}
		obj = obj.Elem()
	}
	f, err := obj.FieldByIndexErr(res.Field)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("mixin(emitter): field %s: %w", res.Target, err)
	}
	return f, nil
}

// arguments coerces the member's arguments to the candidate's parameters,
// starting at candidate parameter skip.
func arguments(in []reflect.Value, candidate reflect.Type, skip int, m apis.Member, depth int) ([]reflect.Value, error) {
	if len(in) != m.Type.NumIn() || candidate.NumIn()-skip != len(in) {
		return nil, arity(m, len(in))
	}
	out := make([]reflect.Value, len(in))
	for i, a := range in {
		v, err := Coerce(a, candidate.In(i+skip), depth)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// results coerces candidate results to the member's declared results.
func results(out []reflect.Value, m apis.Member, depth int) ([]reflect.Value, error) {
	if len(out) != m.Type.NumOut() {
		return nil, fmt.Errorf("mixin(emitter): %s returned %d values, want %d", m.Name, len(out), m.Type.NumOut())
	}
	for i := range out {
		v, err := Coerce(out[i], m.Type.Out(i), depth)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// call invokes fn, passing the trailing slice as variadic arguments when fn
// is variadic.
func call(fn reflect.Value, args []reflect.Value) []reflect.Value {
	if fn.Type().IsVariadic() {
		return fn.CallSlice(args)
	}
	return fn.Call(args)
}

func arity(m apis.Member, got int) error {
	return fmt.Errorf("%w: %s takes %d, got %d", apis.ErrArity, m.Name, m.Type.NumIn(), got)
}
