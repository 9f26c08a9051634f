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

package apis

import (
	"fmt"
	"reflect"
)

// Request identifies a mixin: the target interface and the ordered backing
// types. Two requests are the same mixin iff both fields are identical,
// element by element.
type Request struct {
	// Interface is the target interface type.
	Interface reflect.Type
	// Backings are the backing types, in search order.
	Backings []reflect.Type
}

// Same reports whether r and o describe the same mixin.
func (r Request) Same(o Request) bool {
	if r.Interface != o.Interface || len(r.Backings) != len(o.Backings) {
		return false
	}
	for i := range r.Backings {
		if r.Backings[i] != o.Backings[i] {
			return false
		}
	}
	return true
}

// MemberKind classifies an interface method.
type MemberKind int

const (
	// MemberMethod is an ordinary method.
	MemberMethod MemberKind = iota
	// MemberGetter is X() R or GetX() R.
	MemberGetter
	// MemberSetter is SetX(v).
	MemberSetter
)

// String implements fmt.Stringer.
func (k MemberKind) String() string {
	switch k {
	case MemberMethod:
		return "method"
	case MemberGetter:
		return "getter"
	case MemberSetter:
		return "setter"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Member describes one method of the target interface.
type Member struct {
	// Interface is the interface declaring the member.
	Interface reflect.Type
	// Name is the method name as declared on the interface.
	Name string
	// Index is the method index on the interface type.
	Index int
	// Type is the method signature without receiver.
	Type reflect.Type
	// Kind classifies the method as plain method, getter or setter.
	Kind MemberKind
	// Property is the property base name for getters and setters ("" otherwise).
	Property string
	// Open is true when the signature uses the empty interface.
	Open bool
}

// StrategyKind records which strategy serviced a member.
type StrategyKind int

const (
	// Unresolved members fail with NotImplementedError when invoked.
	Unresolved StrategyKind = iota
	// Backing forwards to a method of an indexed backing instance.
	Backing
	// Static forwards to a method of a static collaborator.
	Static
	// Extension forwards to an extension function taking the backing instance first.
	Extension
	// FieldGet reads an exported field of a backing instance.
	FieldGet
	// FieldSet stores into an exported field of a backing instance.
	FieldSet
)

// String implements fmt.Stringer. The values double as metric labels.
func (k StrategyKind) String() string {
	switch k {
	case Unresolved:
		return "unresolved"
	case Backing:
		return "backing"
	case Static:
		return "static"
	case Extension:
		return "extension"
	case FieldGet:
		return "field_get"
	case FieldSet:
		return "field_set"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Resolution is the per-member record produced by the resolver and consumed
// by the emitter. It only lives while one type is being synthesized; the
// finished type keeps a copy for diagnostics.
type Resolution struct {
	// Member is the interface member being serviced.
	Member Member
	// Kind is the strategy that serviced the member.
	Kind StrategyKind
	// Target is the effective lookup name after overrides.
	Target string
	// Index is the backing index (Backing, Extension, FieldGet, FieldSet and
	// extension-style Static); -1 otherwise.
	Index int
	// Backing is the backing type at Index, or nil when Index is -1.
	Backing reflect.Type
	// Method is the resolved method on the backing type or on the static
	// collaborator's type. Its Type includes the receiver.
	Method reflect.Method
	// Func is the extension function (Extension only).
	Func reflect.Value
	// Static is the static collaborator (Static only).
	Static reflect.Value
	// Service is the collaborator name in the lookup handle, if any.
	Service string
	// SkipSelf is set when the target takes the backing instance as its
	// first argument (extension-style).
	SkipSelf bool
	// Field is the field index path (FieldGet/FieldSet).
	Field []int
	// FieldType is the declared type of the field (FieldGet/FieldSet).
	FieldType reflect.Type
}

// Signature returns the candidate signature without receiver, or nil for
// field and unresolved records.
func (r Resolution) Signature() reflect.Type {
	switch r.Kind {
	case Backing, Static:
		if r.Method.Type == nil {
			return nil
		}
		return WithoutReceiver(r.Method.Type)
	case Extension:
		if !r.Func.IsValid() {
			return nil
		}
		return r.Func.Type()
	default:
		return nil
	}
}

// WithoutReceiver drops the leading receiver parameter of a method
// expression type (reflect.Type.Method(i).Type for concrete types).
func WithoutReceiver(ft reflect.Type) reflect.Type {
	if ft == nil || ft.Kind() != reflect.Func || ft.NumIn() == 0 {
		return ft
	}
	in := make([]reflect.Type, 0, ft.NumIn()-1)
	for i := 1; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}
	out := make([]reflect.Type, 0, ft.NumOut())
	for i := 0; i < ft.NumOut(); i++ {
		out = append(out, ft.Out(i))
	}
	return reflect.FuncOf(in, out, ft.IsVariadic())
}
