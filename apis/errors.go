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
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNilInterface is returned when no target interface type is provided.
	ErrNilInterface = errors.New("mixin: nil interface type provided")
	// ErrNotInterface is returned when the target type is not an interface.
	ErrNotInterface = errors.New("mixin: target type is not an interface")
	// ErrNilBacking is returned when a backing type or instance is nil.
	ErrNilBacking = errors.New("mixin: nil backing type or instance provided")
	// ErrNoShim is returned when no shim is registered for the target interface.
	ErrNoShim = errors.New("mixin: no shim registered for interface")
	// ErrArity is returned when a member is called with the wrong number of arguments.
	ErrArity = errors.New("mixin: wrong number of arguments")
	// ErrUnknownMember is returned when a member or property name is not part of the interface.
	ErrUnknownMember = errors.New("mixin: unknown member")
	// ErrBackingMismatch is returned when an instance does not have the type
	// the mixin was synthesized for at that position.
	ErrBackingMismatch = errors.New("mixin: backing instance does not match backing type")
	// ErrComposition is the sentinel matched by every CompositionError.
	ErrComposition = errors.New("mixin: composition failed")
	// ErrNotImplemented is the sentinel matched by every NotImplementedError.
	ErrNotImplemented = errors.New("mixin: member not implemented")
	// ErrCoercion is the sentinel matched by every CoercionError.
	ErrCoercion = errors.New("mixin: value cannot be coerced")
)

// CompositionError aborts synthesis: a resolved candidate's results do not
// structurally match the interface member.
type CompositionError struct {
	// Interface is the target interface.
	Interface reflect.Type
	// Member is the member that could not be composed.
	Member string
	// Reason describes the mismatch.
	Reason string
}

// Error implements error.
func (e *CompositionError) Error() string {
	return fmt.Sprintf("mixin: cannot compose %v.%s: %s", e.Interface, e.Member, e.Reason)
}

// Is matches ErrComposition.
func (e *CompositionError) Is(target error) bool { return target == ErrComposition }

// NotImplementedError is returned (or raised by shims) when an unresolved
// member is invoked.
type NotImplementedError struct {
	// Interface is the target interface.
	Interface reflect.Type
	// Member is the unresolved member.
	Member string
}

// Error implements error.
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("mixin: %v.%s is not implemented by any backing instance", e.Interface, e.Member)
}

// Is matches ErrNotImplemented.
func (e *NotImplementedError) Is(target error) bool { return target == ErrNotImplemented }

// CoercionError reports a value that could not be adapted at call time.
type CoercionError struct {
	// From is the dynamic type of the value (nil for an invalid value).
	From reflect.Type
	// To is the required type.
	To reflect.Type
}

// Error implements error.
func (e *CoercionError) Error() string {
	return fmt.Sprintf("mixin: cannot coerce %v to %v", e.From, e.To)
}

// Is matches ErrCoercion.
func (e *CoercionError) Is(target error) bool { return target == ErrCoercion }
