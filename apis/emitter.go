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
	"reflect"

	"github.com/samber/do"
)

// Invocation is the run-time input of a forwarder.
type Invocation struct {
	// Objects are the backing instances of the mixin instance.
	Objects []any
	// Lookup is the mixin instance's lookup handle (may be nil).
	Lookup *do.Injector
	// Args are the call arguments, typed as the interface member declares them.
	Args []reflect.Value
}

// Forwarder is the emitted body of one interface member. Results are typed as
// the interface member declares them.
type Forwarder func(inv Invocation) ([]reflect.Value, error)

// Emitter turns a Resolution into a Forwarder.
type Emitter interface {
	// Emit builds the forwarder for res.
	Emit(res Resolution, cfg Config) (Forwarder, error)
}
