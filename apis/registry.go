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

import "reflect"

// Registry holds the declarative overrides attached to interface types.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register attaches overrides to an interface type.
	// Implementations should be idempotent; conflicting re-registrations return an error.
	Register(t reflect.Type, ovs Overrides) error
	// Lookup returns the overrides attached to t, if any.
	Lookup(t reflect.Type) (ovs Overrides, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of annotated interfaces.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (interface, overrides) association in a Registry snapshot.
type Entry struct {
	// Type is the annotated interface type.
	Type reflect.Type
	// Overrides are the attached overrides.
	Overrides Overrides
}
