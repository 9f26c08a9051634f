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

// Object is the capability every mixin instance exposes: the raw backing
// instances, in the order they were supplied.
type Object interface {
	// MixinObjects returns the backing instances. The slice is the one passed
	// at construction, not a copy.
	MixinObjects() []any
}

// MixinType is a synthesized type: a dispatch table servicing every member
// of an interface over an ordered list of backing types.
type MixinType interface {
	// Name returns a human-readable name, e.g. "Dynamic.Mixins.Greeter_Person".
	Name() string
	// Key returns the deterministic cache key.
	Key() string
	// Request returns the interface and backing types the type was built for.
	Request() Request
	// Members returns the resolution record of every member.
	Members() []Resolution
	// New constructs an instance. objects must match Request().Backings in
	// length and order; lookup may be nil. No validation is performed.
	New(objects []any, lookup *do.Injector) Object
}

// Synthesizer is the core exposed to the convenience layer.
type Synthesizer interface {
	// GetOrCreateType returns (creating if necessary) the type for iface over backings.
	GetOrCreateType(iface reflect.Type, backings ...reflect.Type) (MixinType, error)
	// CreateInstance returns an instance of the type for iface over the
	// dynamic types of instances. Once iface is validated, a nil or empty
	// instances slice yields (nil, nil).
	CreateInstance(iface reflect.Type, instances []any, lookup *do.Injector) (Object, error)
}
