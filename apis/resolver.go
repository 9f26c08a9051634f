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

// Resolver enumerates the members of a target interface and decides, for
// each of them, which strategy services it.
// Typical chain: Static -> Open -> Backing -> Extension -> Field -> Unimplemented.
type Resolver interface {
	// Members returns every method of iface, embedded interfaces included.
	Members(iface reflect.Type) []Member

	// Resolve returns one Resolution per member, in member order. Overrides
	// attached to req.Interface are taken from the resolver's Registry.
	// A non-nil error is always a composition error; no partial result is returned.
	Resolve(req Request, members []Member, cfg Config, lookup *do.Injector) ([]Resolution, error)
}
