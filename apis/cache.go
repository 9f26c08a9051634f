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

// Cache memoizes synthesized types by Request.
// Implementations must be safe for concurrent use and must run create at most
// once per Request while a synthesis for that Request is in flight.
type Cache interface {
	// GetOrCreate returns the type cached for req, calling create on a miss.
	// Errors returned by create are passed through and nothing is cached.
	GetOrCreate(req Request, create func() (MixinType, error)) (MixinType, error)
	// Lookup returns the type cached for req, if any.
	Lookup(req Request) (MixinType, bool)
	// Entries returns a snapshot of cached types (order is unspecified).
	Entries() []MixinType
	// Count returns the number of cached types.
	Count() int
	// Reset drops all cached types.
	Reset()
}
