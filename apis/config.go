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

// Config carries read-only synthesis knobs that influence member resolution
// and value coercion. It is passed by value and should be treated as
// immutable by implementations.
type Config struct {
	// FieldScope controls which backing types are searched when a getter or
	// setter falls back to a struct field.
	FieldScope FieldScope `yaml:"fieldScope"`

	// OpenPolicy controls how members whose signature uses the empty
	// interface are resolved.
	OpenPolicy OpenPolicy `yaml:"openPolicy"`

	// MaxDepth limits recursion while matching and coercing nested types
	// (slice/array/ptr/map/chan/func/struct). Acts as a safety guard against
	// pathological nesting.
	MaxDepth int `yaml:"maxDepth"`

	// Extensions enables the extension-function search after no backing
	// type offers a matching method.
	Extensions bool `yaml:"extensions"`
}
