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

// ExtensionSet holds extension functions: plain funcs whose first parameter
// receives the backing instance, e.g. func(p *Person, greeting string) string.
type ExtensionSet interface {
	// Add registers fn under name. fn must be a func with at least one parameter.
	Add(name string, fn any) error
	// Lookup returns the funcs registered under name, in registration order.
	Lookup(name string) []reflect.Value
	// Len returns the number of registered funcs.
	Len() int
}
