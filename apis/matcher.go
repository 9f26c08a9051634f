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

// Matcher decides structural compatibility between a candidate member and
// the interface member it should service.
type Matcher interface {
	// Compatible reports whether a value of the required type can be serviced
	// by the candidate type (see the matcher package for the exact rules).
	Compatible(candidate, required reflect.Type) bool
	// Params reports whether the parameter lists of two func types are
	// compatible. When skipSelf is set the candidate's first parameter is ignored.
	Params(candidate, required reflect.Type, skipSelf bool) bool
	// Returns reports whether the result lists of two func types are compatible.
	Returns(candidate, required reflect.Type) bool
}
