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

package strategy

import (
	"reflect"

	"dirpx.dev/mixin/apis"
)

// NewOpenStrategy creates an apis.Strategy for open members under
// apis.OpenFirstBacking: the first backing type is searched by exact name and
// exact arity, without structural checks. Open members that do not match are
// left unimplemented.
func NewOpenStrategy() apis.Strategy {
	return openStrategy{}
}

// openStrategy services members whose signature uses the empty interface.
type openStrategy struct{}

// Ensure openStrategy implements apis.Strategy.
var _ apis.Strategy = (*openStrategy)(nil)

// TryResolve implements apis.Strategy.
func (openStrategy) TryResolve(m apis.Member, rc *apis.ResolveContext) (apis.Resolution, bool, error) {
	if !m.Open || rc.Config.OpenPolicy != apis.OpenFirstBacking {
		return apis.Resolution{}, false, nil
	}
	if len(rc.Request.Backings) == 0 {
		return resolution(m, rc, apis.Unresolved), true, nil
	}

	cm, ok := methodByName(rc.Request.Backings[0], rc.Target)
	if !ok || !sameArity(apis.WithoutReceiver(cm.Type), m.Type) {
		return resolution(m, rc, apis.Unresolved), true, nil
	}
	res := resolution(m, rc, apis.Backing)
	res.Index, res.Backing = 0, rc.Request.Backings[0]
	res.Method = cm
	return res, true, nil
}

// sameArity reports whether two func types have the same number of
// parameters and results and the same variadic-ness.
func sameArity(a, b reflect.Type) bool {
	return a.NumIn() == b.NumIn() && a.NumOut() == b.NumOut() && a.IsVariadic() == b.IsVariadic()
}
