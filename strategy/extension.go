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
	"dirpx.dev/mixin/apis"
)

// NewExtensionStrategy creates an apis.Strategy that searches the registered
// extension functions. A func named after the effective target qualifies
// when its first parameter accepts a backing instance and its remaining
// parameters are compatible with the member. Backings are tried in order,
// and for each backing the funcs in registration order.
func NewExtensionStrategy() apis.Strategy {
	return extensionStrategy{}
}

// extensionStrategy forwards members to extension functions.
type extensionStrategy struct{}

// Ensure extensionStrategy implements apis.Strategy.
var _ apis.Strategy = (*extensionStrategy)(nil)

// TryResolve implements apis.Strategy.
func (extensionStrategy) TryResolve(m apis.Member, rc *apis.ResolveContext) (apis.Resolution, bool, error) {
	if !rc.Config.Extensions || rc.Extensions == nil {
		return apis.Resolution{}, false, nil
	}
	fns := rc.Extensions.Lookup(rc.Target)
	if len(fns) == 0 {
		return apis.Resolution{}, false, nil
	}

	for i, bt := range rc.Request.Backings {
		for _, fn := range fns {
			ft := fn.Type()
			if !accepts(rc.Matcher, ft.In(0), bt) || !rc.Matcher.Params(ft, m.Type, true) {
				continue
			}
			if !rc.Matcher.Returns(ft, m.Type) {
				return apis.Resolution{}, true, returnMismatch(m, rc, "extension", ft)
			}
			res := resolution(m, rc, apis.Extension)
			res.Index, res.Backing = i, bt
			res.Func = fn
			res.SkipSelf = true
			return res, true, nil
		}
	}
	return apis.Resolution{}, false, nil
}
