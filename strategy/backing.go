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

// NewBackingStrategy creates an apis.Strategy that searches the backing
// types in order for an exported method with the effective name and
// structurally compatible parameters. The first such candidate wins; if its
// results do not match, synthesis fails with a composition error.
func NewBackingStrategy() apis.Strategy {
	return backingStrategy{}
}

// backingStrategy forwards members to methods of the backing instances.
type backingStrategy struct{}

// Ensure backingStrategy implements apis.Strategy.
var _ apis.Strategy = (*backingStrategy)(nil)

// TryResolve implements apis.Strategy.
func (backingStrategy) TryResolve(m apis.Member, rc *apis.ResolveContext) (apis.Resolution, bool, error) {
	for i, bt := range rc.Request.Backings {
		cm, ok := methodByName(bt, rc.Target)
		if !ok {
			continue
		}
		sig := apis.WithoutReceiver(cm.Type)
		if !rc.Matcher.Params(sig, m.Type, false) {
			continue
		}
		if !rc.Matcher.Returns(sig, m.Type) {
			return apis.Resolution{}, true, returnMismatch(m, rc, bt.String(), sig)
		}
		res := resolution(m, rc, apis.Backing)
		res.Index, res.Backing = i, bt
		res.Method = cm
		return res, true, nil
	}
	return apis.Resolution{}, false, nil
}
