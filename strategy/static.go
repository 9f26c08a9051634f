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

	"github.com/samber/do"

	"dirpx.dev/mixin/apis"
)

// NewStaticStrategy creates an apis.Strategy for members whose override
// designates a static collaborator. Only the collaborator is searched:
// first a method with the member's exact arity, then an extension-style
// method taking one of the backing instances as its first parameter.
// A named service missing at synthesis time is bound on each call instead.
// Anything else is left unimplemented.
func NewStaticStrategy() apis.Strategy {
	return staticStrategy{}
}

// staticStrategy services overrides with Static or Service set.
type staticStrategy struct{}

// Ensure staticStrategy implements apis.Strategy.
var _ apis.Strategy = (*staticStrategy)(nil)

// TryResolve implements apis.Strategy.
func (staticStrategy) TryResolve(m apis.Member, rc *apis.ResolveContext) (apis.Resolution, bool, error) {
	if rc.Override == nil || !rc.Override.Redirects() {
		return apis.Resolution{}, false, nil
	}
	unresolved := resolution(m, rc, apis.Unresolved)
	if !rc.Static.IsValid() {
		if rc.Override.Service == "" {
			return unresolved, true, nil
		}
		// Bound at call time from the instance's lookup handle.
		res := resolution(m, rc, apis.Static)
		res.Service = rc.Override.Service
		return res, true, nil
	}

	st := rc.Static.Type()
	cm, ok := methodByName(st, rc.Target)
	if !ok {
		return unresolved, true, nil
	}
	sig := apis.WithoutReceiver(cm.Type)

	res := resolution(m, rc, apis.Static)
	res.Method = cm
	res.Static = rc.Static
	res.Service = rc.Override.Service

	if rc.Matcher.Params(sig, m.Type, false) {
		if !rc.Matcher.Returns(sig, m.Type) {
			return apis.Resolution{}, true, returnMismatch(m, rc, st.String(), sig)
		}
		return res, true, nil
	}

	// Extension style: the first parameter receives a backing instance.
	if sig.NumIn() == m.Type.NumIn()+1 {
		for i, bt := range rc.Request.Backings {
			if !accepts(rc.Matcher, sig.In(0), bt) || !rc.Matcher.Params(sig, m.Type, true) {
				continue
			}
			if !rc.Matcher.Returns(sig, m.Type) {
				return apis.Resolution{}, true, returnMismatch(m, rc, st.String(), sig)
			}
			res.Index, res.Backing = i, bt
			res.SkipSelf = true
			return res, true, nil
		}
	}
	return unresolved, true, nil
}

// Collaborator returns the static collaborator designated by ov: the Static
// value when set, otherwise the service named ov.Service in lookup. The zero
// Value is returned when neither is available.
func Collaborator(ov *apis.Override, lookup *do.Injector) reflect.Value {
	if ov == nil {
		return reflect.Value{}
	}
	if ov.Static != nil {
		return reflect.ValueOf(ov.Static)
	}
	if ov.Service == "" || lookup == nil {
		return reflect.Value{}
	}
	v, err := do.InvokeNamed[any](lookup, ov.Service)
	if err != nil || v == nil {
		return reflect.Value{}
	}
	return reflect.ValueOf(v)
}
