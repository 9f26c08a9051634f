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

// NewFieldStrategy creates an apis.Strategy that lets getters and setters
// fall back to an exported struct field named after the property. Which
// backing types are searched depends on apis.Config.FieldScope. Setters
// need a pointer-to-struct backing so the field is addressable.
func NewFieldStrategy() apis.Strategy {
	return fieldStrategy{}
}

// fieldStrategy reads and stores struct fields of the backing instances.
type fieldStrategy struct{}

// Ensure fieldStrategy implements apis.Strategy.
var _ apis.Strategy = (*fieldStrategy)(nil)

// TryResolve implements apis.Strategy.
func (fieldStrategy) TryResolve(m apis.Member, rc *apis.ResolveContext) (apis.Resolution, bool, error) {
	if m.Kind != apis.MemberGetter && m.Kind != apis.MemberSetter {
		return apis.Resolution{}, false, nil
	}
	backings := rc.Request.Backings
	if rc.Config.FieldScope == apis.FieldScopeFirst && len(backings) > 1 {
		backings = backings[:1]
	}

	for i, bt := range backings {
		st := bt
		if st.Kind() == reflect.Ptr {
			st = st.Elem()
		}
		if st.Kind() != reflect.Struct {
			continue
		}
		f, ok := st.FieldByName(rc.Property)
		if !ok || !f.IsExported() {
			continue
		}

		switch m.Kind {
		case apis.MemberGetter:
			if !rc.Matcher.Compatible(f.Type, m.Type.Out(0)) {
				continue
			}
			res := resolution(m, rc, apis.FieldGet)
			res.Index, res.Backing = i, bt
			res.Field, res.FieldType = f.Index, f.Type
			return res, true, nil
		case apis.MemberSetter:
			if bt.Kind() != reflect.Ptr || !rc.Matcher.Compatible(f.Type, m.Type.In(0)) {
				continue
			}
			res := resolution(m, rc, apis.FieldSet)
			res.Index, res.Backing = i, bt
			res.Field, res.FieldType = f.Index, f.Type
			return res, true, nil
		}
	}
	return apis.Resolution{}, false, nil
}
