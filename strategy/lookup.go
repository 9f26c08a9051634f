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
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/mixin/apis"
)

// methodKey identifies a method lookup by receiver type and name.
type methodKey struct {
	t    reflect.Type
	name string
}

// methodLookup is the memoized result of a method lookup.
type methodLookup struct {
	m  reflect.Method
	ok bool
}

// methodCache caches exported method lookups by (type, name).
var methodCache sync.Map // key: methodKey, val: methodLookup

// methodByName returns the exported method name of t with memoization.
// The returned Method.Type includes the receiver.
func methodByName(t reflect.Type, name string) (reflect.Method, bool) {
	if t == nil || name == "" {
		return reflect.Method{}, false
	}
	key := methodKey{t: t, name: name}
	if v, ok := methodCache.Load(key); ok {
		l := v.(methodLookup)
		return l.m, l.ok
	}

	m, ok := t.MethodByName(name)
	if ok && !m.IsExported() {
		m, ok = reflect.Method{}, false
	}
	// Interface method types carry no receiver; only concrete types are searched.
	if ok && t.Kind() == reflect.Interface {
		ok = false
	}
	methodCache.Store(key, methodLookup{m: m, ok: ok})
	return m, ok
}

// accepts reports whether a backing instance of type bt can be passed as a
// parameter of type p.
func accepts(mt apis.Matcher, p, bt reflect.Type) bool {
	return bt.AssignableTo(p) || (p.Kind() != reflect.Interface && mt.Compatible(p, bt))
}

// resolution starts a Resolution for m with the effective target.
func resolution(m apis.Member, rc *apis.ResolveContext, kind apis.StrategyKind) apis.Resolution {
	return apis.Resolution{Member: m, Kind: kind, Target: rc.Target, Index: -1}
}

// returnMismatch builds the composition error for a candidate whose
// parameters match but whose results do not.
func returnMismatch(m apis.Member, rc *apis.ResolveContext, owner string, candidate reflect.Type) error {
	return &apis.CompositionError{
		Interface: rc.Request.Interface,
		Member:    m.Name,
		Reason:    fmt.Sprintf("%s.%s returns %s, want %s", owner, rc.Target, results(candidate), results(m.Type)),
	}
}

// results renders the result list of a func type.
func results(ft reflect.Type) string {
	switch ft.NumOut() {
	case 0:
		return "nothing"
	case 1:
		return ft.Out(0).String()
	}
	s := "("
	for i := 0; i < ft.NumOut(); i++ {
		if i > 0 {
			s += ", "
		}
		s += ft.Out(i).String()
	}
	return s + ")"
}
