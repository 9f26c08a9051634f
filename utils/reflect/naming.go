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

package reflect

import (
	"reflect"
	"strconv"
	"strings"
)

// DynamicPrefix prefixes every display name of a synthesized type.
const DynamicPrefix = "Dynamic.Mixins."

// QualifiedName renders t with full package paths, e.g.
// "*example.com/app/people.Person" or "map[string]example.com/app/people.Tag".
// Generic instantiations keep their type arguments.
func QualifiedName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		if p := t.PkgPath(); p != "" {
			return p + "." + t.Name()
		}
		return t.Name()
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + QualifiedName(t.Elem())
	case reflect.Slice:
		return "[]" + QualifiedName(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + QualifiedName(t.Elem())
	case reflect.Map:
		return "map[" + QualifiedName(t.Key()) + "]" + QualifiedName(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + QualifiedName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + QualifiedName(t.Elem())
		default:
			return "chan " + QualifiedName(t.Elem())
		}
	default:
		return t.String()
	}
}

// Key computes the cache key of (iface, backings). Each component is length
// prefixed so that no two distinct orderings or splits produce the same key.
func Key(iface reflect.Type, backings []reflect.Type) string {
	var b strings.Builder
	write := func(s string) {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}
	write(QualifiedName(iface))
	b.WriteByte('|')
	for _, t := range backings {
		write(QualifiedName(t))
	}
	return b.String()
}

// DisplayName renders a short, human-readable name such as
// "Dynamic.Mixins.ISimpleMixin_SimpleType1_SimpleType2" from the nearest
// named types. It is not unique; use Key for identity.
func DisplayName(iface reflect.Type, backings []reflect.Type) string {
	parts := make([]string, 0, len(backings))
	for _, t := range backings {
		parts = append(parts, shortName(t))
	}
	return DynamicPrefix + shortName(iface) + "_" + strings.Join(parts, "_")
}

// shortName returns the generic-stripped name of the nearest named type of t.
func shortName(t reflect.Type) string {
	base, err := Normalize(t, DefaultMaxUnwrap)
	if err != nil || base == nil {
		return "anon"
	}
	return StripTypeParams(base.Name())
}

// StripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func StripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// TypeArgCount returns the number of type arguments of a generic
// instantiation ("Pair[int,string]" -> 2), or 0 for non-generic names.
func TypeArgCount(t reflect.Type) int {
	name := t.Name()
	open := strings.IndexByte(name, '[')
	if open < 0 || !strings.HasSuffix(name, "]") {
		return 0
	}
	depth, n := 0, 1
	for _, r := range name[open+1 : len(name)-1] {
		switch r {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				n++
			}
		}
	}
	return n
}

// SameGenericOrigin reports whether a and b are instantiations of the same
// generic type with the same number of type arguments.
func SameGenericOrigin(a, b reflect.Type) bool {
	if a.Name() == "" || b.Name() == "" || a.PkgPath() != b.PkgPath() {
		return false
	}
	na := TypeArgCount(a)
	if na == 0 || na != TypeArgCount(b) {
		return false
	}
	return StripTypeParams(a.Name()) == StripTypeParams(b.Name())
}
