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
	"unicode"
	"unicode/utf8"
)

const (
	// GetPrefix is the optional getter prefix ("GetName").
	GetPrefix = "Get"
	// SetPrefix is the setter prefix ("SetName").
	SetPrefix = "Set"
)

// Accessor describes how an interface method maps to a property.
type Accessor int

const (
	// NotAccessor is an ordinary method.
	NotAccessor Accessor = iota
	// Getter is X() R or GetX() R.
	Getter
	// Setter is SetX(v).
	Setter
)

// Classify inspects a method name and its signature (without receiver) and
// reports whether it is a property accessor, together with the property name.
func Classify(name string, ft reflect.Type) (Accessor, string) {
	if ft == nil || ft.Kind() != reflect.Func || ft.IsVariadic() {
		return NotAccessor, ""
	}
	switch {
	case ft.NumIn() == 1 && ft.NumOut() == 0:
		if prop, ok := cutPrefix(name, SetPrefix); ok {
			return Setter, prop
		}
	case ft.NumIn() == 0 && ft.NumOut() == 1:
		if prop, ok := cutPrefix(name, GetPrefix); ok {
			return Getter, prop
		}
		return Getter, name
	}
	return NotAccessor, ""
}

// Rebase replaces the property base of an accessor name, keeping its prefix:
// Rebase("SetName", "FullName") -> "SetFullName"; Rebase("Name", "FullName") -> "FullName".
func Rebase(name, property, base string) string {
	if len(name) < len(property) {
		return base
	}
	return name[:len(name)-len(property)] + base
}

// cutPrefix strips prefix when what follows starts with an upper-case letter,
// so that "Settings" is not mistaken for a setter of "tings".
func cutPrefix(name, prefix string) (string, bool) {
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return "", false
	}
	rest := name[len(prefix):]
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return "", false
	}
	return rest, true
}

// IsOpen reports whether t is the unnamed empty interface (any).
func IsOpen(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface && t.NumMethod() == 0 && t.Name() == ""
}

// SignatureIsOpen reports whether any parameter or result of ft is open.
func SignatureIsOpen(ft reflect.Type) bool {
	for i := 0; i < ft.NumIn(); i++ {
		if IsOpen(ft.In(i)) {
			return true
		}
	}
	for i := 0; i < ft.NumOut(); i++ {
		if IsOpen(ft.Out(i)) {
			return true
		}
	}
	return false
}
