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

import (
	"fmt"
	"strings"
)

// FieldScope selects the backing types consulted by the field fallback.
//
// # Values
//
//   - FieldScopeAny:   backing types are searched in order; the first one
//     declaring a compatible exported field wins.
//   - FieldScopeFirst: only the first backing type is searched for a field.
//
// The zero value is FieldScopeAny.
type FieldScope int

const (
	// FieldScopeAny searches every backing type in order.
	FieldScopeAny FieldScope = iota
	// FieldScopeFirst restricts the field fallback to the first backing type.
	FieldScopeFirst
)

// String returns a human-readable representation of the FieldScope value.
// Unknown values render as "Unknown(<n>)" and never panic.
func (s FieldScope) String() string {
	switch s {
	case FieldScopeAny:
		return "Any"
	case FieldScopeFirst:
		return "First"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// ParseFieldScope parses a textual FieldScope ("first", "any"), case-insensitive.
// Surrounding whitespace is ignored.
func ParseFieldScope(s string) (FieldScope, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return FieldScopeAny, fmt.Errorf("mixin(apis): empty field scope")
	}

	switch strings.ToUpper(trimmed) {
	case "FIRST":
		return FieldScopeFirst, nil
	case "ANY":
		return FieldScopeAny, nil
	default:
		return FieldScopeAny, fmt.Errorf("mixin(apis): unknown field scope %q", s)
	}
}

// MustParseFieldScope is like ParseFieldScope but panics on error.
func MustParseFieldScope(s string) FieldScope {
	v, err := ParseFieldScope(s)
	if err != nil {
		panic(err)
	}
	return v
}

// MarshalText implements encoding.TextMarshaler.
// Unknown values are rejected rather than serialized in their diagnostic form.
func (s FieldScope) MarshalText() ([]byte, error) {
	switch s {
	case FieldScopeFirst, FieldScopeAny:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("mixin(apis): cannot marshal unknown field scope %d", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
// On failure the receiver is left unchanged.
func (s *FieldScope) UnmarshalText(text []byte) error {
	value, err := ParseFieldScope(string(text))
	if err != nil {
		return err
	}
	*s = value
	return nil
}

// OpenPolicy selects how open members are resolved. A member is open when
// one of its parameters or results is the empty interface, which plays the
// role of an unbound type parameter.
//
// # Values
//
//   - OpenFirstBacking: open members are looked up on the first backing
//     type only, by exact name and exact arity. Anything else is left
//     unimplemented and fails when called.
//   - OpenStructural:   open members are resolved like every other member.
//
// The zero value is OpenFirstBacking.
type OpenPolicy int

const (
	// OpenFirstBacking resolves open members against the first backing type only.
	OpenFirstBacking OpenPolicy = iota
	// OpenStructural treats open members as ordinary members.
	OpenStructural
)

// String returns a human-readable representation of the OpenPolicy value.
func (p OpenPolicy) String() string {
	switch p {
	case OpenFirstBacking:
		return "FirstBacking"
	case OpenStructural:
		return "Structural"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// ParseOpenPolicy parses a textual OpenPolicy ("firstbacking", "structural"),
// case-insensitive.
func ParseOpenPolicy(s string) (OpenPolicy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return OpenFirstBacking, fmt.Errorf("mixin(apis): empty open policy")
	}

	switch strings.ToUpper(trimmed) {
	case "FIRSTBACKING":
		return OpenFirstBacking, nil
	case "STRUCTURAL":
		return OpenStructural, nil
	default:
		return OpenFirstBacking, fmt.Errorf("mixin(apis): unknown open policy %q", s)
	}
}

// MustParseOpenPolicy is like ParseOpenPolicy but panics on error.
func MustParseOpenPolicy(s string) OpenPolicy {
	v, err := ParseOpenPolicy(s)
	if err != nil {
		panic(err)
	}
	return v
}

// MarshalText implements encoding.TextMarshaler.
func (p OpenPolicy) MarshalText() ([]byte, error) {
	switch p {
	case OpenFirstBacking, OpenStructural:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("mixin(apis): cannot marshal unknown open policy %d", p)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *OpenPolicy) UnmarshalText(text []byte) error {
	value, err := ParseOpenPolicy(string(text))
	if err != nil {
		return err
	}
	*p = value
	return nil
}
