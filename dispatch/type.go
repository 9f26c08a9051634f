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

// Package dispatch holds synthesized mixin types and their instances.
//
// A Type is a dispatch table: one forwarder per member of the target
// interface. An Instance pairs a Type with backing instances and an optional
// lookup handle. Concrete Go values implementing the interface are obtained
// through shims: small generated structs whose methods call
// Instance.MustCall (see RegisterShim and cmd/mixingen).
package dispatch

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/samber/do"

	"dirpx.dev/mixin/apis"
)

var (
	// ErrState is returned when a Type is driven out of lifecycle order.
	ErrState = errors.New("mixin(dispatch): invalid state transition")
	// ErrMemberCount is returned when resolutions or forwarders do not line
	// up with the declared members.
	ErrMemberCount = errors.New("mixin(dispatch): member count mismatch")
)

// Property pairs the getter and setter of one property. Either may be empty.
type Property struct {
	// Name is the property base name.
	Name string
	// Getter is the getter member name.
	Getter string
	// Setter is the setter member name.
	Setter string
}

// Type is a synthesized mixin type.
type Type struct {
	name  string
	key   string
	req   apis.Request
	state atomic.Int32

	members     []apis.Member
	resolutions []apis.Resolution
	forwarders  []apis.Forwarder

	byName     map[string]int
	properties map[string]Property
}

// Compile-time check that Type implements apis.MixinType.
var _ apis.MixinType = (*Type)(nil)

// NewType allocates a Type in the Requested state.
func NewType(req apis.Request, name, key string) *Type {
	return &Type{name: name, key: key, req: req}
}

// Name implements apis.MixinType.
func (t *Type) Name() string { return t.name }

// Key implements apis.MixinType.
func (t *Type) Key() string { return t.key }

// Request implements apis.MixinType.
func (t *Type) Request() apis.Request { return t.req }

// Interface returns the target interface.
func (t *Type) Interface() reflect.Type { return t.req.Interface }

// State returns the current lifecycle state.
func (t *Type) State() State { return State(t.state.Load()) }

// Advance moves the type to state to. Moving backwards or staying put fails.
func (t *Type) Advance(to State) error {
	for {
		cur := State(t.state.Load())
		if to <= cur || to > Cached {
			return fmt.Errorf("%w: %s -> %s", ErrState, cur, to)
		}
		if t.state.CompareAndSwap(int32(cur), int32(to)) {
			return nil
		}
	}
}

// Declare records the interface members and enters MembersEnumerated.
func (t *Type) Declare(members []apis.Member) error {
	if err := t.expect(Requested); err != nil {
		return err
	}
	t.members = append([]apis.Member(nil), members...)
	return t.Advance(MembersEnumerated)
}

// Resolve records one resolution per declared member, in member order, and
// enters PerMemberResolved.
func (t *Type) Resolve(rs []apis.Resolution) error {
	if err := t.expect(MembersEnumerated); err != nil {
		return err
	}
	if len(rs) != len(t.members) {
		return fmt.Errorf("%w: %d resolutions for %d members", ErrMemberCount, len(rs), len(t.members))
	}
	for i, r := range rs {
		if r.Member.Name != t.members[i].Name {
			return fmt.Errorf("%w: resolution %d is for %s, want %s", ErrMemberCount, i, r.Member.Name, t.members[i].Name)
		}
	}
	t.resolutions = append([]apis.Resolution(nil), rs...)
	return t.Advance(PerMemberResolved)
}

// Bind records one forwarder per member and enters Emitted.
func (t *Type) Bind(fws []apis.Forwarder) error {
	if err := t.expect(PerMemberResolved); err != nil {
		return err
	}
	if len(fws) != len(t.members) {
		return fmt.Errorf("%w: %d forwarders for %d members", ErrMemberCount, len(fws), len(t.members))
	}
	t.forwarders = append([]apis.Forwarder(nil), fws...)
	return t.Advance(Emitted)
}

// Finalize builds the name index, pairs getters with setters and enters
// Finalized. The type is immutable afterwards.
func (t *Type) Finalize() error {
	if err := t.expect(Emitted); err != nil {
		return err
	}
	t.byName = make(map[string]int, len(t.members))
	t.properties = make(map[string]Property)
	for i, m := range t.members {
		t.byName[m.Name] = i
		switch m.Kind {
		case apis.MemberGetter:
			p := t.properties[m.Property]
			p.Name, p.Getter = m.Property, m.Name
			t.properties[m.Property] = p
		case apis.MemberSetter:
			p := t.properties[m.Property]
			p.Name, p.Setter = m.Property, m.Name
			t.properties[m.Property] = p
		}
	}
	return t.Advance(Finalized)
}

// MarkCached enters Cached. It is a no-op if the type is already cached.
func (t *Type) MarkCached() {
	_ = t.Advance(Cached)
}

// Members implements apis.MixinType. The slice is a copy.
func (t *Type) Members() []apis.Resolution {
	return append([]apis.Resolution(nil), t.resolutions...)
}

// Member returns the resolution record of the named member.
func (t *Type) Member(name string) (apis.Resolution, bool) {
	i, ok := t.byName[name]
	if !ok {
		return apis.Resolution{}, false
	}
	return t.resolutions[i], true
}

// Property returns the getter/setter pair of the named property.
func (t *Type) Property(name string) (Property, bool) {
	p, ok := t.properties[name]
	return p, ok
}

// Properties returns every property of the type (order is unspecified).
func (t *Type) Properties() []Property {
	out := make([]Property, 0, len(t.properties))
	for _, p := range t.properties {
		out = append(out, p)
	}
	return out
}

// Unresolved returns the names of members that fail when invoked.
func (t *Type) Unresolved() []string {
	var out []string
	for _, r := range t.resolutions {
		if r.Kind == apis.Unresolved {
			out = append(out, r.Member.Name)
		}
	}
	return out
}

// New implements apis.MixinType. It returns an *Instance.
func (t *Type) New(objects []any, lookup *do.Injector) apis.Object {
	return t.Instance(objects, lookup)
}

// Instance constructs an instance over objects; no validation is performed.
func (t *Type) Instance(objects []any, lookup *do.Injector) *Instance {
	return &Instance{t: t, objects: objects, lookup: lookup}
}

// String implements fmt.Stringer.
func (t *Type) String() string { return t.name }

func (t *Type) expect(s State) error {
	if cur := t.State(); cur != s {
		return fmt.Errorf("%w: in %s, want %s", ErrState, cur, s)
	}
	return nil
}
