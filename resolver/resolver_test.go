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

package resolver_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/config"
	"dirpx.dev/mixin/registry"
	"dirpx.dev/mixin/resolver"
	"dirpx.dev/mixin/strategy"
)

type Named interface {
	Name() string
	SetName(string)
}

type Profile interface {
	Named
	GetAge() int
	Describe(v any) string
	Greet(greeting string) string
	Settings() map[string]string
}

type person struct {
	Name     string
	FullName string
}

func (p *person) GetAge() int                  { return 42 }
func (p *person) Describe(v any) string        { return p.Name }
func (p *person) Hello(greeting string) string { return greeting }

type greeter struct{}

func (greeter) Greet(greeting string) string { return greeting }

func chain(reg apis.Registry) apis.Resolver {
	return resolver.New(reg, nil, nil,
		strategy.NewStaticStrategy(),
		strategy.NewOpenStrategy(),
		strategy.NewBackingStrategy(),
		nil,
		strategy.NewFieldStrategy(),
		strategy.NewUnimplementedStrategy(),
	)
}

var profileT = reflect.TypeOf((*Profile)(nil)).Elem()

func byName(rs []apis.Resolution) map[string]apis.Resolution {
	out := make(map[string]apis.Resolution, len(rs))
	for _, r := range rs {
		out[r.Member.Name] = r
	}
	return out
}

func TestMembers(t *testing.T) {
	r := chain(nil)
	members := r.Members(profileT)
	require.Len(t, members, 6)

	kinds := map[string]apis.Member{}
	for _, m := range members {
		kinds[m.Name] = m
	}
	assert.Equal(t, apis.MemberGetter, kinds["Name"].Kind)
	assert.Equal(t, "Name", kinds["Name"].Property)
	assert.Equal(t, apis.MemberSetter, kinds["SetName"].Kind)
	assert.Equal(t, "Name", kinds["SetName"].Property)
	assert.Equal(t, apis.MemberGetter, kinds["GetAge"].Kind)
	assert.Equal(t, "Age", kinds["GetAge"].Property)
	assert.Equal(t, apis.MemberMethod, kinds["Greet"].Kind)
	assert.Equal(t, apis.MemberGetter, kinds["Settings"].Kind)
	assert.True(t, kinds["Describe"].Open)
	assert.False(t, kinds["Greet"].Open)

	assert.Nil(t, r.Members(reflect.TypeOf(person{})))
	assert.Nil(t, r.Members(nil))
}

func TestResolve_Chain(t *testing.T) {
	r := chain(nil)
	req := apis.Request{Interface: profileT, Backings: []reflect.Type{reflect.TypeOf(&person{}), reflect.TypeOf(greeter{})}}

	rs, err := r.Resolve(req, r.Members(profileT), config.DefaultConfig(), nil)
	require.NoError(t, err)
	got := byName(rs)

	assert.Equal(t, apis.FieldGet, got["Name"].Kind)
	assert.Equal(t, apis.FieldSet, got["SetName"].Kind)
	assert.Equal(t, apis.Backing, got["GetAge"].Kind)
	assert.Equal(t, apis.Backing, got["Describe"].Kind)
	assert.Equal(t, apis.Backing, got["Greet"].Kind)
	assert.Equal(t, 1, got["Greet"].Index)
	assert.Equal(t, apis.Unresolved, got["Settings"].Kind)

	// Resolutions follow member order.
	for i, res := range rs {
		assert.Equal(t, i, res.Member.Index)
	}
}

func TestResolve_Overrides(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	require.NoError(t, reg.Register(reflect.TypeOf((*Profile)(nil)), apis.Overrides{
		"Name":    {Target: "FullName"},
		"SetName": {Target: "FullName"},
		"Greet":   {Target: "Hello"},
	}))
	r := chain(reg)
	req := apis.Request{Interface: profileT, Backings: []reflect.Type{reflect.TypeOf(&person{})}}

	rs, err := r.Resolve(req, r.Members(profileT), config.DefaultConfig(), nil)
	require.NoError(t, err)
	got := byName(rs)

	assert.Equal(t, "FullName", got["Name"].Target)
	assert.Equal(t, []int{1}, got["Name"].Field)
	assert.Equal(t, "SetFullName", got["SetName"].Target)
	assert.Equal(t, apis.FieldSet, got["SetName"].Kind)
	assert.Equal(t, "Hello", got["Greet"].Target)
	assert.Equal(t, apis.Backing, got["Greet"].Kind)
}

type badPerson struct{}

func (badPerson) Greet(greeting string) int { return 0 }

func TestResolve_CompositionError(t *testing.T) {
	r := chain(nil)
	req := apis.Request{Interface: profileT, Backings: []reflect.Type{reflect.TypeOf(badPerson{}), reflect.TypeOf(greeter{})}}

	rs, err := r.Resolve(req, r.Members(profileT), config.DefaultConfig(), nil)
	assert.Nil(t, rs)
	assert.ErrorIs(t, err, apis.ErrComposition)
}

func TestResolve_EmptyChainLeavesUnresolved(t *testing.T) {
	r := resolver.New(nil, nil, nil)
	req := apis.Request{Interface: profileT, Backings: []reflect.Type{reflect.TypeOf(&person{})}}

	rs, err := r.Resolve(req, r.Members(profileT), config.DefaultConfig(), nil)
	require.NoError(t, err)
	for _, res := range rs {
		assert.Equal(t, apis.Unresolved, res.Kind, res.Member.Name)
	}
}
