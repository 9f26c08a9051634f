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

package builder_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/builder"
	"dirpx.dev/mixin/config"
	"dirpx.dev/mixin/dispatch"
	"dirpx.dev/mixin/registry"
)

type Profile interface {
	Name() string
	SetName(string)
	Title() string
	Shout() string
	Stamp() string
	Describe(v any) string
	Missing() int
}

type person struct {
	Name  string
	Label string
}

func (p *person) Describe(v any) string { return p.Name }

type titled struct{}

func (titled) Title() string { return "Dr." }

type stamper struct{}

func (stamper) Stamp(p *person) string { return "#" + p.Name }

type carrier struct{ ext apis.ExtensionSet }

func (c carrier) ExtensionSet() apis.ExtensionSet { return c.ext }

var profileT = reflect.TypeOf((*Profile)(nil)).Elem()

// TestBuildRegistry_Migrates asserts that BuildRegistry returns a working
// registry carrying the previous registry's entries.
func TestBuildRegistry_Migrates(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	// prev may be nil; this must still produce a valid registry.
	prev := b.BuildRegistry(cfg, nil, nil)
	require.NotNil(t, prev)
	require.NoError(t, prev.Register(profileT, apis.Overrides{"Name": {Target: "Label"}}))

	next := b.BuildRegistry(cfg, prev, nil)
	ovs, ok := next.Lookup(profileT)
	require.True(t, ok)
	assert.Equal(t, "Label", ovs["Name"].Target)
	assert.Equal(t, 1, next.Count())
}

// TestBuildResolver_Order verifies resolution priority across the chain.
func TestBuildResolver_Order(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	reg := registry.New(cfg)
	require.NoError(t, reg.Register(profileT, apis.Overrides{"Stamp": {Static: stamper{}}}))

	ext := registry.NewExtensions()
	require.NoError(t, ext.Add("Shout", func(p *person) string { return p.Name + "!" }))

	res := b.BuildResolver(cfg, reg, nil, carrier{ext: ext})
	req := apis.Request{Interface: profileT, Backings: []reflect.Type{reflect.TypeOf(&person{}), reflect.TypeOf(titled{})}}
	rs, err := res.Resolve(req, res.Members(profileT), cfg, nil)
	require.NoError(t, err)

	kinds := map[string]apis.StrategyKind{}
	for _, r := range rs {
		kinds[r.Member.Name] = r.Kind
	}
	assert.Equal(t, map[string]apis.StrategyKind{
		"Describe": apis.Backing,
		"Missing":  apis.Unresolved,
		"Name":     apis.FieldGet,
		"SetName":  apis.FieldSet,
		"Shout":    apis.Extension,
		"Stamp":    apis.Static,
		"Title":    apis.Backing,
	}, kinds)
}

func TestExtensions(t *testing.T) {
	ext := registry.NewExtensions()
	assert.Same(t, ext, builder.Extensions(ext))
	assert.Same(t, ext, builder.Extensions(carrier{ext: ext}))
	assert.Nil(t, builder.Extensions("nope"))
	assert.Nil(t, builder.Extensions(nil))
}

func TestBuildCache_Fresh(t *testing.T) {
	b := builder.New()
	c := b.BuildCache(config.DefaultConfig(), nil, nil)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Count())
}

func TestTypeBuilder_Build(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	res := b.BuildResolver(cfg, b.BuildRegistry(cfg, nil, nil), nil, nil)
	req := apis.Request{Interface: profileT, Backings: []reflect.Type{reflect.TypeOf(&person{}), reflect.TypeOf(titled{})}}

	typ, err := builder.NewTypeBuilder(nil).Build(req, res, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, dispatch.Finalized, typ.State())
	assert.Equal(t, "Dynamic.Mixins.Profile_person_titled", typ.Name())

	inst := typ.Instance([]any{&person{Name: "Ada"}, titled{}}, nil)
	out, err := inst.Call("Title")
	require.NoError(t, err)
	assert.Equal(t, []any{"Dr."}, out)
	v, err := inst.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", v)
}

type badTitle struct{}

func (badTitle) Title() int { return 0 }

func TestTypeBuilder_CompositionError(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	res := b.BuildResolver(cfg, b.BuildRegistry(cfg, nil, nil), nil, nil)
	req := apis.Request{Interface: profileT, Backings: []reflect.Type{reflect.TypeOf(badTitle{})}}

	typ, err := builder.NewTypeBuilder(nil).Build(req, res, cfg, nil)
	assert.Nil(t, typ)
	assert.ErrorIs(t, err, apis.ErrComposition)
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel to ensure
// it is safe to call Members/Resolve concurrently after being built.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	res := b.BuildResolver(cfg, b.BuildRegistry(cfg, nil, nil), nil, nil)

	reqs := []apis.Request{
		{Interface: profileT, Backings: []reflect.Type{reflect.TypeOf(&person{})}},
		{Interface: profileT, Backings: []reflect.Type{reflect.TypeOf(titled{}), reflect.TypeOf(&person{})}},
		{Interface: profileT, Backings: []reflect.Type{reflect.TypeOf(person{})}},
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				req := reqs[(i+id)%len(reqs)]
				if _, err := res.Resolve(req, res.Members(profileT), cfg, nil); err != nil {
					t.Errorf("Resolve: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
