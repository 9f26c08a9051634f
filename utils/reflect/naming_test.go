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

package reflect_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	uref "dirpx.dev/mixin/utils/reflect"
)

type Pair[K comparable, V any] struct{}
type Other[K comparable, V any] struct{}

type Greeter interface{ Greet() string }

const pkg = "dirpx.dev/mixin/utils/reflect_test"

func TestQualifiedName(t *testing.T) {
	cases := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeOf(A{}), pkg + ".A"},
		{reflect.TypeOf(&A{}), "*" + pkg + ".A"},
		{reflect.TypeOf([]A{}), "[]" + pkg + ".A"},
		{reflect.TypeOf([3]A{}), "[3]" + pkg + ".A"},
		{reflect.TypeOf(map[string]*B{}), "map[string]*" + pkg + ".B"},
		{reflect.TypeOf((<-chan A)(nil)), "<-chan " + pkg + ".A"},
		{reflect.TypeOf((chan<- A)(nil)), "chan<- " + pkg + ".A"},
		{reflect.TypeOf(0), "int"},
		{nil, "<nil>"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, uref.QualifiedName(tc.typ))
	}
}

func TestKey_OrderAndSplitSensitive(t *testing.T) {
	iface := reflect.TypeOf((*Greeter)(nil)).Elem()
	a, b := reflect.TypeOf(A{}), reflect.TypeOf(B{})

	k1 := uref.Key(iface, []reflect.Type{a, b})
	k2 := uref.Key(iface, []reflect.Type{b, a})
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, uref.Key(iface, []reflect.Type{a, b}))
	assert.NotEqual(t, uref.Key(iface, []reflect.Type{a}), uref.Key(iface, []reflect.Type{a, a}))
}

func TestDisplayName(t *testing.T) {
	iface := reflect.TypeOf((*Greeter)(nil)).Elem()
	got := uref.DisplayName(iface, []reflect.Type{reflect.TypeOf(&A{}), reflect.TypeOf(Pair[int, string]{})})
	assert.Equal(t, "Dynamic.Mixins.Greeter_A_Pair", got)
	assert.Equal(t, "Dynamic.Mixins.Greeter_anon", uref.DisplayName(iface, []reflect.Type{reflect.TypeOf(struct{}{})}))
}

func TestGenericHelpers(t *testing.T) {
	assert.Equal(t, "T", uref.StripTypeParams("T[int,string]"))
	assert.Equal(t, "T", uref.StripTypeParams("T"))

	assert.Equal(t, 0, uref.TypeArgCount(reflect.TypeOf(A{})))
	assert.Equal(t, 1, uref.TypeArgCount(reflect.TypeOf(G[int]{})))
	assert.Equal(t, 2, uref.TypeArgCount(reflect.TypeOf(Pair[int, map[string]int]{})))

	assert.True(t, uref.SameGenericOrigin(reflect.TypeOf(Pair[int, string]{}), reflect.TypeOf(Pair[string, int]{})))
	assert.False(t, uref.SameGenericOrigin(reflect.TypeOf(Pair[int, string]{}), reflect.TypeOf(Other[int, string]{})))
	assert.False(t, uref.SameGenericOrigin(reflect.TypeOf(A{}), reflect.TypeOf(A{})))
}
