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

package emitter_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/emitter"
)

type Color int
type Shade int

type point struct{ X, Y Color }
type pixel struct{ X, Y Shade }
type hidden struct{ x Color }
type hidden2 struct{ x Shade }

type label string

func (l label) String() string { return string(l) }

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		in   any
		to   reflect.Type
		want any
	}{
		{"identity", 3, typeOf[int](), 3},
		{"enum", Color(2), typeOf[Shade](), Shade(2)},
		{"slice of enums", []Color{1, 2}, typeOf[[]Shade](), []Shade{1, 2}},
		{"array of enums", [2]Color{1, 2}, typeOf[[2]Shade](), [2]Shade{1, 2}},
		{"map of enums", map[string]Color{"a": 1}, typeOf[map[string]Shade](), map[string]Shade{"a": 1}},
		{"struct rebuild", point{1, 2}, typeOf[pixel](), pixel{1, 2}},
		{"nil slice", []Color(nil), typeOf[[]Shade](), []Shade(nil)},
		{"unwrap interface", any("x"), typeOf[string](), "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := emitter.Coerce(reflect.ValueOf(tc.in), tc.to, 8)
			require.NoError(t, err)
			assert.Equal(t, tc.to, got.Type())
			assert.Equal(t, tc.want, got.Interface())
		})
	}
}

func TestCoerce_InterfaceWrap(t *testing.T) {
	got, err := emitter.Coerce(reflect.ValueOf(label("hi")), typeOf[fmt.Stringer](), 8)
	require.NoError(t, err)
	assert.Equal(t, reflect.Interface, got.Kind())
	assert.Equal(t, "hi", got.Interface().(fmt.Stringer).String())
}

func TestCoerce_Pointer(t *testing.T) {
	c := Color(7)
	got, err := emitter.Coerce(reflect.ValueOf(&c), typeOf[*Shade](), 8)
	require.NoError(t, err)
	assert.Equal(t, Shade(7), *got.Interface().(*Shade))
}

func TestCoerce_Nil(t *testing.T) {
	got, err := emitter.Coerce(reflect.Value{}, typeOf[error](), 8)
	require.NoError(t, err)
	assert.True(t, got.IsNil())

	var nilAny any
	got, err = emitter.Coerce(reflect.ValueOf(&nilAny).Elem(), typeOf[*int](), 8)
	require.NoError(t, err)
	assert.True(t, got.IsNil())

	_, err = emitter.Coerce(reflect.Value{}, typeOf[int](), 8)
	assert.ErrorIs(t, err, apis.ErrCoercion)
}

func TestCoerce_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   any
		to   reflect.Type
	}{
		{"kind mismatch", "x", typeOf[int]()},
		{"not implemented", 3, typeOf[fmt.Stringer]()},
		{"array length", [2]int{}, typeOf[[3]int]()},
		{"unexported fields", hidden{}, typeOf[hidden2]()},
		{"slice elem", []string{"a"}, typeOf[[]int]()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := emitter.Coerce(reflect.ValueOf(tc.in), tc.to, 8)
			assert.ErrorIs(t, err, apis.ErrCoercion)
			var ce *apis.CoercionError
			assert.ErrorAs(t, err, &ce)
		})
	}
}

func TestCoerce_MaxDepth(t *testing.T) {
	_, err := emitter.Coerce(reflect.ValueOf([][]Color{{1}}), typeOf[[][]Shade](), 1)
	assert.ErrorIs(t, err, apis.ErrCoercion)

	got, err := emitter.Coerce(reflect.ValueOf([][]Color{{1}}), typeOf[[][]Shade](), 3)
	require.NoError(t, err)
	assert.Equal(t, [][]Shade{{1}}, got.Interface())
}
