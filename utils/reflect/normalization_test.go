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
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uref "dirpx.dev/mixin/utils/reflect"
)

// Local test types.
type A struct{}
type B struct{}
type G[T any] struct{}
type W[T any] struct{ V T }

func TestNormalize_BasicContainers(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want reflect.Type
	}{
		{"plain", reflect.TypeOf(A{}), reflect.TypeOf(A{})},
		{"ptr", reflect.TypeOf(&A{}), reflect.TypeOf(A{})},
		{"slice", reflect.TypeOf([]A{}), reflect.TypeOf(A{})},
		{"array", reflect.TypeOf([2]A{}), reflect.TypeOf(A{})},
		{"chan", reflect.TypeOf((chan A)(nil)), reflect.TypeOf(A{})},
		{"map elem", reflect.TypeOf(map[string]A{}), reflect.TypeOf(A{})},
		{"map key fallback", reflect.TypeOf(map[string]struct{ X int }{}), reflect.TypeOf("")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, 8)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize_GenericInstantiation(t *testing.T) {
	gt, err := uref.Normalize(reflect.TypeOf(G[int]{}), 8)
	require.NoError(t, err)
	assert.NotEmpty(t, gt.Name())

	wt, err := uref.Normalize(reflect.TypeOf(&W[G[int]]{}), 8)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(W[G[int]]{}), wt)
}

func TestNormalize_MaxUnwrap(t *testing.T) {
	tPP := reflect.TypeOf((**A)(nil))

	_, err := uref.Normalize(tPP, 1)
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed)

	got, err := uref.Normalize(tPP, 8)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(A{}), got)

	// Non-positive depth falls back to the default.
	got, err = uref.Normalize(tPP, 0)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(A{}), got)
}

func TestNormalize_Errors(t *testing.T) {
	_, err := uref.Normalize(nil, 8)
	assert.ErrorIs(t, err, uref.ErrReflectNilType)

	_, err = uref.Normalize(reflect.TypeOf(struct{ X int }{}), 8)
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed)
}

// Normalize is pure; hammer it to smoke-test that no shared state is mutated.
func TestNormalize_Concurrent(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]B{}),
		reflect.TypeOf(map[string]A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeOf(W[G[int]]{}),
		reflect.TypeOf(0),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	iters := 2000

	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				if _, err := uref.Normalize(types[i%len(types)], 8); err != nil {
					errCh <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("Normalize: %v", err)
	}
}
