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

package cache_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/cache"
	"dirpx.dev/mixin/dispatch"
	uref "dirpx.dev/mixin/utils/reflect"
)

type Greeter interface{ Greet() string }

type A struct{}
type B struct{}

var greeterT = reflect.TypeOf((*Greeter)(nil)).Elem()

func request(backings ...reflect.Type) apis.Request {
	return apis.Request{Interface: greeterT, Backings: backings}
}

func creator(req apis.Request, calls *atomic.Int32) func() (apis.MixinType, error) {
	return func() (apis.MixinType, error) {
		calls.Add(1)
		return dispatch.NewType(req, uref.DisplayName(req.Interface, req.Backings), uref.Key(req.Interface, req.Backings)), nil
	}
}

func TestGetOrCreate_Memoizes(t *testing.T) {
	c := cache.New()
	var calls atomic.Int32
	req := request(reflect.TypeOf(A{}), reflect.TypeOf(B{}))

	t1, err := c.GetOrCreate(req, creator(req, &calls))
	require.NoError(t, err)
	t2, err := c.GetOrCreate(request(reflect.TypeOf(A{}), reflect.TypeOf(B{})), creator(req, &calls))
	require.NoError(t, err)

	assert.Same(t, t1, t2)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, dispatch.Cached, t1.(*dispatch.Type).State())

	got, ok := c.Lookup(req)
	require.True(t, ok)
	assert.Same(t, t1, got)
}

func TestGetOrCreate_OrderMatters(t *testing.T) {
	c := cache.New()
	var calls atomic.Int32
	ab := request(reflect.TypeOf(A{}), reflect.TypeOf(B{}))
	ba := request(reflect.TypeOf(B{}), reflect.TypeOf(A{}))

	t1, err := c.GetOrCreate(ab, creator(ab, &calls))
	require.NoError(t, err)
	t2, err := c.GetOrCreate(ba, creator(ba, &calls))
	require.NoError(t, err)

	assert.NotSame(t, t1, t2)
	assert.Equal(t, 2, c.Count())
	assert.Len(t, c.Entries(), 2)
}

func TestGetOrCreate_ErrorsAreNotCached(t *testing.T) {
	c := cache.New()
	req := request(reflect.TypeOf(A{}))
	boom := errors.New("boom")

	_, err := c.GetOrCreate(req, func() (apis.MixinType, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Count())

	var calls atomic.Int32
	_, err = c.GetOrCreate(req, creator(req, &calls))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func collidingTypes() (reflect.Type, reflect.Type) {
	first := func() reflect.Type {
		type Local struct{ A int }
		return reflect.TypeOf(Local{})
	}
	second := func() reflect.Type {
		type Local struct{ B string }
		return reflect.TypeOf(Local{})
	}
	return first(), second()
}

func TestGetOrCreate_KeyCollision(t *testing.T) {
	x, y := collidingTypes()
	require.NotEqual(t, x, y)
	require.Equal(t, uref.Key(greeterT, []reflect.Type{x}), uref.Key(greeterT, []reflect.Type{y}))

	c := cache.New()
	var calls atomic.Int32
	rx, ry := request(x), request(y)

	tx, err := c.GetOrCreate(rx, creator(rx, &calls))
	require.NoError(t, err)
	ty, err := c.GetOrCreate(ry, creator(ry, &calls))
	require.NoError(t, err)

	assert.NotSame(t, tx, ty)
	assert.Equal(t, x, tx.Request().Backings[0])
	assert.Equal(t, y, ty.Request().Backings[0])
	assert.Equal(t, 2, c.Count())
}

// TestGetOrCreate_Concurrent verifies at most one synthesis per key under contention.
func TestGetOrCreate_Concurrent(t *testing.T) {
	c := cache.New()
	var calls atomic.Int32
	req := request(reflect.TypeOf(A{}), reflect.TypeOf(B{}))
	slow := func() (apis.MixinType, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return dispatch.NewType(req, "slow", "slow"), nil
	}

	workers := runtime.GOMAXPROCS(0) * 4
	results := make([]apis.MixinType, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			typ, err := c.GetOrCreate(request(reflect.TypeOf(A{}), reflect.TypeOf(B{})), slow)
			if err != nil {
				t.Errorf("GetOrCreate: %v", err)
				return
			}
			results[id] = typ
		}(w)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestReset(t *testing.T) {
	c := cache.New()
	var calls atomic.Int32
	req := request(reflect.TypeOf(A{}))

	_, _ = c.GetOrCreate(req, creator(req, &calls))
	snap := c.Entries()
	c.Reset()

	assert.Equal(t, 0, c.Count())
	assert.Len(t, snap, 1)
	_, ok := c.Lookup(req)
	assert.False(t, ok)

	_, _ = c.GetOrCreate(req, creator(req, &calls))
	assert.Equal(t, int32(2), calls.Load())
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Cache = cache.New()
