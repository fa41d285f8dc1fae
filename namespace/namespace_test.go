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

package namespace_test

import (
	"runtime"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dyn/namespace"
)

func TestNamespace_GetSetHasUnset(t *testing.T) {
	ns := namespace.New()

	_, err := ns.Get("x")
	require.ErrorIs(t, err, namespace.ErrUndefinedKey)
	require.ErrorContains(t, err, `"x"`)
	require.False(t, ns.Has("x"))

	ns.Set("x", 1)
	require.True(t, ns.Has("x"))
	v, err := ns.Get("x")
	require.NoError(t, err)
	require.Equal(t, 1, v)

	// nil is a present value, not an absent key
	ns.Set("nil", nil)
	require.True(t, ns.Has("nil"))
	v, err = ns.Get("nil")
	require.NoError(t, err)
	require.Nil(t, v)

	ns.Unset("x")
	ns.Unset("x") // no-op
	require.False(t, ns.Has("x"))
}

func TestNamespace_ReferenceValuesAreLive(t *testing.T) {
	ns := namespace.New()
	ns.Set("m", map[string]int{"a": 1})

	v, _ := ns.Get("m")
	v.(map[string]int)["b"] = 2

	v, _ = ns.Get("m")
	require.Equal(t, map[string]int{"a": 1, "b": 2}, v)
}

func TestNamespace_Keys(t *testing.T) {
	ns := namespace.New()
	ns.Set("b", 2)
	ns.Set("a", 1)

	keys := ns.Keys()
	sort.Strings(keys)
	if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestNamespace_UpdateIsAtomic(t *testing.T) {
	ns := namespace.New()
	var wg conc.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4
	const iters = 500

	for w := 0; w < workers; w++ {
		wg.Go(func() {
			for i := 0; i < iters; i++ {
				ns.Update("n", func(old any, ok bool) any {
					if !ok {
						return 1
					}
					return old.(int) + 1
				})
			}
		})
	}
	wg.Wait()

	v, err := ns.Get("n")
	require.NoError(t, err)
	require.Equal(t, workers*iters, v)
}
