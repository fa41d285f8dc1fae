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

package methods_test

import (
	"runtime"
	"sort"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dyn/apis"
	"dirpx.dev/dyn/methods"
)

type owner struct{ tag string }

func constant(v any) apis.Method {
	return func(any, ...any) (any, error) { return v, nil }
}

func TestStore_AddLookupOverwrite(t *testing.T) {
	s := methods.New()
	o := &owner{tag: "o"}

	s.Add("x", apis.Bind(o, constant(1)))
	b, ok := s.Lookup("x")
	require.True(t, ok)
	require.Same(t, o, b.Self)
	got, err := b.Call()
	require.NoError(t, err)
	require.Equal(t, 1, got)

	s.Add("x", apis.Bind(o, constant(2)))
	b, _ = s.Lookup("x")
	got, _ = b.Call()
	require.Equal(t, 2, got)
	require.Equal(t, 1, s.Count())
}

func TestStore_InstallKeepsExisting(t *testing.T) {
	s := methods.New()

	b, ok := s.Install("x", apis.Bind(nil, constant(1)))
	require.True(t, ok)
	got, _ := b.Call()
	require.Equal(t, 1, got)

	b, ok = s.Install("x", apis.Bind(nil, constant(2)))
	require.False(t, ok)
	got, _ = b.Call()
	require.Equal(t, 1, got, "Install must return the binding already held")

	b, _ = s.Lookup("x")
	got, _ = b.Call()
	require.Equal(t, 1, got)
}

func TestStore_RemoveAndNames(t *testing.T) {
	s := methods.New()
	s.Add("a", apis.Bind(nil, constant("a")))
	s.Add("b", apis.Bind(nil, constant("b")))

	names := s.Names()
	sort.Strings(names)
	require.Equal(t, []string{"a", "b"}, names)

	require.True(t, s.Remove("a"))
	require.False(t, s.Remove("a"))
	_, ok := s.Lookup("a")
	require.False(t, ok)
	require.Equal(t, 1, s.Count())
}

func TestStore_Concurrent(t *testing.T) {
	s := methods.New()
	var wg conc.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4

	for w := 0; w < workers; w++ {
		wg.Go(func() {
			for i := 0; i < 1000; i++ {
				s.Add("shared", apis.Bind(nil, constant(i)))
				if _, ok := s.Lookup("shared"); !ok {
					t.Error("lookup miss after add")
					return
				}
				_ = s.Names()
			}
		})
	}
	wg.Wait()
	require.Equal(t, 1, s.Count())
}
