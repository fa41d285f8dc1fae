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

package registry_test

import (
	"runtime"
	"strconv"
	"testing"

	"github.com/sourcegraph/conc"

	"dirpx.dev/dyn/apis"
	"dirpx.dev/dyn/registry"
)

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Names/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New()

	names := make([]string, 10)
	for i := range names {
		names[i] = "m" + strconv.Itoa(i)
	}
	echo := func(i int) func() int { return func() int { return i } }

	// Register once (sequential) to establish baseline.
	for i, n := range names {
		if err := reg.Register(n, echo(i)); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}

	var wg conc.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			for i := 0; i < 5000; i++ {
				n := names[i%len(names)]
				m, ok := reg.Lookup(n)
				if !ok {
					t.Errorf("lookup failed for %s", n)
					return
				}
				if got, err := m(nil); err != nil || got != i%len(names) {
					t.Errorf("%s() = (%v,%v), want %d", n, got, err, i%len(names))
					return
				}
				_ = reg.Count()
				_ = reg.Names()
			}
		})
	}

	// Writers (replace with equivalent behavior)
	for w := 0; w < workers; w++ {
		id := w
		wg.Go(func() {
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(names)
				_ = reg.Register(names[j], echo(j))
			}
		})
	}

	wg.Wait()

	if reg.Count() != len(names) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(names))
	}
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.ClosureRegistry = registry.New()
