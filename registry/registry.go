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

package registry

import (
	"errors"
	"fmt"
	"sync"

	"dirpx.dev/dyn/apis"
	uref "dirpx.dev/dyn/utils/reflect"
)

var (
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("dyn(registry): empty name provided")
	// ErrNilMethod is returned when the provided value is not callable.
	ErrNilMethod = errors.New("dyn(registry): value is not callable")
)

// New constructs an empty ClosureRegistry.
func New() apis.ClosureRegistry {
	return &registry{}
}

// registry is a simple ClosureRegistry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps method name to apis.Method.
	m sync.Map // map[string]apis.Method
	// count tracks the number of registered entries.
	count int
}

// Register adapts fn into an apis.Method and stores it under name,
// replacing any previous entry.
func (r *registry) Register(name string, fn any) error {
	// Validate inputs early.
	if name == "" {
		return ErrEmptyName
	}
	m, err := uref.Adapt(fn)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrNilMethod, name, err)
	}

	// Write path: guard with a mutex to keep counter consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, loaded := r.m.Swap(name, m); !loaded {
		r.count++
	}
	return nil
}

// Lookup returns the behavior registered under name.
func (r *registry) Lookup(name string) (apis.Method, bool) {
	if name == "" {
		return nil, false
	}
	if v, ok := r.m.Load(name); ok {
		return v.(apis.Method), true
	}
	return nil, false
}

// Names returns a snapshot of registered names (order is unspecified).
func (r *registry) Names() []string {
	names := make([]string, 0, r.Count())
	r.m.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	return names
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Range(func(key, _ any) bool {
		r.m.Delete(key)
		return true
	})
	r.count = 0
}
