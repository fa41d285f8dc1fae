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

package methods

import (
	"sync"

	"dirpx.dev/dyn/apis"
)

// New constructs an empty per-instance MethodStore.
func New() apis.MethodStore {
	return &store{m: make(map[string]apis.Bound)}
}

// store is a MethodStore guarded by a RWMutex; lookups dominate writes.
type store struct {
	mu sync.RWMutex
	m  map[string]apis.Bound
}

// Add stores b under name, overwriting any previous binding.
func (s *store) Add(name string, b apis.Bound) {
	s.mu.Lock()
	s.m[name] = b
	s.mu.Unlock()
}

// Install stores b under name unless name is already bound.
func (s *store) Install(name string, b apis.Bound) (apis.Bound, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.m[name]; ok {
		return cur, false
	}
	s.m[name] = b
	return b, true
}

// Lookup returns the binding for name if present.
func (s *store) Lookup(name string) (apis.Bound, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.m[name]
	return b, ok
}

// Remove deletes name and reports whether it was present.
func (s *store) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[name]; !ok {
		return false
	}
	delete(s.m, name)
	return true
}

// Names returns the stored names (order is unspecified).
func (s *store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.m))
	for n := range s.m {
		out = append(out, n)
	}
	return out
}

// Count returns the number of stored bindings.
func (s *store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
