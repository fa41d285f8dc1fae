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

package namespace

import (
	"errors"
	"fmt"
	"sync"

	"dirpx.dev/dyn/apis"
)

// ErrUndefinedKey is returned by Get when the key is absent.
var ErrUndefinedKey = errors.New("dyn(namespace): undefined key")

// New constructs an empty Namespace.
func New() apis.Namespace {
	return &namespace{m: make(map[string]any)}
}

// namespace is a lock-guarded map. Last writer wins; there is no isolation
// between callers beyond single-operation atomicity.
type namespace struct {
	mu sync.RWMutex
	m  map[string]any
}

// Get returns the value stored under key.
func (n *namespace) Get(key string) (any, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.m[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUndefinedKey, key)
	}
	return v, nil
}

// Set writes value under key.
func (n *namespace) Set(key string, value any) {
	n.mu.Lock()
	n.m[key] = value
	n.mu.Unlock()
}

// Has reports whether key is present.
func (n *namespace) Has(key string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.m[key]
	return ok
}

// Unset removes key if present.
func (n *namespace) Unset(key string) {
	n.mu.Lock()
	delete(n.m, key)
	n.mu.Unlock()
}

// Update replaces the value under key with fn(old, ok) while holding the
// write lock. fn must not call back into the namespace.
func (n *namespace) Update(key string, fn func(old any, ok bool) any) any {
	n.mu.Lock()
	defer n.mu.Unlock()
	old, ok := n.m[key]
	v := fn(old, ok)
	n.m[key] = v
	return v
}

// Keys returns the present keys (order is unspecified).
func (n *namespace) Keys() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, 0, len(n.m))
	for k := range n.m {
		out = append(out, k)
	}
	return out
}
