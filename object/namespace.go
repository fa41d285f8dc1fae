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

package object

import (
	uref "dirpx.dev/dyn/utils/reflect"
)

// Get returns the value stored under key in the global namespace.
func (o *Object) Get(key string) (any, error) {
	_, env, _ := o.state()
	if env == nil || env.Namespace() == nil {
		return nil, ErrDetached
	}
	return env.Namespace().Get(key)
}

// Set writes value under key in the global namespace. It is a no-op on a
// detached Object.
func (o *Object) Set(key string, value any) {
	_, env, _ := o.state()
	if env == nil || env.Namespace() == nil {
		return
	}
	env.Namespace().Set(key, value)
}

// Has reports whether key is present in the global namespace.
func (o *Object) Has(key string) bool {
	_, env, _ := o.state()
	if env == nil || env.Namespace() == nil {
		return false
	}
	return env.Namespace().Has(key)
}

// Unset removes key from the global namespace.
func (o *Object) Unset(key string) {
	_, env, _ := o.state()
	if env == nil || env.Namespace() == nil {
		return
	}
	env.Namespace().Unset(key)
}

// Update is the write-back half of copy-on-read access: it replaces the
// value under key with fn(old, ok) atomically.
func (o *Object) Update(key string, fn func(old any, ok bool) any) (any, error) {
	_, env, _ := o.state()
	if env == nil || env.Namespace() == nil {
		return nil, ErrDetached
	}
	return env.Namespace().Update(key, fn), nil
}

// Invoke returns the instance's internal storage, not the global namespace.
func (o *Object) Invoke() any {
	return o.Storage()
}

// Storage returns the instance's internal storage.
func (o *Object) Storage() any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.storage
}

// SetStorage replaces the instance's internal storage.
func (o *Object) SetStorage(v any) {
	o.mu.Lock()
	o.storage = v
	o.mu.Unlock()
}

// HasStorage reports whether internal storage holds a non-nil value.
func (o *Object) HasStorage() bool {
	return !uref.IsNil(o.Storage())
}

// Publish writes value to the global namespace under key. An empty value
// publishes the instance's storage instead.
func (o *Object) Publish(key string, value any) {
	if uref.IsEmpty(value) {
		value = o.Storage()
	}
	o.Set(key, value)
}

// Fetch returns the instance's storage for an empty key, and the global
// namespace value under key otherwise.
func (o *Object) Fetch(key string) (any, error) {
	if key == "" {
		return o.Storage(), nil
	}
	return o.Get(key)
}
