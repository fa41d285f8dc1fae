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

package apis

// Namespace is the process-wide key/value store shared by every instance.
// Reads return the stored value itself; values that are not reference types
// are therefore copies, and writers use Set or Update to publish changes.
type Namespace interface {
	// Get returns the value stored under key, or an error if key is absent.
	Get(key string) (any, error)
	// Set writes value under key, creating it if absent.
	Set(key string, value any)
	// Has reports whether key is present. It never fails.
	Has(key string) bool
	// Unset removes key. Missing keys are ignored.
	Unset(key string)
	// Update atomically replaces the value under key with fn(old, ok) and
	// returns the new value.
	Update(key string, fn func(old any, ok bool) any) any
	// Keys returns the present keys (order is unspecified).
	Keys() []string
}
