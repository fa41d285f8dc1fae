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

// MethodStore is the per-instance mapping from name to bound behavior.
type MethodStore interface {
	// Add stores b under name, overwriting any previous binding.
	Add(name string, b Bound)
	// Install stores b under name unless a binding is already present. It
	// returns the binding held under name afterwards and whether it is b.
	Install(name string, b Bound) (Bound, bool)
	// Lookup returns the binding for name if present.
	Lookup(name string) (Bound, bool)
	// Remove deletes name and reports whether it was present.
	Remove(name string) bool
	// Names returns the stored names (order is unspecified).
	Names() []string
	// Count returns the number of stored bindings.
	Count() int
}
