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

// ClosureRegistry is the process-wide mapping from method name to unbound
// behavior. The dispatcher only reads it; the assembling application fills it.
type ClosureRegistry interface {
	// Register associates name with fn. fn must be callable (see utils/reflect.Adapt).
	// Re-registering a name replaces the previous behavior.
	Register(name string, fn any) error
	// Lookup returns the behavior registered under name.
	Lookup(name string) (Method, bool)
	// Names returns the registered names (order is unspecified).
	Names() []string
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}
