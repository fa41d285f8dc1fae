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

// Target is what a Resolver resolves against: an instance plus its
// per-instance MethodStore.
type Target interface {
	// Self returns the concrete instance (usually a pointer to the outer
	// struct embedding the dispatch base).
	Self() any
	// Methods returns the instance's Dynamic Method Store.
	Methods() MethodStore
}

// Hider is implemented by instances whose dispatch surface must not be
// reachable as declared methods (e.g., the Call method itself).
type Hider interface {
	HiddenMethods() []string
}
