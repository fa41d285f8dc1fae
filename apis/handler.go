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

// Kind tags the source a Handler was resolved from.
type Kind int

const (
	// Missing means no source provides the requested name.
	Missing Kind = iota
	// Dynamic is a behavior already present in the instance's MethodStore.
	Dynamic
	// Declared is a method declared on the instance's concrete type.
	Declared
	// Registry is a behavior found in the global ClosureRegistry. The
	// dispatcher installs it into the instance's MethodStore before calling.
	Registry
)

// String returns a short label suitable for logs and metric labels.
func (k Kind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Declared:
		return "declared"
	case Registry:
		return "registry"
	default:
		return "missing"
	}
}

// Handler is the outcome of resolving a method name against a Target.
type Handler struct {
	// Kind tells which source produced the handler.
	Kind Kind
	// Name is the requested method name (not the folded Go name).
	Name string
	// Bound is the behavior to invoke. It is zero when Kind is Missing.
	Bound Bound
}

// Found reports whether the handler resolved to something callable.
func (h Handler) Found() bool {
	return h.Kind != Missing && h.Bound.Valid()
}
