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

package strategy

import (
	"dirpx.dev/dyn/apis"
)

// NewClosureStrategy creates an apis.Strategy that falls back to the global
// ClosureRegistry. The returned handler is bound to the target but not yet
// installed; installation is the dispatcher's job.
func NewClosureStrategy(reg apis.ClosureRegistry) apis.Strategy {
	return &closureStrategy{reg: reg}
}

// closureStrategy consults a provided apis.ClosureRegistry.
type closureStrategy struct {
	reg apis.ClosureRegistry
}

// Ensure closureStrategy implements apis.Strategy.
var _ apis.Strategy = (*closureStrategy)(nil)

// TryResolve looks name up in the registry and binds it to t.Self().
func (s *closureStrategy) TryResolve(t apis.Target, name string, _ apis.Config) (apis.Handler, bool) {
	if t == nil || s.reg == nil {
		return apis.Handler{}, false
	}
	m, ok := s.reg.Lookup(name)
	if !ok || m == nil {
		return apis.Handler{}, false
	}
	return apis.Handler{Kind: apis.Registry, Name: name, Bound: apis.Bind(t.Self(), m)}, true
}

// Candidates returns the registered names.
func (s *closureStrategy) Candidates(_ apis.Target, _ apis.Config) []string {
	if s.reg == nil {
		return nil
	}
	return s.reg.Names()
}
