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

package builder

import (
	"dirpx.dev/dyn/apis"
	"dirpx.dev/dyn/registry"
	"dirpx.dev/dyn/resolver"
	"dirpx.dev/dyn/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildClosures builds and returns a new apis.ClosureRegistry. If a
// pre-existing registry is provided, its entries are copied into the new one.
func (b *builder) BuildClosures(_ apis.Config, prev apis.ClosureRegistry, _ any) apis.ClosureRegistry {
	nreg := registry.New()
	if prev != nil {
		for _, name := range prev.Names() {
			if m, ok := prev.Lookup(name); ok {
				_ = nreg.Register(name, m)
			}
		}
	}
	return nreg
}

// BuildResolver builds the default resolution chain over the given closure
// registry: dynamic store, then declared methods, then the registry.
func (b *builder) BuildResolver(_ apis.Config, closures apis.ClosureRegistry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewDynamicStrategy(),
		strategy.NewDeclaredStrategy(),
		strategy.NewClosureStrategy(closures),
	)
}
