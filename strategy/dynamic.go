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

// NewDynamicStrategy creates an apis.Strategy that consults the target's own
// MethodStore.
func NewDynamicStrategy() apis.Strategy {
	return &dynamicStrategy{}
}

// dynamicStrategy is the first stop: behaviors attached to the instance at
// runtime shadow everything else.
type dynamicStrategy struct{}

// Ensure dynamicStrategy implements apis.Strategy.
var _ apis.Strategy = (*dynamicStrategy)(nil)

// TryResolve looks name up in t's MethodStore.
func (*dynamicStrategy) TryResolve(t apis.Target, name string, _ apis.Config) (apis.Handler, bool) {
	if t == nil || t.Methods() == nil {
		return apis.Handler{}, false
	}
	b, ok := t.Methods().Lookup(name)
	if !ok || !b.Valid() {
		return apis.Handler{}, false
	}
	return apis.Handler{Kind: apis.Dynamic, Name: name, Bound: b}, true
}

// Candidates returns the names stored on t.
func (*dynamicStrategy) Candidates(t apis.Target, _ apis.Config) []string {
	if t == nil || t.Methods() == nil {
		return nil
	}
	return t.Methods().Names()
}
