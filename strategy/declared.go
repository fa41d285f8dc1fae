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
	"reflect"
	"slices"
	"sync"
	"unicode"
	"unicode/utf8"

	"dirpx.dev/dyn/apis"
	uref "dirpx.dev/dyn/utils/reflect"
)

// NewDeclaredStrategy creates an apis.Strategy that resolves names to methods
// declared on the target's concrete type via reflection and memoization.
func NewDeclaredStrategy() apis.Strategy {
	return declaredStrategy{}
}

// declaredStrategy finds exported methods of the most-derived type, including
// methods promoted from embedded types. Names listed by apis.Hider are skipped.
type declaredStrategy struct{}

// Ensure declaredStrategy implements apis.Strategy.
var _ apis.Strategy = (*declaredStrategy)(nil)

// methodKey identifies a (type, Go method name) lookup.
type methodKey struct {
	t    reflect.Type
	name string
}

// methodIndexCache caches method indices by (type, name); -1 marks a miss.
var methodIndexCache sync.Map // key: methodKey, val: int

// TryResolve binds name to the declared method of t.Self(), if any.
func (declaredStrategy) TryResolve(t apis.Target, name string, cfg apis.Config) (apis.Handler, bool) {
	if t == nil || name == "" {
		return apis.Handler{}, false
	}
	self := t.Self()
	if self == nil || hidden(self, name) {
		return apis.Handler{}, false
	}
	rt := reflect.TypeOf(self)

	idx := methodIndex(rt, name)
	if idx < 0 && cfg.FoldDeclaredNames {
		if folded := upperFirst(name); folded != name && !hidden(self, folded) {
			idx = methodIndex(rt, folded)
		}
	}
	if idx < 0 {
		return apis.Handler{}, false
	}

	fn := func(s any, args ...any) (any, error) {
		return uref.Call(reflect.ValueOf(s).Method(idx), nil, args)
	}
	return apis.Handler{Kind: apis.Declared, Name: name, Bound: apis.Bind(self, fn)}, true
}

// Candidates lists the exported, non-hidden methods of t.Self().
func (declaredStrategy) Candidates(t apis.Target, _ apis.Config) []string {
	if t == nil || t.Self() == nil {
		return nil
	}
	self := t.Self()
	rt := reflect.TypeOf(self)
	out := make([]string, 0, rt.NumMethod())
	for i := 0; i < rt.NumMethod(); i++ {
		if n := rt.Method(i).Name; !hidden(self, n) {
			out = append(out, n)
		}
	}
	return out
}

// methodIndex returns the index of the exported method name on rt, or -1.
func methodIndex(rt reflect.Type, name string) int {
	key := methodKey{t: rt, name: name}
	if v, ok := methodIndexCache.Load(key); ok {
		return v.(int)
	}
	idx := -1
	if m, ok := rt.MethodByName(name); ok {
		idx = m.Index
	}
	methodIndexCache.Store(key, idx)
	return idx
}

func hidden(self any, name string) bool {
	h, ok := self.(apis.Hider)
	return ok && slices.Contains(h.HiddenMethods(), name)
}

// upperFirst maps "greet" -> "Greet".
func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
