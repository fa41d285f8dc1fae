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
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"dirpx.dev/dyn/apis"
	"dirpx.dev/dyn/internal/metrics"
	uref "dirpx.dev/dyn/utils/reflect"
)

// Call invokes name with args. Resolution order, first match wins:
//
//  1. a behavior in the instance's Dynamic Method Store;
//  2. an exported method declared on the instance's concrete type;
//  3. a closure from the global registry, which is installed into the
//     store first so later calls take path 1;
//  4. otherwise a *NoSuchMethodError.
//
// An empty result (see apis.EmptyPolicy) is replaced by the instance itself
// so calls can be chained. Errors from the behavior are returned as-is.
func (o *Object) Call(name string, args ...any) (any, error) {
	self, env, store := o.state()
	if env == nil || env.Resolver() == nil {
		return nil, ErrDetached
	}
	cfg := env.Config()
	log := env.Logger()

	h := env.Resolver().Resolve(o, name, cfg)
	switch {
	case !h.Found():
		err := &NoSuchMethodError{Name: name, Suggestions: suggest(name, env.Resolver().Candidates(o, cfg), cfg)}
		metrics.RecordDispatch(apis.Missing.String(), err)
		log.Debug().Str("id", o.ID().String()).Str("type", fmt.Sprintf("%T", self)).
			Str("method", name).Msg("no such method")
		return nil, err

	case h.Kind == apis.Registry:
		// An AddMethod racing with resolution wins over the closure.
		if cur, ok := store.Install(name, h.Bound); ok {
			metrics.RecordPromotion()
			log.Debug().Str("id", o.ID().String()).Str("method", name).Msg("closure promoted")
		} else {
			h.Kind, h.Bound = apis.Dynamic, cur
		}
	}

	res, err := h.Bound.Call(args...)
	metrics.RecordDispatch(h.Kind.String(), err)
	log.Debug().Str("id", o.ID().String()).Str("method", name).Str("path", h.Kind.String()).
		Err(err).Msg("dispatch")
	if err != nil {
		return nil, err
	}
	return normalize(res, self, cfg.EmptyPolicy), nil
}

// normalize swaps an empty result for self.
func normalize(res, self any, policy apis.EmptyPolicy) any {
	switch policy {
	case apis.ChainOnNil:
		if uref.IsNil(res) {
			return self
		}
	default:
		if uref.IsEmpty(res) {
			return self
		}
	}
	return res
}

// suggest returns up to cfg.MaxSuggestions candidates within
// cfg.SuggestDistance edits of name (case-insensitive), nearest first.
func suggest(name string, candidates []string, cfg apis.Config) []string {
	if cfg.MaxSuggestions <= 0 || name == "" {
		return nil
	}
	type scored struct {
		name string
		dist int
	}
	lname := strings.ToLower(name)
	var hits []scored
	for _, c := range candidates {
		if c == name {
			continue
		}
		if d := levenshtein.ComputeDistance(lname, strings.ToLower(c)); d <= cfg.SuggestDistance {
			hits = append(hits, scored{name: c, dist: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].name < hits[j].name
	})
	if len(hits) > cfg.MaxSuggestions {
		hits = hits[:cfg.MaxSuggestions]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}
