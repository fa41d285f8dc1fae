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

package dyn

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"dirpx.dev/dyn/apis"
	"dirpx.dev/dyn/builder"
	"dirpx.dev/dyn/config"
	"dirpx.dev/dyn/instance"
	"dirpx.dev/dyn/internal/metrics"
	"dirpx.dev/dyn/namespace"
	"dirpx.dev/dyn/object"
)

// init publishes the default snapshot.
func init() {
	s := &state{
		cfg: config.DefaultConfig(),
		bld: builder.New(),
		ns:  namespace.New(),
		log: zerolog.Nop(),
	}
	s.closures = s.bld.BuildClosures(s.cfg, nil, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.closures, nil, nil)
	st.Store(s)
}

var (
	// ErrNilClosures is returned when a builder returns a nil closure registry.
	ErrNilClosures = errors.New("dyn: builder returned nil closure registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("dyn: builder returned nil resolver")
	// ErrNotDispatchable is returned by Static for types without a Call method.
	ErrNotDispatchable = errors.New("dyn: type does not embed object.Object")
)

// Errors re-exported for callers that only import the root package.
var (
	ErrNoSuchMethod  = object.ErrNoSuchMethod
	ErrInvalidMethod = object.ErrInvalidMethod
	ErrDetached      = object.ErrDetached
	ErrUndefinedKey  = namespace.ErrUndefinedKey
	ErrNoFactory     = instance.ErrNoFactory
)

// instances holds every singleton created through this package. It outlives
// snapshot swaps; instances are attached to Env and always see the latest
// snapshot.
var instances = instance.New(Env)

// GetInstance returns the singleton of type T, constructing it from args on
// first use. Later arguments are ignored.
func GetInstance[T any](args ...any) (T, error) {
	return instance.Get[T](instances, args...)
}

// Provide registers the constructor used for T's singleton.
func Provide[T any](f func(args ...any) (T, error)) error {
	return instance.Register(instances, f)
}

// Static obtains T's singleton and calls name on it. args serve twice: as
// constructor arguments (ignored once the singleton exists) and as call
// arguments.
func Static[T any](name string, args ...any) (any, error) {
	v, err := GetInstance[T](args...)
	if err != nil {
		return nil, err
	}
	c, ok := any(v).(object.Caller)
	if !ok {
		return nil, ErrNotDispatchable
	}
	return c.Call(name, args...)
}

// Instances returns the types whose singleton has been constructed.
func Instances() []reflect.Type {
	return instances.Types()
}

// ResetInstances drops every singleton. Constructors stay registered.
// Intended for tests.
func ResetInstances() {
	instances.Reset()
}

// RegisterClosure adds fn to the current global closure registry.
func RegisterClosure(name string, fn any) error {
	return st.Load().closures.Register(name, fn)
}

// RegisterMetrics registers the dispatch and construction collectors.
func RegisterMetrics(reg prometheus.Registerer) error {
	return metrics.Register(reg)
}

// Env returns the environment every singleton is attached to. Each accessor
// reads the latest snapshot, so reconfiguration reaches existing instances.
func Env() object.Env {
	return globalEnv{}
}

type globalEnv struct{}

func (globalEnv) Config() apis.Config       { return st.Load().cfg }
func (globalEnv) Namespace() apis.Namespace { return st.Load().ns }
func (globalEnv) Resolver() apis.Resolver   { return st.Load().res }
func (globalEnv) Logger() zerolog.Logger    { return st.Load().log }

// SetAll replaces the snapshot in one shot.
//
// A nil cfg or bld keeps the current one; ext is always replaced. A nil
// closures or res is built fresh (empty) and left unpinned; a non-nil one is
// installed and pinned. The namespace and logger are kept.
func SetAll(cfg *apis.Config, ext any, closures apis.ClosureRegistry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	s := *old
	if cfg != nil {
		s.cfg = *cfg
	}
	s.ext = ext
	if bld != nil {
		s.bld = bld
	}

	s.closures, s.pclo = closures, closures != nil
	if s.closures == nil {
		s.closures = s.bld.BuildClosures(s.cfg, nil, s.ext)
	}
	s.res, s.pres = res, res != nil
	if s.res == nil {
		s.res = s.bld.BuildResolver(s.cfg, s.closures, nil, s.ext)
	}
	publish(&s)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig installs cfg and rebuilds unpinned layers.
func SetConfig(cfg apis.Config) {
	update(true, func(s *state) { s.cfg = cfg })
}

// Closures returns the global closure registry.
func Closures() apis.ClosureRegistry {
	return st.Load().closures
}

// SetClosures installs reg as the global closure registry and pins it.
// The resolver is rebuilt over reg unless pinned.
func SetClosures(reg apis.ClosureRegistry) {
	if reg == nil {
		return
	}
	update(true, func(s *state) {
		s.closures = reg
		s.pclo = true
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs res and pins it.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(false, func(s *state) {
		s.res = res
		s.pres = true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(true, func(s *state) { s.bld = b })
}

// SetExt replaces the extension payload and rebuilds unpinned layers.
func SetExt[T any](ext T) {
	update(true, func(s *state) { s.ext = ext })
}

// ExtAs returns the extension payload as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// Namespace returns the global namespace.
func Namespace() apis.Namespace {
	return st.Load().ns
}

// SetNamespace installs ns as the global namespace.
func SetNamespace(ns apis.Namespace) {
	if ns == nil {
		return
	}
	update(false, func(s *state) { s.ns = ns })
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return st.Load().log
}

// SetLogger installs log as the global logger.
func SetLogger(log zerolog.Logger) {
	update(false, func(s *state) { s.log = log })
}

// IsClosuresPinned reports whether the closure registry is pinned.
func IsClosuresPinned() bool {
	return st.Load().pclo
}

// PinClosures stops automatic rebuilds of the closure registry.
func PinClosures() {
	update(false, func(s *state) { s.pclo = true })
}

// UnpinClosures re-enables automatic rebuilds of the closure registry.
func UnpinClosures() {
	update(false, func(s *state) { s.pclo = false })
}

// IsResolverPinned reports whether the resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops automatic rebuilds of the resolver.
func PinResolver() {
	update(false, func(s *state) { s.pres = true })
}

// UnpinResolver re-enables automatic rebuilds of the resolver.
func UnpinResolver() {
	update(false, func(s *state) { s.pres = false })
}

// update derives a snapshot from the current one under buildMu, applies
// edit, optionally rebuilds the unpinned layers and publishes the result.
func update(rebuild bool, edit func(s *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	s := *old
	edit(&s)
	if rebuild {
		if !s.pclo {
			s.closures = s.bld.BuildClosures(s.cfg, old.closures, s.ext)
		}
		if !s.pres {
			s.res = s.bld.BuildResolver(s.cfg, s.closures, old.res, s.ext)
		}
	}
	publish(&s)
}

// publish stores s. Callers hold buildMu.
func publish(s *state) {
	if s.closures == nil {
		panic(ErrNilClosures)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(s)
}

// buildMu serializes writers so a partially built snapshot is never published.
var buildMu sync.Mutex

// st is the current snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot. Writers copy it, edit the copy and swap.
type state struct {
	cfg      apis.Config
	ext      any
	closures apis.ClosureRegistry
	res      apis.Resolver
	bld      apis.Builder
	ns       apis.Namespace
	log      zerolog.Logger
	// pclo and pres mark layers installed explicitly; they are not rebuilt.
	pclo bool
	pres bool
}
