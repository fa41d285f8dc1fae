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

package instance

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/dyn/internal/metrics"
	"dirpx.dev/dyn/object"
	uref "dirpx.dev/dyn/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("dyn(instance): nil reflect.Type provided")
	// ErrNilFactory is returned when a nil factory is provided.
	ErrNilFactory = errors.New("dyn(instance): nil factory provided")
	// ErrNoFactory is returned when a type cannot be constructed: it has no
	// factory and is not a pointer to a struct, or it was given constructor
	// arguments it has no way to accept.
	ErrNoFactory = errors.New("dyn(instance): no factory for type")
	// ErrTypeMismatch is returned when a factory's value is not of the
	// requested type.
	ErrTypeMismatch = errors.New("dyn(instance): factory returned wrong type")
)

// Factory constructs a value of one concrete type from constructor arguments.
type Factory func(args ...any) (any, error)

// Initializer is implemented by types that accept constructor arguments
// without a registered Factory. Init runs on a freshly allocated zero value,
// after it has been attached.
type Initializer interface {
	Init(args ...any) error
}

// attacher is satisfied by every type embedding object.Object.
type attacher interface {
	Attach(self any, env object.Env)
	Attached() bool
}

// Registry owns one singleton slot per concrete type.
//
// The first Instance call for a type constructs the value with that call's
// arguments; later calls return the same value and ignore their arguments.
// Concurrent first calls for the same type are coalesced, so exactly one
// construction runs. A factory must not request its own type from the same
// Registry; that call never returns.
type Registry struct {
	env       func() object.Env
	factories sync.Map // reflect.Type -> Factory
	slots     sync.Map // reflect.Type -> any
	group     singleflight.Group
}

// New constructs an empty Registry. env supplies the environment new
// instances are attached to; it may be nil, in which case instances stay
// detached.
func New(env func() object.Env) *Registry {
	return &Registry{env: env}
}

// Provide registers f as the constructor for t, replacing any previous
// factory. It has no effect on an already populated slot.
func (r *Registry) Provide(t reflect.Type, f Factory) error {
	if t == nil {
		return ErrNilType
	}
	if f == nil {
		return ErrNilFactory
	}
	r.factories.Store(t, f)
	return nil
}

// Instance returns the singleton for t, constructing it from args on first use.
// Constructor errors are returned unmodified and leave the slot empty.
func (r *Registry) Instance(t reflect.Type, args ...any) (any, error) {
	if t == nil {
		return nil, ErrNilType
	}
	// Fast path: populated slot.
	if v, ok := r.slots.Load(t); ok {
		return v, nil
	}

	// Type names are not unique (function-local types share them), so the
	// flight key carries the type's identity too.
	key := fmt.Sprintf("%s@%p", uref.TypeKey(t), t)
	v, err, _ := r.group.Do(key, func() (any, error) {
		// Re-check inside the flight in case a previous flight just finished.
		if v, ok := r.slots.Load(t); ok {
			return v, nil
		}
		v, err := r.construct(t, args)
		metrics.RecordConstruction(t.String(), err)
		if err != nil {
			return nil, err
		}
		r.slots.Store(t, v)
		log := r.logger()
		log.Debug().Str("type", t.String()).Int("args", len(args)).Msg("singleton constructed")
		return v, nil
	})
	return v, err
}

// Lookup returns the singleton for t without constructing it.
func (r *Registry) Lookup(t reflect.Type) (any, bool) {
	if t == nil {
		return nil, false
	}
	return r.slots.Load(t)
}

// Types returns the types whose slot is populated (order is unspecified).
func (r *Registry) Types() []reflect.Type {
	var out []reflect.Type
	r.slots.Range(func(key, _ any) bool {
		out = append(out, key.(reflect.Type))
		return true
	})
	return out
}

// Reset empties every slot. Factories are kept. Intended for tests.
func (r *Registry) Reset() {
	r.slots.Range(func(key, _ any) bool {
		r.slots.Delete(key)
		return true
	})
}

// construct builds a value of type t through its factory, or by allocating
// a zero struct and running Init.
func (r *Registry) construct(t reflect.Type, args []any) (any, error) {
	if f, ok := r.factories.Load(t); ok {
		v, err := f.(Factory)(args...)
		if err != nil {
			return nil, err
		}
		if uref.IsNil(v) || !reflect.TypeOf(v).AssignableTo(t) {
			return nil, fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, t, v)
		}
		r.attach(v)
		return v, nil
	}

	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNoFactory, t)
	}
	v := reflect.New(t.Elem()).Interface()
	r.attach(v)
	if in, ok := v.(Initializer); ok {
		if err := in.Init(args...); err != nil {
			return nil, err
		}
	} else if len(args) > 0 {
		return nil, fmt.Errorf("%w: %s has no constructor accepting %d arguments", ErrNoFactory, t, len(args))
	}
	return v, nil
}

// attach binds v to the registry's environment unless it already is bound.
func (r *Registry) attach(v any) {
	a, ok := v.(attacher)
	if !ok || a.Attached() || r.env == nil {
		return
	}
	a.Attach(v, r.env())
}

func (r *Registry) logger() zerolog.Logger {
	if r.env != nil {
		if env := r.env(); env != nil {
			return env.Logger()
		}
	}
	return zerolog.Nop()
}

// Register provides a typed factory for T.
func Register[T any](r *Registry, f func(args ...any) (T, error)) error {
	if f == nil {
		return ErrNilFactory
	}
	return r.Provide(reflect.TypeOf((*T)(nil)).Elem(), func(args ...any) (any, error) {
		return f(args...)
	})
}

// Get returns the singleton of type T, constructing it from args on first use.
func Get[T any](r *Registry, args ...any) (T, error) {
	var zero T
	v, err := r.Instance(reflect.TypeOf((*T)(nil)).Elem(), args...)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, reflect.TypeOf((*T)(nil)).Elem(), v)
	}
	return out, nil
}
