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
	"sync"

	"github.com/google/uuid"

	"dirpx.dev/dyn/apis"
	"dirpx.dev/dyn/methods"
	uref "dirpx.dev/dyn/utils/reflect"
)

// Object is the embeddable dispatch base. A type gains runtime-extensible
// dispatch by embedding Object and being attached to an Env:
//
//	type Greeter struct {
//		object.Object
//		name string
//	}
//
//	g := &Greeter{name: "bob"}
//	g.Attach(g, env)
//	g.Call("hello")
//
// Instances built by the instance registry are attached automatically.
type Object struct {
	mu      sync.RWMutex
	id      uuid.UUID
	self    any
	env     Env
	methods apis.MethodStore
	storage any
}

// hiddenMethods are the parts of the Object surface that Call must not
// reach as declared methods. Init is the constructor hook of embedding
// types; it runs once, at construction.
var hiddenMethods = []string{
	"Attach", "Attached", "AddMethod", "Call", "Chain",
	"Env", "HiddenMethods", "ID", "Init", "Methods", "Self",
}

// Ensure *Object is a dispatch target.
var (
	_ apis.Target = (*Object)(nil)
	_ apis.Hider  = (*Object)(nil)
)

// Attach binds the Object to its outer value self and to env. It allocates
// the Dynamic Method Store and identity on first use; re-attaching keeps
// both and only swaps self and env.
func (o *Object) Attach(self any, env Env) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if self == nil {
		self = o
	}
	o.self = self
	o.env = env
	if o.methods == nil {
		o.methods = methods.New()
	}
	if o.id == uuid.Nil {
		o.id = uuid.New()
	}
}

// Attached reports whether Attach has been called.
func (o *Object) Attached() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.env != nil
}

// ID returns the instance identity assigned at Attach.
func (o *Object) ID() uuid.UUID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.id
}

// Self returns the outer value the Object was attached with.
func (o *Object) Self() any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.self
}

// Methods returns the Dynamic Method Store.
func (o *Object) Methods() apis.MethodStore {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.methods
}

// Env returns the environment the Object dispatches through.
func (o *Object) Env() Env {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.env
}

// HiddenMethods implements apis.Hider.
func (o *Object) HiddenMethods() []string {
	return hiddenMethods
}

// AddMethod binds fn to this instance and stores it under name, replacing
// any previous binding. fn may be an apis.Method or any func value; see
// utils/reflect.Adapt for how arguments and self are passed.
func (o *Object) AddMethod(name string, fn any) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidMethod)
	}
	m, err := uref.Adapt(fn)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidMethod, name, err)
	}

	o.mu.RLock()
	self, store := o.self, o.methods
	o.mu.RUnlock()
	if store == nil {
		return ErrDetached
	}
	store.Add(name, apis.Bind(self, m))
	return nil
}

// state returns what a call needs under one read lock.
func (o *Object) state() (self any, env Env, store apis.MethodStore) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.self, o.env, o.methods
}
