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

import "reflect"

// Method is the canonical shape of a runtime-attached behavior.
// self is the instance the method is bound to; it is nil for a Method that
// has not been bound yet.
type Method func(self any, args ...any) (any, error)

// Bound pairs a Method with the instance it executes against. The binding is
// an explicit data field: calling a Bound always passes Self as the first
// argument of Fn.
type Bound struct {
	// Self is the owning instance.
	Self any
	// Type is the concrete type of Self at bind time.
	Type reflect.Type
	// Fn is the underlying behavior.
	Fn Method
}

// Bind pairs fn with self.
func Bind(self any, fn Method) Bound {
	var t reflect.Type
	if self != nil {
		t = reflect.TypeOf(self)
	}
	return Bound{Self: self, Type: t, Fn: fn}
}

// Call invokes the bound behavior with args.
func (b Bound) Call(args ...any) (any, error) {
	return b.Fn(b.Self, args...)
}

// Valid reports whether the binding carries a behavior.
func (b Bound) Valid() bool {
	return b.Fn != nil
}
