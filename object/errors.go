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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSuchMethod matches every *NoSuchMethodError.
	ErrNoSuchMethod = errors.New("dyn(object): no such method")
	// ErrInvalidMethod is returned by AddMethod when the value is not callable.
	ErrInvalidMethod = errors.New("dyn(object): new method must be callable")
	// ErrDetached is returned when an Object is used before Attach.
	ErrDetached = errors.New("dyn(object): object is not attached")
	// ErrNotChainable is returned by a Chain whose previous result cannot
	// receive calls.
	ErrNotChainable = errors.New("dyn(object): result is not chainable")
)

// NoSuchMethodError reports a name that no resolution path could serve.
type NoSuchMethodError struct {
	// Name is the attempted method name.
	Name string
	// Suggestions are close candidate names, nearest first.
	Suggestions []string
}

// Error implements error.
func (e *NoSuchMethodError) Error() string {
	msg := fmt.Sprintf("dyn(object): no valid method or closure named %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

// Is makes errors.Is(err, ErrNoSuchMethod) hold.
func (e *NoSuchMethodError) Is(target error) bool {
	return target == ErrNoSuchMethod
}
