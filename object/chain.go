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

import "fmt"

// Caller is anything that accepts dispatched calls.
type Caller interface {
	Call(name string, args ...any) (any, error)
}

// Chain threads calls through successive results: each result that is a
// Caller receives the next call. The first error stops the chain.
//
//	res, err := g.Chain().Call("setName", "bob").Call("greet").Result()
type Chain struct {
	cur  Caller
	last any
	err  error
}

// Chain starts a chain on the instance.
func (o *Object) Chain() *Chain {
	if c, ok := o.Self().(Caller); ok {
		return &Chain{cur: c, last: c}
	}
	return &Chain{cur: o, last: o}
}

// Call dispatches name on the current receiver.
func (c *Chain) Call(name string, args ...any) *Chain {
	if c.err != nil {
		return c
	}
	if c.cur == nil {
		c.err = fmt.Errorf("%w: %T before %q", ErrNotChainable, c.last, name)
		return c
	}
	res, err := c.cur.Call(name, args...)
	if err != nil {
		c.err = err
		return c
	}
	c.last = res
	c.cur, _ = res.(Caller)
	return c
}

// Result returns the last result and the first error.
func (c *Chain) Result() (any, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.last, nil
}

// Err returns the first error, if any.
func (c *Chain) Err() error {
	return c.err
}
