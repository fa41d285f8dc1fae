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

package cli

import (
	"strings"

	"dirpx.dev/dyn/object"
)

// Console is the demo singleton dynctl dispatches against.
type Console struct {
	object.Object
	prefix  string
	history []string
}

// Init sets the line prefix from the first constructor argument.
func (c *Console) Init(args ...any) error {
	if len(args) > 0 {
		if p, ok := args[0].(string); ok {
			c.prefix = p
		}
	}
	return nil
}

// Echo joins parts with spaces, prefixes the line and records it.
func (c *Console) Echo(parts ...string) string {
	line := c.prefix + strings.Join(parts, " ")
	c.history = append(c.history, line)
	return line
}

// Repeat returns s repeated n times.
func (c *Console) Repeat(s string, n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(s, n)
}

// Prefix returns the current line prefix.
func (c *Console) Prefix() string { return c.prefix }

// SetPrefix replaces the line prefix.
func (c *Console) SetPrefix(p string) { c.prefix = p }

// History returns the lines produced by Echo.
func (c *Console) History() []string {
	return append([]string(nil), c.history...)
}

// Clear forgets the history.
func (c *Console) Clear() { c.history = nil }
