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
	"unicode/utf8"

	"dirpx.dev/dyn"
)

// Builtins are the closures dynctl installs into the global registry.
// They are reachable from the console only through registry promotion.
func Builtins() map[string]any {
	return map[string]any{
		"upper":  strings.ToUpper,
		"lower":  strings.ToLower,
		"concat": func(parts ...string) string { return strings.Join(parts, "") },
		"len":    func(s string) int { return utf8.RuneCountInString(s) },
		"shout": func(c *Console, s string) string {
			return c.Echo(strings.ToUpper(s) + "!")
		},
	}
}

// InstallBuiltins registers every builtin with the global closure registry.
func InstallBuiltins() error {
	for name, fn := range Builtins() {
		if err := dyn.RegisterClosure(name, fn); err != nil {
			return err
		}
	}
	return nil
}
