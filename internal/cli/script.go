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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"dirpx.dev/dyn"
	"dirpx.dev/dyn/object"
)

// ErrEmptyStep is returned for a script step without a method name.
var ErrEmptyStep = errors.New("dyn(cli): step without method")

// Script is a TOML call script:
//
//	[globals]
//	who = "world"
//
//	[[step]]
//	method = "echo"
//	args = ["hello", "$who"]
//	store = "greeting"
//
// Globals are written to the global namespace before the first step. An
// argument of the form "$key" is replaced by the namespace value at key.
// A step's store names the namespace key its result is written to.
type Script struct {
	Globals map[string]any `toml:"globals"`
	Steps   []Step         `toml:"step"`
}

// Step is one dispatched call.
type Step struct {
	Method string `toml:"method"`
	Args   []any  `toml:"args"`
	Store  string `toml:"store"`
}

// LoadScript decodes the script at path.
func LoadScript(path string) (Script, error) {
	var s Script
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return s, fmt.Errorf("dyn(cli): decode %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return s, fmt.Errorf("dyn(cli): %s: unknown keys %v", path, keys)
	}
	return s, nil
}

// Run executes the script against target, printing one line per step to out.
// The first failing step stops the run.
func Run(target object.Caller, s Script, out io.Writer) error {
	ns := dyn.Namespace()
	for k, v := range s.Globals {
		ns.Set(k, v)
	}
	for i, step := range s.Steps {
		if step.Method == "" {
			return fmt.Errorf("%w: step %d", ErrEmptyStep, i+1)
		}
		args := make([]any, len(step.Args))
		for j, a := range step.Args {
			v, err := expand(a)
			if err != nil {
				return fmt.Errorf("dyn(cli): step %d (%s): %w", i+1, step.Method, err)
			}
			args[j] = v
		}
		res, err := target.Call(step.Method, args...)
		if err != nil {
			return fmt.Errorf("dyn(cli): step %d (%s): %w", i+1, step.Method, err)
		}
		if step.Store != "" {
			ns.Set(step.Store, res)
		}
		fmt.Fprintln(out, Format(res))
	}
	return nil
}

// expand resolves "$key" arguments from the global namespace.
func expand(a any) (any, error) {
	s, ok := a.(string)
	if !ok || !strings.HasPrefix(s, "$") || len(s) == 1 {
		return a, nil
	}
	return dyn.Namespace().Get(s[1:])
}

// Format renders a call result for terminal output. A result that is itself
// a dispatch target (a chained call) prints as "ok".
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return "<nil>"
	case object.Caller:
		return "ok"
	case []string:
		return strings.Join(t, "\n")
	default:
		return fmt.Sprint(v)
	}
}
