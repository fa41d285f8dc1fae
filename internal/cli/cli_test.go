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

package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/dyn"
	"dirpx.dev/dyn/internal/cli"
	"dirpx.dev/dyn/namespace"
	uref "dirpx.dev/dyn/utils/reflect"
)

// execute runs dynctl with args on a fresh console and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dyn.ResetInstances()
	dyn.SetNamespace(namespace.New())
	t.Cleanup(dyn.ResetInstances)

	root := cli.NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCall_DeclaredMethod(t *testing.T) {
	out, err := execute(t, "call", "echo", "hello", "world")
	require.NoError(t, err)
	require.Equal(t, "hello world\n", out)
}

func TestCall_Repeat(t *testing.T) {
	out, err := execute(t, "call", "repeat", "ab", "3")
	require.NoError(t, err)
	require.Equal(t, "ababab\n", out)

	_, err = execute(t, "call", "repeat", "ab", "x")
	require.ErrorIs(t, err, uref.ErrArgType)
}

func TestCall_InitUnreachable(t *testing.T) {
	out, err := execute(t, "--prefix", "> ", "call", "echo", "a")
	require.NoError(t, err)
	require.Equal(t, "> a\n", out)

	c, err := dyn.GetInstance[*cli.Console]()
	require.NoError(t, err)
	_, err = c.Call("init", "reset: ")
	require.ErrorIs(t, err, dyn.ErrNoSuchMethod)
	require.Equal(t, "> ", c.Prefix())
}

func TestCall_Prefix(t *testing.T) {
	out, err := execute(t, "--prefix", "> ", "call", "echo", "hi")
	require.NoError(t, err)
	require.Equal(t, "> hi\n", out)
}

func TestCall_BuiltinClosure(t *testing.T) {
	out, err := execute(t, "call", "upper", "abc")
	require.NoError(t, err)
	require.Equal(t, "ABC\n", out)

	c, err := dyn.GetInstance[*cli.Console]()
	require.NoError(t, err)
	_, ok := c.Methods().Lookup("upper")
	require.True(t, ok, "builtin not promoted onto the console")
}

func TestCall_BuiltinBoundToConsole(t *testing.T) {
	out, err := execute(t, "call", "shout", "hey")
	require.NoError(t, err)
	require.Equal(t, "HEY!\n", out)

	c, err := dyn.GetInstance[*cli.Console]()
	require.NoError(t, err)
	require.Equal(t, []string{"HEY!"}, c.History())
}

func TestCall_Unknown(t *testing.T) {
	_, err := execute(t, "call", "nope")
	require.ErrorIs(t, err, dyn.ErrNoSuchMethod)
}

func TestCall_ConfigFile(t *testing.T) {
	path := writeFile(t, "dyn.toml", "empty_policy = \"nil\"\n")

	// an empty string is a real result under the nil policy
	out, err := execute(t, "--config", path, "call", "prefix")
	require.NoError(t, err)
	require.Equal(t, "\n", out)

	out, err = execute(t, "call", "prefix")
	require.NoError(t, err)
	require.Equal(t, "ok\n", out)
}

func TestRun_Script(t *testing.T) {
	path := writeFile(t, "script.toml", `
[globals]
who = "world"

[[step]]
method = "echo"
args = ["hello", "$who"]
store = "greeting"

[[step]]
method = "upper"
args = ["$greeting"]

[[step]]
method = "repeat"
args = ["ab", 3]

[[step]]
method = "setPrefix"
args = [">"]
`)

	out, err := execute(t, "run", path)
	require.NoError(t, err)
	require.Equal(t, []string{"hello world", "HELLO WORLD", "ababab", "ok"},
		strings.Split(strings.TrimSpace(out), "\n"))

	got, err := dyn.Namespace().Get("greeting")
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
}

func TestRun_StopsAtFirstError(t *testing.T) {
	path := writeFile(t, "script.toml", `
[[step]]
method = "echo"
args = ["one"]

[[step]]
method = "missing"

[[step]]
method = "echo"
args = ["three"]
`)

	out, err := execute(t, "run", path)
	require.ErrorIs(t, err, dyn.ErrNoSuchMethod)
	require.Equal(t, "one\n", out)
}

func TestRun_UndefinedVariable(t *testing.T) {
	path := writeFile(t, "script.toml", `
[[step]]
method = "echo"
args = ["$nobody"]
`)

	_, err := execute(t, "run", path)
	require.ErrorIs(t, err, dyn.ErrUndefinedKey)
}

func TestLoadScript_UnknownKeys(t *testing.T) {
	path := writeFile(t, "script.toml", `
[[step]]
method = "echo"
argz = ["x"]
`)

	_, err := cli.LoadScript(path)
	require.Error(t, err)
}

func TestMethods_ListsDeclaredAndBuiltins(t *testing.T) {
	out, err := execute(t, "methods")
	require.NoError(t, err)

	names := strings.Split(strings.TrimSpace(out), "\n")
	require.Contains(t, names, "Echo")
	require.Contains(t, names, "upper")
	require.NotContains(t, names, "AddMethod")
	require.NotContains(t, names, "Init")
}

func TestFormat(t *testing.T) {
	require.Equal(t, "<nil>", cli.Format(nil))
	require.Equal(t, "a\nb", cli.Format([]string{"a", "b"}))
	require.Equal(t, "3", cli.Format(3))
	require.Equal(t, "ok", cli.Format(&cli.Console{}))
}
