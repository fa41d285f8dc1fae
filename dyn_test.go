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

package dyn_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dyn"
	"dirpx.dev/dyn/apis"
	"dirpx.dev/dyn/builder"
	"dirpx.dev/dyn/config"
	"dirpx.dev/dyn/namespace"
	"dirpx.dev/dyn/object"
	"dirpx.dev/dyn/registry"
)

type base struct {
	object.Object
	label string
	n     int
}

func (b *base) Init(args ...any) error {
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			b.label = s
		}
	}
	return nil
}

func (b *base) Foo() string   { return "declared" }
func (b *base) Label() string { return b.label }
func (b *base) Touch()        { b.n++ }
func (b *base) Zero() int     { return 0 }

type derived struct {
	base
}

type other struct {
	object.Object
}

type bare struct{}

type made struct {
	object.Object
	via string
}

// reset installs a clean snapshot and drops singletons after the test.
func reset(t *testing.T) {
	t.Helper()
	cfg := config.DefaultConfig()
	dyn.SetAll(&cfg, nil, nil, nil, builder.New())
	dyn.SetNamespace(namespace.New())
	dyn.ResetInstances()
	t.Cleanup(dyn.ResetInstances)
}

func TestGetInstance_Identity(t *testing.T) {
	reset(t)

	a, err := dyn.GetInstance[*base]("first")
	require.NoError(t, err)
	b, err := dyn.GetInstance[*base]("second")
	require.NoError(t, err)

	require.Same(t, a, b)
	require.Equal(t, "first", b.label, "second call's arguments must be ignored")
}

func TestGetInstance_SubtypeIsolation(t *testing.T) {
	reset(t)

	b, err := dyn.GetInstance[*base]()
	require.NoError(t, err)
	d, err := dyn.GetInstance[*derived]()
	require.NoError(t, err)

	require.NotSame(t, b, &d.base)
	require.Len(t, dyn.Instances(), 2)

	// declared methods of the embedded type resolve on the subtype
	got, err := d.Call("foo")
	require.NoError(t, err)
	require.Equal(t, "declared", got)
}

func TestCall_DynamicBeatsDeclared(t *testing.T) {
	reset(t)

	b, err := dyn.GetInstance[*base]()
	require.NoError(t, err)
	require.NoError(t, b.AddMethod("foo", func() string { return "dynamic" }))

	got, err := b.Call("foo")
	require.NoError(t, err)
	require.Equal(t, "dynamic", got)
}

func TestCall_LazyRegistryPromotion(t *testing.T) {
	reset(t)

	var calls atomic.Int32
	require.NoError(t, dyn.RegisterClosure("bar", func(self *base) int32 {
		return calls.Add(1)
	}))

	b, err := dyn.GetInstance[*base]()
	require.NoError(t, err)

	got, err := b.Call("bar")
	require.NoError(t, err)
	require.Equal(t, int32(1), got)

	_, ok := b.Methods().Lookup("bar")
	require.True(t, ok, "closure not installed on the instance")

	// the registry is no longer needed for bar
	dyn.SetClosures(registry.New())
	got, err = b.Call("bar")
	require.NoError(t, err)
	require.Equal(t, int32(2), got)

	// a fresh type still misses
	o, err := dyn.GetInstance[*other]()
	require.NoError(t, err)
	_, err = o.Call("bar")
	require.ErrorIs(t, err, dyn.ErrNoSuchMethod)
}

func TestCall_EmptyResultChains(t *testing.T) {
	reset(t)

	b, err := dyn.GetInstance[*base]()
	require.NoError(t, err)

	got, err := b.Call("touch")
	require.NoError(t, err)
	require.Same(t, b, got)

	got, err = b.Chain().Call("touch").Call("zero").Call("touch").Result()
	require.NoError(t, err)
	require.Same(t, b, got)
	require.Equal(t, 3, b.n)
}

func TestCall_UnknownMethod(t *testing.T) {
	reset(t)

	b, err := dyn.GetInstance[*base]()
	require.NoError(t, err)

	_, err = b.Call("missing")
	require.ErrorIs(t, err, dyn.ErrNoSuchMethod)

	var nsm *object.NoSuchMethodError
	require.True(t, errors.As(err, &nsm))
	require.Equal(t, "missing", nsm.Name)
}

func TestNamespace_VisibleAcrossTypes(t *testing.T) {
	reset(t)

	b, err := dyn.GetInstance[*base]()
	require.NoError(t, err)
	o, err := dyn.GetInstance[*other]()
	require.NoError(t, err)

	b.Set("x", 1)
	got, err := o.Get("x")
	require.NoError(t, err)
	require.Equal(t, 1, got)
	require.True(t, dyn.Namespace().Has("x"))

	o.Unset("x")
	require.False(t, b.Has("x"))
	_, err = b.Get("x")
	require.ErrorIs(t, err, dyn.ErrUndefinedKey)
}

func TestAddMethod_RejectsNonCallable(t *testing.T) {
	reset(t)

	b, err := dyn.GetInstance[*base]()
	require.NoError(t, err)
	require.ErrorIs(t, b.AddMethod("x", 42), dyn.ErrInvalidMethod)
}

func TestStatic_ArgsServeConstructorAndCall(t *testing.T) {
	reset(t)

	got, err := dyn.Static[*base]("label", "boot")
	require.NoError(t, err)
	require.Equal(t, "boot", got)

	// singleton exists now; the argument only reaches the call
	got, err = dyn.Static[*base]("label", "ignored")
	require.NoError(t, err)
	require.Equal(t, "boot", got)
}

func TestCall_InitIsHidden(t *testing.T) {
	reset(t)

	b, err := dyn.GetInstance[*base]("first")
	require.NoError(t, err)

	_, err = b.Call("init", "second")
	require.ErrorIs(t, err, dyn.ErrNoSuchMethod)
	_, err = b.Call("Init", "second")
	require.ErrorIs(t, err, dyn.ErrNoSuchMethod)
	require.Equal(t, "first", b.label)
}

func TestStatic_NotDispatchable(t *testing.T) {
	reset(t)

	_, err := dyn.Static[*bare]("anything")
	require.ErrorIs(t, err, dyn.ErrNotDispatchable)
}

func TestProvide_Factory(t *testing.T) {
	reset(t)

	require.NoError(t, dyn.Provide(func(args ...any) (*made, error) {
		return &made{via: "factory"}, nil
	}))

	m, err := dyn.GetInstance[*made]()
	require.NoError(t, err)
	require.Equal(t, "factory", m.via)
	require.True(t, m.Attached())
}

func TestSetConfig_ReachesExistingInstances(t *testing.T) {
	reset(t)

	b, err := dyn.GetInstance[*base]()
	require.NoError(t, err)

	got, err := b.Call("zero")
	require.NoError(t, err)
	require.Same(t, b, got)

	dyn.SetConfig(config.NewConfig(config.WithEmptyPolicy(apis.ChainOnNil)))
	got, err = b.Call("zero")
	require.NoError(t, err)
	require.Equal(t, 0, got)
}

func TestSetConfig_KeepsClosures(t *testing.T) {
	reset(t)

	require.NoError(t, dyn.RegisterClosure("keep", func() string { return "kept" }))
	dyn.SetConfig(config.NewConfig(config.WithFoldDeclaredNames(false)))

	_, ok := dyn.Closures().Lookup("keep")
	require.True(t, ok, "rebuilt registry lost entries")
}

func TestSetClosures_Pins(t *testing.T) {
	reset(t)

	reg := registry.New()
	dyn.SetClosures(reg)
	require.True(t, dyn.IsClosuresPinned())

	dyn.SetConfig(config.DefaultConfig())
	require.Same(t, reg, dyn.Closures())

	dyn.UnpinClosures()
	dyn.SetConfig(config.DefaultConfig())
	require.NotSame(t, reg, dyn.Closures())
}

func TestSetResolver_Pins(t *testing.T) {
	reset(t)

	res := builder.New().BuildResolver(dyn.Config(), dyn.Closures(), nil, nil)
	dyn.SetResolver(res)
	require.True(t, dyn.IsResolverPinned())

	dyn.SetBuilder(builder.New())
	require.Same(t, res, dyn.Resolver())

	dyn.UnpinResolver()
	dyn.SetExt("policy")
	require.NotSame(t, res, dyn.Resolver())

	ext, ok := dyn.ExtAs[string]()
	require.True(t, ok)
	require.Equal(t, "policy", ext)
}

func TestRegisterMetrics_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, dyn.RegisterMetrics(reg))
	require.NoError(t, dyn.RegisterMetrics(reg))
}

func TestConcurrent_StaticWithReconfigure(t *testing.T) {
	reset(t)

	require.NoError(t, dyn.RegisterClosure("ping", func() string { return "pong" }))

	var wg conc.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Go(func() {
			for j := 0; j < 50; j++ {
				got, err := dyn.Static[*base]("ping")
				if err != nil || got != "pong" {
					panic(err)
				}
			}
		})
	}
	for i := 0; i < 4; i++ {
		wg.Go(func() {
			for j := 0; j < 20; j++ {
				dyn.SetConfig(config.DefaultConfig())
			}
		})
	}
	wg.Wait()
}
