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

package reflect

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"dirpx.dev/dyn/apis"
)

var (
	// ErrNotCallable is returned when a value that is not a func is adapted.
	ErrNotCallable = errors.New("reflect: value is not callable")
	// ErrArity is returned when too few arguments are supplied to a func.
	ErrArity = errors.New("reflect: not enough arguments")
	// ErrArgType is returned when an argument cannot be converted to the
	// parameter type.
	ErrArgType = errors.New("reflect: argument type mismatch")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Callable reports whether fn can be adapted into an apis.Method.
func Callable(fn any) bool {
	switch fn.(type) {
	case nil:
		return false
	case apis.Method, func(any, ...any) (any, error):
		return true
	}
	rv := reflect.ValueOf(fn)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// Adapt turns an arbitrary func value into an apis.Method.
//
// apis.Method and func(self any, args ...any) (any, error) are used as-is.
// Any other func is called through reflection:
//   - if its first parameter is a concrete (non-interface) type and self is
//     assignable to it, self is passed there and args fill the rest;
//   - otherwise only args are passed.
//
// Missing arguments fail with ErrArity. Extra arguments to a non-variadic
// func are dropped. Results are folded by Results.
func Adapt(fn any) (apis.Method, error) {
	switch f := fn.(type) {
	case nil:
		return nil, ErrNotCallable
	case apis.Method:
		if f == nil {
			return nil, ErrNotCallable
		}
		return f, nil
	case func(any, ...any) (any, error):
		if f == nil {
			return nil, ErrNotCallable
		}
		return f, nil
	}

	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotCallable, fn)
	}
	ft := fv.Type()
	selfParam := ft.NumIn() > 0 &&
		ft.In(0).Kind() != reflect.Interface &&
		!(ft.IsVariadic() && ft.NumIn() == 1)

	return func(self any, args ...any) (any, error) {
		if selfParam && self != nil && reflect.TypeOf(self).AssignableTo(ft.In(0)) {
			return Call(fv, []reflect.Value{reflect.ValueOf(self)}, args)
		}
		return Call(fv, nil, args)
	}, nil
}

// Call invokes fv with lead values followed by args converted to the
// parameter types.
func Call(fv reflect.Value, lead []reflect.Value, args []any) (any, error) {
	ft := fv.Type()
	numIn := ft.NumIn()
	free := numIn - len(lead)
	variadic := ft.IsVariadic()

	switch {
	case variadic && len(args) < free-1:
		return nil, fmt.Errorf("%w: want at least %d, got %d", ErrArity, free-1, len(args))
	case !variadic && len(args) < free:
		return nil, fmt.Errorf("%w: want %d, got %d", ErrArity, free, len(args))
	case !variadic && len(args) > free:
		args = args[:free]
	}

	in := make([]reflect.Value, 0, len(lead)+len(args))
	in = append(in, lead...)
	for i, a := range args {
		idx := len(lead) + i
		var pt reflect.Type
		if variadic && idx >= numIn-1 {
			pt = ft.In(numIn - 1).Elem()
		} else {
			pt = ft.In(idx)
		}
		v, err := convert(a, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in = append(in, v)
	}
	return Results(fv.Call(in))
}

// Results folds reflected return values into (value, error): a trailing
// error is split off, zero remaining values yield nil, one yields itself,
// more yield a []any.
func Results(out []reflect.Value) (any, error) {
	var err error
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			err = out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	}
	vals := make([]any, len(out))
	for i, v := range out {
		vals[i] = v.Interface()
	}
	return vals, err
}

// convert maps a to a value of type pt. nil becomes the zero value; numeric
// kinds convert among themselves when the value fits pt exactly; strings
// are parsed into numeric and bool parameters; otherwise a must be
// assignable, or share pt's kind and be convertible (named types over the
// same underlying type).
func convert(a any, pt reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(pt), nil
	}
	av := reflect.ValueOf(a)
	at := av.Type()
	if at.AssignableTo(pt) {
		return av, nil
	}
	switch {
	case numeric(at.Kind()) && numeric(pt.Kind()):
		if !fits(av, pt) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %s", ErrArgType, a, pt)
		}
		return av.Convert(pt), nil
	case at.Kind() == reflect.String && (numeric(pt.Kind()) || pt.Kind() == reflect.Bool):
		return parse(av.String(), pt)
	case at.ConvertibleTo(pt) && at.Kind() == pt.Kind():
		return av.Convert(pt), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrArgType, at, pt)
}

// fits reports whether the numeric value v converts to pt without wrapping,
// truncation or overflow.
func fits(v reflect.Value, pt reflect.Type) bool {
	z := reflect.New(pt).Elem()
	switch {
	case v.CanInt():
		n := v.Int()
		switch {
		case z.CanInt():
			return !z.OverflowInt(n)
		case z.CanUint():
			return n >= 0 && !z.OverflowUint(uint64(n))
		case z.CanFloat():
			return !z.OverflowFloat(float64(n))
		}
	case v.CanUint():
		n := v.Uint()
		switch {
		case z.CanInt():
			return n <= math.MaxInt64 && !z.OverflowInt(int64(n))
		case z.CanUint():
			return !z.OverflowUint(n)
		case z.CanFloat():
			return true
		}
	case v.CanFloat():
		f := v.Float()
		if z.CanFloat() {
			return !z.OverflowFloat(f)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return false
		}
		switch {
		case z.CanInt():
			return f >= math.MinInt64 && f < 1<<63 && !z.OverflowInt(int64(f))
		case z.CanUint():
			return f >= 0 && f < 1<<64 && !z.OverflowUint(uint64(f))
		}
	}
	return false
}

// parse reads s as a value of the numeric or bool type pt.
func parse(s string, pt reflect.Type) (reflect.Value, error) {
	v := reflect.New(pt).Elem()
	s = strings.TrimSpace(s)
	var err error
	switch {
	case v.CanInt():
		var n int64
		if n, err = strconv.ParseInt(s, 0, pt.Bits()); err == nil {
			v.SetInt(n)
		}
	case v.CanUint():
		var n uint64
		if n, err = strconv.ParseUint(s, 0, pt.Bits()); err == nil {
			v.SetUint(n)
		}
	case v.CanFloat():
		var f float64
		if f, err = strconv.ParseFloat(s, pt.Bits()); err == nil {
			v.SetFloat(f)
		}
	default:
		var b bool
		if b, err = strconv.ParseBool(s); err == nil {
			v.SetBool(b)
		}
	}
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %q is not a valid %s", ErrArgType, s, pt)
	}
	return v, nil
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
