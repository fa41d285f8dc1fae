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

// Package dyn gives Go types singleton lifecycle and name-based dispatch
// that can be extended at runtime.
//
// A type opts in by embedding object.Object:
//
//	type Console struct {
//		object.Object
//		prefix string
//	}
//
//	func (c *Console) Init(args ...any) error { ... }
//	func (c *Console) Print(s string) string  { ... }
//
//	c, err := dyn.GetInstance[*Console]("> ")
//	c.Call("print", "hi")
//	c.AddMethod("shout", func(c *Console, s string) string { ... })
//	dyn.Static[*Console]("shout", "hey")
//
// # Resolution
//
// Call(name, args...) resolves name in this order:
//
//  1. the instance's dynamic method store (AddMethod, earlier promotions);
//  2. exported methods of the concrete type, with the first letter folded
//     to upper case unless Config.FoldDeclaredNames is off;
//  3. the global closure registry (RegisterClosure). A hit is installed
//     into the instance's store, bound to the instance, so later calls stop
//     at step 1.
//
// A name found nowhere fails with *object.NoSuchMethodError, which carries
// the name and close matches.
//
// Under the default CollapseEmpty policy an empty result (nil, false, 0, "",
// an empty collection, no return value) is replaced by the instance, so
// calls can be chained. ChainOnNil narrows that to nil and no return value.
//
// # Global state
//
// The package holds one immutable snapshot behind an atomic pointer:
// Config, the closure registry, the resolver, the builder that composes
// them, the global namespace, the logger and an opaque ext payload.
// Readers load it without locking. Writers (SetConfig, SetClosures,
// SetResolver, SetBuilder, SetExt, SetNamespace, SetLogger, SetAll) take a
// build mutex, derive a new snapshot and swap it in.
//
// SetClosures and SetResolver pin their layer: later SetConfig, SetBuilder
// and SetExt calls stop rebuilding it until Unpin* is called.
//
// Singletons live outside the snapshot and are attached to Env(), which
// reads the latest snapshot on every access. Reconfiguring therefore
// reaches instances that already exist.
//
// # Namespace
//
// Get, Set, Has and Unset on any instance operate on the one global
// namespace, shared by every instance of every type.
package dyn
