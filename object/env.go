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
	"github.com/rs/zerolog"

	"dirpx.dev/dyn/apis"
)

// Env is what an attached Object dispatches through. The root dyn package
// provides an Env that always reads the latest global snapshot; tests and
// embedders can pass a fixed one from NewEnv.
type Env interface {
	Config() apis.Config
	Namespace() apis.Namespace
	Resolver() apis.Resolver
	Logger() zerolog.Logger
}

// NewEnv returns a fixed Env.
func NewEnv(cfg apis.Config, ns apis.Namespace, res apis.Resolver, log zerolog.Logger) Env {
	return &staticEnv{cfg: cfg, ns: ns, res: res, log: log}
}

type staticEnv struct {
	cfg apis.Config
	ns  apis.Namespace
	res apis.Resolver
	log zerolog.Logger
}

func (e *staticEnv) Config() apis.Config       { return e.cfg }
func (e *staticEnv) Namespace() apis.Namespace { return e.ns }
func (e *staticEnv) Resolver() apis.Resolver   { return e.res }
func (e *staticEnv) Logger() zerolog.Logger    { return e.log }
