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

package apis

// Builder composes a ClosureRegistry and a Resolver from a Config.
// Implementations may migrate state from previous instances, or ignore them.
type Builder interface {
	// BuildClosures constructs a ClosureRegistry for Config. May migrate entries from prev.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildClosures(cfg Config, prev ClosureRegistry, ext any) ClosureRegistry
	// BuildResolver constructs a Resolver for Config and ClosureRegistry. May reuse state from prev.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildResolver(cfg Config, closures ClosureRegistry, prev Resolver, ext any) Resolver
}
