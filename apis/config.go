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

// EmptyPolicy decides which call results the dispatcher replaces with the
// owning instance so calls can be chained.
type EmptyPolicy int

const (
	// CollapseEmpty treats every empty result (nil, false, numeric zero, "",
	// empty slice/map/array, nil pointer) as "no result" and returns the
	// instance instead. Legitimate falsy results are lost.
	CollapseEmpty EmptyPolicy = iota
	// ChainOnNil only replaces a nil result (a callable with no return value,
	// or one that returned nil). Falsy non-nil results are returned verbatim.
	ChainOnNil
)

// String returns the config-file spelling of the policy.
func (p EmptyPolicy) String() string {
	switch p {
	case CollapseEmpty:
		return "collapse"
	case ChainOnNil:
		return "nil"
	default:
		return "unknown"
	}
}

// Config carries read-only dispatch knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// EmptyPolicy selects how empty call results are normalized.
	EmptyPolicy EmptyPolicy

	// FoldDeclaredNames lets the declared-method lookup retry with the first
	// letter upper-cased ("greet" -> "Greet"), since only exported Go methods
	// are reachable through reflection.
	FoldDeclaredNames bool

	// MaxSuggestions caps the number of "did you mean" names attached to a
	// NoSuchMethod error. Zero disables suggestions.
	MaxSuggestions int

	// SuggestDistance is the maximum edit distance for a candidate name to be
	// suggested.
	SuggestDistance int
}
