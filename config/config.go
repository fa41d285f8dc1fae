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

package config

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/dyn/apis"
)

const (
	// DefaultEmptyPolicy keeps the historical behavior: every empty result
	// chains back to the instance.
	DefaultEmptyPolicy = apis.CollapseEmpty
	// DefaultFoldDeclaredNames lets "greet" reach a declared Greet method.
	DefaultFoldDeclaredNames = true
	// DefaultMaxSuggestions is the number of "did you mean" names attached to
	// a NoSuchMethod error.
	DefaultMaxSuggestions = 3
	// DefaultSuggestDistance is the largest edit distance still suggested.
	DefaultSuggestDistance = 2
)

// ErrUnknownEmptyPolicy is returned when an empty policy name is not recognized.
var ErrUnknownEmptyPolicy = errors.New("dyn(config): unknown empty policy")

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure suggestion knobs are valid.
	if cfg.MaxSuggestions < 0 {
		cfg.MaxSuggestions = DefaultMaxSuggestions
	}
	if cfg.SuggestDistance < 0 {
		cfg.SuggestDistance = DefaultSuggestDistance
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		EmptyPolicy:       DefaultEmptyPolicy,
		FoldDeclaredNames: DefaultFoldDeclaredNames,
		MaxSuggestions:    DefaultMaxSuggestions,
		SuggestDistance:   DefaultSuggestDistance,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithEmptyPolicy sets the EmptyPolicy option.
func WithEmptyPolicy(p apis.EmptyPolicy) Option {
	return func(c *apis.Config) {
		c.EmptyPolicy = p
	}
}

// WithFoldDeclaredNames sets the FoldDeclaredNames option.
func WithFoldDeclaredNames(fold bool) Option {
	return func(c *apis.Config) {
		c.FoldDeclaredNames = fold
	}
}

// WithSuggestions sets MaxSuggestions and SuggestDistance.
// Negative values reset to the defaults.
func WithSuggestions(max, distance int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			max = DefaultMaxSuggestions
		}
		if distance < 0 {
			distance = DefaultSuggestDistance
		}
		c.MaxSuggestions = max
		c.SuggestDistance = distance
	}
}

// ParseEmptyPolicy maps "collapse" / "nil" (case-insensitive) to an EmptyPolicy.
// The empty string yields the default.
func ParseEmptyPolicy(s string) (apis.EmptyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultEmptyPolicy, nil
	case "collapse", "empty":
		return apis.CollapseEmpty, nil
	case "nil", "none":
		return apis.ChainOnNil, nil
	}
	return DefaultEmptyPolicy, fmt.Errorf("%w: %q", ErrUnknownEmptyPolicy, s)
}
