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
	"fmt"

	"github.com/spf13/viper"

	"dirpx.dev/dyn/apis"
)

// EnvPrefix is the prefix for environment overrides (DYN_EMPTY_POLICY, ...).
const EnvPrefix = "DYN"

// Config file keys.
const (
	KeyEmptyPolicy       = "empty_policy"
	KeyFoldDeclaredNames = "fold_declared_names"
	KeyMaxSuggestions    = "max_suggestions"
	KeySuggestDistance   = "suggest_distance"
)

// Load reads a config file (TOML, YAML or JSON, by extension) and applies
// DYN_* environment overrides on top. An empty path reads the environment
// only. opts are applied last.
func Load(path string, opts ...Option) (apis.Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault(KeyEmptyPolicy, def.EmptyPolicy.String())
	v.SetDefault(KeyFoldDeclaredNames, def.FoldDeclaredNames)
	v.SetDefault(KeyMaxSuggestions, def.MaxSuggestions)
	v.SetDefault(KeySuggestDistance, def.SuggestDistance)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return def, fmt.Errorf("dyn(config): read %s: %w", path, err)
		}
	}

	policy, err := ParseEmptyPolicy(v.GetString(KeyEmptyPolicy))
	if err != nil {
		return def, err
	}

	all := append([]Option{
		WithEmptyPolicy(policy),
		WithFoldDeclaredNames(v.GetBool(KeyFoldDeclaredNames)),
		WithSuggestions(v.GetInt(KeyMaxSuggestions), v.GetInt(KeySuggestDistance)),
	}, opts...)
	return NewConfig(all...), nil
}
