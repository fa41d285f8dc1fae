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

// Package cli implements the dynctl commands.
package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"dirpx.dev/dyn"
	"dirpx.dev/dyn/config"
	"dirpx.dev/dyn/internal/logging"
)

type options struct {
	configPath string
	logLevel   string
	prefix     string
}

// NewRootCommand builds the dynctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "dynctl",
		Short: "Drive a dynamically dispatched singleton from the command line",
		Long: `dynctl dispatches calls by name against a Console singleton.

Names resolve against methods added at runtime, then the Console's own
methods, then the builtin closures (upper, lower, concat, len, shout).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (toml, yaml or json)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.prefix, "prefix", "", "console line prefix, used when the console is first built")

	root.AddCommand(newCallCommand(opts), newRunCommand(opts), newMethodsCommand(opts))
	return root
}

// Execute runs dynctl with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// setup loads configuration into the global snapshot and installs the
// builtin closures.
func setup(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	dyn.SetConfig(cfg)
	dyn.SetLogger(logging.New(cmd.ErrOrStderr(), logging.ParseLevel(opts.logLevel)))
	return InstallBuiltins()
}

func console(opts *options) (*Console, error) {
	return dyn.GetInstance[*Console](opts.prefix)
}

func newCallCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "call <method> [args...]",
		Short: "Call one method on the console",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := console(opts)
			if err != nil {
				return err
			}
			callArgs := make([]any, len(args)-1)
			for i, a := range args[1:] {
				callArgs[i] = a
			}
			res, err := c.Call(args[0], callArgs...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Format(res))
			return nil
		},
	}
}

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.toml>",
		Short: "Run a TOML call script against the console",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadScript(args[0])
			if err != nil {
				return err
			}
			c, err := console(opts)
			if err != nil {
				return err
			}
			return Run(c, s, cmd.OutOrStdout())
		},
	}
}

func newMethodsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List every name the console answers to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := console(opts)
			if err != nil {
				return err
			}
			names := dyn.Resolver().Candidates(c, dyn.Config())
			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
