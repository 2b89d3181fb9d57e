// Copyright 2026 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package command implements the sparqlc subcommands.
package command

import (
	"flag"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/sparql/clog"
	"github.com/cayleygraph/sparql/config"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log_level"
)

// NewRootCmd creates the sparqlc command with all subcommands registered.
// Settings are read into the global viper instance before any subcommand runs.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sparqlc",
		Short:         "Compiler of SPARQL 1.1 queries and updates.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			file, err := cmd.Flags().GetString(flagConfig)
			if err != nil {
				return err
			}
			if err := config.Setup(viper.GetViper(), file); err != nil {
				return err
			}
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			if cfg.Verbosity > 0 {
				clog.SetV(cfg.Verbosity)
			}
			return nil
		},
	}
	cmd.PersistentFlags().String(flagConfig, "", "path to an explicit configuration file (defaults to $"+config.EnvFile+")")
	cmd.PersistentFlags().Int(flagLogLevel, 0, "log verbosity")
	viper.BindPFlag(config.KeyVerbosity, cmd.PersistentFlags().Lookup(flagLogLevel))
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(
		NewCompileCmd(),
		NewBuiltinsCmd(),
		NewVersionCmd(),
	)
	return cmd
}
