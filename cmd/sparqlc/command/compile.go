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

package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cayleygraph/sparql/config"
	"github.com/cayleygraph/sparql/nodes"
	"github.com/cayleygraph/sparql/query/sparql"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

const (
	flagDefaultGraph = "default-graph"
	flagNamedGraph   = "named-graph"
	flagBase         = "base"
	flagVocabulary   = "vocab"
	flagFormat       = "format"
)

func NewCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [tree.json|-]",
		Short: "Compile a JSON-encoded syntax tree and print the resulting command.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString(flagFormat)
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported output format %q: must be json or yaml", format)
			}
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			tree, err := readTree(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			st, err := nodes.NewMemory(cfg.Store)
			if err != nil {
				return err
			}
			opts := cfg.Options()
			opts.Sink = diagnosticWriter(cmd.ErrOrStderr())
			c, err := sparql.NewCompiler(st, opts).Compile(tree)
			if err != nil {
				return err
			}
			return writeDescription(cmd.OutOrStdout(), format, c.Describe())
		},
	}
	cmd.Flags().StringSlice(flagDefaultGraph, nil, "IRI of a graph in the protocol default graph")
	cmd.Flags().StringSlice(flagNamedGraph, nil, "IRI of a named graph of the protocol dataset")
	cmd.Flags().String(flagBase, "", "base IRI used before any BASE declaration")
	cmd.Flags().Bool(flagVocabulary, false, "resolve undeclared prefixes with the registered vocabularies")
	cmd.Flags().String(flagFormat, "json", `output format ("json" or "yaml")`)
	viper.BindPFlag(config.KeyDefaultGraphs, cmd.Flags().Lookup(flagDefaultGraph))
	viper.BindPFlag(config.KeyNamedGraphs, cmd.Flags().Lookup(flagNamedGraph))
	viper.BindPFlag(config.KeyBase, cmd.Flags().Lookup(flagBase))
	viper.BindPFlag(config.KeyVocabulary, cmd.Flags().Lookup(flagVocabulary))
	return cmd
}

func readTree(stdin io.Reader, path string) (*syntax.Tree, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var tree syntax.Tree
	if err := json.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("cannot decode syntax tree: %w", err)
	}
	return &tree, nil
}

func diagnosticWriter(w io.Writer) sparql.Sink {
	return sparql.SinkFunc(func(d sparql.Diagnostic) {
		fmt.Fprintln(w, d.Message)
		if d.Context != "" {
			fmt.Fprintf(w, "\t%s\n\t%s\n", d.Context, d.Pointer)
		}
	})
}

func writeDescription(w io.Writer, format string, d interface{}) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
}
