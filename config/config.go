// Copyright 2014 The Cayley Authors. All rights reserved.
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

// Package config loads the compiler settings from a file, the environment
// and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/spf13/viper"

	"github.com/cayleygraph/sparql/clog"
	"github.com/cayleygraph/sparql/nodes"
	"github.com/cayleygraph/sparql/query/sparql"
)

const (
	KeyDefaultGraphs = "dataset.default"
	KeyNamedGraphs   = "dataset.named"
	KeyBase          = "base"
	KeyVocabulary    = "prefixes.vocabulary"
	KeyCacheSize     = "store.cache_size"
	KeyBlankNodes    = "store.blank_nodes"
	KeyVerbosity     = "log.verbosity"
)

// EnvPrefix is the prefix of environment variables overriding the settings,
// for example SPARQLC_STORE_CACHE_SIZE.
const EnvPrefix = "SPARQLC"

// EnvFile names the environment variable that points to a config file.
const EnvFile = EnvPrefix + "_CFG"

// Config holds the compiler settings.
type Config struct {
	Dataset            sparql.Dataset
	Base               string
	VocabularyPrefixes bool
	Store              nodes.Options
	Verbosity          int
}

// Setup registers the defaults and the environment bindings on v and reads
// the config file. An empty file name falls back to $SPARQLC_CFG; no file at
// all leaves the defaults and the environment in effect.
func Setup(v *viper.Viper, file string) error {
	v.SetDefault(KeyCacheSize, nodes.DefaultCacheSize)
	v.SetDefault(KeyBlankNodes, string(nodes.SequentialLabels))
	v.SetDefault(KeyVocabulary, false)
	v.SetDefault(KeyVerbosity, 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		file = os.Getenv(EnvFile)
	}
	if file == "" {
		if clog.V(1) {
			clog.Infof("no config file in $%s, going by flags and environment only", EnvFile)
		}
		return nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return fmt.Errorf("cannot find configuration file %q", file)
		}
		return fmt.Errorf("cannot read configuration file %q: %w", file, err)
	}
	clog.Infof("using config file: %s", v.ConfigFileUsed())
	return nil
}

// Load builds the settings from the values registered on v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Base:               v.GetString(KeyBase),
		VocabularyPrefixes: v.GetBool(KeyVocabulary),
		Store: nodes.Options{
			CacheSize:  v.GetInt(KeyCacheSize),
			BlankNodes: nodes.BlankNodeLabels(v.GetString(KeyBlankNodes)),
		},
		Verbosity: v.GetInt(KeyVerbosity),
	}
	var err error
	if cfg.Dataset.Default, err = graphs(v, KeyDefaultGraphs); err != nil {
		return nil, err
	}
	if cfg.Dataset.Named, err = graphs(v, KeyNamedGraphs); err != nil {
		return nil, err
	}
	if cfg.Store.CacheSize < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", KeyCacheSize, cfg.Store.CacheSize)
	}
	switch cfg.Store.BlankNodes {
	case nodes.SequentialLabels, nodes.UUIDLabels:
	default:
		return nil, fmt.Errorf("%s: unknown labeling %q", KeyBlankNodes, cfg.Store.BlankNodes)
	}
	return cfg, nil
}

// graphs reads a list of graph IRIs. Lists given as a single string, as in
// the environment, are split on commas and spaces.
func graphs(v *viper.Viper, key string) ([]quad.IRI, error) {
	var list []string
	for _, s := range v.GetStringSlice(key) {
		list = append(list, strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' '
		})...)
	}
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]quad.IRI, 0, len(list))
	for _, s := range list {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")
		if s == "" || strings.ContainsAny(s, "<>\"{}|^`\\") {
			return nil, fmt.Errorf("%s: invalid graph IRI %q", key, s)
		}
		out = append(out, quad.IRI(s))
	}
	return out, nil
}

// Options returns the compiler options for the settings.
func (c *Config) Options() sparql.Options {
	return sparql.Options{
		Dataset:            c.Dataset,
		Base:               c.Base,
		VocabularyPrefixes: c.VocabularyPrefixes,
	}
}
