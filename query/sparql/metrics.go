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

package sparql

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cayleygraph/sparql/query/sparql/algebra"
)

var (
	mCompiled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cayley_sparql_compiled_total",
		Help: "Number of SPARQL commands compiled, by query form or update operation.",
	}, []string{"form"})
	mCompileErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cayley_sparql_compile_errors_total",
		Help: "Number of failed SPARQL compilations, by error kind.",
	}, []string{"kind"})
	mCompileSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "cayley_sparql_compile_seconds",
		Help: "Time spent compiling a SPARQL syntax tree.",
	})
	mPatternSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cayley_sparql_pattern_nodes",
		Help:    "Number of graph pattern nodes in compiled commands.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

func observePatterns(cmd Command) {
	if c, ok := cmd.(*Composed); ok {
		for _, sub := range c.Commands {
			observePatterns(sub)
		}
		return
	}
	if p := pattern(cmd); p != nil {
		mPatternSize.Observe(float64(algebra.Count(p)))
	}
}
