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

// Command sparqlc compiles SPARQL syntax trees into the query algebra.
package main

import (
	"os"

	"github.com/golang/glog"

	"github.com/cayleygraph/sparql/clog"
	_ "github.com/cayleygraph/sparql/clog/glog"
	"github.com/cayleygraph/sparql/cmd/sparqlc/command"
)

func main() {
	err := command.NewRootCmd().Execute()
	if err != nil {
		clog.Errorf("%v", err)
	}
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
