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
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/sparql/query/sparql/algebra"
)

// Command is a compiled SPARQL query or update operation.
// Commands are immutable and may be evaluated any number of times.
type Command interface {
	// Describe returns a structural description of the command.
	Describe() algebra.Description
	// form names the query form or update operation.
	form() string
}

// GraphRefKind is the resolved meaning of a graph reference.
type GraphRefKind int

const (
	// RefSingle refers to an explicit list of graph IRIs.
	RefSingle GraphRefKind = iota
	// RefDefault refers to the default graph of the store.
	RefDefault
	// RefNamed refers to all named graphs of the store.
	RefNamed
	// RefAll refers to all graphs of the store.
	RefAll
)

func (k GraphRefKind) String() string {
	switch k {
	case RefSingle:
		return "single"
	case RefDefault:
		return "default"
	case RefNamed:
		return "named"
	case RefAll:
		return "all"
	}
	return fmt.Sprintf("GraphRefKind(%d)", int(k))
}

// Select is a SELECT query.
type Select struct {
	Select *algebra.Select
}

// Construct is a CONSTRUCT query. Template quads are instantiated once per
// solution of Select.
type Construct struct {
	Select   *algebra.Select
	Template []quad.Quad
}

// Describe is a DESCRIBE query over variables and IRIs.
type Describe struct {
	Select  *algebra.Select
	Targets []quad.Value
}

// Ask is an ASK query.
type Ask struct {
	Select *algebra.Select
}

// Load is a LOAD operation. An empty Target loads into the default graph.
type Load struct {
	Source quad.IRI
	Target quad.IRI
	Silent bool
}

// Clear is a CLEAR operation.
type Clear struct {
	RefType GraphRefKind
	Targets []quad.IRI
	Silent  bool
}

// Drop is a DROP operation.
type Drop struct {
	RefType GraphRefKind
	Targets []quad.IRI
	Silent  bool
}

// Create is a CREATE operation.
type Create struct {
	Graph  quad.IRI
	Silent bool
}

// Copy is a COPY operation.
type Copy struct {
	Origins []quad.IRI
	Targets []quad.IRI
	Silent  bool
}

// Move is a MOVE operation.
type Move struct {
	Origins []quad.IRI
	Targets []quad.IRI
	Silent  bool
}

// Add is an ADD operation.
type Add struct {
	Origins []quad.IRI
	Targets []quad.IRI
	Silent  bool
}

// InsertData inserts ground quads.
type InsertData struct {
	Quads []quad.Quad
}

// DeleteData deletes ground quads.
type DeleteData struct {
	Quads []quad.Quad
}

// DeleteWhere deletes every instantiation of the quad pattern.
type DeleteWhere struct {
	Quads []quad.Quad
}

// Modify deletes and then inserts template quads for each solution of Where.
type Modify struct {
	Insert []quad.Quad
	Delete []quad.Quad
	Where  algebra.Pattern
}

// Composed is a sequence of update operations applied in order.
type Composed struct {
	Commands []Command
}

func (*Select) form() string      { return "select" }
func (*Construct) form() string   { return "construct" }
func (*Describe) form() string    { return "describe" }
func (*Ask) form() string         { return "ask" }
func (*Load) form() string        { return "load" }
func (*Clear) form() string       { return "clear" }
func (*Drop) form() string        { return "drop" }
func (*Create) form() string      { return "create" }
func (*Copy) form() string        { return "copy" }
func (*Move) form() string        { return "move" }
func (*Add) form() string         { return "add" }
func (*InsertData) form() string  { return "insert_data" }
func (*DeleteData) form() string  { return "delete_data" }
func (*DeleteWhere) form() string { return "delete_where" }
func (*Modify) form() string      { return "modify" }
func (*Composed) form() string    { return "composed" }

func iris(list []quad.IRI) []interface{} {
	out := make([]interface{}, 0, len(list))
	for _, iri := range list {
		out = append(out, algebra.Term(iri))
	}
	return out
}

func (c *Select) Describe() algebra.Description {
	return algebra.Description{"command": c.form(), "select": c.Select.Describe()}
}

func (c *Construct) Describe() algebra.Description {
	return algebra.Description{
		"command":  c.form(),
		"select":   c.Select.Describe(),
		"template": algebra.DescribeQuads(c.Template),
	}
}

func (c *Describe) Describe() algebra.Description {
	targets := make([]interface{}, 0, len(c.Targets))
	for _, t := range c.Targets {
		targets = append(targets, algebra.Term(t))
	}
	return algebra.Description{"command": c.form(), "select": c.Select.Describe(), "targets": targets}
}

func (c *Ask) Describe() algebra.Description {
	return algebra.Description{"command": c.form(), "select": c.Select.Describe()}
}

func (c *Load) Describe() algebra.Description {
	d := algebra.Description{"command": c.form(), "source": algebra.Term(c.Source), "silent": c.Silent}
	if c.Target != "" {
		d["target"] = algebra.Term(c.Target)
	}
	return d
}

func (c *Clear) Describe() algebra.Description {
	return describeRef(c.form(), c.RefType, c.Targets, c.Silent)
}

func (c *Drop) Describe() algebra.Description {
	return describeRef(c.form(), c.RefType, c.Targets, c.Silent)
}

func describeRef(form string, kind GraphRefKind, targets []quad.IRI, silent bool) algebra.Description {
	return algebra.Description{"command": form, "ref": kind.String(), "targets": iris(targets), "silent": silent}
}

func (c *Create) Describe() algebra.Description {
	return algebra.Description{"command": c.form(), "graph": algebra.Term(c.Graph), "silent": c.Silent}
}

func (c *Copy) Describe() algebra.Description {
	return describeTransfer(c.form(), c.Origins, c.Targets, c.Silent)
}

func (c *Move) Describe() algebra.Description {
	return describeTransfer(c.form(), c.Origins, c.Targets, c.Silent)
}

func (c *Add) Describe() algebra.Description {
	return describeTransfer(c.form(), c.Origins, c.Targets, c.Silent)
}

func describeTransfer(form string, origins, targets []quad.IRI, silent bool) algebra.Description {
	return algebra.Description{"command": form, "origins": iris(origins), "targets": iris(targets), "silent": silent}
}

func (c *InsertData) Describe() algebra.Description {
	return algebra.Description{"command": c.form(), "quads": algebra.DescribeQuads(c.Quads)}
}

func (c *DeleteData) Describe() algebra.Description {
	return algebra.Description{"command": c.form(), "quads": algebra.DescribeQuads(c.Quads)}
}

func (c *DeleteWhere) Describe() algebra.Description {
	return algebra.Description{"command": c.form(), "quads": algebra.DescribeQuads(c.Quads)}
}

func (c *Modify) Describe() algebra.Description {
	return algebra.Description{
		"command": c.form(),
		"delete":  algebra.DescribeQuads(c.Delete),
		"insert":  algebra.DescribeQuads(c.Insert),
		"where":   c.Where.Describe(),
	}
}

func (c *Composed) Describe() algebra.Description {
	cmds := make([]interface{}, 0, len(c.Commands))
	for _, sub := range c.Commands {
		cmds = append(cmds, sub.Describe())
	}
	return algebra.Description{"command": c.form(), "commands": cmds}
}

// Form names the query form or update operation of a command,
// such as "select" or "insert_data".
func Form(c Command) string {
	if c == nil {
		return ""
	}
	return c.form()
}
