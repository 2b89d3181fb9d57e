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

package algebra

import (
	"strconv"

	"github.com/cayleygraph/quad"
)

// Term renders a term in SPARQL notation.
func Term(v quad.Value) string {
	if v == nil {
		return "UNDEF"
	}
	return v.String()
}

// DescribeQuad renders a quad as graph, subject, predicate, object.
func DescribeQuad(q quad.Quad) []string {
	return []string{Term(q.Label), Term(q.Subject), Term(q.Predicate), Term(q.Object)}
}

// DescribeQuads renders a list of quads.
func DescribeQuads(qs []quad.Quad) []interface{} {
	out := make([]interface{}, 0, len(qs))
	for _, q := range qs {
		out = append(out, DescribeQuad(q))
	}
	return out
}

func describeAll(ps []Pattern) []interface{} {
	out := make([]interface{}, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Describe())
	}
	return out
}

func describeExprs(es []Expression) []interface{} {
	out := make([]interface{}, 0, len(es))
	for _, e := range es {
		out = append(out, e.Describe())
	}
	return out
}

func (p *Quads) Describe() Description {
	d := Description{"type": "quads", "positives": DescribeQuads(p.Positives)}
	if len(p.Negatives) != 0 {
		neg := make([]interface{}, 0, len(p.Negatives))
		for _, n := range p.Negatives {
			neg = append(neg, DescribeQuads(n))
		}
		d["negatives"] = neg
	}
	return d
}

func (p *Join) Describe() Description {
	return Description{"type": "join", "left": p.Left.Describe(), "right": p.Right.Describe()}
}

func (p *LeftJoin) Describe() Description {
	return Description{
		"type":  "left_join",
		"left":  p.Left.Describe(),
		"right": p.Right.Describe(),
		"expr":  p.Expr.Describe(),
	}
}

func (p *Minus) Describe() Description {
	return Description{"type": "minus", "left": p.Left.Describe(), "right": p.Right.Describe()}
}

func (p *Union) Describe() Description {
	return Description{"type": "union", "patterns": describeAll(p.Patterns)}
}

func (p *GraphScope) Describe() Description {
	return Description{"type": "graph", "graph": Term(p.Graph), "inner": p.Inner.Describe()}
}

func (p *Service) Describe() Description {
	return Description{
		"type":     "service",
		"left":     p.Left.Describe(),
		"inner":    p.Inner.Describe(),
		"endpoint": Term(p.Endpoint),
		"silent":   p.Silent,
	}
}

func (p *Filter) Describe() Description {
	return Description{"type": "filter", "inner": p.Inner.Describe(), "expr": p.Expr.Describe()}
}

func (p *Bind) Describe() Description {
	return Description{
		"type":  "bind",
		"inner": p.Inner.Describe(),
		"var":   p.Var.String(),
		"expr":  p.Expr.Describe(),
	}
}

func (p *Select) Describe() Description {
	d := Description{"type": "select", "inner": p.Inner.Describe()}
	if p.Distinct {
		d["distinct"] = true
	}
	if p.Reduced {
		d["reduced"] = true
	}
	if p.Modifier != nil {
		d["modifier"] = p.Modifier.Describe()
	}
	if p.InlineData != nil {
		d["values"] = p.InlineData.Describe()
	}
	if len(p.Projection) != 0 {
		proj := make([]interface{}, 0, len(p.Projection))
		for _, pr := range p.Projection {
			if pr.Expr == nil {
				proj = append(proj, pr.Var.String())
				continue
			}
			proj = append(proj, Description{"var": pr.Var.String(), "expr": pr.Expr.Describe()})
		}
		d["projection"] = proj
	}
	return d
}

func (p *InlineData) Describe() Description {
	vars := make([]interface{}, 0, len(p.Vars))
	for _, v := range p.Vars {
		vars = append(vars, v.String())
	}
	rows := make([]interface{}, 0, len(p.Solutions))
	for _, s := range p.Solutions {
		row := make(map[string]interface{}, len(s))
		for _, b := range s {
			row[b.Var.String()] = Term(b.Value)
		}
		rows = append(rows, row)
	}
	return Description{"type": "values", "vars": vars, "solutions": rows}
}

func (Unmatchable) Describe() Description {
	return Description{"type": "unmatchable"}
}

func (m *Modifier) Describe() Description {
	d := Description{}
	if len(m.Group) != 0 {
		keys := make([]interface{}, 0, len(m.Group))
		for _, k := range m.Group {
			kd := Description{"expr": k.Expr.Describe()}
			if k.Var != nil {
				kd["var"] = k.Var.String()
			}
			keys = append(keys, kd)
		}
		d["group"] = keys
	}
	if len(m.Having) != 0 {
		d["having"] = describeExprs(m.Having)
	}
	if len(m.Order) != 0 {
		keys := make([]interface{}, 0, len(m.Order))
		for _, k := range m.Order {
			keys = append(keys, Description{"expr": k.Expr.Describe(), "descending": k.Descending})
		}
		d["order"] = keys
	}
	if m.Limit != nil {
		d["limit"] = *m.Limit
	}
	if m.Offset != nil {
		d["offset"] = *m.Offset
	}
	return d
}

func (e *Const) Describe() Description {
	return Description{"type": "const", "value": Term(e.Value)}
}

func (e *VarRef) Describe() Description {
	return Description{"type": "var", "var": e.Var.String()}
}

func (e *Unary) Describe() Description {
	return Description{"type": "unary", "op": e.Op.String(), "operand": e.Operand.Describe()}
}

func (e *Binary) Describe() Description {
	return Description{
		"type":  "binary",
		"op":    e.Op.String(),
		"left":  e.Left.Describe(),
		"right": e.Right.Describe(),
	}
}

func (e *FunctionCall) Describe() Description {
	d := Description{"type": "call", "name": e.Name, "args": describeExprs(e.Args)}
	if e.Builtin {
		d["builtin"] = true
	}
	if e.Distinct {
		d["distinct"] = true
	}
	if e.Separator != nil {
		d["separator"] = strconv.Quote(*e.Separator)
	}
	return d
}

func (e *In) Describe() Description {
	return Description{"type": "in", "expr": e.Expr.Describe(), "range": describeExprs(e.Range)}
}

func (e *Exists) Describe() Description {
	return Description{"type": "exists", "pattern": e.Pattern.Describe()}
}
