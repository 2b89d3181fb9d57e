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
	"sort"
	"strings"

	"github.com/cayleygraph/sparql/query/sparql/algebra"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

const variadic = -1

// builtinFunc describes a builtin function or aggregate.
type builtinFunc struct {
	Name      string
	Min, Max  int // Max is variadic for unbounded arguments
	Aggregate bool
}

var builtins = make(map[string]builtinFunc)

func registerBuiltin(f builtinFunc) {
	builtins[strings.ToUpper(f.Name)] = f
}

func init() {
	for _, name := range []string{
		"STR", "LANG", "DATATYPE", "BOUND", "IRI", "URI",
		"ABS", "CEIL", "FLOOR", "ROUND", "STRLEN", "UCASE", "LCASE", "ENCODE_FOR_URI",
		"YEAR", "MONTH", "DAY", "HOURS", "MINUTES", "SECONDS", "TIMEZONE", "TZ",
		"MD5", "SHA1", "SHA256", "SHA384", "SHA512",
		"isIRI", "isURI", "isBLANK", "isLITERAL", "isNUMERIC",
	} {
		registerBuiltin(builtinFunc{Name: name, Min: 1, Max: 1})
	}
	for _, name := range []string{
		"LANGMATCHES", "CONTAINS", "STRSTARTS", "STRENDS", "STRBEFORE", "STRAFTER",
		"STRLANG", "STRDT", "sameTerm",
	} {
		registerBuiltin(builtinFunc{Name: name, Min: 2, Max: 2})
	}
	for _, name := range []string{"RAND", "NOW", "UUID", "STRUUID"} {
		registerBuiltin(builtinFunc{Name: name})
	}
	for _, f := range []builtinFunc{
		{Name: "IF", Min: 3, Max: 3},
		{Name: "BNODE", Min: 0, Max: 1},
		{Name: "SUBSTR", Min: 2, Max: 3},
		{Name: "REPLACE", Min: 3, Max: 4},
		{Name: "REGEX", Min: 2, Max: 3},
		{Name: "CONCAT", Max: variadic},
		{Name: "COALESCE", Max: variadic},

		{Name: "COUNT", Min: 0, Max: 1, Aggregate: true},
		{Name: "SUM", Min: 1, Max: 1, Aggregate: true},
		{Name: "MIN", Min: 1, Max: 1, Aggregate: true},
		{Name: "MAX", Min: 1, Max: 1, Aggregate: true},
		{Name: "AVG", Min: 1, Max: 1, Aggregate: true},
		{Name: "SAMPLE", Min: 1, Max: 1, Aggregate: true},
		{Name: "GROUP_CONCAT", Min: 1, Max: 1, Aggregate: true},
	} {
		registerBuiltin(f)
	}
}

// Builtins returns the canonical names of the supported builtin functions
// and aggregates, sorted.
func Builtins() []string {
	out := make([]string, 0, len(builtins))
	for _, f := range builtins {
		out = append(out, f.Name)
	}
	sort.Strings(out)
	return out
}

// builtin compiles a builtin function or aggregate call.
func (c *scope) builtin(n *syntax.Node) (algebra.Expression, error) {
	f, ok := builtins[strings.ToUpper(n.Value)]
	if !ok {
		return nil, errorf(ErrInvalid, n, "unknown function %s", n.Value)
	}
	fc := &algebra.FunctionCall{Name: f.Name, Builtin: true}
	args := n.Children
	if len(args) != 0 && args[0].Is(syntax.KindDistinct) {
		if !f.Aggregate {
			return nil, errorf(ErrInvalid, args[0], "DISTINCT is only allowed in aggregates")
		}
		fc.Distinct = true
		args = args[1:]
	}
	if k := len(args); k != 0 && args[k-1].Is(syntax.KindSeparator) {
		if f.Name != "GROUP_CONCAT" {
			return nil, errorf(ErrInvalid, args[k-1], "SEPARATOR is only allowed in GROUP_CONCAT")
		}
		sep, err := c.s.lexical(args[k-1].Child(0))
		if err != nil {
			return nil, err
		}
		fc.Separator = &sep
		args = args[:k-1]
	}
	if len(args) == 1 && args[0].Is(syntax.KindStar) {
		if f.Name != "COUNT" {
			return nil, errorf(ErrInvalid, args[0], "* is only allowed in COUNT")
		}
		return fc, nil
	}
	if len(args) < f.Min || (f.Max != variadic && len(args) > f.Max) {
		return nil, errorf(ErrInvalid, n, "%s: %s", f.Name, arity(f, len(args)))
	}
	if f.Name == "COUNT" && len(args) == 0 {
		return nil, errorf(ErrInvalid, n, "COUNT expects an expression or *")
	}
	var err error
	if fc.Args, err = c.exprs(args); err != nil {
		return nil, err
	}
	return fc, nil
}

func arity(f builtinFunc, got int) string {
	if f.Min == f.Max {
		return fmt.Sprintf("expected %d arguments, got %d", f.Min, got)
	}
	return fmt.Sprintf("expected %d to %d arguments, got %d", f.Min, f.Max, got)
}
