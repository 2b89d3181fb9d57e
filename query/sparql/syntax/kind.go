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

package syntax

import "fmt"

// Kind is a grammar symbol of a SPARQL syntax tree node.
//
// Layouts below list the children of each node kind in order; "?" marks an
// optional child and "*" a repeated one. Token kinds carry their source text
// in Node.Value and have no children.
type Kind int

const (
	KindInvalid Kind = iota

	// Tokens.

	KindIRIRef         // <http://example.com/>, brackets included
	KindPNameLN        // ex:local
	KindPNameNS        // ex:
	KindBlankNodeLabel // _:b0
	KindAnon           // []
	KindVar            // ?x or $x
	KindA              // a
	KindNil            // ()
	KindTrue           // true
	KindFalse          // false
	KindInteger        // 42
	KindDecimal        // 4.2
	KindDouble         // 4.2e1
	KindString         // "...", '...', """...""" or '''...''', quotes included
	KindLangTag        // @en
	KindUndef          // UNDEF
	KindDefault        // DEFAULT
	KindNamed          // NAMED
	KindAll            // ALL
	KindSilent         // SILENT
	KindDistinct       // DISTINCT
	KindReduced        // REDUCED
	KindStar           // *

	// Units and prologue.

	KindQuery      // Prologue (Select|Construct|ConstructWhere|Describe|Ask) Values?
	KindUpdate     // Statement*
	KindStatement  // Prologue operation?
	KindPrologue   // (BaseDecl|PrefixDecl)*
	KindBaseDecl   // IRIRef
	KindPrefixDecl // PNameNS IRIRef

	// Query forms and clauses.

	KindSelect            // SelectClause (From|FromNamed)* Where Modifier
	KindConstruct         // ConstructTemplate (From|FromNamed)* Where Modifier
	KindConstructWhere    // (From|FromNamed)* TriplesBlock? Modifier
	KindDescribe          // DescribeTargets (From|FromNamed)* Where? Modifier
	KindAsk               // (From|FromNamed)* Where Modifier
	KindSelectClause      // (Distinct|Reduced)? (Star | (Var|As)*)
	KindAs                // expression Var
	KindFrom              // iri
	KindFromNamed         // iri
	KindWhere             // Group|SubSelect
	KindModifier          // GroupBy? Having? OrderBy? Limit? Offset?
	KindGroupBy           // (expression|As)*
	KindHaving            // expression*
	KindOrderBy           // (Asc|Desc|expression)*
	KindAsc               // expression
	KindDesc              // expression
	KindLimit             // Value holds the integer
	KindOffset            // Value holds the integer
	KindValues            // (DataOne|DataFull)?
	KindDataOne           // Var value*
	KindDataFull          // VarList DataRow*
	KindVarList           // Var*
	KindDataRow           // value*, where value is a term or Undef
	KindConstructTemplate // TriplesBlock?
	KindDescribeTargets   // Star | (Var|iri)*

	// Graph patterns.

	KindGroup                 // (TriplesBlock|Optional|Minus|Graph|Service|Filter|Bind|Values|Union|SubSelect|Group)*
	KindSubSelect             // SelectClause Where Modifier Values?
	KindTriplesBlock          // (TriplesSameSubject|TriplesNegative)*
	KindTriplesSameSubject    // node PropertyList
	KindTriplesNegative       // TriplesSameSubject*
	KindPropertyList          // (verb ObjectList)*
	KindObjectList            // node*
	KindCollection            // node*
	KindBlankNodePropertyList // (verb ObjectList)*
	KindPath                  // property path expression; not compiled
	KindOptional              // Group|SubSelect
	KindMinus                 // Group|SubSelect
	KindGraph                 // (Var|iri) (Group|SubSelect)
	KindService               // Silent? (Var|iri) (Group|SubSelect)
	KindFilter                // expression
	KindBind                  // expression Var
	KindUnion                 // (Union|Group|SubSelect) (Group|SubSelect)

	// Expressions.

	KindOpOr          // expression expression
	KindOpAnd         // expression expression
	KindOpEq          // expression expression
	KindOpNeq         // expression expression
	KindOpLess        // expression expression
	KindOpGreater     // expression expression
	KindOpLeq         // expression expression
	KindOpGeq         // expression expression
	KindOpPlus        // expression expression?, unary with one child
	KindOpMinus       // expression expression?, unary with one child
	KindOpMult        // expression expression
	KindOpDiv         // expression expression
	KindOpNot         // expression
	KindIn            // expression ExprList
	KindNotIn         // expression ExprList
	KindExprList      // expression*
	KindFunctionCall  // iri ArgList
	KindArgList       // Distinct? (expression|Star)*
	KindBuiltinCall   // Value is the function name; Distinct? (expression|Star)* Separator?
	KindSeparator     // String
	KindExists        // Group|SubSelect
	KindNotExists     // Group|SubSelect
	KindLiteral       // String (LangTag|iri)?
	KindIRIOrFunction // iri ArgList?

	// Update operations.

	KindLoad        // Silent? iri iri?
	KindClear       // Silent? (Default|Named|All|iri)
	KindDrop        // Silent? (Default|Named|All|iri)
	KindCreate      // Silent? iri
	KindAdd         // Silent? (Default|iri) (Default|iri)
	KindMove        // Silent? (Default|iri) (Default|iri)
	KindCopy        // Silent? (Default|iri) (Default|iri)
	KindInsertData  // Quads
	KindDeleteData  // Quads
	KindDeleteWhere // Quads
	KindModify      // With? DeleteClause? InsertClause? (Using|UsingNamed)* Where
	KindWith        // iri
	KindDeleteClause // Quads
	KindInsertClause // Quads
	KindUsing        // iri
	KindUsingNamed   // iri
	KindQuads        // (TriplesBlock|GraphQuads)*
	KindGraphQuads   // (Var|iri) TriplesBlock?

	kindCount
)

var kindNames = [...]string{
	KindInvalid:               "invalid",
	KindIRIRef:                "iriref",
	KindPNameLN:               "pname_ln",
	KindPNameNS:               "pname_ns",
	KindBlankNodeLabel:        "blank_node_label",
	KindAnon:                  "anon",
	KindVar:                   "var",
	KindA:                     "a",
	KindNil:                   "nil",
	KindTrue:                  "true",
	KindFalse:                 "false",
	KindInteger:               "integer",
	KindDecimal:               "decimal",
	KindDouble:                "double",
	KindString:                "string",
	KindLangTag:               "langtag",
	KindUndef:                 "undef",
	KindDefault:               "default",
	KindNamed:                 "named",
	KindAll:                   "all",
	KindSilent:                "silent",
	KindDistinct:              "distinct",
	KindReduced:               "reduced",
	KindStar:                  "star",
	KindQuery:                 "query",
	KindUpdate:                "update",
	KindStatement:             "statement",
	KindPrologue:              "prologue",
	KindBaseDecl:              "decl_base",
	KindPrefixDecl:            "decl_prefix",
	KindSelect:                "select",
	KindConstruct:             "construct",
	KindConstructWhere:        "construct_where",
	KindDescribe:              "describe",
	KindAsk:                   "ask",
	KindSelectClause:          "clause_select",
	KindAs:                    "as",
	KindFrom:                  "from",
	KindFromNamed:             "from_named",
	KindWhere:                 "clause_where",
	KindModifier:              "modifier",
	KindGroupBy:               "clause_group",
	KindHaving:                "clause_having",
	KindOrderBy:               "clause_order",
	KindAsc:                   "asc",
	KindDesc:                  "desc",
	KindLimit:                 "clause_limit",
	KindOffset:                "clause_offset",
	KindValues:                "clause_values",
	KindDataOne:               "inline_data_one",
	KindDataFull:              "inline_data_full",
	KindVarList:               "var_list",
	KindDataRow:               "data_row",
	KindConstructTemplate:     "construct_template",
	KindDescribeTargets:       "describe_targets",
	KindGroup:                 "graph_pattern_group",
	KindSubSelect:             "sub_select",
	KindTriplesBlock:          "triples_block",
	KindTriplesSameSubject:    "triples_same_subj",
	KindTriplesNegative:       "triples_neg",
	KindPropertyList:          "property_list",
	KindObjectList:            "object_list",
	KindCollection:            "collection",
	KindBlankNodePropertyList: "blank_node_property_list",
	KindPath:                  "path",
	KindOptional:              "graph_pattern_optional",
	KindMinus:                 "graph_pattern_minus",
	KindGraph:                 "graph_pattern_graph",
	KindService:               "graph_pattern_service",
	KindFilter:                "graph_pattern_filter",
	KindBind:                  "graph_pattern_bind",
	KindUnion:                 "union",
	KindOpOr:                  "op_or",
	KindOpAnd:                 "op_and",
	KindOpEq:                  "op_eq",
	KindOpNeq:                 "op_neq",
	KindOpLess:                "op_less",
	KindOpGreater:             "op_greater",
	KindOpLeq:                 "op_leq",
	KindOpGeq:                 "op_geq",
	KindOpPlus:                "op_plus",
	KindOpMinus:               "op_minus",
	KindOpMult:                "op_mult",
	KindOpDiv:                 "op_div",
	KindOpNot:                 "op_not",
	KindIn:                    "in",
	KindNotIn:                 "not_in",
	KindExprList:              "expr_list",
	KindFunctionCall:          "function_call",
	KindArgList:               "arg_list",
	KindBuiltinCall:           "built_in_call",
	KindSeparator:             "separator",
	KindExists:                "exists",
	KindNotExists:             "not_exists",
	KindLiteral:               "literal_rdf",
	KindIRIOrFunction:         "iri_or_function",
	KindLoad:                  "load",
	KindClear:                 "clear",
	KindDrop:                  "drop",
	KindCreate:                "create",
	KindAdd:                   "add",
	KindMove:                  "move",
	KindCopy:                  "copy",
	KindInsertData:            "insert_data",
	KindDeleteData:            "delete_data",
	KindDeleteWhere:           "delete_where",
	KindModify:                "modify",
	KindWith:                  "clause_with",
	KindDeleteClause:          "clause_delete",
	KindInsertClause:          "clause_insert",
	KindUsing:                 "clause_using",
	KindUsingNamed:            "clause_using_named",
	KindQuads:                 "quads",
	KindGraphQuads:            "quads_graph",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind with the given grammar symbol name.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindByName[name]
	return k, ok
}

// IsIRI reports whether the kind is one of the IRI token kinds.
func (k Kind) IsIRI() bool {
	return k == KindIRIRef || k == KindPNameLN || k == KindPNameNS
}

func (k Kind) MarshalText() ([]byte, error) {
	if k <= KindInvalid || k >= kindCount {
		return nil, fmt.Errorf("syntax: cannot marshal %v", k)
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, ok := ParseKind(string(text))
	if !ok || v == KindInvalid {
		return fmt.Errorf("syntax: unknown node kind %q", text)
	}
	*k = v
	return nil
}
