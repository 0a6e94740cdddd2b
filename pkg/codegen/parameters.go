// Copyright 2025 DoorDash, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

package codegen

import (
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// parameterLocations lists the parameter groups in output order.
var parameterLocations = []string{"query", "header", "path", "cookie"}

// ParameterDefinition is one parameter of a path item or operation, after
// following its reference chain.
type ParameterDefinition struct {
	Name string
	In   string

	// ref is set for referenced parameters.
	ref string
	// doc and tokens locate the parameter as written.
	doc    *document
	tokens []string
	// spec is the resolved parameter object.
	spec *yaml.Node
}

func (p ParameterDefinition) key() string {
	return p.In + ":" + p.Name
}

func (p ParameterDefinition) required() bool {
	return p.In == "path" || boolean(p.spec, "required")
}

// resolveParams follows each parameter reference of list. Parameters whose
// reference dangles are left out since their name is unknown.
func (g *generator) resolveParams(d *document, list []*yaml.Node, tokens []string) []ParameterDefinition {
	out := make([]ParameterDefinition, 0, len(list))
	for i, p := range list {
		_, spec, err := g.res.follow(d, p, kindParameter)
		if err != nil {
			g.fail(err)
			continue
		}
		if spec == nil {
			continue
		}
		if g.cfg.ExcludeDeprecated && boolean(spec, "deprecated") {
			continue
		}
		def := ParameterDefinition{
			Name:   str(spec, "name"),
			In:     str(spec, "in"),
			doc:    d,
			tokens: extend(tokens, strconv.Itoa(i)),
			spec:   spec,
		}
		if ref, ok := refValue(p); ok {
			def.ref = ref
		}
		out = append(out, def)
	}
	return out
}

// mergeParams applies operation parameters over path-level ones. An override
// of the same name and location keeps the path-level position.
func mergeParams(pathLevel, opLevel []ParameterDefinition) []ParameterDefinition {
	merged := orderedmap.New[string, ParameterDefinition]()
	for _, p := range pathLevel {
		merged.Set(p.key(), p)
	}
	for _, p := range opLevel {
		merged.Set(p.key(), p)
	}

	out := make([]ParameterDefinition, 0, merged.Len())
	for pair := merged.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// parametersType groups params by location.
func (g *generator) parametersType(params []ParameterDefinition) *tsObject {
	obj := &tsObject{}
	for _, in := range parameterLocations {
		group := &tsObject{}
		required := in == "path"
		for _, p := range params {
			if p.In != in {
				continue
			}
			m := &tsMember{
				key:      objectKey(p.Name),
				optional: !p.required(),
				readonly: g.cfg.ImmutableTypes,
				typ:      g.parameterValueType(p),
			}
			if p.ref == "" {
				m.comment = jsdoc(p.spec)
			}
			group.add(m)
			required = required || p.required()
		}
		if len(group.members) == 0 {
			continue
		}
		obj.add(&tsMember{key: in, optional: !required, readonly: g.cfg.ImmutableTypes, typ: group})
	}
	return obj
}

func (g *generator) parameterValueType(p ParameterDefinition) tsType {
	if p.ref != "" {
		return g.refType(p.doc, p.ref, kindParameter)
	}
	return g.parameterSchemaType(schemaCtx{doc: p.doc, tokens: p.tokens}, p.spec)
}

// parameterSchemaType is the type of an inline parameter or header: its
// schema, else its first content schema, else string.
func (g *generator) parameterSchemaType(s schemaCtx, n *yaml.Node) tsType {
	if schema := lookup(n, "schema"); schema != nil {
		return g.schemaType(s.child("schema"), schema)
	}
	for _, e := range entries(lookup(n, "content")) {
		if schema := lookup(e.Value, "schema"); schema != nil {
			return g.schemaType(s.child("content", e.Key, "schema"), schema)
		}
	}
	return tsString
}

// pathParamTypes maps each declared path parameter to its template type.
func pathParamTypes(params []ParameterDefinition) map[string]string {
	out := make(map[string]string)
	for _, p := range params {
		if p.In != "path" {
			continue
		}
		typ := "string"
		for _, t := range schemaTypes(lookup(p.spec, "schema")) {
			if t == "number" || t == "integer" {
				typ = "number"
			}
		}
		out[p.Name] = typ
	}
	return out
}
