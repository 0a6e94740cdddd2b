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
	"slices"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// schemaCtx locates a schema node inside its document.
type schemaCtx struct {
	doc    *document
	tokens []string
	// name is the component name for named entries and "" for inline schemas.
	name string
}

func (s schemaCtx) child(tokens ...string) schemaCtx {
	return schemaCtx{doc: s.doc, tokens: extend(s.tokens, tokens...)}
}

func (s schemaCtx) meta() TransformMeta {
	return TransformMeta{Path: hookPath(s.doc, s.tokens)}
}

// namedSchema synthesizes a named entry once. A recursive visit while the
// entry is still being synthesized gets a reference to it.
func (g *generator) namedSchema(s schemaCtx, n *yaml.Node) tsType {
	path := canonicalPath(s.doc, s.tokens)
	if td, ok := g.types.lookup(path); ok {
		if td.pending {
			return tsRef{path: path}
		}
		return td.typ
	}
	td := g.types.reserve(path)
	t := g.schemaType(s, n)
	g.types.complete(td, t)
	return t
}

// schemaType synthesizes the type expression of a schema node, running the
// transform hooks around the default synthesis.
func (g *generator) schemaType(s schemaCtx, n *yaml.Node) tsType {
	n = deref(n)
	if n == nil {
		return tsUnknown
	}
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!bool" {
		if n.Value == "false" {
			return tsNever
		}
		return tsUnknown
	}
	if n.Kind != yaml.MappingNode {
		return tsUnknown
	}
	if ref, ok := refValue(n); ok {
		return g.refType(s.doc, ref, kindSchema)
	}

	var t tsType
	if g.cfg.Transform != nil {
		if text, ok := g.cfg.Transform(SchemaView{node: n}, s.meta()); ok {
			t = tsRaw(text)
		}
	}
	if t == nil {
		t = g.defaultSchemaType(s, n)
	}
	if g.cfg.PostTransform != nil {
		if text, ok := g.cfg.PostTransform(t.render(0), s.meta()); ok {
			t = tsRaw(text)
		}
	}
	return t
}

// refType renders a reference by its canonical path.
func (g *generator) refType(d *document, ref string, kind nodeKind) tsType {
	if isExtensionRef(ref) {
		return tsUnknown
	}
	e, err := g.res.resolve(d, ref, kind)
	if err != nil {
		g.fail(err)
		return tsUnknown
	}
	return tsRef{path: e.path}
}

func (g *generator) defaultSchemaType(s schemaCtx, n *yaml.Node) tsType {
	t := g.baseSchemaType(s, n)
	if boolean(n, "nullable") {
		if isKeyword(t, tsUnknown) {
			t = recordUnknown
		}
		t = nullable(t)
	}
	return t
}

func (g *generator) baseSchemaType(s schemaCtx, n *yaml.Node) tsType {
	types := schemaTypes(n)

	if v := lookup(n, "const"); v != nil {
		return literalType(v, slices.Contains(types, "string"))
	}
	if enum := lookup(n, "enum"); enum != nil && enum.Kind == yaml.SequenceNode && !slices.Contains(types, "object") {
		return enumType(types, enum)
	}
	if _, ok := g.res.holders[n]; ok && (has(n, "oneOf") || has(n, "anyOf")) {
		return g.holderUnion(s, n)
	}
	if has(n, "oneOf") || has(n, "anyOf") {
		if u := g.unionType(s, n); u != nil {
			if has(n, "properties") || has(n, "additionalProperties") || has(n, "allOf") {
				return intersectionOf(g.objectType(s, n), u)
			}
			return u
		}
	}

	switch len(types) {
	case 0:
		return g.inferredType(s, n)
	case 1:
		return g.typeOf(s, n, types[0])
	}
	members := make([]tsType, 0, len(types))
	for _, t := range types {
		members = append(members, g.typeOf(s, n, t))
	}
	return unionOf(members...)
}

func (g *generator) typeOf(s schemaCtx, n *yaml.Node, typ string) tsType {
	switch typ {
	case "null":
		return tsNull
	case "string":
		return tsString
	case "boolean":
		return tsBoolean
	case "number", "integer":
		return tsNumber
	case "array":
		return g.arrayType(s, n)
	case "object":
		return g.objectType(s, n)
	}
	return tsUnknown
}

// inferredType handles schemas without a type keyword.
func (g *generator) inferredType(s schemaCtx, n *yaml.Node) tsType {
	switch {
	case has(n, "properties"), has(n, "additionalProperties"), has(n, "patternProperties"), has(n, "allOf"):
		return g.objectType(s, n)
	case has(n, "items"), has(n, "prefixItems"):
		return g.arrayType(s, n)
	}
	if _, ok := g.res.memberOf[n]; ok {
		return g.objectType(s, n)
	}
	return tsUnknown
}

func (g *generator) arrayType(s schemaCtx, n *yaml.Node) tsType {
	readonly := g.cfg.ImmutableTypes

	if prefix := items(n, "prefixItems"); len(prefix) > 0 {
		return g.tupleType(s, "prefixItems", prefix)
	}
	if list := items(n, "items"); len(list) > 0 {
		return g.tupleType(s, "items", list)
	}

	it := lookup(n, "items")
	if it == nil {
		return tsArray{elem: tsUnknown, readonly: readonly}
	}
	return tsArray{elem: g.schemaType(s.child("items"), it), readonly: readonly}
}

func (g *generator) tupleType(s schemaCtx, key string, list []*yaml.Node) tsType {
	elems := make([]tsType, len(list))
	for i, item := range list {
		elems[i] = g.schemaType(s.child(key, strconv.Itoa(i)), item)
	}
	return tsTuple{elems: elems, readonly: g.cfg.ImmutableTypes}
}

// objectType synthesizes an object schema: its own members first, then the
// allOf members, wrapped in WithRequired when members narrow optional keys.
func (g *generator) objectType(s schemaCtx, n *yaml.Node) tsType {
	allOf := items(n, "allOf")
	composed := len(allOf) > 0 || has(n, "oneOf") || has(n, "anyOf")

	obj := g.objectLiteral(s, n, composed)
	if obj == nil {
		return tsUnknown
	}

	var parts []tsType
	if len(obj.members) > 0 || !composed {
		parts = append(parts, obj)
	}
	parts = append(parts, g.allOfTypes(s, n)...)

	t := intersectionOf(parts...)
	if len(allOf) > 0 {
		if keys := g.narrowedKeys(s, n); len(keys) > 0 {
			t = g.helpers.withRequiredType(t, keys)
		}
	}
	return t
}

// objectLiteral builds the own members of an object schema. It returns nil
// when an empty object is rendered as unknown.
func (g *generator) objectLiteral(s schemaCtx, n *yaml.Node, composed bool) *tsObject {
	obj := &tsObject{}
	required := stringSet(n, "required")

	props := entries(lookup(n, "properties"))
	if g.cfg.Alphabetize {
		sort.SliceStable(props, func(i, j int) bool { return props[i].Key < props[j].Key })
	}
	for _, p := range props {
		if g.cfg.ExcludeDeprecated && boolean(p.Value, "deprecated") {
			continue
		}
		optional := !required[p.Key]
		if optional && g.cfg.DefaultNonNullable && has(p.Value, "default") {
			optional = false
		}
		obj.add(&tsMember{
			key:      objectKey(p.Key),
			optional: optional,
			readonly: g.cfg.ImmutableTypes,
			comment:  jsdoc(p.Value),
			typ:      g.schemaType(s.child("properties", p.Key), p.Value),
		})
	}

	g.applyDiscriminant(s, n, obj)

	hasAdditional := false
	ap := lookup(n, "additionalProperties")
	switch {
	case ap == nil:
	case ap.Kind == yaml.ScalarNode && ap.ShortTag() == "!!bool":
		if ap.Value == "true" {
			obj.add(g.indexSignature(tsUnknown))
		}
		hasAdditional = true
	case ap.Kind == yaml.MappingNode:
		if len(ap.Content) == 0 {
			obj.add(g.indexSignature(tsUnknown))
		} else {
			obj.add(g.indexSignature(g.schemaType(s.child("additionalProperties"), ap)))
		}
		hasAdditional = true
	}

	if pattern := entries(lookup(n, "patternProperties")); len(pattern) > 0 && !hasAdditional {
		members := make([]tsType, 0, len(pattern))
		for _, p := range pattern {
			members = append(members, g.schemaType(s.child("patternProperties", p.Key), p.Value))
		}
		obj.add(g.indexSignature(unionOf(members...)))
		hasAdditional = true
	}

	switch {
	case len(obj.members) == 0 && !hasAdditional && !composed:
		if g.cfg.EmptyObjectsUnknown {
			return nil
		}
		obj.add(g.indexSignature(tsUnknown))
	case g.cfg.AdditionalProperties && !hasAdditional && len(props) > 0:
		obj.add(g.indexSignature(tsUnknown))
	}
	return obj
}

func (g *generator) indexSignature(t tsType) *tsMember {
	return &tsMember{key: "[key: string]", readonly: g.cfg.ImmutableTypes, typ: t}
}

// literalType renders a const or enum value. asString quotes non-string
// scalars for string-typed schemas.
func literalType(v *yaml.Node, asString bool) tsType {
	v = deref(v)
	if v == nil {
		return tsUnknown
	}
	switch v.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return tsLiteral(jsonText(toValue(v)))
	}
	switch v.ShortTag() {
	case "!!null":
		return tsNull
	case "!!str":
		return stringLiteral(v.Value)
	}
	if asString {
		return stringLiteral(v.Value)
	}
	return tsLiteral(jsonText(toValue(v)))
}

func enumType(types []string, enum *yaml.Node) tsType {
	asString := slices.Contains(types, "string")
	members := make([]tsType, 0, len(enum.Content))
	for _, v := range enum.Content {
		members = append(members, literalType(v, asString))
	}
	return unionOf(members...)
}
