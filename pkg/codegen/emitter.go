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
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// rootTypePrefixes names the alias prefix of each components section.
var rootTypePrefixes = map[string]string{
	"schemas":       "Schema",
	"responses":     "Response",
	"parameters":    "Parameter",
	"requestBodies": "RequestBody",
	"headers":       "Header",
	"pathItems":     "PathItem",
}

// emit synthesizes every section and assembles the module text.
func (g *generator) emit() string {
	root := g.res.root

	sections := []string{
		g.section("paths", g.pathsType(root, "paths")),
		g.section("webhooks", g.pathsType(root, "webhooks")),
	}
	if has(root.node, "components") {
		sections = append(sections, g.section("components", g.componentsType(root)))
	} else {
		sections = append(sections, g.section("components", &tsObject{}))
	}
	sections = append(sections,
		g.section("external", g.externalType()),
		g.section("operations", g.operationsType()),
	)

	var b strings.Builder
	b.WriteString(boilerplate)
	b.WriteString(g.helpers.text())
	if g.cfg.Inject != "" {
		b.WriteString("\n")
		b.WriteString(g.cfg.Inject)
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(sections, "\n\n"))
	b.WriteString("\n")

	if g.cfg.RootTypes {
		if aliases := g.rootTypes(); len(aliases) > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Join(aliases, "\n"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// section declares one top-level export. Empty sections are declared as
// Record<string, never> whatever the export style.
func (g *generator) section(name string, obj *tsObject) string {
	if len(obj.members) == 0 {
		return "export type " + name + " = " + recordNever.render(0) + ";"
	}
	if g.cfg.ExportType {
		return "export type " + name + " = " + obj.render(0) + ";"
	}
	return "export interface " + name + " " + obj.render(0)
}

// componentsType renders the fixed-shape components object of d.
func (g *generator) componentsType(d *document) *tsObject {
	components := lookup(d.node, "components")
	obj := &tsObject{}
	for _, section := range componentSections {
		inner := &tsObject{}
		list := entries(lookup(components, section.name))
		if g.cfg.Alphabetize {
			sort.SliceStable(list, func(i, j int) bool { return list[i].Key < list[j].Key })
		}
		for _, e := range list {
			if isExtensionKey(e.Key) {
				continue
			}
			tokens := []string{"components", section.name, e.Key}
			inner.add(g.componentMember(d, section.kind, tokens, e.Key, e.Value))
		}

		var typ tsType = tsNever
		if len(inner.members) > 0 {
			typ = inner
		}
		obj.add(&tsMember{key: section.name, readonly: g.cfg.ImmutableTypes, typ: typ})
	}
	return obj
}

func (g *generator) componentMember(d *document, kind nodeKind, tokens []string, name string, n *yaml.Node) *tsMember {
	m := &tsMember{
		key:      objectKey(name),
		readonly: g.cfg.ImmutableTypes,
		typ:      g.componentType(d, kind, tokens, name, n),
	}
	if kind != kindPathItem && kind != kindOperation {
		m.comment = jsdoc(n)
	} else {
		m.comment = pathItemComment(n)
	}
	return m
}

// componentType renders a named entry according to how it is used.
func (g *generator) componentType(d *document, kind nodeKind, tokens []string, name string, n *yaml.Node) tsType {
	s := schemaCtx{doc: d, tokens: tokens, name: name}
	switch kind {
	case kindSchema:
		return g.namedSchema(s, n)
	case kindResponse:
		return g.responseType(d, n, tokens)
	case kindRequestBody:
		return g.requestBodyType(d, n, tokens)
	case kindParameter:
		if ref, ok := refValue(n); ok {
			return g.refType(d, ref, kindParameter)
		}
		return g.parameterSchemaType(s, n)
	case kindHeader:
		return g.headerType(s, n)
	case kindPathItem:
		t, _ := g.pathItemType(d, n, tokens, name)
		return t
	case kindOperation:
		if ref, ok := refValue(n); ok {
			return g.refType(d, ref, kindOperation)
		}
		params := g.resolveParams(d, items(n, "parameters"), extend(tokens, "parameters"))
		return g.operationType(d, n, tokens, params)
	}
	return tsUnknown
}

// externalType renders one member per remote document, sorted by key.
func (g *generator) externalType() *tsObject {
	docs := g.res.externals()
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].key < docs[j].key })

	obj := &tsObject{}
	for _, d := range docs {
		obj.add(&tsMember{key: objectKey(d.key), readonly: g.cfg.ImmutableTypes, typ: g.documentType(d)})
	}
	return obj
}

func (g *generator) documentType(d *document) tsType {
	switch {
	case d.whole != nil:
		return g.componentType(d, *d.whole, nil, "", d.node)
	case d.full:
		obj := &tsObject{}
		obj.add(&tsMember{key: "paths", readonly: g.cfg.ImmutableTypes, typ: g.pathsType(d, "paths")})
		obj.add(&tsMember{key: "webhooks", readonly: g.cfg.ImmutableTypes, typ: g.pathsType(d, "webhooks")})
		components := tsType(recordNever)
		if has(d.node, "components") {
			components = g.componentsType(d)
		}
		obj.add(&tsMember{key: "components", readonly: g.cfg.ImmutableTypes, typ: components})
		return obj
	}

	obj := &tsObject{}
	for _, e := range entries(d.node) {
		if isExtensionKey(e.Key) {
			continue
		}
		obj.add(g.componentMember(d, d.kindOf(e.Key, e.Value), []string{e.Key}, e.Key, e.Value))
	}
	return obj
}

// operationsType renders the operations registered while rendering paths.
func (g *generator) operationsType() *tsObject {
	defs := make([]*OperationDefinition, 0, g.ops.Len())
	for pair := g.ops.Oldest(); pair != nil; pair = pair.Next() {
		defs = append(defs, pair.Value)
	}
	if g.cfg.Alphabetize {
		sort.SliceStable(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	}

	obj := &tsObject{padTop: true}
	for _, def := range defs {
		g.logger.Debug("operation", "id", def.ID, "method", def.Method, "path", def.Path)
		obj.add(&tsMember{
			key:      objectKey(def.ID),
			readonly: g.cfg.ImmutableTypes,
			comment:  def.Comment,
			typ:      def.Type,
		})
	}
	return obj
}

// rootTypes declares a top-level alias per root component.
func (g *generator) rootTypes() []string {
	components := lookup(g.res.root.node, "components")
	var out []string
	for _, section := range componentSections {
		for _, e := range entries(lookup(components, section.name)) {
			if isExtensionKey(e.Key) {
				continue
			}
			name := g.types.generateUniqueName(rootTypeName(rootTypePrefixes[section.name], e.Key))
			path := refPath{"components", section.name, e.Key}
			out = append(out, "export type "+name+" = "+path.String()+";")
		}
	}
	return out
}
