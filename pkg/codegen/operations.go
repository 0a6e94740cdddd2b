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
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// OperationDefinition is an operation with an operationId, rendered once in
// the operations section and referenced from its path item.
type OperationDefinition struct {
	ID      string
	Method  string
	Path    string
	Comment string
	Type    tsType
}

// pathsType renders a paths or webhooks object of d.
func (g *generator) pathsType(d *document, section string) *tsObject {
	obj := &tsObject{}
	list := entries(lookup(d.node, section))
	if g.cfg.Alphabetize {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	}
	for _, e := range list {
		if isExtensionKey(e.Key) {
			continue
		}
		tokens := []string{section, e.Key}
		typ, params := g.pathItemType(d, e.Value, tokens, e.Key)

		key := objectKey(e.Key)
		if section == "paths" && g.cfg.PathParamsAsTypes {
			if tpl, ok := pathTemplate(e.Key, pathParamTypes(params)); ok && len(orderedParamsFromUri(e.Key)) > 0 {
				key = "[path: " + tpl + "]"
			}
		}
		obj.add(&tsMember{
			key:      key,
			readonly: g.cfg.ImmutableTypes,
			comment:  pathItemComment(e.Value),
			typ:      typ,
		})
	}
	return obj
}

// pathItemComment documents a referenced path item with its sibling
// summary and description.
func pathItemComment(n *yaml.Node) string {
	if _, ok := refValue(n); !ok {
		return ""
	}
	return jsdoc(n)
}

// pathItemType renders a path item. It also returns every parameter the item
// and its operations declare, for path templating.
func (g *generator) pathItemType(d *document, n *yaml.Node, tokens []string, path string) (tsType, []ParameterDefinition) {
	n = deref(n)
	if ref, ok := refValue(n); ok {
		return g.refType(d, ref, kindPathItem), nil
	}

	obj := &tsObject{}
	pathParams := g.resolveParams(d, items(n, "parameters"), extend(tokens, "parameters"))
	declared := append([]ParameterDefinition{}, pathParams...)

	for _, method := range httpMethods {
		op := lookup(n, method)
		if !isMapping(op) {
			continue
		}
		if g.cfg.ExcludeDeprecated && boolean(op, "deprecated") {
			continue
		}

		opTokens := extend(tokens, method)
		opParams := g.resolveParams(d, items(op, "parameters"), extend(opTokens, "parameters"))
		declared = append(declared, opParams...)

		comment := jsdoc(op)
		typ := g.operationType(d, op, opTokens, mergeParams(pathParams, opParams))
		if id := str(op, "operationId"); id != "" && d.isRoot() {
			id = g.operationKey(id, method, path)
			g.ops.Set(id, &OperationDefinition{
				ID:      id,
				Method:  method,
				Path:    path,
				Comment: comment,
				Type:    typ,
			})
			typ = tsRef{path: refPath{"operations", id}}
		}
		obj.add(&tsMember{key: method, readonly: g.cfg.ImmutableTypes, comment: comment, typ: typ})
	}

	if len(pathParams) > 0 {
		obj.add(&tsMember{key: "parameters", readonly: g.cfg.ImmutableTypes, typ: g.parametersType(pathParams)})
	}
	return obj, declared
}

// operationKey returns id, or id with a numeric suffix when an earlier
// operation already uses it.
func (g *generator) operationKey(id, method, path string) string {
	if _, taken := g.ops.Get(id); !taken {
		return id
	}
	key := id
	for n := 2; ; n++ {
		key = fmt.Sprintf("%s%d", id, n)
		if _, taken := g.ops.Get(key); !taken {
			break
		}
	}
	g.logger.Warn("duplicate operationId", "operationId", id, "renamed", key, "method", method, "path", path)
	return key
}

// operationType renders the parameters, request body and responses of op.
func (g *generator) operationType(d *document, op *yaml.Node, tokens []string, params []ParameterDefinition) tsType {
	obj := &tsObject{}
	if len(params) > 0 {
		obj.add(&tsMember{key: "parameters", readonly: g.cfg.ImmutableTypes, typ: g.parametersType(params)})
	}

	if body := lookup(op, "requestBody"); body != nil {
		m := &tsMember{key: "requestBody", readonly: g.cfg.ImmutableTypes, optional: true}
		if ref, ok := refValue(body); ok {
			m.typ = g.refType(d, ref, kindRequestBody)
			if _, resolved, err := g.res.follow(d, body, kindRequestBody); err == nil && boolean(resolved, "required") {
				m.optional = false
			}
		} else {
			m.typ = g.requestBodyType(d, body, extend(tokens, "requestBody"))
			m.optional = !boolean(body, "required")
			if desc := str(body, "description"); desc != "" {
				m.comment = commentBlock([]string{"@description " + desc})
			}
		}
		obj.add(m)
	}

	if responses := lookup(op, "responses"); responses != nil {
		obj.add(&tsMember{
			key:      "responses",
			readonly: g.cfg.ImmutableTypes,
			typ:      g.responsesType(d, responses, extend(tokens, "responses")),
		})
	}
	return obj
}

func (g *generator) requestBodyType(d *document, n *yaml.Node, tokens []string) tsType {
	if ref, ok := refValue(n); ok {
		return g.refType(d, ref, kindRequestBody)
	}
	obj := &tsObject{}
	obj.add(&tsMember{
		key:      "content",
		readonly: g.cfg.ImmutableTypes,
		typ:      g.contentType(schemaCtx{doc: d, tokens: tokens}, lookup(n, "content")),
	})
	return obj
}

func (g *generator) responsesType(d *document, n *yaml.Node, tokens []string) *tsObject {
	obj := &tsObject{}
	for _, e := range entries(n) {
		if isExtensionKey(e.Key) {
			continue
		}
		m := &tsMember{
			key:      objectKey(e.Key),
			readonly: g.cfg.ImmutableTypes,
			typ:      g.responseType(d, e.Value, extend(tokens, e.Key)),
		}
		if _, ok := refValue(e.Value); !ok {
			m.comment = jsdoc(e.Value)
		}
		obj.add(m)
	}
	return obj
}

// responseType renders a response object: its headers when present, then its
// content or never.
func (g *generator) responseType(d *document, n *yaml.Node, tokens []string) tsType {
	if ref, ok := refValue(n); ok {
		return g.refType(d, ref, kindResponse)
	}
	s := schemaCtx{doc: d, tokens: tokens}

	obj := &tsObject{}
	if headers := entries(lookup(n, "headers")); len(headers) > 0 {
		h := &tsObject{}
		for _, e := range headers {
			hm := &tsMember{
				key:      objectKey(e.Key),
				readonly: g.cfg.ImmutableTypes,
				typ:      g.headerType(s.child("headers", e.Key), e.Value),
			}
			if _, ok := refValue(e.Value); !ok {
				hm.optional = !boolean(e.Value, "required")
				hm.comment = jsdoc(e.Value)
			}
			h.add(hm)
		}
		h.add(&tsMember{key: "[name: string]", readonly: g.cfg.ImmutableTypes, typ: tsUnknown})
		obj.add(&tsMember{key: "headers", readonly: g.cfg.ImmutableTypes, typ: h})
	}
	obj.add(&tsMember{
		key:      "content",
		readonly: g.cfg.ImmutableTypes,
		typ:      g.contentType(s, lookup(n, "content")),
	})
	return obj
}

func (g *generator) headerType(s schemaCtx, n *yaml.Node) tsType {
	if ref, ok := refValue(n); ok {
		return g.refType(s.doc, ref, kindHeader)
	}
	return g.parameterSchemaType(s, n)
}

// contentType maps media types to their schema types. Missing or empty
// content renders as never.
func (g *generator) contentType(s schemaCtx, n *yaml.Node) tsType {
	list := entries(n)
	if len(list) == 0 {
		return tsNever
	}
	obj := &tsObject{}
	for _, e := range list {
		typ := tsType(tsUnknown)
		if schema := lookup(e.Value, "schema"); schema != nil {
			typ = g.schemaType(s.child("content", e.Key, "schema"), schema)
		}
		obj.add(&tsMember{key: objectKey(e.Key), readonly: g.cfg.ImmutableTypes, typ: typ})
	}
	return obj
}
