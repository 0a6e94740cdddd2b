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
	"strconv"

	"gopkg.in/yaml.v3"
)

var unionKeywords = []string{"oneOf", "anyOf"}

// unionType synthesizes oneOf and anyOf lists. Both render the same way; with
// ExclusiveUnions a list of two or more members is wrapped in OneOf. It
// returns nil when every member was dropped.
func (g *generator) unionType(s schemaCtx, n *yaml.Node) tsType {
	var parts []tsType
	for _, key := range unionKeywords {
		var members []tsType
		for i, item := range items(n, key) {
			if isIgnoredRef(item) {
				continue
			}
			members = append(members, g.schemaType(s.child(key, strconv.Itoa(i)), item))
		}
		switch {
		case len(members) == 0:
			continue
		case g.cfg.ExclusiveUnions && len(members) > 1:
			parts = append(parts, g.helpers.oneOfType(members))
		default:
			parts = append(parts, unionOf(members...))
		}
	}
	if len(parts) == 0 {
		return nil
	}

	t := intersectionOf(parts...)
	if slices.Contains(schemaTypes(n), "null") {
		t = nullable(t)
	}
	return t
}

// holderUnion renders a discriminator holder as the plain union of its
// members. The holder's own type keyword is ignored.
func (g *generator) holderUnion(s schemaCtx, n *yaml.Node) tsType {
	var members []tsType
	for _, key := range unionKeywords {
		for i, item := range items(n, key) {
			if isIgnoredRef(item) {
				continue
			}
			members = append(members, g.schemaType(s.child(key, strconv.Itoa(i)), item))
		}
	}
	t := unionOf(members...)
	if slices.Contains(schemaTypes(n), "null") {
		t = nullable(t)
	}
	return t
}

// allOfTypes synthesizes the allOf members in order. A reference to a
// discriminator holder omits the discriminant, which the extending schema
// narrows itself.
func (g *generator) allOfTypes(s schemaCtx, n *yaml.Node) []tsType {
	var out []tsType
	for i, item := range items(n, "allOf") {
		if isIgnoredRef(item) {
			continue
		}
		if ref, ok := refValue(item); ok {
			e, err := g.res.resolve(s.doc, ref, kindSchema)
			if err != nil {
				g.fail(err)
				continue
			}
			if dc, ok := g.res.holders[e.node]; ok && e.node != nil {
				out = append(out, omit(tsRef{path: e.path}, dc.propertyName))
				continue
			}
		}
		out = append(out, g.schemaType(s.child("allOf", strconv.Itoa(i)), item))
	}
	return out
}

// narrowedKeys lists the keys required by n or one of its allOf members that
// another member declares optional. Keys n declares itself are left out.
func (g *generator) narrowedKeys(s schemaCtx, n *yaml.Node) []string {
	var members []*yaml.Node
	for _, item := range items(n, "allOf") {
		if isIgnoredRef(item) {
			continue
		}
		_, m, err := g.res.follow(s.doc, item, kindSchema)
		if err != nil {
			g.fail(err)
			continue
		}
		if m != nil {
			members = append(members, m)
		}
	}

	candidates := stringList(n, "required")
	for _, m := range members {
		candidates = append(candidates, stringList(m, "required")...)
	}

	own := lookup(n, "properties")
	var keys []string
	for _, key := range candidates {
		if has(own, key) || slices.Contains(keys, key) {
			continue
		}
		for _, m := range members {
			if has(lookup(m, "properties"), key) && !stringSet(m, "required")[key] {
				keys = append(keys, key)
				break
			}
		}
	}
	return keys
}
