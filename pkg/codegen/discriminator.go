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
	"gopkg.in/yaml.v3"
)

// discriminatorOf returns the discriminator constraining n: a holder that n
// extends through allOf, or a holder listing n in its oneOf/anyOf.
func (g *generator) discriminatorOf(s schemaCtx, n *yaml.Node) *discriminator {
	for _, item := range items(n, "allOf") {
		ref, ok := refValue(item)
		if !ok || isExtensionRef(ref) {
			continue
		}
		e, err := g.res.resolve(s.doc, ref, kindSchema)
		if err != nil || e.node == nil {
			continue
		}
		if dc, ok := g.res.holders[e.node]; ok {
			return dc
		}
	}
	return g.res.memberOf[n]
}

// discriminantValue returns the literal a member carries for dc. Mapped
// members get their mapping key. Unmapped members keep a discriminant they
// declare with enum or const, otherwise they get their own name.
func (g *generator) discriminantValue(dc *discriminator, s schemaCtx, n *yaml.Node) (string, bool) {
	for pair := dc.mapping.Oldest(); pair != nil; pair = pair.Next() {
		target := pair.Value
		if !isRefLike(target) {
			if target == s.name && s.name != "" {
				return pair.Key, true
			}
			continue
		}
		if isExtensionRef(target) {
			continue
		}
		e, err := g.res.resolve(dc.doc, target, kindSchema)
		if err != nil {
			g.fail(err)
			continue
		}
		if e.node == n {
			return pair.Key, true
		}
	}

	prop := lookup(lookup(n, "properties"), dc.propertyName)
	if has(prop, "enum") || has(prop, "const") {
		return "", false
	}
	if s.name == "" {
		return "", false
	}
	return s.name, true
}

// applyDiscriminant narrows the discriminant property of obj to a literal,
// adding it in front when n does not declare it.
func (g *generator) applyDiscriminant(s schemaCtx, n *yaml.Node, obj *tsObject) {
	dc := g.discriminatorOf(s, n)
	if dc == nil || dc.holder == n {
		return
	}
	value, ok := g.discriminantValue(dc, s, n)
	if !ok {
		return
	}

	key := objectKey(dc.propertyName)
	if m := obj.member(key); m != nil {
		m.typ = stringLiteral(value)
		m.optional = false
		return
	}
	obj.members = append([]*tsMember{{
		key:      key,
		readonly: g.cfg.ImmutableTypes,
		typ:      stringLiteral(value),
	}}, obj.members...)
}
