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
	"strings"
)

const indentUnit = "  "

// tsType is a TypeScript type expression. Expressions are built during
// synthesis and only serialized when the module text is assembled.
type tsType interface {
	render(depth int) string
}

type tsKeyword string

const (
	tsString  tsKeyword = "string"
	tsNumber  tsKeyword = "number"
	tsBoolean tsKeyword = "boolean"
	tsNull    tsKeyword = "null"
	tsUnknown tsKeyword = "unknown"
	tsNever   tsKeyword = "never"
)

func (k tsKeyword) render(int) string { return string(k) }

// tsLiteral is an already serialized literal such as "cat" or 42.
type tsLiteral string

func (l tsLiteral) render(int) string { return string(l) }

func stringLiteral(s string) tsLiteral {
	return tsLiteral(quote(s))
}

// tsRaw is text returned by a transform hook.
type tsRaw string

func (r tsRaw) render(int) string { return string(r) }

type tsRef struct {
	path refPath
}

func (r tsRef) render(int) string { return r.path.String() }

type tsArray struct {
	elem     tsType
	readonly bool
}

func (a tsArray) render(depth int) string {
	elem := a.elem.render(depth)
	switch a.elem.(type) {
	case tsUnion, tsIntersection:
		elem = "(" + elem + ")"
	}
	if a.readonly {
		return "readonly " + elem + "[]"
	}
	return elem + "[]"
}

type tsTuple struct {
	elems    []tsType
	readonly bool
}

func (t tsTuple) render(depth int) string {
	parts := make([]string, len(t.elems))
	for i, e := range t.elems {
		parts[i] = e.render(depth)
	}
	out := "[" + strings.Join(parts, ", ") + "]"
	if t.readonly {
		return "readonly " + out
	}
	return out
}

type tsUnion struct {
	members []tsType
}

func (u tsUnion) render(depth int) string {
	parts := make([]string, len(u.members))
	for i, m := range u.members {
		parts[i] = m.render(depth)
	}
	return strings.Join(parts, " | ")
}

type tsIntersection struct {
	members []tsType
}

func (x tsIntersection) render(depth int) string {
	parts := make([]string, len(x.members))
	for i, m := range x.members {
		s := m.render(depth)
		if _, ok := m.(tsUnion); ok {
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	return strings.Join(parts, " & ")
}

type tsGeneric struct {
	name string
	args []tsType
}

func (g tsGeneric) render(depth int) string {
	parts := make([]string, len(g.args))
	for i, a := range g.args {
		parts[i] = a.render(depth)
	}
	return g.name + "<" + strings.Join(parts, ", ") + ">"
}

// tsMember is one line of an object literal. key is already escaped.
type tsMember struct {
	key      string
	optional bool
	readonly bool
	comment  string
	typ      tsType
}

type tsObject struct {
	members []*tsMember
	// padTop starts the body with an empty line.
	padTop bool
}

func (o *tsObject) add(m *tsMember) {
	o.members = append(o.members, m)
}

// member returns the member with the given key.
func (o *tsObject) member(key string) *tsMember {
	for _, m := range o.members {
		if m.key == key {
			return m
		}
	}
	return nil
}

func (o *tsObject) render(depth int) string {
	if len(o.members) == 0 {
		return recordNever.render(depth)
	}

	inner := strings.Repeat(indentUnit, depth+1)
	var b strings.Builder
	b.WriteString("{\n")
	if o.padTop {
		b.WriteString("\n")
	}
	for _, m := range o.members {
		if m.comment != "" {
			for _, line := range strings.Split(m.comment, "\n") {
				b.WriteString(inner)
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
		b.WriteString(inner)
		if m.readonly {
			b.WriteString("readonly ")
		}
		b.WriteString(m.key)
		if m.optional {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		b.WriteString(m.typ.render(depth + 1))
		b.WriteString(";\n")
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteByte('}')
	return b.String()
}

var recordNever = tsGeneric{name: "Record", args: []tsType{tsString, tsNever}}

var recordUnknown = tsGeneric{name: "Record", args: []tsType{tsString, tsUnknown}}

// unionOf flattens, dedupes and simplifies a union.
func unionOf(members ...tsType) tsType {
	var flat []tsType
	seen := map[string]bool{}
	for _, m := range members {
		var list []tsType
		if u, ok := m.(tsUnion); ok {
			list = u.members
		} else {
			list = []tsType{m}
		}
		for _, item := range list {
			if item == nil || isKeyword(item, tsNever) {
				continue
			}
			if isKeyword(item, tsUnknown) {
				return tsUnknown
			}
			key := item.render(0)
			if seen[key] {
				continue
			}
			seen[key] = true
			flat = append(flat, item)
		}
	}
	switch len(flat) {
	case 0:
		return tsNever
	case 1:
		return flat[0]
	}
	return tsUnion{members: flat}
}

// intersectionOf flattens an intersection and drops unknown members.
func intersectionOf(members ...tsType) tsType {
	var flat []tsType
	for _, m := range members {
		if x, ok := m.(tsIntersection); ok {
			flat = append(flat, x.members...)
			continue
		}
		if m == nil || isKeyword(m, tsUnknown) {
			continue
		}
		flat = append(flat, m)
	}
	switch len(flat) {
	case 0:
		return tsUnknown
	case 1:
		return flat[0]
	}
	return tsIntersection{members: flat}
}

func isKeyword(t tsType, k tsKeyword) bool {
	kw, ok := t.(tsKeyword)
	return ok && kw == k
}

func nullable(t tsType) tsType {
	return unionOf(t, tsNull)
}

// keyUnion renders keys as a union of string literals.
func keyUnion(keys []string) tsType {
	lits := make([]tsType, len(keys))
	for i, k := range keys {
		lits[i] = stringLiteral(k)
	}
	return unionOf(lits...)
}

func omit(t tsType, keys ...string) tsType {
	return tsGeneric{name: "Omit", args: []tsType{t, keyUnion(keys)}}
}
