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

	"gopkg.in/yaml.v3"
)

var commentEscaper = strings.NewReplacer("*/", "*\\/")

// jsdoc builds the doc comment of a schema, parameter, operation or response.
// It returns "" when there is nothing to document.
func jsdoc(n *yaml.Node) string {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return ""
	}

	var lines []string
	if v := str(n, "title"); v != "" {
		lines = append(lines, v)
	}
	if v := str(n, "summary"); v != "" {
		lines = append(lines, v)
	}
	if v := str(n, "format"); v != "" {
		lines = append(lines, "Format: "+v)
	}
	if boolean(n, "deprecated") {
		line := "@deprecated"
		if reason := deprecationReason(n); reason != "" {
			line += " " + reason
		}
		lines = append(lines, line)
	}
	if v := str(n, "description"); v != "" {
		lines = append(lines, "@description "+strings.TrimRight(v, "\n"))
	}
	if v := lookup(n, "default"); v != nil {
		lines = append(lines, "@default "+docValue(v))
	}
	if v := lookup(n, "example"); v != nil {
		lines = append(lines, "@example "+docValue(v))
	}
	if v := lookup(n, "const"); v != nil {
		lines = append(lines, "@constant")
	}
	if v := lookup(n, "enum"); v != nil && v.Kind == yaml.SequenceNode {
		lines = append(lines, "@enum {"+enumDocType(n, v)+"}")
	}
	return commentBlock(lines)
}

// commentBlock renders lines as a /** */ block, on a single line when possible.
func commentBlock(lines []string) string {
	var all []string
	for _, l := range lines {
		all = append(all, strings.Split(commentEscaper.Replace(l), "\n")...)
	}
	switch len(all) {
	case 0:
		return ""
	case 1:
		return "/** " + all[0] + " */"
	}

	var b strings.Builder
	b.WriteString("/**\n")
	for _, l := range all {
		b.WriteString(strings.TrimRight(" * "+l, " "))
		b.WriteByte('\n')
	}
	b.WriteString(" */")
	return b.String()
}

func docValue(v *yaml.Node) string {
	if v.Kind == yaml.MappingNode || v.Kind == yaml.SequenceNode {
		return jsonIndentText(toValue(v))
	}
	return jsonText(toValue(v))
}

func enumDocType(n, values *yaml.Node) string {
	typ := ""
	null := boolean(n, "nullable")
	for _, t := range schemaTypes(n) {
		if t == "null" {
			null = true
			continue
		}
		if typ == "" {
			typ = t
		}
	}
	if typ == "" && len(values.Content) > 0 {
		switch deref(values.Content[0]).ShortTag() {
		case "!!int", "!!float":
			typ = "number"
		case "!!bool":
			typ = "boolean"
		case "!!map":
			typ = "object"
		default:
			typ = "string"
		}
	}
	if null {
		return typ + "|null"
	}
	return typ
}
