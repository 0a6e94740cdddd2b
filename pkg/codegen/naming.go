// Copyright 2019 DeepMap, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codegen

import (
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

var (
	pathParamRE  = regexp.MustCompile(`{[.;?]?([^{}*]+)\*?}`)
	identifierRE = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	numeralRE    = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
)

// objectKey renders name as an object member key, quoting it unless it is a
// plain identifier or a non-negative integer.
func objectKey(name string) string {
	if identifierRE.MatchString(name) || numeralRE.MatchString(name) {
		return name
	}
	return quote(name)
}

// refPath is the name-based address of a node in the generated output, such as
// components["schemas"]["Pet"].
type refPath []string

func (p refPath) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(p[0])
	for _, seg := range p[1:] {
		b.WriteByte('[')
		b.WriteString(quote(seg))
		b.WriteByte(']')
	}
	return b.String()
}

func (p refPath) last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

func (p refPath) child(seg ...string) refPath {
	out := make(refPath, 0, len(p)+len(seg))
	out = append(out, p...)
	return append(out, seg...)
}

// canonicalPath maps pointer tokens of d onto the output path. The
// `properties` keyword is not part of the generated shape, so it is dropped
// below the named entry. A property that is itself named `properties` stays.
func canonicalPath(d *document, tokens []string) refPath {
	var out refPath
	if !d.isRoot() {
		out = refPath{"external", d.key}
	}

	// keywordsFrom is the index of the first token inside the named entry.
	keywordsFrom := 2
	switch {
	case d.whole != nil, !d.full && len(tokens) > 0 && tokens[0] == "properties":
		// the document is a schema itself
		keywordsFrom = 0
	case !d.full:
		keywordsFrom = 1
	case len(tokens) > 0 && tokens[0] == "components":
		keywordsFrom = 3
	}

	name := false
	for i, tok := range tokens {
		switch {
		case i < keywordsFrom:
		case name:
			name = false
		case tok == "properties":
			name = true
			continue
		case nameKeywords[tok]:
			name = true
		}
		out = append(out, tok)
	}
	return out
}

// nameKeywords are schema keywords followed by a user-chosen name.
var nameKeywords = map[string]bool{
	"patternProperties": true,
	"dependentSchemas":  true,
	"$defs":             true,
	"definitions":       true,
}

// hookPath is the JSON pointer handed to transform hooks.
func hookPath(d *document, tokens []string) string {
	var b strings.Builder
	if !d.isRoot() {
		b.WriteString(d.key)
	}
	b.WriteByte('#')
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(escapePointerToken(tok))
	}
	return b.String()
}

// orderedParamsFromUri returns the argument names, in order, in a given URI string, so for
// /path/{param1}/{.param2*}/{?param3}, it would return param1, param2, param3
func orderedParamsFromUri(uri string) []string {
	matches := pathParamRE.FindAllStringSubmatch(uri, -1)
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = m[1]
	}
	return result
}

// pathTemplate turns /user/{id} into the template literal type `/user/${string}`.
// It reports false when a placeholder has no declared type.
func pathTemplate(uri string, paramTypes map[string]string) (string, bool) {
	for _, name := range orderedParamsFromUri(uri) {
		if _, ok := paramTypes[name]; !ok {
			return "", false
		}
	}
	tpl := pathParamRE.ReplaceAllStringFunc(uri, func(m string) string {
		name := pathParamRE.FindStringSubmatch(m)[1]
		return "${" + paramTypes[name] + "}"
	})
	tpl = strings.ReplaceAll(tpl, "`", "\\`")
	return "`" + tpl + "`", true
}

// rootTypeName builds the alias name of a component, e.g. SchemaUserProfile.
func rootTypeName(prefix, name string) string {
	return prefix + strcase.ToCamel(name)
}
