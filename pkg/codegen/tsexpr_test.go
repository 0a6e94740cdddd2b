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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionOf(t *testing.T) {
	pet := tsRef{path: refPath{"components", "schemas", "Pet"}}

	assert.Equal(t, "string | number", unionOf(tsString, tsNumber).render(0))
	assert.Equal(t, "string", unionOf(tsString, tsString).render(0))
	assert.Equal(t, "string", unionOf(tsString, tsNever).render(0))
	assert.Equal(t, "unknown", unionOf(tsString, tsUnknown).render(0))
	assert.Equal(t, "never", unionOf().render(0))
	assert.Equal(t, `components["schemas"]["Pet"] | string | null`,
		unionOf(unionOf(pet, tsString), nullable(tsString)).render(0))
}

func TestIntersectionOf(t *testing.T) {
	a := tsRef{path: refPath{"components", "schemas", "A"}}
	b := tsRef{path: refPath{"components", "schemas", "B"}}

	assert.Equal(t, `components["schemas"]["A"] & components["schemas"]["B"]`, intersectionOf(a, tsUnknown, b).render(0))
	assert.Equal(t, `components["schemas"]["A"]`, intersectionOf(a).render(0))
	assert.Equal(t, "unknown", intersectionOf().render(0))
	assert.Equal(t, `components["schemas"]["A"] & (string | number)`, intersectionOf(a, unionOf(tsString, tsNumber)).render(0))
}

func TestArrayAndTupleRender(t *testing.T) {
	assert.Equal(t, "string[]", tsArray{elem: tsString}.render(0))
	assert.Equal(t, "(string | number)[]", tsArray{elem: unionOf(tsString, tsNumber)}.render(0))
	assert.Equal(t, "readonly string[]", tsArray{elem: tsString, readonly: true}.render(0))
	assert.Equal(t, "string[][]", tsArray{elem: tsArray{elem: tsString}}.render(0))
	assert.Equal(t, "[string, number]", tsTuple{elems: []tsType{tsString, tsNumber}}.render(0))
	assert.Equal(t, "readonly [string]", tsTuple{elems: []tsType{tsString}, readonly: true}.render(0))
}

func TestObjectRender(t *testing.T) {
	inner := &tsObject{}
	inner.add(&tsMember{key: "id", typ: tsNumber})

	obj := &tsObject{}
	obj.add(&tsMember{key: "name", optional: true, comment: "/** @description Name */", typ: tsString})
	obj.add(&tsMember{key: `"x-tag"`, readonly: true, typ: inner})
	obj.add(&tsMember{key: "[key: string]", typ: tsUnknown})

	want := `{
  /** @description Name */
  name?: string;
  readonly "x-tag": {
    id: number;
  };
  [key: string]: unknown;
}`
	assert.Equal(t, want, obj.render(0))
	assert.Same(t, obj.members[1], obj.member(`"x-tag"`))
	assert.Nil(t, obj.member("missing"))
}

func TestObjectRenderPadTopAndEmpty(t *testing.T) {
	assert.Equal(t, "Record<string, never>", (&tsObject{}).render(0))

	obj := &tsObject{padTop: true}
	obj.add(&tsMember{key: "op", typ: tsNever})
	assert.Equal(t, "{\n\n  op: never;\n}", obj.render(0))
}

func TestMultilineCommentIndent(t *testing.T) {
	obj := &tsObject{}
	obj.add(&tsMember{key: "a", comment: "/**\n * Title\n * @description Text\n */", typ: tsString})

	want := "{\n    /**\n     * Title\n     * @description Text\n     */\n    a: string;\n  }"
	assert.Equal(t, want, obj.render(1))
}

func TestOmit(t *testing.T) {
	base := tsRef{path: refPath{"components", "schemas", "Pet"}}
	assert.Equal(t, `Omit<components["schemas"]["Pet"], "petType">`, omit(base, "petType").render(0))
	assert.Equal(t, `"a" | "b"`, keyUnion([]string{"a", "b"}).render(0))
}
