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
	"github.com/stretchr/testify/require"
)

func TestSplitRef(t *testing.T) {
	sel, ptr := splitRef("#/components/schemas/Pet")
	assert.Equal(t, "", sel)
	assert.Equal(t, "/components/schemas/Pet", ptr)

	sel, ptr = splitRef("pets.yaml#/Pet")
	assert.Equal(t, "pets.yaml", sel)
	assert.Equal(t, "/Pet", ptr)

	sel, ptr = splitRef("pets.yaml")
	assert.Equal(t, "pets.yaml", sel)
	assert.Equal(t, "", ptr)
}

func TestPointerTokens(t *testing.T) {
	tokens, err := pointerTokens("/paths/~1pets~1{id}/get")
	require.NoError(t, err)
	assert.Equal(t, []string{"paths", "/pets/{id}", "get"}, tokens)

	tokens, err = pointerTokens("/components/schemas/a~0b")
	require.NoError(t, err)
	assert.Equal(t, []string{"components", "schemas", "a~b"}, tokens)

	tokens, err = pointerTokens("/paths/%7Bid%7D")
	require.NoError(t, err)
	assert.Equal(t, []string{"paths", "{id}"}, tokens)

	tokens, err = pointerTokens("")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	_, err = pointerTokens("components/schemas")
	assert.ErrorIs(t, err, ErrInvalidPointer)
}

func TestEscapePointerToken(t *testing.T) {
	assert.Equal(t, "~1pets~1{id}", escapePointerToken("/pets/{id}"))
	assert.Equal(t, "a~0b", escapePointerToken("a~b"))
}

func TestWalkPointer(t *testing.T) {
	root := parseNode(t, `
components:
  schemas:
    Pet:
      type: object
  parameters:
    list:
      - name: first
      - name: second
`)

	n, err := walkPointer(root, []string{"components", "schemas", "Pet"})
	require.NoError(t, err)
	assert.Equal(t, "object", str(n, "type"))

	n, err = walkPointer(root, []string{"components", "parameters", "list", "1"})
	require.NoError(t, err)
	assert.Equal(t, "second", str(n, "name"))

	_, err = walkPointer(root, []string{"components", "schemas", "Dog"})
	assert.ErrorIs(t, err, ErrDanglingRef)

	_, err = walkPointer(root, []string{"components", "parameters", "list", "5"})
	assert.ErrorIs(t, err, ErrDanglingRef)
}

func TestExtend(t *testing.T) {
	base := make([]string, 2, 8)
	base[0], base[1] = "components", "schemas"

	a := extend(base, "Pet")
	b := extend(base, "Dog")
	assert.Equal(t, []string{"components", "schemas", "Pet"}, a)
	assert.Equal(t, []string{"components", "schemas", "Dog"}, b)
	assert.Len(t, base, 2)
}
