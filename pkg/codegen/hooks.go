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

// TransformMeta describes the node a hook runs for.
type TransformMeta struct {
	// Path is the JSON pointer of the node, e.g. #/components/schemas/Date.
	// Nodes of remote documents are prefixed with their external key.
	Path string
}

// TransformFunc replaces the default synthesis of a schema. Returning false
// keeps the default.
type TransformFunc func(schema SchemaView, meta TransformMeta) (string, bool)

// PostTransformFunc replaces the serialized type of a schema. Returning false
// keeps the text as is.
type PostTransformFunc func(typ string, meta TransformMeta) (string, bool)

// SchemaView is a read-only view of a schema node.
type SchemaView struct {
	node *yaml.Node
}

// Type returns the first declared type, or "".
func (v SchemaView) Type() string {
	if t := schemaTypes(v.node); len(t) > 0 {
		return t[0]
	}
	return ""
}

// Types returns every declared type.
func (v SchemaView) Types() []string {
	return schemaTypes(v.node)
}

func (v SchemaView) Format() string {
	return str(v.node, "format")
}

func (v SchemaView) Has(key string) bool {
	return has(v.node, key)
}

// String returns the scalar value of key.
func (v SchemaView) String(key string) string {
	return str(v.node, key)
}

// Get returns the view of a child node. The view is empty when key is absent.
func (v SchemaView) Get(key string) SchemaView {
	return SchemaView{node: lookup(v.node, key)}
}

// IsZero reports whether the view points at nothing.
func (v SchemaView) IsZero() bool {
	return v.node == nil
}

// Decode copies the node into out.
func (v SchemaView) Decode(out any) error {
	if v.node == nil {
		return nil
	}
	return v.node.Decode(out)
}
