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
	"bytes"
	"fmt"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/utils"
	"gopkg.in/yaml.v3"
)

// loadDocumentFromContents sniffs contents with libopenapi and returns the
// root node of an OpenAPI 3.x document.
func loadDocumentFromContents(contents []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(contents)) == 0 {
		return nil, ErrEmptyDocument
	}

	doc, err := libopenapi.NewDocument(contents)
	if err != nil {
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	info := doc.GetSpecInfo()
	if info == nil || info.RootNode == nil {
		return nil, ErrEmptyDocument
	}
	if info.SpecType != utils.OpenApi3 {
		return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedVersion, info.SpecType, info.Version)
	}
	return info.RootNode, nil
}
