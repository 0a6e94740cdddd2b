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

const (
	extPrefix = "x-"
	// extDeprecationReason is appended to the @deprecated tag of a node.
	extDeprecationReason = "x-deprecated-reason"
)

// isExtensionKey reports whether key is a vendor extension.
func isExtensionKey(key string) bool {
	return strings.HasPrefix(key, extPrefix)
}

// isExtensionRef reports whether ref points under a vendor-extension root key,
// e.g. `#/x-swagger-bake/components/schemas/Extension`.
func isExtensionRef(ref string) bool {
	_, pointer := splitRef(ref)
	first, _, _ := strings.Cut(strings.TrimPrefix(pointer, "/"), "/")
	return isExtensionKey(first)
}

// isIgnoredRef reports whether n is a reference that must be skipped.
func isIgnoredRef(n *yaml.Node) bool {
	ref, ok := refValue(n)
	return ok && isExtensionRef(ref)
}

// deprecationReason returns the reason carried by the x-deprecated-reason extension.
func deprecationReason(n *yaml.Node) string {
	return strings.TrimSpace(str(n, extDeprecationReason))
}
