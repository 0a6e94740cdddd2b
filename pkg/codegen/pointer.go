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
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// splitRef splits a $ref into its document selector and JSON pointer.
func splitRef(ref string) (selector, pointer string) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// pointerTokens decodes a JSON pointer into its unescaped reference tokens.
func pointerTokens(pointer string) ([]string, error) {
	if pointer == "" || pointer == "/" {
		return nil, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPointer, pointer)
	}
	parts := strings.Split(pointer[1:], "/")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.Contains(part, "%") {
			if unescaped, err := url.PathUnescape(part); err == nil {
				part = unescaped
			}
		}
		tokens = append(tokens, pointerUnescaper.Replace(part))
	}
	return tokens, nil
}

func escapePointerToken(token string) string {
	return pointerEscaper.Replace(token)
}

// walkPointer navigates root along tokens, following aliases and merge keys.
func walkPointer(root *yaml.Node, tokens []string) (*yaml.Node, error) {
	cur := deref(root)
	for i, tok := range tokens {
		if cur == nil {
			return nil, fmt.Errorf("%w: /%s", ErrDanglingRef, strings.Join(tokens[:i], "/"))
		}
		var next *yaml.Node
		switch cur.Kind {
		case yaml.MappingNode:
			next = lookup(cur, tok)
		case yaml.SequenceNode:
			idx, err := strconv.Atoi(tok)
			if err == nil && idx >= 0 && idx < len(cur.Content) {
				next = deref(cur.Content[idx])
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: segment %q of /%s", ErrDanglingRef, tok, strings.Join(tokens, "/"))
		}
		cur = next
	}
	return cur, nil
}

// extend returns a copy of tokens with more appended.
func extend(tokens []string, more ...string) []string {
	out := make([]string, 0, len(tokens)+len(more))
	out = append(out, tokens...)
	return append(out, more...)
}
