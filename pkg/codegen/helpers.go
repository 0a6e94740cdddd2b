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

const boilerplate = `/**
 * This file was auto-generated by openapi-typescript.
 * Do not make direct changes to the file.
 */

`

const oneOfHelpers = `
/** OneOf type helpers */
type Without<T, U> = { [P in Exclude<keyof T, keyof U>]?: never };
type XOR<T, U> = (T | U) extends object ? (Without<T, U> & U) | (Without<U, T> & T) : T | U;
type OneOf<T extends any[]> = T extends [infer Only] ? Only : T extends [infer A, infer B, ...infer Rest] ? OneOf<[XOR<A, B>, ...Rest]> : never;
`

const withRequiredHelpers = `
/** WithRequired type helpers */
type WithRequired<T, K extends keyof T> = T & { [P in K]-?: T[P] };
`

// helperSet records the shared type helpers one compilation needs.
type helperSet struct {
	oneOf        bool
	withRequired bool
}

// text returns the declarations of the recorded helpers in fixed order.
func (h *helperSet) text() string {
	var b strings.Builder
	if h.oneOf {
		b.WriteString(oneOfHelpers)
	}
	if h.withRequired {
		b.WriteString(withRequiredHelpers)
	}
	return b.String()
}

// oneOfType wraps members into OneOf<[...]> and records the helper.
func (h *helperSet) oneOfType(members []tsType) tsType {
	h.oneOf = true
	return tsGeneric{name: "OneOf", args: []tsType{tsTuple{elems: members}}}
}

// withRequiredType wraps t into WithRequired<t, keys> and records the helper.
func (h *helperSet) withRequiredType(t tsType, keys []string) tsType {
	h.withRequired = true
	return tsGeneric{name: "WithRequired", args: []tsType{t, keyUnion(keys)}}
}
