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

import "fmt"

// typeDefinition is a synthesized named type.
type typeDefinition struct {
	path refPath
	typ  tsType
	// pending is set while the type is being synthesized.
	pending bool
}

// typeTracker memoizes named types by canonical path and hands out unique
// alias names for root types.
type typeTracker struct {
	// byPath maps the rendered canonical path to its definition,
	// e.g. `components["schemas"]["Pet"]`.
	byPath map[string]*typeDefinition

	// names holds the alias names already handed out.
	names map[string]bool

	// counters tracks how many times a base name has been used for unique name generation
	counters map[string]int
}

func newTypeTracker() *typeTracker {
	return &typeTracker{
		byPath:   make(map[string]*typeDefinition),
		names:    make(map[string]bool),
		counters: make(map[string]int),
	}
}

// lookup returns the definition registered for path.
func (r *typeTracker) lookup(path refPath) (*typeDefinition, bool) {
	td, ok := r.byPath[path.String()]
	return td, ok
}

// reserve registers a pending definition for path. Recursive visits of the
// same path see the placeholder and refer to it by name.
func (r *typeTracker) reserve(path refPath) *typeDefinition {
	td := &typeDefinition{path: path, pending: true}
	r.byPath[path.String()] = td
	return td
}

func (r *typeTracker) complete(td *typeDefinition, typ tsType) {
	td.typ = typ
	td.pending = false
}

// generateUniqueName returns baseName, or baseName followed by a counter when
// the name is taken.
func (r *typeTracker) generateUniqueName(baseName string) string {
	if !r.names[baseName] {
		r.names[baseName] = true
		return baseName
	}

	counter := r.counters[baseName]
	if counter == 0 {
		counter = 2
	}
	for {
		name := fmt.Sprintf("%s%d", baseName, counter)
		if !r.names[name] {
			r.counters[baseName] = counter + 1
			r.names[name] = true
			return name
		}
		counter++
	}
}
