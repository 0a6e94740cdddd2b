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
	"context"
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// nodeKind is the OpenAPI object type a node is used as.
type nodeKind int

const (
	kindSchema nodeKind = iota
	kindParameter
	kindRequestBody
	kindResponse
	kindHeader
	kindPathItem
	kindOperation
)

var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// componentSections lists the components sub-keys in output order.
var componentSections = []struct {
	name string
	kind nodeKind
}{
	{"schemas", kindSchema},
	{"responses", kindResponse},
	{"parameters", kindParameter},
	{"requestBodies", kindRequestBody},
	{"headers", kindHeader},
	{"pathItems", kindPathItem},
}

// document is a root or remote document taking part in one compilation.
type document struct {
	location string
	// key names the document under `external`; empty for the root.
	key  string
	node *yaml.Node
	// full is set for documents shaped like an OpenAPI root.
	full bool
	// whole is set when the document itself was referenced without a pointer.
	whole *nodeKind
	hints map[string]nodeKind
}

func (d *document) isRoot() bool {
	return d.key == ""
}

// kindOf returns how a top-level key of a partial document is used.
func (d *document) kindOf(key string, value *yaml.Node) nodeKind {
	if k, ok := d.hints[key]; ok {
		return k
	}
	return guessKind(value)
}

func guessKind(n *yaml.Node) nodeKind {
	switch {
	case has(n, "in") && has(n, "name"):
		return kindParameter
	case slices.ContainsFunc(httpMethods, func(m string) bool { return isMapping(lookup(n, m)) }):
		return kindPathItem
	case has(n, "content") && has(n, "description") && !has(n, "type"):
		return kindResponse
	case has(n, "content") && !has(n, "type"):
		return kindRequestBody
	}
	return kindSchema
}

func isFullDocument(n *yaml.Node) bool {
	return has(n, "openapi") || has(n, "paths") || has(n, "components") || has(n, "webhooks")
}

// indexEntry is one resolved reference.
type indexEntry struct {
	doc     *document
	pointer string
	// node is nil when a local reference dangles and StrictRefs is off.
	node *yaml.Node
	path refPath
}

// discriminator is a schema carrying a discriminator object.
type discriminator struct {
	holder       *yaml.Node
	doc          *document
	propertyName string
	mapping      *orderedmap.OrderedMap[string, string]
}

type visitKey struct {
	node *yaml.Node
	kind nodeKind
}

// resolver builds the reference index of one compilation. Remote documents are
// loaded on first reference and never fetched twice.
type resolver struct {
	ctx    context.Context
	loader Loader
	logger Logger
	strict bool

	root    *document
	docs    *orderedmap.OrderedMap[string, *document]
	index   map[string]*indexEntry
	visited map[visitKey]bool

	holders  map[*yaml.Node]*discriminator
	memberOf map[*yaml.Node]*discriminator
}

func newResolver(ctx context.Context, cfg Configuration, location string, root *yaml.Node) *resolver {
	return &resolver{
		ctx:    ctx,
		loader: cfg.Loader,
		logger: cfg.Logger,
		strict: cfg.StrictRefs,
		root: &document{
			location: location,
			node:     root,
			full:     true,
			hints:    map[string]nodeKind{},
		},
		docs:     orderedmap.New[string, *document](),
		index:    map[string]*indexEntry{},
		visited:  map[visitKey]bool{},
		holders:  map[*yaml.Node]*discriminator{},
		memberOf: map[*yaml.Node]*discriminator{},
	}
}

// build walks the root document and every remote document it pulls in.
func (r *resolver) build() error {
	if err := r.walkDocument(r.root); err != nil {
		return err
	}
	// Walking a document may append new ones; the list iterator sees them.
	for pair := r.docs.Oldest(); pair != nil; pair = pair.Next() {
		if err := r.walkRemote(pair.Value); err != nil {
			return err
		}
	}
	return nil
}

// externals returns the remote documents in load order.
func (r *resolver) externals() []*document {
	out := make([]*document, 0, r.docs.Len())
	for pair := r.docs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// resolve returns the index entry of ref, found from document from.
func (r *resolver) resolve(from *document, ref string, kind nodeKind) (*indexEntry, error) {
	selector, pointer := splitRef(ref)

	target := from
	if selector != "" {
		doc, err := r.document(resolveLocation(from.location, selector))
		if err != nil {
			return nil, &RefError{Ref: ref, Document: from.location, Cause: fmt.Errorf("%w: %w", ErrUnresolvableRef, err)}
		}
		target = doc
	}

	key := target.location + "#" + pointer
	if e, ok := r.index[key]; ok {
		r.hint(e, kind)
		return e, nil
	}

	tokens, err := pointerTokens(pointer)
	if err != nil {
		return nil, &RefError{Ref: ref, Document: from.location, Cause: err}
	}

	node, err := walkPointer(target.node, tokens)
	if err != nil {
		if !target.isRoot() || selector != "" || r.strict {
			return nil, &RefError{Ref: ref, Document: from.location, Cause: fmt.Errorf("%w: %w", ErrUnresolvableRef, err)}
		}
		r.logger.Warn("dangling reference", "ref", ref, "error", err)
		node = nil
	}

	e := &indexEntry{
		doc:     target,
		pointer: pointer,
		node:    node,
		path:    canonicalPath(target, tokens),
	}
	r.index[key] = e
	r.hint(e, kind)
	return e, nil
}

// follow resolves chained references until a non-reference node is reached.
func (r *resolver) follow(d *document, n *yaml.Node, kind nodeKind) (*document, *yaml.Node, error) {
	for i := 0; i < 32; i++ {
		ref, ok := refValue(n)
		if !ok || isExtensionRef(ref) {
			return d, deref(n), nil
		}
		e, err := r.resolve(d, ref, kind)
		if err != nil {
			return nil, nil, err
		}
		if e.node == nil {
			return e.doc, nil, nil
		}
		d, n = e.doc, e.node
	}
	return d, deref(n), nil
}

func (r *resolver) hint(e *indexEntry, kind nodeKind) {
	d := e.doc
	if d.full {
		return
	}
	tokens, _ := pointerTokens(e.pointer)
	switch len(tokens) {
	case 0:
		if d.whole == nil {
			d.whole = &kind
		}
	case 1:
		if _, ok := d.hints[tokens[0]]; !ok {
			d.hints[tokens[0]] = kind
		}
	}
}

// document returns the document at location, loading it once.
func (r *resolver) document(location string) (*document, error) {
	if location == r.root.location {
		return r.root, nil
	}
	if d, ok := r.docs.Get(location); ok {
		return d, nil
	}
	if r.loader == nil {
		return nil, ErrNoLoader
	}
	if err := r.ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("loading document", "location", location)
	node, err := r.loader.Load(r.ctx, location)
	if err != nil {
		return nil, err
	}
	top := deref(node)
	if top == nil || top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s", ErrNotMapping, location)
	}

	d := &document{
		location: location,
		key:      externalKey(r.root.location, location),
		node:     top,
		full:     isFullDocument(top),
		hints:    map[string]nodeKind{},
	}
	r.docs.Set(location, d)
	return d, nil
}

func (r *resolver) walkRemote(d *document) error {
	switch {
	case d.whole != nil:
		return r.walk(d, d.node, *d.whole)
	case d.full:
		return r.walkDocument(d)
	}
	for _, e := range entries(d.node) {
		if isExtensionKey(e.Key) {
			continue
		}
		if err := r.walk(d, e.Value, d.kindOf(e.Key, e.Value)); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) walkDocument(d *document) error {
	for _, section := range []string{"paths", "webhooks"} {
		for _, e := range entries(lookup(d.node, section)) {
			if isExtensionKey(e.Key) {
				continue
			}
			if err := r.walk(d, e.Value, kindPathItem); err != nil {
				return err
			}
		}
	}

	components := lookup(d.node, "components")
	for _, section := range componentSections {
		for _, e := range entries(lookup(components, section.name)) {
			if isExtensionKey(e.Key) {
				continue
			}
			if err := r.walk(d, e.Value, section.kind); err != nil {
				return err
			}
		}
	}
	return nil
}

// walk indexes every reference reachable from n, used as kind.
func (r *resolver) walk(d *document, n *yaml.Node, kind nodeKind) error {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	vk := visitKey{node: n, kind: kind}
	if r.visited[vk] {
		return nil
	}
	r.visited[vk] = true

	if ref, ok := refValue(n); ok {
		if isExtensionRef(ref) {
			return nil
		}
		_, err := r.resolve(d, ref, kind)
		return err
	}

	switch kind {
	case kindSchema:
		return r.walkSchema(d, n)
	case kindParameter, kindHeader:
		if err := r.walk(d, lookup(n, "schema"), kindSchema); err != nil {
			return err
		}
		return r.walkContent(d, lookup(n, "content"))
	case kindRequestBody:
		return r.walkContent(d, lookup(n, "content"))
	case kindResponse:
		for _, e := range entries(lookup(n, "headers")) {
			if err := r.walk(d, e.Value, kindHeader); err != nil {
				return err
			}
		}
		return r.walkContent(d, lookup(n, "content"))
	case kindPathItem:
		for _, p := range items(n, "parameters") {
			if err := r.walk(d, p, kindParameter); err != nil {
				return err
			}
		}
		for _, m := range httpMethods {
			if err := r.walk(d, lookup(n, m), kindOperation); err != nil {
				return err
			}
		}
	case kindOperation:
		for _, p := range items(n, "parameters") {
			if err := r.walk(d, p, kindParameter); err != nil {
				return err
			}
		}
		if err := r.walk(d, lookup(n, "requestBody"), kindRequestBody); err != nil {
			return err
		}
		for _, e := range entries(lookup(n, "responses")) {
			if isExtensionKey(e.Key) {
				continue
			}
			if err := r.walk(d, e.Value, kindResponse); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *resolver) walkContent(d *document, content *yaml.Node) error {
	for _, e := range entries(content) {
		if err := r.walk(d, lookup(e.Value, "schema"), kindSchema); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) walkSchema(d *document, n *yaml.Node) error {
	for _, e := range entries(n) {
		if isExtensionKey(e.Key) {
			continue
		}
		switch e.Key {
		case "properties", "patternProperties", "$defs", "definitions", "dependentSchemas":
			for _, prop := range entries(e.Value) {
				if err := r.walk(d, prop.Value, kindSchema); err != nil {
					return err
				}
			}
		case "items", "additionalProperties", "not", "contains", "propertyNames",
			"if", "then", "else", "unevaluatedItems", "unevaluatedProperties":
			if isSequence(e.Value) {
				for _, item := range e.Value.Content {
					if err := r.walk(d, item, kindSchema); err != nil {
						return err
					}
				}
				continue
			}
			if err := r.walk(d, e.Value, kindSchema); err != nil {
				return err
			}
		case "allOf", "oneOf", "anyOf", "prefixItems":
			for _, item := range items(n, e.Key) {
				if err := r.walk(d, item, kindSchema); err != nil {
					return err
				}
			}
		}
	}

	if disc := lookup(n, "discriminator"); disc != nil {
		return r.registerDiscriminator(d, n, disc)
	}
	return nil
}

func (r *resolver) registerDiscriminator(d *document, n, disc *yaml.Node) error {
	prop := str(disc, "propertyName")
	if prop == "" {
		return nil
	}

	dc := &discriminator{
		holder:       n,
		doc:          d,
		propertyName: prop,
		mapping:      orderedmap.New[string, string](),
	}
	for _, e := range entries(lookup(disc, "mapping")) {
		if e.Value == nil || e.Value.Kind != yaml.ScalarNode {
			continue
		}
		dc.mapping.Set(e.Key, e.Value.Value)
		if isRefLike(e.Value.Value) && !isExtensionRef(e.Value.Value) {
			if _, err := r.resolve(d, e.Value.Value, kindSchema); err != nil {
				return err
			}
		}
	}
	r.holders[n] = dc

	for _, key := range []string{"oneOf", "anyOf"} {
		for _, item := range items(n, key) {
			ref, ok := refValue(item)
			if !ok || isExtensionRef(ref) {
				continue
			}
			e, err := r.resolve(d, ref, kindSchema)
			if err != nil {
				return err
			}
			if e.node != nil {
				if _, exists := r.memberOf[e.node]; !exists {
					r.memberOf[e.node] = dc
				}
			}
		}
	}
	return nil
}

// isRefLike tells mapping values that are references from bare schema names.
func isRefLike(v string) bool {
	for _, c := range v {
		if c == '#' || c == '/' || c == '.' {
			return true
		}
	}
	return false
}
