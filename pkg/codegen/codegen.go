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
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// generator holds the state of one compilation. Nothing in it is shared
// across compilations.
type generator struct {
	cfg     Configuration
	logger  Logger
	res     *resolver
	helpers *helperSet
	types   *typeTracker
	ops     *orderedmap.OrderedMap[string, *OperationDefinition]

	// err is the first failure met during synthesis.
	err error
}

func (g *generator) fail(err error) {
	if g.err == nil {
		g.err = err
	}
}

// Generate creates TypeScript definitions from the contents of an OpenAPI 3.x
// document. Relative remote references are resolved from the working directory.
func Generate(ctx context.Context, docContents []byte, cfg Configuration) (string, error) {
	root, err := loadDocumentFromContents(docContents)
	if err != nil {
		return "", err
	}
	return compile(ctx, "", root, cfg)
}

// GenerateFromNode creates TypeScript definitions from a parsed document.
// The node is never modified.
func GenerateFromNode(ctx context.Context, root *yaml.Node, cfg Configuration) (string, error) {
	return compile(ctx, "", root, cfg)
}

// GenerateFromLocation loads the document at a path or URL with the configured
// loader and creates TypeScript definitions from it.
func GenerateFromLocation(ctx context.Context, location string, cfg Configuration) (string, error) {
	cfg = cfg.WithDefaults()

	root, err := cfg.Loader.Load(ctx, location)
	if err != nil {
		return "", fmt.Errorf("error loading %s: %w", location, err)
	}
	return compile(ctx, location, root, cfg)
}

func compile(ctx context.Context, location string, root *yaml.Node, cfg Configuration) (string, error) {
	cfg = cfg.WithDefaults()

	top := deref(root)
	if top == nil || top.Kind == 0 {
		return "", ErrEmptyDocument
	}
	if top.Kind != yaml.MappingNode {
		return "", ErrNotMapping
	}
	if err := checkVersion(top); err != nil {
		return "", err
	}

	logger := cfg.Logger
	if location != "" {
		logger = logger.With("document", location)
	}
	cfg.Logger = logger

	res := newResolver(ctx, cfg, location, top)
	if err := res.build(); err != nil {
		return "", err
	}

	g := &generator{
		cfg:     cfg,
		logger:  logger,
		res:     res,
		helpers: &helperSet{},
		types:   newTypeTracker(),
		ops:     orderedmap.New[string, *OperationDefinition](),
	}
	out := g.emit()
	if g.err != nil {
		return "", g.err
	}
	logger.Debug("generated definitions", "externals", res.docs.Len(), "operations", g.ops.Len())
	return out, nil
}

func checkVersion(root *yaml.Node) error {
	if v := str(root, "swagger"); v != "" {
		return fmt.Errorf("%w: swagger %s", ErrUnsupportedVersion, v)
	}
	v := str(root, "openapi")
	if !strings.HasPrefix(v, "3.") && v != "3" {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
	}
	return nil
}
