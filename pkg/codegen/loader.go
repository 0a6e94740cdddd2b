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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader produces parsed documents for a location (file path or URL).
type Loader interface {
	Load(ctx context.Context, location string) (*yaml.Node, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, location string) (*yaml.Node, error)

func (f LoaderFunc) Load(ctx context.Context, location string) (*yaml.Node, error) {
	return f(ctx, location)
}

// FileLoader reads documents from disk or over HTTP(S).
type FileLoader struct {
	Client  *http.Client
	Headers map[string]string
}

func (l *FileLoader) Load(ctx context.Context, location string) (*yaml.Node, error) {
	data, err := l.read(ctx, location)
	if err != nil {
		return nil, err
	}
	node, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", location, err)
	}
	return node, nil
}

func (l *FileLoader) read(ctx context.Context, location string) ([]byte, error) {
	if isURL(location) {
		return l.fetch(ctx, location)
	}
	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", location, err)
		}
		location = u.Path
	}

	// #nosec G304 -- document locations are user-specified
	data, err := os.ReadFile(location)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, location)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", location, err)
	}
	return data, nil
}

func (l *FileLoader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", location, err)
	}
	for k, v := range l.Headers {
		req.Header.Set(k, v)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", location, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, location)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error fetching %s: unexpected status code %d", location, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// MemoryLoader serves documents held in memory, keyed by location.
type MemoryLoader struct {
	docs map[string][]byte
}

// NewMemoryLoader creates a MemoryLoader. Keys are cleaned with path.Clean.
func NewMemoryLoader(docs map[string][]byte) *MemoryLoader {
	m := &MemoryLoader{docs: make(map[string][]byte, len(docs))}
	for k, v := range docs {
		m.docs[path.Clean(filepath.ToSlash(k))] = v
	}
	return m
}

func (m *MemoryLoader) Load(_ context.Context, location string) (*yaml.Node, error) {
	data, ok := m.docs[path.Clean(filepath.ToSlash(location))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, location)
	}
	return decodeDocument(data)
}

func decodeDocument(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// resolveLocation resolves ref relative to the document at base.
func resolveLocation(base, ref string) string {
	if isURL(ref) {
		return ref
	}
	if isURL(base) {
		b, err := url.Parse(base)
		if err != nil {
			return ref
		}
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return b.ResolveReference(r).String()
	}
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(filepath.Dir(base), ref)
}

// externalKey names a remote document relative to the root document's directory.
func externalKey(rootLocation, location string) string {
	if isURL(location) {
		if !isURL(rootLocation) {
			return location
		}
		root, err := url.Parse(rootLocation)
		if err != nil {
			return location
		}
		loc, err := url.Parse(location)
		if err != nil || loc.Scheme != root.Scheme || loc.Host != root.Host {
			return location
		}
		dir := path.Dir(root.Path)
		if rel, ok := strings.CutPrefix(loc.Path, strings.TrimSuffix(dir, "/")+"/"); ok {
			return rel
		}
		return location
	}
	if isURL(rootLocation) {
		return filepath.ToSlash(location)
	}
	rel, err := filepath.Rel(filepath.Dir(rootLocation), location)
	if err != nil {
		return filepath.ToSlash(location)
	}
	return filepath.ToSlash(rel)
}
