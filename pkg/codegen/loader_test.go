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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFileLoaderReadsFiles(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(location, []byte("openapi: 3.0.0\n"), 0o600))

	loader := &FileLoader{}
	node, err := loader.Load(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", str(node, "openapi"))

	node, err = loader.Load(context.Background(), "file://"+filepath.ToSlash(location))
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", str(node, "openapi"))

	_, err = loader.Load(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestFileLoaderFetchesURLs(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/openapi.yaml":
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte("openapi: 3.1.0\npaths: {}\n"))
		case "/broken.yaml":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := &FileLoader{
		Client:  srv.Client(),
		Headers: map[string]string{"Authorization": "Bearer token"},
	}

	node, err := loader.Load(context.Background(), srv.URL+"/openapi.yaml")
	require.NoError(t, err)
	assert.Equal(t, "3.1.0", str(node, "openapi"))
	assert.Equal(t, "Bearer token", gotAuth)

	_, err = loader.Load(context.Background(), srv.URL+"/missing.yaml")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = loader.Load(context.Background(), srv.URL+"/broken.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 500")
}

func TestMemoryLoader(t *testing.T) {
	loader := NewMemoryLoader(map[string][]byte{
		"./specs/openapi.yaml": []byte("openapi: 3.0.0\n"),
		"empty.yaml":           []byte("\n"),
	})

	node, err := loader.Load(context.Background(), "specs/../specs/openapi.yaml")
	require.NoError(t, err)
	assert.Equal(t, yaml.DocumentNode, node.Kind)
	assert.Equal(t, "3.0.0", str(node, "openapi"))

	_, err = loader.Load(context.Background(), "other.yaml")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = loader.Load(context.Background(), "empty.yaml")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestResolveLocation(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{{
		name: "sibling file",
		base: "specs/openapi.yaml",
		ref:  "schemas.yaml",
		want: filepath.Join("specs", "schemas.yaml"),
	}, {
		name: "parent directory",
		base: "specs/v1/openapi.yaml",
		ref:  "../shared/pets.yaml",
		want: filepath.Join("specs", "shared", "pets.yaml"),
	}, {
		name: "in-memory root",
		base: "",
		ref:  "schemas.yaml",
		want: "schemas.yaml",
	}, {
		name: "relative to url",
		base: "https://example.com/api/openapi.yaml",
		ref:  "schemas/pets.yaml",
		want: "https://example.com/api/schemas/pets.yaml",
	}, {
		name: "absolute url",
		base: "specs/openapi.yaml",
		ref:  "https://example.com/pets.yaml",
		want: "https://example.com/pets.yaml",
	},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLocation(tt.base, tt.ref))
		})
	}
}

func TestExternalKey(t *testing.T) {
	assert.Equal(t, "schemas.yaml", externalKey("specs/openapi.yaml", filepath.Join("specs", "schemas.yaml")))
	assert.Equal(t, "../shared/pets.yaml", externalKey("specs/v1/openapi.yaml", filepath.Join("specs", "shared", "pets.yaml")))
	assert.Equal(t, "schemas/pets.yaml", externalKey("https://example.com/api/openapi.yaml", "https://example.com/api/schemas/pets.yaml"))
	assert.Equal(t, "https://other.com/pets.yaml", externalKey("https://example.com/api/openapi.yaml", "https://other.com/pets.yaml"))
	assert.Equal(t, "https://example.com/pets.yaml", externalKey("specs/openapi.yaml", "https://example.com/pets.yaml"))
}
