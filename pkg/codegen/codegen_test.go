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
	"embed"
	"errors"
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.txtar
var testdataFS embed.FS

// fixture is one txtar case: the root document comes first, then an optional
// config.yaml, the documents it references, and the expected want.ts.
type fixture struct {
	root string
	cfg  Configuration
	docs map[string][]byte
	want string
}

func readFixture(t *testing.T, name string) fixture {
	t.Helper()
	data, err := testdataFS.ReadFile(path.Join("testdata", name))
	require.NoError(t, err)

	ar := txtar.Parse(data)
	require.NotEmpty(t, ar.Files, "fixture %s has no files", name)

	f := fixture{root: ar.Files[0].Name, docs: map[string][]byte{}}
	for _, file := range ar.Files {
		switch file.Name {
		case "want.ts":
			f.want = string(file.Data)
		case "config.yaml":
			require.NoError(t, yaml.Unmarshal(file.Data, &f.cfg))
		default:
			f.docs[file.Name] = file.Data
		}
	}
	require.NotEmpty(t, f.want, "fixture %s has no want.ts", name)
	return f
}

func TestGenerateFixtures(t *testing.T) {
	names, err := fs.Glob(testdataFS, "testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		name = path.Base(name)
		t.Run(strings.TrimSuffix(name, ".txtar"), func(t *testing.T) {
			f := readFixture(t, name)
			cfg := f.cfg
			cfg.Loader = NewMemoryLoader(f.docs)

			out, err := GenerateFromLocation(context.Background(), f.root, cfg)
			require.NoError(t, err)
			assert.Equal(t, f.want, out)
		})
	}
}

const hooksDocument = `
openapi: 3.1.0
info:
  title: Hooks
  version: "1.0"
paths: {}
components:
  schemas:
    Date:
      type: string
      format: date-time
    Event:
      type: object
      properties:
        at:
          type: string
          format: date-time
        name:
          type: string
`

func parseNode(t *testing.T, doc string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc), &n))
	return &n
}

func TestTransform(t *testing.T) {
	var paths []string
	cfg := Configuration{
		Inject: "type DateOrTime = Date | number;\n",
		Transform: func(schema SchemaView, meta TransformMeta) (string, bool) {
			paths = append(paths, meta.Path)
			if schema.Format() == "date-time" {
				return "DateOrTime", true
			}
			return "", false
		},
	}

	out, err := GenerateFromNode(context.Background(), parseNode(t, hooksDocument), cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "type DateOrTime = Date | number;\n\nexport type paths = Record<string, never>;")
	assert.Contains(t, out, "    /** Format: date-time */\n    Date: DateOrTime;\n")
	assert.Contains(t, out, "      at?: DateOrTime;\n")
	assert.Contains(t, out, "      name?: string;\n")
	assert.ElementsMatch(t, []string{
		"#/components/schemas/Date",
		"#/components/schemas/Event",
		"#/components/schemas/Event/properties/at",
		"#/components/schemas/Event/properties/name",
	}, paths)
}

func TestPostTransform(t *testing.T) {
	cfg := Configuration{
		PostTransform: func(typ string, meta TransformMeta) (string, bool) {
			if meta.Path == "#/components/schemas/Event/properties/at" {
				return typ + " | Date", true
			}
			return "", false
		},
	}

	out, err := GenerateFromNode(context.Background(), parseNode(t, hooksDocument), cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "      at?: string | Date;\n")
	assert.Contains(t, out, "    Date: string;\n")
}

func TestPostTransformWithInject(t *testing.T) {
	doc := `
openapi: "3.1"
info:
  title: Test
  version: "1.0"
components:
  schemas:
    Date:
      type: string
      format: date-time
`
	cfg := Configuration{
		Inject: "type DateOrTime = Date | number;\n",
		PostTransform: func(_ string, meta TransformMeta) (string, bool) {
			if strings.Contains(meta.Path, "Date") {
				return "DateOrTime", true
			}
			return "", false
		},
	}

	out, err := GenerateFromNode(context.Background(), parseNode(t, doc), cfg)
	require.NoError(t, err)

	want := boilerplate + `
type DateOrTime = Date | number;

export type paths = Record<string, never>;

export type webhooks = Record<string, never>;

export interface components {
  schemas: {
    /** Format: date-time */
    Date: DateOrTime;
  };
  responses: never;
  parameters: never;
  requestBodies: never;
  headers: never;
  pathItems: never;
}

export type external = Record<string, never>;

export type operations = Record<string, never>;
`
	assert.Equal(t, want, out)
}

func TestGenerateFromContents(t *testing.T) {
	doc := `{
  "openapi": "3.0.0",
  "info": {"title": "JSON", "version": "1.0"},
  "paths": {},
  "components": {"schemas": {"Id": {"type": "string"}}}
}`

	out, err := Generate(context.Background(), []byte(doc), Configuration{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, boilerplate))
	assert.Contains(t, out, "    Id: string;\n")
}

func TestGenerateDoesNotModifyInput(t *testing.T) {
	doc := `
openapi: 3.0.0
info:
  title: Dangling
  version: "1.0"
paths:
  /:
    get:
      responses:
        "200":
          $ref: "#/components/responses/OKResponse"
components:
  schemas:
    Base: &base
      type: object
      properties:
        id:
          type: string
    Extended:
      <<: *base
`
	root := parseNode(t, doc)
	before, err := yaml.Marshal(root)
	require.NoError(t, err)

	out, err := GenerateFromNode(context.Background(), root, Configuration{})
	require.NoError(t, err)
	assert.Contains(t, out, `200: components["responses"]["OKResponse"];`)

	after, err := yaml.Marshal(root)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestStrictRefs(t *testing.T) {
	doc := `
openapi: 3.0.0
info:
  title: Strict
  version: "1.0"
paths: {}
components:
  schemas:
    User:
      type: object
      properties:
        address:
          $ref: "#/components/schemas/Address"
`
	_, err := GenerateFromNode(context.Background(), parseNode(t, doc), Configuration{StrictRefs: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDanglingRef)
	assert.ErrorIs(t, err, ErrUnresolvableRef)

	var refErr *RefError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "#/components/schemas/Address", refErr.Ref)

	out, err := GenerateFromNode(context.Background(), parseNode(t, doc), Configuration{})
	require.NoError(t, err)
	assert.Contains(t, out, `address?: components["schemas"]["Address"];`)
}

func TestMissingRemoteDocument(t *testing.T) {
	docs := map[string][]byte{
		"openapi.yaml": []byte(`
openapi: 3.0.0
info:
  title: Remote
  version: "1.0"
paths: {}
components:
  schemas:
    Pet:
      $ref: "missing.yaml#/Pet"
`),
	}

	_, err := GenerateFromLocation(context.Background(), "openapi.yaml", Configuration{Loader: NewMemoryLoader(docs)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.ErrorIs(t, err, ErrUnresolvableRef)

	var refErr *RefError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "missing.yaml#/Pet", refErr.Ref)
	assert.Equal(t, "openapi.yaml", refErr.Document)
}

func TestRemoteDocumentsLoadedOnce(t *testing.T) {
	docs := NewMemoryLoader(map[string][]byte{
		"api/openapi.yaml": []byte(`
openapi: 3.0.0
info:
  title: Remote
  version: "1.0"
paths: {}
components:
  schemas:
    Cat:
      $ref: "shared/pets.yaml#/Cat"
    Dog:
      $ref: "shared/pets.yaml#/Dog"
    Owner:
      type: object
      properties:
        cat:
          $ref: "shared/pets.yaml#/Cat"
`),
		"api/shared/pets.yaml": []byte(`
Cat:
  type: object
  properties:
    name:
      type: string
Dog:
  type: object
  properties:
    friend:
      $ref: "#/Cat"
`),
	})

	loads := map[string]int{}
	cfg := Configuration{
		Loader: LoaderFunc(func(ctx context.Context, location string) (*yaml.Node, error) {
			loads[location]++
			return docs.Load(ctx, location)
		}),
	}

	out, err := GenerateFromLocation(context.Background(), "api/openapi.yaml", cfg)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"api/openapi.yaml": 1, "api/shared/pets.yaml": 1}, loads)

	assert.Contains(t, out, `    Cat: external["shared/pets.yaml"]["Cat"];`)
	assert.Contains(t, out, `      cat?: external["shared/pets.yaml"]["Cat"];`)
	assert.Contains(t, out, `      friend?: external["shared/pets.yaml"]["Cat"];`)
}

func TestRemoteChainLoadsEachDocumentOnce(t *testing.T) {
	f := readFixture(t, "remote_chain.txtar")
	docs := NewMemoryLoader(f.docs)

	loads := map[string]int{}
	cfg := Configuration{
		Loader: LoaderFunc(func(ctx context.Context, location string) (*yaml.Node, error) {
			loads[location]++
			return docs.Load(ctx, location)
		}),
	}

	out, err := GenerateFromLocation(context.Background(), f.root, cfg)
	require.NoError(t, err)
	assert.Equal(t, f.want, out)
	assert.Equal(t, map[string]int{"openapi.yaml": 1, "file.yaml": 1, "sub/third.yaml": 1}, loads)
}

// recordingLogger keeps the messages of Warn calls.
type recordingLogger struct {
	NopLogger
	warnings *[]string
}

func (l recordingLogger) Warn(msg string, _ ...any) { *l.warnings = append(*l.warnings, msg) }
func (l recordingLogger) With(_ ...any) Logger      { return l }

func TestDuplicateOperationIDs(t *testing.T) {
	doc := `
openapi: 3.0.0
info:
  title: Duplicates
  version: "1.0"
paths:
  /a:
    get:
      operationId: getThing
      responses:
        "200":
          description: A
  /b:
    get:
      operationId: getThing
      responses:
        "200":
          description: B
`
	var warnings []string
	cfg := Configuration{Logger: recordingLogger{warnings: &warnings}}

	out, err := GenerateFromNode(context.Background(), parseNode(t, doc), cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "  \"/a\": {\n    get: operations[\"getThing\"];\n")
	assert.Contains(t, out, "  \"/b\": {\n    get: operations[\"getThing2\"];\n")
	assert.Contains(t, out, "      /** @description A */\n")
	assert.Contains(t, out, "  getThing2: {\n")
	assert.Contains(t, out, "      /** @description B */\n")
	assert.Equal(t, []string{"duplicate operationId"}, warnings)
}

func TestContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := NewMemoryLoader(map[string][]byte{
		"openapi.yaml": []byte(`
openapi: 3.0.0
info:
  title: Cancelled
  version: "1.0"
paths: {}
components:
  schemas:
    Pet:
      $ref: "pets.yaml#/Pet"
`),
		"pets.yaml": []byte("Pet:\n  type: string\n"),
	})

	_, err := GenerateFromLocation(ctx, "openapi.yaml", Configuration{Loader: docs})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRejectedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "swagger",
			doc:  "swagger: \"2.0\"\ninfo:\n  title: Old\n  version: \"1.0\"\npaths: {}\n",
			want: ErrUnsupportedVersion,
		},
		{
			name: "missing version",
			doc:  "info:\n  title: None\n  version: \"1.0\"\npaths: {}\n",
			want: ErrUnsupportedVersion,
		},
		{
			name: "openapi 4",
			doc:  "openapi: 4.0.0\npaths: {}\n",
			want: ErrUnsupportedVersion,
		},
		{
			name: "sequence root",
			doc:  "- openapi\n- 3.0.0\n",
			want: ErrNotMapping,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateFromNode(context.Background(), parseNode(t, tc.doc), Configuration{})
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("empty contents", func(t *testing.T) {
		_, err := Generate(context.Background(), []byte("  \n"), Configuration{})
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("empty node", func(t *testing.T) {
		_, err := GenerateFromNode(context.Background(), &yaml.Node{}, Configuration{})
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})
}
