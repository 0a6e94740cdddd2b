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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigurationWithDefaults(t *testing.T) {
	cfg := Configuration{HTTPHeaders: map[string]string{"X-Api-Key": "secret"}}.WithDefaults()

	assert.Equal(t, NopLogger{}, cfg.Logger)
	loader, ok := cfg.Loader.(*FileLoader)
	require.True(t, ok)
	assert.Equal(t, "secret", loader.Headers["X-Api-Key"])

	mem := NewMemoryLoader(nil)
	cfg = Configuration{Loader: mem}.WithDefaults()
	assert.Same(t, mem, cfg.Loader)
}

func TestConfigurationOverwriteWith(t *testing.T) {
	base := Configuration{
		ExportType:  true,
		Inject:      "type A = 1;",
		HTTPHeaders: map[string]string{"A": "1", "B": "1"},
	}
	other := Configuration{
		Alphabetize: true,
		Inject:      "type B = 2;",
		HTTPHeaders: map[string]string{"B": "2"},
	}

	got := base.OverwriteWith(other)
	assert.True(t, got.ExportType)
	assert.True(t, got.Alphabetize)
	assert.Equal(t, "type B = 2;", got.Inject)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, got.HTTPHeaders)
	assert.Equal(t, map[string]string{"A": "1", "B": "1"}, base.HTTPHeaders)

	got = base.OverwriteWith(Configuration{})
	assert.Equal(t, "type A = 1;", got.Inject)
}

func TestConfigurationYAML(t *testing.T) {
	src := `
export-type: true
path-params-as-types: true
exclusive-unions: true
root-types: true
http-headers:
  Authorization: Bearer token
`
	var cfg Configuration
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))

	assert.True(t, cfg.ExportType)
	assert.True(t, cfg.PathParamsAsTypes)
	assert.True(t, cfg.ExclusiveUnions)
	assert.True(t, cfg.RootTypes)
	assert.False(t, cfg.Alphabetize)
	assert.Equal(t, "Bearer token", cfg.HTTPHeaders["Authorization"])
}
