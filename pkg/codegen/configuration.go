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

import "maps"

// Configuration defines the output customizations of a compilation.
//
// ExportType declares sections as type aliases instead of interfaces.
// PathParamsAsTypes rewrites path keys into template literal index signatures.
// Inject is raw text placed after the helper declarations.
// ExclusiveUnions wraps oneOf/anyOf member lists in the OneOf helper.
// StrictRefs makes a dangling local $ref fatal instead of a warning.
//
// Transform, PostTransform, Loader and Logger are only settable from code.
type Configuration struct {
	ExportType           bool              `yaml:"export-type"`
	PathParamsAsTypes    bool              `yaml:"path-params-as-types"`
	Inject               string            `yaml:"inject,omitempty"`
	ExclusiveUnions      bool              `yaml:"exclusive-unions"`
	ImmutableTypes       bool              `yaml:"immutable-types"`
	DefaultNonNullable   bool              `yaml:"default-non-nullable"`
	EmptyObjectsUnknown  bool              `yaml:"empty-objects-unknown"`
	AdditionalProperties bool              `yaml:"additional-properties"`
	Alphabetize          bool              `yaml:"alphabetize"`
	ExcludeDeprecated    bool              `yaml:"exclude-deprecated"`
	RootTypes            bool              `yaml:"root-types"`
	StrictRefs           bool              `yaml:"strict-refs"`
	HTTPHeaders          map[string]string `yaml:"http-headers,omitempty"`

	Transform     TransformFunc     `yaml:"-"`
	PostTransform PostTransformFunc `yaml:"-"`
	Loader        Loader            `yaml:"-"`
	Logger        Logger            `yaml:"-"`
}

// NewDefaultConfiguration creates a new default Configuration.
func NewDefaultConfiguration() Configuration {
	return Configuration{
		Logger: NopLogger{},
	}
}

// WithDefaults fills empty fields in the configuration with defaults.
// The receiver takes priority.
func (o Configuration) WithDefaults() Configuration {
	defaults := NewDefaultConfiguration()

	if o.Logger == nil {
		o.Logger = defaults.Logger
	}
	if o.Loader == nil {
		o.Loader = &FileLoader{Headers: o.HTTPHeaders}
	}

	return o
}

// OverwriteWith overwrites fields in the configuration with non-empty values from other.
// The parameter takes priority.
func (o Configuration) OverwriteWith(other Configuration) Configuration {
	o.ExportType = o.ExportType || other.ExportType
	o.PathParamsAsTypes = o.PathParamsAsTypes || other.PathParamsAsTypes
	o.ExclusiveUnions = o.ExclusiveUnions || other.ExclusiveUnions
	o.ImmutableTypes = o.ImmutableTypes || other.ImmutableTypes
	o.DefaultNonNullable = o.DefaultNonNullable || other.DefaultNonNullable
	o.EmptyObjectsUnknown = o.EmptyObjectsUnknown || other.EmptyObjectsUnknown
	o.AdditionalProperties = o.AdditionalProperties || other.AdditionalProperties
	o.Alphabetize = o.Alphabetize || other.Alphabetize
	o.ExcludeDeprecated = o.ExcludeDeprecated || other.ExcludeDeprecated
	o.RootTypes = o.RootTypes || other.RootTypes
	o.StrictRefs = o.StrictRefs || other.StrictRefs

	if other.Inject != "" {
		o.Inject = other.Inject
	}

	if len(other.HTTPHeaders) > 0 {
		headers := make(map[string]string, len(o.HTTPHeaders)+len(other.HTTPHeaders))
		maps.Copy(headers, o.HTTPHeaders)
		maps.Copy(headers, other.HTTPHeaders)
		o.HTTPHeaders = headers
	}

	if other.Transform != nil {
		o.Transform = other.Transform
	}
	if other.PostTransform != nil {
		o.PostTransform = other.PostTransform
	}
	if other.Loader != nil {
		o.Loader = other.Loader
	}
	if other.Logger != nil {
		o.Logger = other.Logger
	}

	return o
}
