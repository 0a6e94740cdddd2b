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
	"errors"
	"fmt"
)

var (
	ErrEmptyDocument      = errors.New("empty document")
	ErrUnsupportedVersion = errors.New("unsupported OpenAPI version, expected 3.0 or 3.1")
	ErrNotMapping         = errors.New("document root is not a mapping")
	ErrNoLoader           = errors.New("no loader configured for remote documents")
	ErrUnresolvableRef    = errors.New("unresolvable reference")
	ErrDanglingRef        = errors.New("reference points to a missing node")
	ErrInvalidPointer     = errors.New("invalid JSON pointer")
	ErrDocumentNotFound   = errors.New("document not found")
)

// RefError describes a $ref that could not be resolved.
// Document is the location of the document containing the ref ("" for an in-memory root).
type RefError struct {
	Ref      string
	Document string
	Cause    error
}

func (e *RefError) Error() string {
	doc := e.Document
	if doc == "" {
		doc = "<root>"
	}
	msg := fmt.Sprintf("cannot resolve %q in %s", e.Ref, doc)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *RefError) Unwrap() error {
	return e.Cause
}
