// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package asyncapi

import "errors"

var (
	// ErrReadDocument is returned when reading an AsyncAPI document fails.
	ErrReadDocument = errors.New("read asyncapi document")
	// ErrDecodeDocument is returned when a document decodes as neither YAML nor JSON.
	ErrDecodeDocument = errors.New("decode asyncapi document")
	// ErrMissingField is returned when a required top-level field is absent.
	ErrMissingField = errors.New("missing required field")
)
