// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package asyncapidoc

import "errors"

var (
	// ErrCreateOutputDir is returned when the output directory cannot be created.
	ErrCreateOutputDir = errors.New("create output directory")
	// ErrReadAPIPath is returned when the API path cannot be inspected.
	ErrReadAPIPath = errors.New("read api path")
	// ErrWritePage is returned when writing a generated page fails.
	ErrWritePage = errors.New("write page")
)
