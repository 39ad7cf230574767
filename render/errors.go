// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package render

import "errors"

var (
	// ErrReadTemplate is returned when an embedded template file cannot be read.
	ErrReadTemplate = errors.New("read template")
	// ErrParseTemplate is returned when template parsing fails.
	ErrParseTemplate = errors.New("parse template")
	// ErrExecuteTemplate is returned when template execution fails.
	ErrExecuteTemplate = errors.New("execute template")
)
