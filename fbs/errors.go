// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package fbs

import "errors"

var (
	// ErrReadSchemaFile is returned when reading an existing schema file fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrUnterminatedBlock is returned when input ends before a brace-delimited
	// block closes.
	ErrUnterminatedBlock = errors.New("unterminated block")
	// ErrUnbalancedBrace is returned when a block closes more braces than it opened.
	ErrUnbalancedBrace = errors.New("unbalanced closing brace")
	// ErrEnumValue is returned when an explicit enumerator value is not a
	// base-10 integer.
	ErrEnumValue = errors.New("parse enum value")
)
