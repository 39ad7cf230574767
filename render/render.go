// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

// Package render produces static HTML pages from extracted AsyncAPI
// operations and their FlatBuffers payload schemas.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/anshul-agrawal-ctct/asyncapidoc/asyncapi"
)

// templateFS stores the built-in HTML templates embedded into the package.
//
//go:embed templates/*.html.gotmpl
var templateFS embed.FS

const (
	pageTemplateFile  = "templates/page.html.gotmpl"
	indexTemplateFile = "templates/index.html.gotmpl"
)

// Options configures page rendering.
type Options struct {
	// LiveReload injects the reload script used by the preview server.
	LiveReload bool
}

// IndexEntry is one generated page listed on the index sidebar.
type IndexEntry struct {
	// Name is the display name, usually the API file base name.
	Name string
	// File is the page file name relative to the output directory.
	File string
}

// Page renders the documentation page for one AsyncAPI document.
func Page(doc *asyncapi.Document, ops []asyncapi.Operation, opt Options) (string, error) {
	view := buildPageView(doc, ops, opt)
	return execute(pageTemplateFile, view)
}

// Index renders the index page with a searchable sidebar of generated pages.
func Index(entries []IndexEntry, opt Options) (string, error) {
	return execute(indexTemplateFile, indexView{
		Entries:    entries,
		LiveReload: opt.LiveReload,
	})
}

// execute parses one embedded template and renders it with data.
func execute(file string, data any) (string, error) {
	text, err := templateFS.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrReadTemplate, file, err)
	}

	parsed, err := template.New(file).Funcs(templateFuncs()).Parse(string(text))
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrParseTemplate, file, err)
	}

	var out strings.Builder
	if err := parsed.Execute(&out, data); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrExecuteTemplate, file, err)
	}

	return out.String(), nil
}

// templateFuncs provides utility functions available inside HTML templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"join": func(values []string, sep string) string {
			return strings.Join(values, sep)
		},
	}
}
