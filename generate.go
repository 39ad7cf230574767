// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package asyncapidoc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/anshul-agrawal-ctct/asyncapidoc/asyncapi"
	"github.com/anshul-agrawal-ctct/asyncapidoc/render"
)

// apiFileExtensions lists the AsyncAPI document extensions collected from a
// directory, in scan order.
var apiFileExtensions = []string{".yaml", ".yml", ".json"}

// indexFileName is the generated index page file name.
const indexFileName = "index.html"

// Options configures one documentation build.
type Options struct {
	// APIPath is an AsyncAPI document file or a directory of them.
	APIPath string
	// SchemaDir is the base directory for relative FlatBuffers schema references.
	SchemaDir string
	// OutputDir receives the generated HTML pages.
	OutputDir string
	// Logger receives build diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger
	// LiveReload embeds the preview server reload script into generated pages.
	LiveReload bool
}

// logger returns the configured logger or a no-op fallback.
func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}

	return *o.Logger
}

// Page is one generated documentation page.
type Page struct {
	// Name is the API display name, the document file base name.
	Name string
	// File is the page file name inside the output directory.
	File string
}

// Result reports what one build produced.
type Result struct {
	// Pages lists generated pages in build order.
	Pages []Page
	// Failed lists source documents that could not be processed.
	Failed []string
}

// GenerateAll builds HTML documentation for every AsyncAPI document under
// the configured path and writes an index page. A failure on one document is
// logged and the build continues with the remainder; only output-directory
// and index failures abort the build.
func GenerateAll(opt Options) (*Result, error) {
	logger := opt.logger()

	if err := os.MkdirAll(opt.OutputDir, 0o750); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrCreateOutputDir, opt.OutputDir, err)
	}

	files, err := collectAPIFiles(opt.APIPath)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		logger.Warn().Str("path", opt.APIPath).Msg("no asyncapi documents found")
		return &Result{}, nil
	}

	result := &Result{}
	for _, file := range files {
		page, err := generateOne(file, opt, logger)
		if err != nil {
			logger.Error().Err(err).Str("document", file).Msg("failed to process document")
			result.Failed = append(result.Failed, file)
			continue
		}

		result.Pages = append(result.Pages, page)
	}

	if err := writeIndex(result.Pages, opt); err != nil {
		return nil, err
	}

	logger.Info().
		Int("pages", len(result.Pages)).
		Str("output", opt.OutputDir).
		Msg("documentation generated")
	return result, nil
}

// generateOne renders and writes the page for a single AsyncAPI document.
func generateOne(file string, opt Options, logger zerolog.Logger) (Page, error) {
	doc, err := asyncapi.Load(file)
	if err != nil {
		return Page{}, err
	}

	if err := doc.Validate(); err != nil {
		return Page{}, err
	}

	ops := doc.Operations(asyncapi.OperationsOptions{
		SchemaDir: opt.SchemaDir,
		Logger:    &logger,
	})

	html, err := render.Page(doc, ops, render.Options{LiveReload: opt.LiveReload})
	if err != nil {
		return Page{}, err
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	page := Page{Name: base, File: base + ".html"}

	target := filepath.Join(opt.OutputDir, page.File)
	if err := os.WriteFile(target, []byte(html), 0o600); err != nil {
		return Page{}, fmt.Errorf("%w %q: %w", ErrWritePage, target, err)
	}

	logger.Info().Str("document", file).Str("page", target).Msg("page generated")
	return page, nil
}

// writeIndex renders and writes the index page listing generated pages.
func writeIndex(pages []Page, opt Options) error {
	entries := make([]render.IndexEntry, 0, len(pages))
	for _, page := range pages {
		entries = append(entries, render.IndexEntry{Name: page.Name, File: page.File})
	}

	html, err := render.Index(entries, render.Options{LiveReload: opt.LiveReload})
	if err != nil {
		return err
	}

	target := filepath.Join(opt.OutputDir, indexFileName)
	if err := os.WriteFile(target, []byte(html), 0o600); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWritePage, target, err)
	}

	return nil
}

// collectAPIFiles expands the API path into a sorted list of document files.
func collectAPIFiles(path string) ([]string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w %q: %w", ErrReadAPIPath, path, err)
	}

	if !stat.IsDir() {
		return []string{path}, nil
	}

	var files []string
	for _, ext := range apiFileExtensions {
		matches, err := filepath.Glob(filepath.Join(path, "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrReadAPIPath, path, err)
		}

		files = append(files, matches...)
	}

	sort.Strings(files)
	return files, nil
}
