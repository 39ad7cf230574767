// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

// Package asyncapi loads AsyncAPI documents and extracts the operations,
// channels, and messages needed for documentation rendering, resolving
// FlatBuffers payload schemas through the fbs package.
package asyncapi

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one decoded AsyncAPI description. The raw tree is kept as-is;
// typed accessors project the parts the documentation needs.
type Document struct {
	path string
	root map[string]any
}

// Load reads and decodes one AsyncAPI document. YAML is tried first, with a
// JSON fallback for plain .json documents that YAML rejects.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadDocument, path, err)
	}

	root := make(map[string]any)
	if yamlErr := yaml.Unmarshal(data, &root); yamlErr != nil {
		if jsonErr := json.Unmarshal(data, &root); jsonErr != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrDecodeDocument, path, yamlErr)
		}
	}

	return &Document{path: path, root: root}, nil
}

// Path returns the file path the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Validate checks the top-level fields every AsyncAPI document must carry.
func (d *Document) Validate() error {
	for _, field := range []string{"asyncapi", "info", "channels"} {
		if _, ok := d.root[field]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}

	return nil
}

// Resolve walks a local "#/"-prefixed reference through the document tree.
// It reports false for external references and dangling pointers.
func (d *Document) Resolve(ref string) (any, bool) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}

	var node any = d.root
	for _, part := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		object, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}

		node, ok = object[part]
		if !ok {
			return nil, false
		}
	}

	return node, true
}

// Info is the document info block.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Info returns the document info block.
func (d *Document) Info() Info {
	info := asMap(d.root["info"])
	return Info{
		Title:       asString(info["title"]),
		Version:     asString(info["version"]),
		Description: asString(info["description"]),
	}
}

// Server is one declared server entry.
type Server struct {
	Name            string
	Host            string
	Protocol        string
	ProtocolVersion string
}

// Servers returns declared servers ordered by name for deterministic output.
func (d *Document) Servers() []Server {
	servers := asMap(d.root["servers"])
	if len(servers) == 0 {
		return nil
	}

	out := make([]Server, 0, len(servers))
	for _, name := range sortedKeys(servers) {
		server := asMap(servers[name])
		out = append(out, Server{
			Name:            name,
			Host:            asString(server["host"]),
			Protocol:        asString(server["protocol"]),
			ProtocolVersion: asString(server["protocolVersion"]),
		})
	}

	return out
}

// asMap returns value as a string-keyed map, or an empty map.
func asMap(value any) map[string]any {
	object, ok := value.(map[string]any)
	if !ok {
		return map[string]any{}
	}

	return object
}

// asString renders scalar values as text; nil becomes empty.
func asString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// sortedKeys returns map keys in lexical order.
func sortedKeys(object map[string]any) []string {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}
