// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package fbs

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Options configures one parse run.
type Options struct {
	// Logger receives non-fatal diagnostics (missing files, skipped lines,
	// shadowed declarations). Defaults to a no-op logger.
	Logger *zerolog.Logger
	// SourcePath labels diagnostics when parsing from bytes. ParseFile sets it
	// to the file path.
	SourcePath string
}

// logger returns the configured logger or a no-op fallback.
func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}

	return *o.Logger
}

var (
	namespaceRe = regexp.MustCompile(`^namespace\s+([\w.]+)\s*;`)
	attributeRe = regexp.MustCompile(`^attribute\s+"([^"]+)"\s*;`)
	rootTypeRe  = regexp.MustCompile(`^root_type\s+(\w+)\s*;`)
	enumRe      = regexp.MustCompile(`^enum\s+(\w+)\s*:\s*(\w+)\s*\{`)
	unionRe     = regexp.MustCompile(`^union\s+(\w+)\s*\{`)
	structRe    = regexp.MustCompile(`^struct\s+(\w+)\s*\{`)
	tableRe     = regexp.MustCompile(`^table\s+(\w+)\s*\{`)
)

// ParseFile reads and parses one schema file. A missing file is not an
// error: it logs a warning and yields an empty Document, so a dangling
// schema reference never aborts a surrounding documentation build.
func ParseFile(path string, opt Options) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger := opt.logger()
			logger.Warn().Str("path", path).Msg("schema file not found")
			return &Document{}, nil
		}

		return nil, fmt.Errorf("%w %q: %w", ErrReadSchemaFile, path, err)
	}

	if strings.TrimSpace(opt.SourcePath) == "" {
		opt.SourcePath = path
	}

	return Parse(content, opt)
}

// Parse parses schema bytes into a Document. Parsing runs in two passes:
// the first collects every top-level declared name so field references
// resolve regardless of declaration order, the second builds the Document.
// A malformed block or enum value aborts the whole parse; no partial
// Document is returned.
func Parse(content []byte, opt Options) (*Document, error) {
	p := &parser{
		lines:  strings.Split(string(content), "\n"),
		doc:    &Document{},
		logger: opt.logger(),
		source: opt.SourcePath,
	}

	names, err := p.collectLocalNames()
	if err != nil {
		return nil, err
	}

	p.locals = names
	if err := p.scan(); err != nil {
		return nil, err
	}

	return p.doc, nil
}

// parser is the top-level scan state: the line cursor, the pending-doc
// buffer, and the Document under construction.
type parser struct {
	lines   []string
	pos     int
	pending []string
	doc     *Document
	locals  map[string]struct{}
	logger  zerolog.Logger
	source  string
}

// collectLocalNames is pass one: it records every top-level enum, union,
// struct, and table name, skipping block bodies and comments.
func (p *parser) collectLocalNames() (map[string]struct{}, error) {
	names := make(map[string]struct{})

	for i := 0; i < len(p.lines); {
		line := strings.TrimSpace(p.lines[i])

		if strings.HasPrefix(line, "/*") {
			i = p.skipBlockComment(i, nil)
			continue
		}

		var name, kind string
		switch {
		case enumRe.MatchString(line):
			name, kind = enumRe.FindStringSubmatch(line)[1], "enum"
		case unionRe.MatchString(line):
			name, kind = unionRe.FindStringSubmatch(line)[1], "union"
		case structRe.MatchString(line):
			name, kind = structRe.FindStringSubmatch(line)[1], "struct"
		case tableRe.MatchString(line):
			name, kind = tableRe.FindStringSubmatch(line)[1], "table"
		default:
			i++
			continue
		}

		_, next, err := p.collectBlock(i, kind, name)
		if err != nil {
			return nil, err
		}

		if kind != "union" {
			names[name] = struct{}{}
		}

		i = next
	}

	return names, nil
}

// scan is pass two: the main line classifier loop building the Document.
func (p *parser) scan() error {
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])

		switch {
		case line == "" || strings.HasPrefix(line, "}"):
			// Blank and stray closing-brace lines never touch the doc buffer.
			p.pos++

		case strings.HasPrefix(line, "///"):
			p.pending = append(p.pending, stripDocMarker(line))
			p.pos++

		case strings.HasPrefix(line, "/*"):
			p.pos = p.skipBlockComment(p.pos, &p.pending)

		case strings.HasPrefix(line, "//"):
			// Plain comment between a doc block and its declaration.
			p.pos++

		case namespaceRe.MatchString(line):
			p.doc.Namespace = namespaceRe.FindStringSubmatch(line)[1]
			p.dropPendingDoc("namespace")
			p.pos++

		case attributeRe.MatchString(line):
			p.doc.Attributes = append(p.doc.Attributes, attributeRe.FindStringSubmatch(line)[1])
			p.dropPendingDoc("attribute")
			p.pos++

		case rootTypeRe.MatchString(line):
			p.doc.RootType = rootTypeRe.FindStringSubmatch(line)[1]
			p.dropPendingDoc("root_type")
			p.pos++

		case enumRe.MatchString(line):
			if err := p.parseEnum(line); err != nil {
				return err
			}

		case unionRe.MatchString(line):
			if err := p.parseUnion(line); err != nil {
				return err
			}

		case structRe.MatchString(line):
			if err := p.parseStructLike(line, structRe, "struct"); err != nil {
				return err
			}

		case tableRe.MatchString(line):
			if err := p.parseStructLike(line, tableRe, "table"); err != nil {
				return err
			}

		default:
			p.logger.Debug().
				Str("source", p.source).
				Int("line", p.pos+1).
				Str("text", line).
				Msg("skipping unrecognized top-level line")
			p.dropPendingDoc("unrecognized line")
			p.pos++
		}
	}

	return nil
}

// parseEnum handles `enum Name : base { ... }`.
func (p *parser) parseEnum(line string) error {
	m := enumRe.FindStringSubmatch(line)
	name, baseType := m[1], m[2]

	body, next, err := p.collectBlock(p.pos, "enum", name)
	if err != nil {
		return err
	}

	values, err := parseEnumValues(body, name)
	if err != nil {
		return err
	}

	def := &EnumDef{
		Name:     name,
		BaseType: baseType,
		Values:   values,
		Doc:      p.consumeDoc(),
	}

	p.putEnum(def)
	p.pos = next
	return nil
}

// parseUnion handles `union Name { ... }`.
func (p *parser) parseUnion(line string) error {
	name := unionRe.FindStringSubmatch(line)[1]

	body, next, err := p.collectBlock(p.pos, "union", name)
	if err != nil {
		return err
	}

	var types []string
	for _, token := range strings.Split(body, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		types = append(types, token)
	}

	p.putUnion(&UnionDef{Name: name, Types: types, Doc: p.consumeDoc()})
	p.pos = next
	return nil
}

// parseStructLike handles struct and table declarations, which share one
// field-body grammar and differ only in the target category.
func (p *parser) parseStructLike(line string, re *regexp.Regexp, kind string) error {
	name := re.FindStringSubmatch(line)[1]

	body, next, err := p.collectBlock(p.pos, kind, name)
	if err != nil {
		return err
	}

	def := &StructDef{
		Name:   name,
		Fields: p.parseFields(body),
		Doc:    p.consumeDoc(),
	}

	if kind == "struct" {
		p.putStruct(def)
	} else {
		p.putTable(def)
	}

	p.pos = next
	return nil
}

// collectBlock extracts the interior of the brace-delimited block opening at
// line index start. It counts brace depth line by line and returns the body
// with the header, one opening brace, one closing brace, and any trailer
// removed, plus the index of the first line after the block.
func (p *parser) collectBlock(start int, kind, name string) (string, int, error) {
	depth := 0
	i := start

	var collected []string
	for ; i < len(p.lines); i++ {
		depth += strings.Count(p.lines[i], "{")
		depth -= strings.Count(p.lines[i], "}")
		collected = append(collected, p.lines[i])

		if depth < 0 {
			return "", 0, fmt.Errorf("%w in %s %q starting at line %d", ErrUnbalancedBrace, kind, name, start+1)
		}

		if depth == 0 {
			break
		}
	}

	if i == len(p.lines) {
		return "", 0, fmt.Errorf("%w: %s %q starting at line %d", ErrUnterminatedBlock, kind, name, start+1)
	}

	body := strings.Join(collected, "\n")
	if open := strings.Index(body, "{"); open >= 0 {
		body = body[open+1:]
	}

	if end := strings.LastIndex(body, "}"); end >= 0 {
		body = body[:end]
	}

	return strings.TrimSpace(body), i + 1, nil
}

// skipBlockComment consumes a /* ... */ comment starting at line index start,
// collecting non-empty interior lines into buf when buf is not nil. An
// unterminated comment runs to end of input.
func (p *parser) skipBlockComment(start int, buf *[]string) int {
	i := start
	for ; i < len(p.lines); i++ {
		text := stripCommentMarkers(p.lines[i])
		if buf != nil && text != "" {
			*buf = append(*buf, text)
		}

		if strings.HasSuffix(strings.TrimSpace(p.lines[i]), "*/") {
			return i + 1
		}
	}

	return i
}

// consumeDoc joins and clears the pending doc buffer.
func (p *parser) consumeDoc() string {
	if len(p.pending) == 0 {
		return ""
	}

	doc := strings.TrimSpace(strings.Join(p.pending, "\n"))
	p.pending = nil
	return doc
}

// dropPendingDoc discards buffered doc text when a non-documentable line
// interrupts it, so comments never attach to a non-adjacent declaration.
func (p *parser) dropPendingDoc(reason string) {
	if len(p.pending) == 0 {
		return
	}

	p.logger.Debug().
		Str("source", p.source).
		Int("line", p.pos+1).
		Str("interrupted_by", reason).
		Msg("discarding unattached doc comment")
	p.pending = nil
}

// parseEnumValues splits an enum body on commas and resolves every
// enumerator to its effective integer value: an explicit `= n` overrides the
// running counter, otherwise the counter value is taken; either way the
// counter continues from one past the value just assigned.
func parseEnumValues(body, enumName string) ([]EnumValue, error) {
	var values []EnumValue

	next := 0
	for _, token := range strings.Split(body, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		name := token
		value := next
		if eq := strings.Index(token, "="); eq >= 0 {
			name = strings.TrimSpace(token[:eq])
			raw := strings.TrimSpace(token[eq+1:])

			explicit, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: enum %q enumerator %q: %q is not a base-10 integer",
					ErrEnumValue, enumName, name, raw)
			}

			value = explicit
		}

		values = append(values, EnumValue{Name: name, Value: value})
		next = value + 1
	}

	return values, nil
}

// stripDocMarker removes the leading /// marker and surrounding whitespace.
func stripDocMarker(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "/ \t"))
}

// stripCommentMarkers removes /* and */ markers from one block-comment line.
func stripCommentMarkers(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/*")
	line = strings.TrimSuffix(line, "*/")
	return strings.TrimSpace(strings.TrimLeft(line, "*"))
}

// putEnum inserts or replaces an enum, keeping the original position on
// redeclaration.
func (p *parser) putEnum(def *EnumDef) {
	for i, existing := range p.doc.Enums {
		if existing.Name == def.Name {
			p.logShadowed("enum", def.Name)
			p.doc.Enums[i] = def
			return
		}
	}

	p.doc.Enums = append(p.doc.Enums, def)
}

// putUnion inserts or replaces a union, keeping the original position on
// redeclaration.
func (p *parser) putUnion(def *UnionDef) {
	for i, existing := range p.doc.Unions {
		if existing.Name == def.Name {
			p.logShadowed("union", def.Name)
			p.doc.Unions[i] = def
			return
		}
	}

	p.doc.Unions = append(p.doc.Unions, def)
}

// putStruct inserts or replaces a struct, keeping the original position on
// redeclaration.
func (p *parser) putStruct(def *StructDef) {
	for i, existing := range p.doc.Structs {
		if existing.Name == def.Name {
			p.logShadowed("struct", def.Name)
			p.doc.Structs[i] = def
			return
		}
	}

	p.doc.Structs = append(p.doc.Structs, def)
}

// putTable inserts or replaces a table, keeping the original position on
// redeclaration.
func (p *parser) putTable(def *TableDef) {
	for i, existing := range p.doc.Tables {
		if existing.Name == def.Name {
			p.logShadowed("table", def.Name)
			p.doc.Tables[i] = def
			return
		}
	}

	p.doc.Tables = append(p.doc.Tables, def)
}

// logShadowed reports a last-wins redeclaration. The overwrite itself stays
// silent at the result level.
func (p *parser) logShadowed(kind, name string) {
	p.logger.Debug().
		Str("source", p.source).
		Str("kind", kind).
		Str("name", name).
		Msg("redeclaration shadows earlier definition")
}
