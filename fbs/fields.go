// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package fbs

import (
	"regexp"
	"strings"
)

// fieldRe matches one field declaration: name, colon, type token (optionally
// vector-bracketed), an optional default clause running to the next '(' or
// end of line, and an optional parenthesised metadata clause.
var fieldRe = regexp.MustCompile(`^(\w+)\s*:\s*([\w\[\]]+)(\s*=\s*[^()]+)?(\s*\([^)]*\))?`)

// parseFields walks the interior of one struct or table body line by line
// with its own doc buffer, scoped to this block. Field references resolve
// against the complete set of local names collected in pass one, so forward
// references behave the same as backward ones.
func (p *parser) parseFields(body string) []*Field {
	var fields []*Field
	var pending []string

	lines := strings.Split(body, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "" || strings.HasPrefix(line, "}"):
			continue

		case strings.HasPrefix(line, "///"):
			pending = append(pending, stripDocMarker(line))

		case strings.HasPrefix(line, "//"):
			continue

		case strings.HasPrefix(line, "/*"):
			for ; i < len(lines); i++ {
				if text := stripCommentMarkers(lines[i]); text != "" {
					pending = append(pending, text)
				}

				if strings.HasSuffix(strings.TrimSpace(lines[i]), "*/") {
					break
				}
			}

		default:
			m := fieldRe.FindStringSubmatch(line)
			if m == nil {
				p.logger.Debug().
					Str("source", p.source).
					Str("text", line).
					Msg("skipping unrecognized field line")
				pending = nil
				continue
			}

			field := &Field{
				Name:     m[1],
				Type:     strings.TrimSpace(m[2]),
				Default:  trimDefault(m[3]),
				Metadata: stripMetadataParens(m[4]),
				Doc:      joinDoc(pending),
				Ref:      p.localRef(m[2]),
			}
			pending = nil

			fields = putField(fields, field)
		}
	}

	return fields
}

// localRef resolves the element type of a field against the document's local
// declarations. Vector brackets are removed first since only the element
// type can name a local declaration; builtins never resolve.
func (p *parser) localRef(fieldType string) string {
	element := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(fieldType), "["), "]")
	if IsBuiltinType(element) {
		return ""
	}

	if _, ok := p.locals[element]; ok {
		return element
	}

	return ""
}

// putField appends or replaces a field, keeping the original position on
// redeclaration.
func putField(fields []*Field, field *Field) []*Field {
	for i, existing := range fields {
		if existing.Name == field.Name {
			fields[i] = field
			return fields
		}
	}

	return append(fields, field)
}

// trimDefault strips the leading '=', surrounding whitespace, and the line
// terminator from a raw default clause.
func trimDefault(clause string) string {
	clause = strings.Trim(clause, " \t=")
	clause = strings.TrimSuffix(clause, ";")
	return strings.TrimSpace(clause)
}

// stripMetadataParens removes the enclosing parentheses from a metadata clause.
func stripMetadataParens(clause string) string {
	clause = strings.TrimSpace(clause)
	clause = strings.TrimPrefix(clause, "(")
	clause = strings.TrimSuffix(clause, ")")
	return strings.TrimSpace(clause)
}

// joinDoc joins buffered doc lines into one newline-separated string.
func joinDoc(pending []string) string {
	if len(pending) == 0 {
		return ""
	}

	return strings.TrimSpace(strings.Join(pending, "\n"))
}
