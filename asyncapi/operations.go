// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package asyncapi

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/anshul-agrawal-ctct/asyncapidoc/fbs"
)

// schemaFileExt marks payload schema references handled by the fbs parser.
const schemaFileExt = ".fbs"

// Operation is one extracted operation with its channel and messages.
type Operation struct {
	ID                 string
	Action             string
	Channel            string
	ChannelRef         string
	ChannelAddress     string
	ChannelDescription string
	Messages           []Message
}

// Message is one channel message. Payload is nil when the message declares
// no FlatBuffers schema or the referenced file is missing or malformed.
type Message struct {
	Name         string
	Schema       string
	SchemaFormat string
	SchemaFile   string
	Payload      *fbs.Document
}

// OperationsOptions configures operation extraction.
type OperationsOptions struct {
	// SchemaDir is the base directory relative payload schema references
	// resolve against.
	SchemaDir string
	// Logger receives per-schema diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// logger returns the configured logger or a no-op fallback.
func (o OperationsOptions) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}

	return *o.Logger
}

// Operations extracts every declared operation, resolving channel references
// and parsing linked FlatBuffers schemas. A missing or malformed schema file
// never aborts extraction; the affected message simply carries no payload
// detail. Operations and messages are ordered by name for deterministic
// rendering.
func (d *Document) Operations(opt OperationsOptions) []Operation {
	operations := asMap(d.root["operations"])
	if len(operations) == 0 {
		return nil
	}

	logger := opt.logger()

	out := make([]Operation, 0, len(operations))
	for _, id := range sortedKeys(operations) {
		operation := asMap(operations[id])

		extracted := Operation{
			ID:     id,
			Action: asString(operation["action"]),
		}

		ref := asString(asMap(operation["channel"])["$ref"])
		if ref != "" {
			extracted.ChannelRef = ref
			extracted.Channel = ref[strings.LastIndex(ref, "/")+1:]

			if resolved, ok := d.Resolve(ref); ok {
				channel := asMap(resolved)
				extracted.ChannelAddress = asString(channel["address"])
				extracted.ChannelDescription = asString(channel["description"])
				extracted.Messages = d.channelMessages(channel, opt, logger)
			} else {
				logger.Warn().Str("document", d.path).Str("ref", ref).Msg("channel reference does not resolve")
			}
		}

		out = append(out, extracted)
	}

	return out
}

// channelMessages extracts messages declared on one resolved channel.
func (d *Document) channelMessages(channel map[string]any, opt OperationsOptions, logger zerolog.Logger) []Message {
	messages := asMap(channel["messages"])
	if len(messages) == 0 {
		return nil
	}

	out := make([]Message, 0, len(messages))
	for _, name := range sortedKeys(messages) {
		message := asMap(messages[name])
		payload := asMap(message["payload"])

		extracted := Message{
			Name:         name,
			Schema:       asString(payload["schema"]),
			SchemaFormat: asString(payload["schemaFormat"]),
		}

		if strings.HasSuffix(extracted.Schema, schemaFileExt) {
			extracted.SchemaFile = resolveSchemaPath(opt.SchemaDir, extracted.Schema)
			extracted.Payload = parseSchemaFile(extracted.SchemaFile, logger)
		}

		out = append(out, extracted)
	}

	return out
}

// resolveSchemaPath joins relative schema references with the configured
// base directory; absolute references are used as-is.
func resolveSchemaPath(baseDir, schema string) string {
	if filepath.IsAbs(schema) {
		return schema
	}

	return filepath.Join(baseDir, schema)
}

// parseSchemaFile parses one payload schema, mapping empty and failed
// results to a nil payload.
func parseSchemaFile(path string, logger zerolog.Logger) *fbs.Document {
	doc, err := fbs.ParseFile(path, fbs.Options{Logger: &logger})
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("failed to parse payload schema")
		return nil
	}

	if doc.Empty() {
		return nil
	}

	return doc
}
