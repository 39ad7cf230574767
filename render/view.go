// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package render

import (
	"strings"

	"github.com/anshul-agrawal-ctct/asyncapidoc/asyncapi"
	"github.com/anshul-agrawal-ctct/asyncapidoc/fbs"
)

// pageView is the root view model passed to the page template.
type pageView struct {
	Title       string
	Version     string
	Description string
	LiveReload  bool
	Servers     []serverView
	Operations  []operationView
}

// serverView is one server entry on the page header.
type serverView struct {
	Name            string
	Host            string
	Protocol        string
	ProtocolVersion string
}

// operationView is one operation section.
type operationView struct {
	ID                 string
	Action             string
	ChannelAddress     string
	ChannelDescription string
	Messages           []messageView
}

// messageView is one message entry with its payload schema sections.
type messageView struct {
	Name         string
	Schema       string
	SchemaFormat string
	HasPayload   bool
	Payloads     []payloadView
	Enums        []enumView
	Unions       []unionView
}

// payloadView is one struct or table section with its ordered fields.
type payloadView struct {
	Kind   string
	Name   string
	Doc    string
	Fields []fieldView
}

// fieldView is one field row in a payload table.
type fieldView struct {
	Name     string
	Type     string
	Default  string
	Metadata string
	Doc      string
	Ref      string
}

// enumView is one enum section with its ordered enumerator values.
type enumView struct {
	Name     string
	BaseType string
	Doc      string
	Values   []enumValueView
}

// enumValueView is one enumerator row.
type enumValueView struct {
	Name  string
	Value int
}

// unionView is one union section.
type unionView struct {
	Name  string
	Doc   string
	Types string
}

// indexView is the root view model passed to the index template.
type indexView struct {
	Entries    []IndexEntry
	LiveReload bool
}

// buildPageView projects one AsyncAPI document and its extracted operations
// into the page view model.
func buildPageView(doc *asyncapi.Document, ops []asyncapi.Operation, opt Options) pageView {
	info := doc.Info()

	view := pageView{
		Title:       info.Title,
		Version:     info.Version,
		Description: info.Description,
		LiveReload:  opt.LiveReload,
		Operations:  make([]operationView, 0, len(ops)),
	}

	for _, server := range doc.Servers() {
		view.Servers = append(view.Servers, serverView(server))
	}

	for _, op := range ops {
		operation := operationView{
			ID:                 op.ID,
			Action:             op.Action,
			ChannelAddress:     op.ChannelAddress,
			ChannelDescription: op.ChannelDescription,
			Messages:           make([]messageView, 0, len(op.Messages)),
		}

		for _, msg := range op.Messages {
			operation.Messages = append(operation.Messages, buildMessageView(msg))
		}

		view.Operations = append(view.Operations, operation)
	}

	return view
}

// buildMessageView projects one message and its parsed payload schema.
func buildMessageView(msg asyncapi.Message) messageView {
	view := messageView{
		Name:         msg.Name,
		Schema:       msg.Schema,
		SchemaFormat: msg.SchemaFormat,
	}

	payload := msg.Payload
	if payload == nil {
		return view
	}

	view.HasPayload = true

	for _, def := range payload.Structs {
		view.Payloads = append(view.Payloads, buildPayloadView("struct", def))
	}

	for _, def := range payload.Tables {
		view.Payloads = append(view.Payloads, buildPayloadView("table", def))
	}

	for _, def := range payload.Enums {
		enum := enumView{
			Name:     def.Name,
			BaseType: def.BaseType,
			Doc:      def.Doc,
			Values:   make([]enumValueView, 0, len(def.Values)),
		}

		for _, value := range def.Values {
			enum.Values = append(enum.Values, enumValueView(value))
		}

		view.Enums = append(view.Enums, enum)
	}

	for _, def := range payload.Unions {
		view.Unions = append(view.Unions, unionView{
			Name:  def.Name,
			Doc:   def.Doc,
			Types: strings.Join(def.Types, ", "),
		})
	}

	return view
}

// buildPayloadView projects one struct or table with its fields in
// declaration order.
func buildPayloadView(kind string, def *fbs.StructDef) payloadView {
	view := payloadView{
		Kind:   kind,
		Name:   def.Name,
		Doc:    def.Doc,
		Fields: make([]fieldView, 0, len(def.Fields)),
	}

	for _, field := range def.Fields {
		view.Fields = append(view.Fields, fieldView{
			Name:     field.Name,
			Type:     field.Type,
			Default:  field.Default,
			Metadata: field.Metadata,
			Doc:      field.Doc,
			Ref:      field.Ref,
		})
	}

	return view
}
