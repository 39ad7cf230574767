// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

/*
Package asyncapidoc renders browsable HTML documentation from AsyncAPI
descriptions whose message payloads are declared as FlatBuffers schemas.

The package ties three collaborators together: the fbs package parses
FlatBuffers schema files into structural Documents, the asyncapi package
loads event-API descriptions and resolves their channel and payload
references, and the render package turns the merged result into static HTML
pages plus a searchable index.

Generate documentation for a directory of AsyncAPI documents:

	result, err := asyncapidoc.GenerateAll(asyncapidoc.Options{
		APIPath:   "./api",
		SchemaDir: "./flatbuffers",
		OutputDir: "./docs",
	})
	if err != nil {
		return err
	}

	for _, page := range result.Pages {
		fmt.Println(page.File)
	}

Parse a single FlatBuffers schema:

	doc, err := fbs.ParseFile("reading.fbs", fbs.Options{})
	if err != nil {
		return err
	}

	for _, table := range doc.Tables {
		fmt.Println(table.Name, len(table.Fields))
	}

A failure on one document never aborts a batch: the affected page is skipped
and listed in Result.Failed, and a missing payload schema file yields a page
without payload detail rather than an error. Pass a zerolog logger through
Options.Logger to observe these diagnostics.
*/
package asyncapidoc
