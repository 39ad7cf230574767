// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cliAPIDocument = `asyncapi: 3.0.0
info:
  title: CLI API
  version: 1.0.0
channels:
  events:
    address: cli/events
    messages:
      event:
        payload:
          schemaFormat: application/vnd.flatbuffers
          schema: event.fbs
operations:
  publishEvent:
    action: send
    channel:
      $ref: '#/channels/events'
`

const cliSchema = `
namespace cli;

table Event {
  id:int;
  name:string;
}

root_type Event;
`

// cliFixture lays out api and schema directories and returns generate args.
func cliFixture(t *testing.T) (apiDir, schemaDir, outputDir string) {
	t.Helper()

	root := t.TempDir()
	apiDir = filepath.Join(root, "api")
	schemaDir = filepath.Join(root, "flatbuffers")
	outputDir = filepath.Join(root, "docs")

	for _, dir := range []string{apiDir, schemaDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	if err := os.WriteFile(filepath.Join(apiDir, "cli.yaml"), []byte(cliAPIDocument), 0o600); err != nil {
		t.Fatalf("write api document: %v", err)
	}

	if err := os.WriteFile(filepath.Join(schemaDir, "event.fbs"), []byte(cliSchema), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	return apiDir, schemaDir, outputDir
}

func TestGenerateCommand(t *testing.T) {
	apiDir, schemaDir, outputDir := cliFixture(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"generate", "-a", apiDir, "-s", schemaDir, "-o", outputDir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "cli.html") {
		t.Fatalf("stdout = %q, want generated page path", stdout.String())
	}

	page, err := os.ReadFile(filepath.Join(outputDir, "cli.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}

	if !strings.Contains(string(page), "CLI API") {
		t.Fatal("page should contain API title")
	}

	if _, err := os.Stat(filepath.Join(outputDir, "index.html")); err != nil {
		t.Fatalf("index missing: %v", err)
	}
}

func TestGenerateCommandFailedDocument(t *testing.T) {
	apiDir, schemaDir, outputDir := cliFixture(t)
	if err := os.WriteFile(filepath.Join(apiDir, "broken.yaml"), []byte("info: {}\n"), 0o600); err != nil {
		t.Fatalf("write broken document: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"generate", "-a", apiDir, "-s", schemaDir, "-o", outputDir}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	// The valid document still produced its page.
	if _, err := os.Stat(filepath.Join(outputDir, "cli.html")); err != nil {
		t.Fatalf("valid page missing: %v", err)
	}
}

func TestUnknownFlagExitCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"generate", "--no-such-flag"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}

	if stderr.Len() == 0 {
		t.Fatal("expected flag error on stderr")
	}
}

func TestHelpExitCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--help"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	if !strings.Contains(stdout.String(), "generate") {
		t.Fatalf("help output = %q", stdout.String())
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"version"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	if !strings.Contains(stdout.String(), "version:") {
		t.Fatalf("version output = %q", stdout.String())
	}
}
