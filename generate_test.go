// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package asyncapidoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const telemetryAPIDocument = `asyncapi: 3.0.0
info:
  title: Telemetry API
  version: 1.0.0
channels:
  readings:
    address: telemetry/readings
    messages:
      reading:
        payload:
          schemaFormat: application/vnd.flatbuffers
          schema: reading.fbs
operations:
  publishReading:
    action: send
    channel:
      $ref: '#/channels/readings'
`

const telemetrySchema = `
namespace telemetry;

table Reading {
  device:string;
  value:double;
}

root_type Reading;
`

// buildFixture lays out api, schema, and output directories for one build.
func buildFixture(t *testing.T) Options {
	t.Helper()

	root := t.TempDir()
	apiDir := filepath.Join(root, "api")
	schemaDir := filepath.Join(root, "flatbuffers")
	for _, dir := range []string{apiDir, schemaDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	if err := os.WriteFile(filepath.Join(apiDir, "telemetry.yaml"), []byte(telemetryAPIDocument), 0o600); err != nil {
		t.Fatalf("write api document: %v", err)
	}

	if err := os.WriteFile(filepath.Join(schemaDir, "reading.fbs"), []byte(telemetrySchema), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	return Options{
		APIPath:   apiDir,
		SchemaDir: schemaDir,
		OutputDir: filepath.Join(root, "docs"),
	}
}

func TestGenerateAll(t *testing.T) {
	t.Parallel()

	opt := buildFixture(t)
	result, err := GenerateAll(opt)
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}

	if len(result.Pages) != 1 || result.Pages[0].Name != "telemetry" {
		t.Fatalf("pages = %+v", result.Pages)
	}

	page, err := os.ReadFile(filepath.Join(opt.OutputDir, "telemetry.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}

	for _, fragment := range []string{"Telemetry API", "publishReading", "Reading", "device"} {
		if !strings.Contains(string(page), fragment) {
			t.Fatalf("page should contain %q", fragment)
		}
	}

	index, err := os.ReadFile(filepath.Join(opt.OutputDir, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}

	if !strings.Contains(string(index), "telemetry.html") {
		t.Fatal("index should list generated page")
	}
}

func TestGenerateAllSingleFile(t *testing.T) {
	t.Parallel()

	opt := buildFixture(t)
	opt.APIPath = filepath.Join(opt.APIPath, "telemetry.yaml")

	result, err := GenerateAll(opt)
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}

	if len(result.Pages) != 1 {
		t.Fatalf("pages = %+v", result.Pages)
	}
}

func TestGenerateAllSkipsBrokenDocument(t *testing.T) {
	t.Parallel()

	opt := buildFixture(t)
	broken := filepath.Join(opt.APIPath, "broken.yaml")
	if err := os.WriteFile(broken, []byte("info:\n  title: no channels\n"), 0o600); err != nil {
		t.Fatalf("write broken document: %v", err)
	}

	result, err := GenerateAll(opt)
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}

	if len(result.Pages) != 1 || result.Pages[0].Name != "telemetry" {
		t.Fatalf("pages = %+v", result.Pages)
	}

	if len(result.Failed) != 1 || !strings.HasSuffix(result.Failed[0], "broken.yaml") {
		t.Fatalf("failed = %+v", result.Failed)
	}

	if _, err := os.Stat(filepath.Join(opt.OutputDir, "broken.html")); !os.IsNotExist(err) {
		t.Fatal("broken document should not produce a page")
	}
}

func TestGenerateAllMissingSchemaStillGenerates(t *testing.T) {
	t.Parallel()

	opt := buildFixture(t)
	if err := os.Remove(filepath.Join(opt.SchemaDir, "reading.fbs")); err != nil {
		t.Fatalf("remove schema: %v", err)
	}

	result, err := GenerateAll(opt)
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}

	if len(result.Pages) != 1 {
		t.Fatalf("pages = %+v", result.Pages)
	}

	page, err := os.ReadFile(filepath.Join(opt.OutputDir, "telemetry.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}

	if strings.Contains(string(page), "Payload table") {
		t.Fatal("missing schema should render no payload detail")
	}
}

func TestGenerateAllEmptyInput(t *testing.T) {
	t.Parallel()

	opt := buildFixture(t)
	opt.APIPath = filepath.Join(filepath.Dir(opt.OutputDir), "absent")

	result, err := GenerateAll(opt)
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}

	if len(result.Pages) != 0 {
		t.Fatalf("pages = %+v, want none", result.Pages)
	}
}
