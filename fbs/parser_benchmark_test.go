// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

package fbs

import (
	"strings"
	"testing"
)

// benchmarkSchema builds a schema with many tables and cross references.
func benchmarkSchema() []byte {
	var b strings.Builder
	b.WriteString("namespace bench;\n\n")
	b.WriteString("enum Kind : int { A, B = 10, C }\n\n")

	for i := 0; i < 50; i++ {
		name := "T" + strings.Repeat("x", i%5) + string(rune('A'+i%26))
		b.WriteString("/// Generated table.\n")
		b.WriteString("table " + name + " {\n")
		b.WriteString("  id:int = 1 (key);\n")
		b.WriteString("  kind:Kind;\n")
		b.WriteString("  tags:[string];\n")
		b.WriteString("}\n\n")
	}

	b.WriteString("root_type TA;\n")
	return []byte(b.String())
}

func BenchmarkParse(b *testing.B) {
	content := benchmarkSchema()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Parse(content, Options{}); err != nil {
			b.Fatalf("Parse: %v", err)
		}
	}
}
