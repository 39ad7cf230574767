// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

// Package fbs parses FlatBuffers schema (.fbs) files into an immutable
// Document for documentation rendering. The parser is structural only: it
// records declarations, field shapes, and attached doc comments, and does
// not validate types or compile serialization code.
package fbs

// builtinTypes lists FlatBuffers scalar and string type names. A field whose
// element type is a builtin never resolves as a local reference.
var builtinTypes = map[string]struct{}{
	"bool":    {},
	"byte":    {},
	"ubyte":   {},
	"short":   {},
	"ushort":  {},
	"int":     {},
	"uint":    {},
	"float":   {},
	"double":  {},
	"long":    {},
	"ulong":   {},
	"int8":    {},
	"uint8":   {},
	"int16":   {},
	"uint16":  {},
	"int32":   {},
	"uint32":  {},
	"int64":   {},
	"uint64":  {},
	"float32": {},
	"float64": {},
	"string":  {},
}

// IsBuiltinType reports whether name is a FlatBuffers scalar or string type.
func IsBuiltinType(name string) bool {
	_, ok := builtinTypes[name]
	return ok
}

// Document is the complete result of parsing one schema file. Declaration
// slices preserve source order; names are unique per category, and a
// redeclaration silently replaces the earlier entry in place. A Document is
// built once per parse and never mutated afterwards.
type Document struct {
	// Namespace is the dotted namespace path, empty when the file declares none.
	Namespace string
	// Attributes lists declared attribute names in source order, duplicates kept.
	Attributes []string
	// RootType is the declared root type name, empty when the file declares none.
	RootType string

	Enums   []*EnumDef
	Unions  []*UnionDef
	Structs []*StructDef
	Tables  []*StructDef
}

// EnumDef is one enum declaration with resolved enumerator values.
type EnumDef struct {
	Name     string
	BaseType string
	Doc      string
	// Values preserves enumerator declaration order. Every value carries its
	// effective integer, auto-increment already applied.
	Values []EnumValue
}

// EnumValue is one enumerator with its effective integer value.
type EnumValue struct {
	Name  string
	Value int
}

// UnionDef is one union declaration. Member type names are stored as written
// and never validated against declared types.
type UnionDef struct {
	Name  string
	Doc   string
	Types []string
}

// StructDef is one struct or table declaration. Structs and tables share the
// same shape and differ only in which Document category holds them.
type StructDef struct {
	Name   string
	Doc    string
	Fields []*Field
}

// TableDef is an alias for StructDef; tables and structs carry identical data.
type TableDef = StructDef

// Field is one field declaration inside a struct or table.
type Field struct {
	Name string
	// Type is the raw lexical type token, vector brackets included ("[int]").
	Type string
	// Default is the raw default expression text, empty when absent.
	Default string
	// Metadata is the metadata clause with enclosing parentheses stripped.
	Metadata string
	Doc      string
	// Ref names the locally declared enum, struct, or table the element type
	// resolves to, empty for builtins and unknown types.
	Ref string
}

// Empty reports whether the document carries no declarations at all, as
// returned for a missing schema file.
func (d *Document) Empty() bool {
	return d.Namespace == "" && d.RootType == "" &&
		len(d.Attributes) == 0 && len(d.Enums) == 0 && len(d.Unions) == 0 &&
		len(d.Structs) == 0 && len(d.Tables) == 0
}

// Enum returns the enum declared under name, or nil.
func (d *Document) Enum(name string) *EnumDef {
	for _, e := range d.Enums {
		if e.Name == name {
			return e
		}
	}

	return nil
}

// Union returns the union declared under name, or nil.
func (d *Document) Union(name string) *UnionDef {
	for _, u := range d.Unions {
		if u.Name == name {
			return u
		}
	}

	return nil
}

// Struct returns the struct declared under name, or nil.
func (d *Document) Struct(name string) *StructDef {
	for _, s := range d.Structs {
		if s.Name == name {
			return s
		}
	}

	return nil
}

// Table returns the table declared under name, or nil.
func (d *Document) Table(name string) *TableDef {
	for _, t := range d.Tables {
		if t.Name == name {
			return t
		}
	}

	return nil
}

// Field returns the field declared under name, or nil.
func (s *StructDef) Field(name string) *Field {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}

	return nil
}
