// Package pydantic renders a SchemaGraph as pydantic v2 models.
package pydantic

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/emitter"
	"github.com/mcncl/jsonsynth/internal/models"
)

// Emitter writes Python source.
type Emitter struct{}

// New creates a pydantic emitter.
func New() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Name() string {
	return string(config.TargetPydantic)
}

func (e *Emitter) FileExtension() string {
	return ".py"
}

// Emit renders one BaseModel subclass per declaration. Root comes first, so
// any reference to a later class relies on postponed annotations.
func (e *Emitter) Emit(g *models.SchemaGraph, opts config.Options) (string, error) {
	doc := emitter.Prepare(g, opts, resolver{})
	wrapNull := opts.Nullable == config.NullableWrap

	var buf bytes.Buffer
	writeImports(&buf, doc, wrapNull)

	for _, decl := range doc.Decls {
		fmt.Fprintf(&buf, "\n\nclass %s(BaseModel):\n", decl.Name)
		if len(decl.Fields) == 0 {
			buf.WriteString("    pass\n")
			continue
		}
		for _, f := range decl.Fields {
			typ := f.Type
			hasDefault := f.Nullable && wrapNull
			if hasDefault {
				typ = "Optional[" + typ + "]"
			}
			switch {
			case f.Alias && hasDefault:
				fmt.Fprintf(&buf, "    %s: %s = Field(default=None, alias=%s)\n", f.Name, typ, emitter.Quote(f.Key))
			case f.Alias:
				fmt.Fprintf(&buf, "    %s: %s = Field(alias=%s)\n", f.Name, typ, emitter.Quote(f.Key))
			case hasDefault:
				fmt.Fprintf(&buf, "    %s: %s = None\n", f.Name, typ)
			default:
				fmt.Fprintf(&buf, "    %s: %s\n", f.Name, typ)
			}
		}
	}
	return buf.String(), nil
}

// writeImports writes the future, standard library and pydantic import
// groups, each only when something below needs it.
func writeImports(buf *bytes.Buffer, doc *emitter.Document, wrapNull bool) {
	if doc.Uses(emitter.IsKind(models.Ref)) {
		buf.WriteString("from __future__ import annotations\n\n")
	}

	var stdlib []string
	if doc.Uses(emitter.IsFormat(models.FormatDateTime, models.FormatDate, models.FormatTime)) {
		stdlib = append(stdlib, "import datetime")
	}
	if doc.Uses(emitter.IsFormat(models.FormatIPv4)) {
		stdlib = append(stdlib, "from ipaddress import IPv4Address")
	}
	var typing []string
	if doc.Uses(emitter.IsKind(models.Unknown, models.Null)) {
		typing = append(typing, "Any")
	}
	if wrapNull && doc.HasNullable() {
		typing = append(typing, "Optional")
	}
	if len(typing) > 0 {
		stdlib = append(stdlib, "from typing import "+strings.Join(typing, ", "))
	}
	if doc.Uses(emitter.IsFormat(models.FormatUUID)) {
		stdlib = append(stdlib, "from uuid import UUID")
	}
	for _, line := range stdlib {
		buf.WriteString(line + "\n")
	}
	if len(stdlib) > 0 {
		buf.WriteString("\n")
	}

	if doc.HasAlias() {
		buf.WriteString("from pydantic import BaseModel, Field\n")
	} else {
		buf.WriteString("from pydantic import BaseModel\n")
	}
}

type resolver struct{}

func (resolver) Primitive(n models.TypeNode) string {
	switch n.Kind {
	case models.Bool:
		return "bool"
	case models.Int:
		return "int"
	case models.Float:
		return "float"
	}
	switch n.Format {
	case models.FormatDateTime:
		return "datetime.datetime"
	case models.FormatDate:
		return "datetime.date"
	case models.FormatTime:
		return "datetime.time"
	case models.FormatUUID:
		return "UUID"
	case models.FormatIPv4:
		return "IPv4Address"
	default:
		return "str"
	}
}

func (resolver) Array(elem string) string {
	return "list[" + elem + "]"
}

func (resolver) Ref(name string) string {
	return name
}

func (resolver) Unknown() string {
	return "Any"
}

// Null is the bare top type; Emit adds Optional and the None default under
// the wrap policy.
func (resolver) Null(config.NullablePolicy) string {
	return "Any"
}

// reserved holds Python keywords and BaseModel attributes a field must not
// shadow.
var reserved = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true, "assert": true,
	"async": true, "await": true, "break": true, "class": true, "continue": true, "def": true,
	"del": true, "elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,

	"construct": true, "copy": true, "dict": true, "fields": true, "json": true,
	"schema": true, "schema_json": true, "validate": true, "model_config": true,
	"model_fields": true, "model_dump": true, "model_validate": true,
}

// imported are the names the preamble can bind at module level.
var imported = map[string]bool{
	"Any": true, "BaseModel": true, "Field": true, "IPv4Address": true, "Optional": true,
	"UUID": true,
}

func (resolver) RenameType(name string) string {
	if imported[name] {
		return name + "Model"
	}
	return name
}

// Rename appends an underscore to reserved names and drops leading
// underscores, which pydantic reserves for private attributes.
func (resolver) Rename(name, _ string) string {
	name = strings.TrimLeft(name, "_")
	if name == "" {
		return "field"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "n_" + name
	}
	if reserved[name] {
		return name + "_"
	}
	return name
}
