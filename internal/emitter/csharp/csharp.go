// Package csharp renders a SchemaGraph as C# classes for System.Text.Json.
package csharp

import (
	"bytes"
	"fmt"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/emitter"
	"github.com/mcncl/jsonsynth/internal/models"
)

// Emitter writes C# source.
type Emitter struct{}

// New creates a C# emitter.
func New() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Name() string {
	return string(config.TargetCSharp)
}

func (e *Emitter) FileExtension() string {
	return ".cs"
}

// Emit renders one class with auto-properties per declaration.
func (e *Emitter) Emit(g *models.SchemaGraph, opts config.Options) (string, error) {
	doc := emitter.Prepare(g, opts, resolver{})

	var buf bytes.Buffer
	usings := usingsFor(doc)
	for _, u := range usings {
		fmt.Fprintf(&buf, "using %s;\n", u)
	}
	if len(usings) > 0 {
		buf.WriteString("\n")
	}
	if doc.Namespace != "" {
		fmt.Fprintf(&buf, "namespace %s;\n\n", doc.Namespace)
	}

	for i, decl := range doc.Decls {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "public class %s\n{\n", decl.Name)
		for _, f := range decl.Fields {
			if f.Alias {
				fmt.Fprintf(&buf, "    [JsonPropertyName(%s)]\n", emitter.Quote(f.Key))
			}
			fmt.Fprintf(&buf, "    public %s %s { get; set; }\n", f.Type, escape(f.Name))
		}
		buf.WriteString("}\n")
	}
	return buf.String(), nil
}

func usingsFor(doc *emitter.Document) []string {
	var usings []string
	if doc.Uses(emitter.IsFormat(models.FormatDateTime, models.FormatDate, models.FormatTime, models.FormatUUID, models.FormatURI)) {
		usings = append(usings, "System")
	}
	if doc.Uses(emitter.IsKind(models.Array)) {
		usings = append(usings, "System.Collections.Generic")
	}
	if doc.HasAlias() {
		usings = append(usings, "System.Text.Json.Serialization")
	}
	return usings
}

type resolver struct{}

func (resolver) Primitive(n models.TypeNode) string {
	switch n.Kind {
	case models.Bool:
		return "bool"
	case models.Int:
		if n.Width == models.Int64 {
			return "long"
		}
		return "int"
	case models.Float:
		return "double"
	}
	switch n.Format {
	case models.FormatDateTime:
		return "DateTimeOffset"
	case models.FormatDate:
		return "DateOnly"
	case models.FormatTime:
		return "TimeOnly"
	case models.FormatUUID:
		return "Guid"
	case models.FormatURI:
		return "Uri"
	default:
		return "string"
	}
}

func (resolver) Array(elem string) string {
	return "List<" + elem + ">"
}

func (resolver) Ref(name string) string {
	return name
}

func (resolver) Unknown() string {
	return "object"
}

func (resolver) Null(policy config.NullablePolicy) string {
	if policy == config.NullableWrap {
		return "object?"
	}
	return "object"
}

// Rename moves a member off the name of its enclosing class, which C#
// forbids.
func (resolver) Rename(name, owner string) string {
	if name == owner {
		return name + "Value"
	}
	return name
}

// systemTypes are the types the output names through its usings.
var systemTypes = map[string]bool{
	"DateOnly": true, "DateTimeOffset": true, "Guid": true, "JsonPropertyName": true,
	"List": true, "Object": true, "String": true, "TimeOnly": true, "Uri": true,
}

func (resolver) RenameType(name string) string {
	if systemTypes[name] {
		return name + "Type"
	}
	return name
}

var keywords = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "checked": true, "class": true, "const": true,
	"continue": true, "decimal": true, "default": true, "delegate": true, "do": true,
	"double": true, "else": true, "enum": true, "event": true, "explicit": true,
	"extern": true, "false": true, "finally": true, "fixed": true, "float": true, "for": true,
	"foreach": true, "goto": true, "if": true, "implicit": true, "in": true, "int": true,
	"interface": true, "internal": true, "is": true, "lock": true, "long": true,
	"namespace": true, "new": true, "null": true, "object": true, "operator": true,
	"out": true, "override": true, "params": true, "private": true, "protected": true,
	"public": true, "readonly": true, "ref": true, "return": true, "sbyte": true,
	"sealed": true, "short": true, "sizeof": true, "stackalloc": true, "static": true,
	"string": true, "struct": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "uint": true, "ulong": true, "unchecked": true,
	"unsafe": true, "ushort": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "while": true,
}

// escape prefixes keywords with @, which does not change the member name
// System.Text.Json sees.
func escape(name string) string {
	if keywords[name] {
		return "@" + name
	}
	return name
}
