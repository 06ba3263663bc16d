// Package kotlin renders a SchemaGraph as kotlinx.serialization data
// classes.
package kotlin

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/emitter"
	"github.com/mcncl/jsonsynth/internal/models"
)

// Emitter writes Kotlin source.
type Emitter struct{}

// New creates a Kotlin emitter.
func New() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Name() string {
	return string(config.TargetKotlin)
}

func (e *Emitter) FileExtension() string {
	return ".kt"
}

// Emit renders one @Serializable data class per declaration. Fields become
// constructor properties in key order; a declaration without fields is a
// plain class because data classes need at least one.
func (e *Emitter) Emit(g *models.SchemaGraph, opts config.Options) (string, error) {
	doc := emitter.Prepare(g, opts, resolver{})
	wrapNull := opts.Nullable == config.NullableWrap

	var buf bytes.Buffer
	if doc.Namespace != "" {
		fmt.Fprintf(&buf, "package %s\n\n", doc.Namespace)
	}
	for _, imp := range importsFor(doc) {
		fmt.Fprintf(&buf, "import %s\n", imp)
	}
	buf.WriteString("\n")

	for i, decl := range doc.Decls {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString("@Serializable\n")
		if len(decl.Fields) == 0 {
			fmt.Fprintf(&buf, "class %s\n", decl.Name)
			continue
		}
		fmt.Fprintf(&buf, "data class %s(\n", decl.Name)
		for _, f := range decl.Fields {
			buf.WriteString("    ")
			if f.Alias {
				fmt.Fprintf(&buf, "@SerialName(%s) ", quote(f.Key))
			}
			fmt.Fprintf(&buf, "val %s: %s", escape(f.Name), f.Type)
			if f.Nullable && wrapNull {
				buf.WriteString(" = null")
			}
			buf.WriteString(",\n")
		}
		buf.WriteString(")\n")
	}
	return buf.String(), nil
}

func importsFor(doc *emitter.Document) []string {
	var imports []string
	if doc.HasAlias() {
		imports = append(imports, "kotlinx.serialization.SerialName")
	}
	imports = append(imports, "kotlinx.serialization.Serializable")
	if doc.Uses(emitter.IsKind(models.Unknown, models.Null)) {
		imports = append(imports, "kotlinx.serialization.json.JsonElement")
	}
	return imports
}

type resolver struct{}

// Primitive keeps every string format as String; kotlinx.serialization has
// no built-in serializers for java.time or UUID.
func (resolver) Primitive(n models.TypeNode) string {
	switch n.Kind {
	case models.Bool:
		return "Boolean"
	case models.Int:
		if n.Width == models.Int64 {
			return "Long"
		}
		return "Int"
	case models.Float:
		return "Double"
	default:
		return "String"
	}
}

func (resolver) Array(elem string) string {
	return "List<" + elem + ">"
}

func (resolver) Ref(name string) string {
	return name
}

func (resolver) Unknown() string {
	return "JsonElement"
}

func (resolver) Null(policy config.NullablePolicy) string {
	if policy == config.NullableWrap {
		return "JsonElement?"
	}
	return "JsonElement"
}

func (resolver) Rename(name, _ string) string {
	return name
}

// builtins are the types the output names unqualified.
var builtins = map[string]bool{
	"Any": true, "Boolean": true, "Double": true, "Int": true, "JsonElement": true,
	"List": true, "Long": true, "SerialName": true, "Serializable": true, "String": true,
}

func (resolver) RenameType(name string) string {
	if builtins[name] {
		return name + "Type"
	}
	return name
}

var keywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true, "else": true,
	"false": true, "for": true, "fun": true, "if": true, "in": true, "interface": true,
	"is": true, "null": true, "object": true, "package": true, "return": true, "super": true,
	"this": true, "throw": true, "true": true, "try": true, "typealias": true, "typeof": true,
	"val": true, "var": true, "when": true, "while": true,
}

func escape(name string) string {
	if keywords[name] {
		return "`" + name + "`"
	}
	return name
}

// quote also escapes $, which starts a string template in Kotlin.
func quote(s string) string {
	return strings.ReplaceAll(emitter.Quote(s), "$", `\$`)
}
