// Package golang renders a SchemaGraph as Go struct declarations.
package golang

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/emitter"
	"github.com/mcncl/jsonsynth/internal/models"
)

// DefaultPackage is used when no package name is configured.
const DefaultPackage = "main"

// Emitter writes Go source.
type Emitter struct{}

// New creates a Go emitter.
func New() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Name() string {
	return string(config.TargetGo)
}

func (e *Emitter) FileExtension() string {
	return ".go"
}

// Emit renders one struct per declaration, root first. A top-level value
// that is not an object becomes a named type of its own.
func (e *Emitter) Emit(g *models.SchemaGraph, opts config.Options) (string, error) {
	pkg := opts.Namespace
	if pkg == "" {
		pkg = DefaultPackage
	}
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by jsonsynth. DO NOT EDIT.")

	r := &renderer{nullable: opts.Nullable}
	doc := emitter.Layout(g, opts, nil)
	decls := doc.Decls
	if doc.Wrapped {
		var root jen.Code = jen.Any()
		if g.RootNode.Kind != models.Null {
			root = r.valueType(g.RootNode)
		}
		f.Type().Id(g.Root).Add(root)
		decls = decls[1:]
	}

	for _, decl := range decls {
		fields := make([]jen.Code, 0, len(decl.Fields))
		for _, field := range decl.Fields {
			fields = append(fields, r.field(field))
		}
		f.Type().Id(decl.Name).Struct(fields...)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render go source: %w", err)
	}
	return buf.String(), nil
}

type renderer struct {
	nullable config.NullablePolicy
}

// field renders one struct field. Go output always carries json tags since
// the exported identifier rarely matches the key byte for byte.
func (r *renderer) field(f emitter.Field) jen.Code {
	tag := f.Key
	if f.Nullable && r.nullable == config.NullableWrap {
		tag += ",omitempty"
	}
	return jen.Id(f.Name).Add(r.fieldType(f.Node)).Tag(map[string]string{"json": tag})
}

// fieldType is valueType with a pointer around direct object references, so
// a type may contain itself.
func (r *renderer) fieldType(n models.TypeNode) jen.Code {
	if n.Kind == models.Ref {
		return jen.Op("*").Id(n.Ref)
	}
	return r.valueType(n)
}

func (r *renderer) valueType(n models.TypeNode) jen.Code {
	switch n.Kind {
	case models.Null:
		if r.nullable == config.NullableWrap {
			return jen.Op("*").Any()
		}
		return jen.Any()
	case models.Bool:
		return jen.Bool()
	case models.Int:
		if n.Width == models.Int64 {
			return jen.Int64()
		}
		return jen.Int()
	case models.Float:
		return jen.Float64()
	case models.String:
		if n.Format == models.FormatDateTime {
			return jen.Qual("time", "Time")
		}
		return jen.String()
	case models.Array:
		if n.Elem == nil {
			return jen.Index().Any()
		}
		return jen.Index().Add(r.valueType(*n.Elem))
	case models.Ref:
		return jen.Id(n.Ref)
	default:
		return jen.Any()
	}
}
