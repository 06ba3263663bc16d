// Package jsonschema renders a SchemaGraph as a draft 2020-12 JSON Schema
// document.
package jsonschema

import (
	"fmt"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/models"
	"github.com/mcncl/jsonsynth/internal/schema"
)

const defsPrefix = "#/$defs/"

// Emitter writes JSON Schema documents.
type Emitter struct{}

// New creates a JSON Schema emitter.
func New() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Name() string {
	return string(config.TargetJSONSchema)
}

func (e *Emitter) FileExtension() string {
	return ".schema.json"
}

// Emit builds the document. An object root is described inline at the top
// level and referenced as "#"; every other type lives under $defs in the
// order it was discovered. Property names are the original JSON keys.
func (e *Emitter) Emit(g *models.SchemaGraph, opts config.Options) (string, error) {
	w := &writer{graph: g, opts: opts, inlineRoot: g.RootNode.Kind == models.Ref}

	var doc *schema.Schema
	if w.inlineRoot {
		root, _ := g.Get(g.Root)
		doc = w.object(root)
	} else {
		doc = w.node(g.RootNode)
	}
	doc.Schema = schema.Draft202012
	doc.ID = opts.Namespace
	doc.Title = g.Root

	for _, shape := range g.Declarations() {
		if w.inlineRoot && shape.Name == g.Root {
			continue
		}
		doc.Define(shape.Name, w.object(shape))
	}

	out, err := schema.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode schema document: %w", err)
	}
	return string(out), nil
}

type writer struct {
	graph      *models.SchemaGraph
	opts       config.Options
	inlineRoot bool
}

// object describes shape. Every sampled key was present, so all properties
// are required.
func (w *writer) object(shape *models.ObjectShape) *schema.Schema {
	s := schema.Object()
	for _, f := range shape.Fields {
		s.AddProperty(f.Key, w.node(f.Node), true)
	}
	return s
}

func (w *writer) node(n models.TypeNode) *schema.Schema {
	switch n.Kind {
	case models.Null:
		if w.opts.Nullable == config.NullableWrap {
			return &schema.Schema{Type: schema.TypeOf("null")}
		}
		return &schema.Schema{}
	case models.Bool:
		return &schema.Schema{Type: schema.TypeOf("boolean")}
	case models.Int:
		return &schema.Schema{Type: schema.TypeOf("integer")}
	case models.Float:
		return &schema.Schema{Type: schema.TypeOf("number")}
	case models.String:
		return &schema.Schema{Type: schema.TypeOf("string"), Format: string(n.Format)}
	case models.Array:
		items := &schema.Schema{}
		if n.Elem != nil {
			items = w.node(*n.Elem)
		}
		return &schema.Schema{Type: schema.TypeOf("array"), Items: items}
	case models.Ref:
		if w.inlineRoot && n.Ref == w.graph.Root {
			return &schema.Schema{Ref: "#"}
		}
		return &schema.Schema{Ref: defsPrefix + n.Ref}
	default:
		return &schema.Schema{}
	}
}
