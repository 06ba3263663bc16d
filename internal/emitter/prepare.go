package emitter

import (
	"strconv"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/models"
	"github.com/mcncl/jsonsynth/internal/naming"
)

// wrapperKey is the JSON key of the single field of a synthesized root
// declaration.
const wrapperKey = "value"

// Document is a SchemaGraph laid out for rendering: declarations in output
// order with final field identifiers and alias decisions made.
type Document struct {
	Namespace string
	Decls     []Decl // root declaration first
	// Wrapped is set when the top-level value is not an object and Decls[0]
	// is a synthesized declaration holding it in a single field.
	Wrapped bool
}

// Decl is one declaration of a Document.
type Decl struct {
	Name   string
	Fields []Field
}

// Field is a member of a Decl.
type Field struct {
	Key      string // original JSON key
	Name     string // identifier, unique within its Decl
	Node     models.TypeNode
	Type     string // rendered type, set by Prepare
	Nullable bool
	Alias    bool // the field is annotated with Key
}

// Layout orders the declarations of g, renames declarations and fields
// through rn and decides aliases. References follow renamed declarations.
// rn may be nil.
func Layout(g *models.SchemaGraph, opts config.Options, rn Renamer) *Document {
	doc := &Document{Namespace: opts.Namespace}

	shapes := g.Declarations()
	if !g.HasRootShape() {
		doc.Wrapped = true
		wrapper := &models.ObjectShape{Name: g.Root, Fields: []models.Field{{
			Key:      wrapperKey,
			Name:     naming.FieldName(wrapperKey, opts.Casing),
			Node:     g.RootNode,
			Nullable: g.RootNode.Kind == models.Null,
		}}}
		shapes = append([]*models.ObjectShape{wrapper}, shapes...)
	}

	names := typeNames(shapes, rn)
	doc.Decls = make([]Decl, 0, len(shapes))
	for _, shape := range shapes {
		decl := Decl{Name: names[shape.Name], Fields: make([]Field, 0, len(shape.Fields))}
		used := make(map[string]struct{}, len(shape.Fields))
		for _, f := range shape.Fields {
			name := f.Name
			if rn != nil {
				name = rn.Rename(name, decl.Name)
			}
			name = claim(name, used)
			decl.Fields = append(decl.Fields, Field{
				Key:      f.Key,
				Name:     name,
				Node:     retarget(f.Node, names),
				Nullable: f.Nullable,
				Alias:    opts.WantAlias(name, f.Key),
			})
		}
		doc.Decls = append(doc.Decls, decl)
	}
	return doc
}

// Prepare lays out g and renders every field type with r.
func Prepare(g *models.SchemaGraph, opts config.Options, r TypeResolver) *Document {
	doc := Layout(g, opts, r)
	for i := range doc.Decls {
		for j := range doc.Decls[i].Fields {
			f := &doc.Decls[i].Fields[j]
			f.Type = TypeExpr(f.Node, r, opts.Nullable)
		}
	}
	return doc
}

// typeNames maps every declaration name to the name it is rendered under.
// A replacement from rn must not take a name another declaration holds, so
// all graph names are claimed before any replacement is.
func typeNames(shapes []*models.ObjectShape, rn Renamer) map[string]string {
	names := make(map[string]string, len(shapes))
	used := make(map[string]struct{}, len(shapes))
	for _, shape := range shapes {
		used[shape.Name] = struct{}{}
	}
	for _, shape := range shapes {
		name := shape.Name
		if rn != nil {
			if alt := rn.RenameType(name); alt != name {
				name = claim(alt, used)
			}
		}
		names[shape.Name] = name
	}
	return names
}

// retarget returns node with every reference renamed through names. The
// graph's own nodes are left untouched.
func retarget(node models.TypeNode, names map[string]string) models.TypeNode {
	switch node.Kind {
	case models.Ref:
		if name, ok := names[node.Ref]; ok {
			node.Ref = name
		}
	case models.Array:
		if node.Elem != nil {
			elem := retarget(*node.Elem, names)
			node.Elem = &elem
		}
	}
	return node
}

func claim(base string, used map[string]struct{}) string {
	name := base
	for i := 2; ; i++ {
		if _, taken := used[name]; !taken {
			break
		}
		name = base + strconv.Itoa(i)
	}
	used[name] = struct{}{}
	return name
}

// Uses reports whether any field, at any array depth, has a node matching
// pred.
func (d *Document) Uses(pred func(models.TypeNode) bool) bool {
	for _, decl := range d.Decls {
		for _, f := range decl.Fields {
			for node := f.Node; ; node = *node.Elem {
				if pred(node) {
					return true
				}
				if node.Kind != models.Array || node.Elem == nil {
					break
				}
			}
		}
	}
	return false
}

// HasAlias reports whether any field carries an alias annotation.
func (d *Document) HasAlias() bool {
	for _, decl := range d.Decls {
		for _, f := range decl.Fields {
			if f.Alias {
				return true
			}
		}
	}
	return false
}

// HasNullable reports whether any field was sampled as null.
func (d *Document) HasNullable() bool {
	for _, decl := range d.Decls {
		for _, f := range decl.Fields {
			if f.Nullable {
				return true
			}
		}
	}
	return false
}

// IsFormat returns a predicate for Uses matching strings tagged with one of
// tags.
func IsFormat(tags ...models.FormatTag) func(models.TypeNode) bool {
	return func(n models.TypeNode) bool {
		if n.Kind != models.String {
			return false
		}
		for _, t := range tags {
			if n.Format == t {
				return true
			}
		}
		return false
	}
}

// IsKind returns a predicate for Uses matching any of kinds.
func IsKind(kinds ...models.Kind) func(models.TypeNode) bool {
	return func(n models.TypeNode) bool {
		for _, k := range kinds {
			if n.Kind == k {
				return true
			}
		}
		return false
	}
}
