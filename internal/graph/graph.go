// Package graph turns the unnamed type tree produced by the analyzer into a
// SchemaGraph of named, hoisted object declarations.
package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/models"
	"github.com/mcncl/jsonsynth/internal/naming"
)

// Builder assigns names to object nodes and registers them in a graph.
// A Builder is used for a single tree.
type Builder struct {
	opts  config.Options
	graph *models.SchemaGraph

	// structural mode only
	bySignature map[string]string
	signatures  map[*models.ObjectNode]string
}

// NewBuilder creates a Builder for resolved options.
func NewBuilder(opts config.Options) *Builder {
	return &Builder{
		opts:        opts,
		graph:       models.NewSchemaGraph(naming.ClassName(opts.RootName)),
		bySignature: make(map[string]string),
		signatures:  make(map[*models.ObjectNode]string),
	}
}

// Build names every object in tree and returns the finished graph.
func Build(tree models.TypeNode, opts config.Options) (*models.SchemaGraph, error) {
	return NewBuilder(opts).Build(tree)
}

// Build resolves tree into the builder's graph. Objects are registered in
// pre-order, so a parent is always declared before the types it contains.
func (b *Builder) Build(tree models.TypeNode) (*models.SchemaGraph, error) {
	root, err := b.resolve(tree, true)
	if err != nil {
		return nil, err
	}
	b.graph.RootNode = root
	if err := b.graph.Validate(); err != nil {
		return nil, fmt.Errorf("graph assembly left an inconsistent graph: %w", err)
	}
	return b.graph, nil
}

// resolve replaces every Object in node with a Ref. atRoot is set for the
// top-level value and for the elements of a top-level array.
func (b *Builder) resolve(node models.TypeNode, atRoot bool) (models.TypeNode, error) {
	switch node.Kind {
	case models.Array:
		if node.Elem == nil {
			return models.ArrayOf(models.UnknownType()), nil
		}
		elem, err := b.resolve(*node.Elem, atRoot)
		if err != nil {
			return models.TypeNode{}, err
		}
		return models.ArrayOf(elem), nil
	case models.Object:
		if node.Object == nil {
			return models.TypeNode{}, fmt.Errorf("object node without fields")
		}
		return b.resolveObject(node.Object, b.candidateName(node.Object, atRoot))
	default:
		return node, nil
	}
}

func (b *Builder) candidateName(obj *models.ObjectNode, atRoot bool) string {
	switch {
	case atRoot:
		return b.graph.Root
	case obj.InArray:
		return naming.ElementClassName(obj.Hint, b.opts.Singularize)
	default:
		return naming.ClassName(obj.Hint)
	}
}

func (b *Builder) resolveObject(obj *models.ObjectNode, candidate string) (models.TypeNode, error) {
	if b.opts.Merge == config.MergeStructural {
		sig := b.signature(obj)
		if name, ok := b.bySignature[sig]; ok {
			return models.RefTo(name), nil
		}
		name := b.freeName(candidate)
		b.bySignature[sig] = name
		return b.register(obj, name)
	}

	// Name mode: the first shape registered under a name is kept and any
	// later object deriving the same name is folded into it unseen.
	if b.graph.Has(candidate) {
		return models.RefTo(candidate), nil
	}
	return b.register(obj, candidate)
}

// register adds the shape before resolving its fields so nested objects
// that derive the same name refer back to it.
func (b *Builder) register(obj *models.ObjectNode, name string) (models.TypeNode, error) {
	shape := &models.ObjectShape{Name: name, Fields: make([]models.Field, 0, len(obj.Fields))}
	if !b.graph.Add(shape) {
		return models.TypeNode{}, fmt.Errorf("type name %q registered twice", name)
	}

	used := make(map[string]struct{}, len(obj.Fields))
	for _, f := range obj.Fields {
		node, err := b.resolve(f.Node, false)
		if err != nil {
			return models.TypeNode{}, fmt.Errorf("%s.%s: %w", name, f.Key, err)
		}
		shape.Fields = append(shape.Fields, models.Field{
			Key:      f.Key,
			Name:     uniqueName(naming.FieldName(f.Key, b.opts.Casing), used),
			Node:     node,
			Nullable: node.Kind == models.Null,
		})
	}
	return models.RefTo(name), nil
}

// freeName returns base, or base with the smallest numeric suffix from 2 up
// that is not yet taken.
func (b *Builder) freeName(base string) string {
	name := base
	for i := 2; b.graph.Has(name); i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}

func uniqueName(base string, used map[string]struct{}) string {
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

// signature hashes the field keys and types of obj, ignoring key order.
// Nested objects contribute their own signature, so two objects match only
// when they are equal all the way down.
func (b *Builder) signature(obj *models.ObjectNode) string {
	if sig, ok := b.signatures[obj]; ok {
		return sig
	}
	fields := make([]string, 0, len(obj.Fields))
	for _, f := range obj.Fields {
		fields = append(fields, strconv.Quote(f.Key)+":"+b.typeSignature(f.Node))
	}
	sort.Strings(fields)

	h := sha256.New()
	for _, f := range fields {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	sig := hex.EncodeToString(h.Sum(nil))
	b.signatures[obj] = sig
	return sig
}

func (b *Builder) typeSignature(node models.TypeNode) string {
	switch node.Kind {
	case models.Array:
		if node.Elem == nil {
			return "[]unknown"
		}
		return "[]" + b.typeSignature(*node.Elem)
	case models.Object:
		return "{" + b.signature(node.Object) + "}"
	default:
		return node.String()
	}
}
