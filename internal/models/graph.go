package models

import "fmt"

// Field is one member of a named object type.
type Field struct {
	Key      string // original JSON key
	Name     string // identifier in the chosen casing
	Node     TypeNode
	Nullable bool
}

// ObjectShape is a named object declaration.
type ObjectShape struct {
	Name   string
	Fields []Field
}

// SchemaGraph holds every named object type found in one sample, in the order
// the types were first encountered.
type SchemaGraph struct {
	Root     string   // name of the root declaration
	RootNode TypeNode // type of the top-level value itself

	order []string
	types map[string]*ObjectShape
}

// NewSchemaGraph creates an empty graph whose root will be called root.
func NewSchemaGraph(root string) *SchemaGraph {
	return &SchemaGraph{
		Root:  root,
		types: make(map[string]*ObjectShape),
	}
}

// Add registers shape under its name. It reports false when the name is
// already taken, leaving the existing entry in place.
func (g *SchemaGraph) Add(shape *ObjectShape) bool {
	if _, exists := g.types[shape.Name]; exists {
		return false
	}
	g.types[shape.Name] = shape
	g.order = append(g.order, shape.Name)
	return true
}

func (g *SchemaGraph) Has(name string) bool {
	_, ok := g.types[name]
	return ok
}

func (g *SchemaGraph) Get(name string) (*ObjectShape, bool) {
	s, ok := g.types[name]
	return s, ok
}

func (g *SchemaGraph) Len() int {
	return len(g.order)
}

// Names returns type names in insertion order.
func (g *SchemaGraph) Names() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// Declarations returns the root shape first, followed by every other shape in
// insertion order.
func (g *SchemaGraph) Declarations() []*ObjectShape {
	decls := make([]*ObjectShape, 0, len(g.order))
	if root, ok := g.types[g.Root]; ok {
		decls = append(decls, root)
	}
	for _, name := range g.order {
		if name == g.Root {
			continue
		}
		decls = append(decls, g.types[name])
	}
	return decls
}

// HasRootShape reports whether the top-level value produced a named
// declaration. Scalar and scalar-array roots do not.
func (g *SchemaGraph) HasRootShape() bool {
	return g.Has(g.Root)
}

// Validate checks that every reference resolves to a registered type.
func (g *SchemaGraph) Validate() error {
	if err := g.checkRefs(g.RootNode, "root"); err != nil {
		return err
	}
	for _, name := range g.order {
		for _, f := range g.types[name].Fields {
			if err := g.checkRefs(f.Node, name+"."+f.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *SchemaGraph) checkRefs(node TypeNode, where string) error {
	node = node.Innermost()
	switch node.Kind {
	case Ref:
		if !g.Has(node.Ref) {
			return fmt.Errorf("%s references undeclared type %q", where, node.Ref)
		}
	case Object:
		return fmt.Errorf("%s holds an unnamed object", where)
	}
	return nil
}
