// Package schema is the JSON Schema document model written by the jsonschema
// target. Property and definition maps keep insertion order when encoded.
package schema

import (
	"bytes"

	j "github.com/goccy/go-json"
)

// Draft202012 is the $schema URI of every generated document.
const Draft202012 = "https://json-schema.org/draft/2020-12/schema"

// SchemaType is the JSON Schema type keyword, encoded as a string for one
// type and as an array for several.
type SchemaType struct {
	Types []string
}

// TypeOf returns a SchemaType holding types.
func TypeOf(types ...string) *SchemaType {
	return &SchemaType{Types: types}
}

// MarshalJSON encodes a single type as a bare string.
func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st.Types) == 1 {
		return j.Marshal(st.Types[0])
	}
	return j.Marshal(st.Types)
}

// Properties is an ordered map of names to schemas.
type Properties struct {
	keys   []string
	values map[string]*Schema
}

// NewProperties creates an empty Properties.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]*Schema)}
}

// Set adds or replaces name. A replaced name keeps its position.
func (p *Properties) Set(name string, s *Schema) {
	if _, exists := p.values[name]; !exists {
		p.keys = append(p.keys, name)
	}
	p.values[name] = s
}

// Keys returns names in insertion order.
func (p *Properties) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

func (p *Properties) Len() int {
	return len(p.keys)
}

// MarshalJSON encodes the map with keys in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := j.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := j.Marshal(p.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Schema is a JSON Schema document or subschema. Only the keywords the
// generator produces are modelled; field order is encoding order.
type Schema struct {
	Schema string `json:"$schema,omitempty"`
	ID     string `json:"$id,omitempty"`
	Ref    string `json:"$ref,omitempty"`
	Title  string `json:"title,omitempty"`

	Type   *SchemaType `json:"type,omitempty"`
	Format string      `json:"format,omitempty"`

	// Object properties
	Properties *Properties `json:"properties,omitempty"`
	Required   []string    `json:"required,omitempty"`

	// Array items
	Items *Schema `json:"items,omitempty"`

	Defs *Properties `json:"$defs,omitempty"`
}

// Object returns an empty object schema.
func Object() *Schema {
	return &Schema{Type: TypeOf("object"), Properties: NewProperties(), Required: []string{}}
}

// AddProperty appends a property and, when required is set, lists it in
// Required.
func (s *Schema) AddProperty(name string, prop *Schema, required bool) {
	if s.Properties == nil {
		s.Properties = NewProperties()
	}
	s.Properties.Set(name, prop)
	if required {
		s.Required = append(s.Required, name)
	}
}

// Define adds a named subschema under $defs.
func (s *Schema) Define(name string, def *Schema) {
	if s.Defs == nil {
		s.Defs = NewProperties()
	}
	s.Defs.Set(name, def)
}

// Marshal encodes s with two-space indentation and a trailing newline.
func Marshal(s *Schema) ([]byte, error) {
	out, err := j.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
