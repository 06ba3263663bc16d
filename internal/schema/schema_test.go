package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaType_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{"single type", []string{"string"}, `"string"`},
		{"union", []string{"string", "null"}, `["string","null"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := TypeOf(tt.types...).MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestProperties_KeepInsertionOrder(t *testing.T) {
	p := NewProperties()
	p.Set("zeta", &Schema{Type: TypeOf("string")})
	p.Set("alpha", &Schema{Type: TypeOf("integer")})
	p.Set("mid", &Schema{})
	p.Set("zeta", &Schema{Type: TypeOf("boolean")})

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, p.Keys())
	assert.Equal(t, 3, p.Len())

	out, err := p.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":{"type":"boolean"},"alpha":{"type":"integer"},"mid":{}}`, string(out))
}

func TestMarshal_Document(t *testing.T) {
	doc := Object()
	doc.Schema = Draft202012
	doc.Title = "Root"
	doc.AddProperty("name", &Schema{Type: TypeOf("string")}, true)
	doc.AddProperty("home", &Schema{Ref: "#/$defs/Home"}, true)

	home := Object()
	home.AddProperty("city", &Schema{Type: TypeOf("string")}, true)
	doc.Define("Home", home)

	out, err := Marshal(doc)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasSuffix(text, "}\n"))
	assert.Contains(t, text, `"$schema": "https://json-schema.org/draft/2020-12/schema"`)
	assert.Contains(t, text, `"$ref": "#/$defs/Home"`)
	assert.Less(t, strings.Index(text, `"$schema"`), strings.Index(text, `"title"`))
	assert.Less(t, strings.Index(text, `"name"`), strings.Index(text, `"home"`))
	assert.Less(t, strings.Index(text, `"properties"`), strings.Index(text, `"$defs"`))
	assert.Contains(t, text, "\n  \"title\": \"Root\"", "nested output is indented")
}

func TestMarshal_EmptySchemaIsOpen(t *testing.T) {
	out, err := Marshal(&Schema{})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(out))
}

func TestObject_EmptyHasNoRequired(t *testing.T) {
	out, err := Marshal(Object())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "required")
	assert.Contains(t, string(out), `"properties": {}`)
}
