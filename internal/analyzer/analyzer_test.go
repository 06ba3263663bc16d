package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/models"
	"github.com/mcncl/jsonsynth/internal/parser"
)

func analyze(t *testing.T, input string, a *Analyzer) models.TypeNode {
	t.Helper()
	ir, err := parser.ParseString(input)
	require.NoError(t, err)
	node, err := a.Analyze(ir, "Root")
	require.NoError(t, err)
	return node
}

func fieldTypes(t *testing.T, node models.TypeNode) map[string]string {
	t.Helper()
	require.Equal(t, models.Object, node.Kind)
	out := make(map[string]string, len(node.Object.Fields))
	for _, f := range node.Object.Fields {
		out[f.Key] = f.Node.String()
	}
	return out
}

func TestAnalyze_SimpleObject(t *testing.T) {
	node := analyze(t, `{"name": "John Doe", "age": 30, "is_student": false, "score": 99.5, "middle": null}`, NewAnalyzer())

	require.Equal(t, models.Object, node.Kind)
	assert.Equal(t, "Root", node.Object.Hint)
	assert.False(t, node.Object.InArray)

	keys := make([]string, 0, len(node.Object.Fields))
	for _, f := range node.Object.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"name", "age", "is_student", "score", "middle"}, keys, "field order follows the source")

	assert.Equal(t, map[string]string{
		"name":       "string",
		"age":        "int32",
		"is_student": "bool",
		"score":      "float",
		"middle":     "null",
	}, fieldTypes(t, node))
}

func TestAnalyze_IntegerWidthBoundary(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2147483647", "int32"},
		{"2147483648", "int64"},
		{"-2147483648", "int32"},
		{"-2147483649", "int64"},
		{"9223372036854775807", "int64"},
		{"1.0", "int32"},
		{"1e3", "int32"},
		{"1.5", "float"},
		{"1e300", "float"},
		{"99999999999999999999", "float"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := analyze(t, tt.input, NewAnalyzer())
			assert.Equal(t, tt.want, node.String())
		})
	}
}

func TestAnalyze_StringFormats(t *testing.T) {
	input := `{
		"event_id": "a1b2c3d4-e5f6-7777-8888-99990000aaaa",
		"created_at": "2024-01-15T10:30:00Z",
		"day": "2024-01-15",
		"contact": "ops@example.com",
		"plain": "hello"
	}`

	node := analyze(t, input, NewAnalyzer())
	assert.Equal(t, map[string]string{
		"event_id":   "string(uuid)",
		"created_at": "string(date-time)",
		"day":        "string(date)",
		"contact":    "string(email)",
		"plain":      "string",
	}, fieldTypes(t, node))

	opts := config.DefaultOptions()
	opts.DetectFormats = false
	node = analyze(t, input, NewAnalyzerWithOptions(opts))
	for key, typ := range fieldTypes(t, node) {
		assert.Equal(t, "string", typ, key)
	}
}

func TestAnalyze_EmptyArrayIsUnknown(t *testing.T) {
	node := analyze(t, `{"tags": []}`, NewAnalyzer())
	assert.Equal(t, map[string]string{"tags": "[]unknown"}, fieldTypes(t, node))
}

func TestAnalyze_MixedArrayUsesFirstElement(t *testing.T) {
	node := analyze(t, `{"values": [1, "two", {"three": 3}]}`, NewAnalyzer())
	assert.Equal(t, map[string]string{"values": "[]int32"}, fieldTypes(t, node))
}

func TestAnalyze_ArrayOfObjects(t *testing.T) {
	node := analyze(t, `{"items": [{"id": 1}, {"id": 2, "extra": true}]}`, NewAnalyzer())

	items := node.Object.Fields[0].Node
	require.Equal(t, models.Array, items.Kind)
	elem := *items.Elem
	require.Equal(t, models.Object, elem.Kind)
	assert.Equal(t, "items", elem.Object.Hint)
	assert.True(t, elem.Object.InArray)
	require.Len(t, elem.Object.Fields, 1, "only the first element is inspected")
	assert.Equal(t, "id", elem.Object.Fields[0].Key)
}

func TestAnalyze_NestedArrays(t *testing.T) {
	node := analyze(t, `{"matrix": [[1.5, 2], [3]], "empty": [[]]}`, NewAnalyzer())
	assert.Equal(t, map[string]string{
		"matrix": "[][]float",
		"empty":  "[][]unknown",
	}, fieldTypes(t, node))
}

func TestAnalyze_RootKinds(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"text"`, "string"},
		{`null`, "null"},
		{`true`, "bool"},
		{`[1, 2]`, "[]int32"},
		{`[{"a": 1}]`, "[]object(Root)"},
		{`{}`, "object(Root)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze(t, tt.input, NewAnalyzer()).String())
		})
	}
}

func TestAnalyze_DefaultRootName(t *testing.T) {
	ir, err := parser.ParseString(`{"a": 1}`)
	require.NoError(t, err)
	node, err := NewAnalyzer().Analyze(ir, "")
	require.NoError(t, err)
	assert.Equal(t, "Root", node.Object.Hint)
}

func TestAnalyze_UnexpectedValue(t *testing.T) {
	_, err := NewAnalyzer().Analyze(models.IntermediateRepresentation{Root: struct{}{}}, "x")
	assert.Error(t, err)
}

func TestAnalyze_IsDeterministic(t *testing.T) {
	input := `{"b": {"y": 1, "x": [true]}, "a": "2024-01-15"}`
	first := analyze(t, input, NewAnalyzer())
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, analyze(t, input, NewAnalyzer()))
	}
}
