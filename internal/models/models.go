package models

// JSONValue is a generic type to represent any parsed JSON value.
// This can be a string, Number, boolean, nil, *JSONObject or JSONArray.
type JSONValue interface{}

// Number keeps the literal text of a JSON number so integer width can be
// decided without a lossy float conversion.
type Number string

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// JSONObject represents a JSON object whose key order is preserved.
type JSONObject struct {
	Keys   []string
	Values map[string]JSONValue
}

// NewJSONObject creates an empty ordered object.
func NewJSONObject() *JSONObject {
	return &JSONObject{Values: make(map[string]JSONValue)}
}

// Set stores a value. A repeated key keeps its first position and takes the
// last value.
func (o *JSONObject) Set(key string, value JSONValue) {
	if _, exists := o.Values[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = value
}

// Get returns the value stored under key.
func (o *JSONObject) Get(key string) (JSONValue, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// Len returns the number of distinct keys.
func (o *JSONObject) Len() int {
	return len(o.Keys)
}

// IntermediateRepresentation holds the parsed JSON document in the form the
// analyzer works with.
type IntermediateRepresentation struct {
	Root        JSONValue
	RootIsArray bool // True if the root of the JSON is an array vs an object
	Depth       int  // Deepest container nesting seen while parsing
}
