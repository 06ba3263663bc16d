package models

import "fmt"

// Kind identifies the variant held by a TypeNode.
type Kind int

const (
	Unknown Kind = iota // no inferable type, rendered as the target's top type
	Null
	Bool
	Int
	Float
	String
	Array
	Object // unnamed structural object, only present before graph assembly
	Ref    // reference to a named ObjectShape in a SchemaGraph
)

var kindNames = [...]string{
	Unknown: "unknown",
	Null:    "null",
	Bool:    "bool",
	Int:     "int",
	Float:   "float",
	String:  "string",
	Array:   "array",
	Object:  "object",
	Ref:     "ref",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IntWidth is the bit width chosen for an integer.
type IntWidth int

const (
	Int32 IntWidth = 32
	Int64 IntWidth = 64
)

// FormatTag is the semantic format of a string value.
type FormatTag string

const (
	FormatNone     FormatTag = ""
	FormatEmail    FormatTag = "email"
	FormatURI      FormatTag = "uri"
	FormatDateTime FormatTag = "date-time"
	FormatDate     FormatTag = "date"
	FormatTime     FormatTag = "time"
	FormatUUID     FormatTag = "uuid"
	FormatIPv4     FormatTag = "ipv4"
)

// TypeNode is the inferred type of one JSON value.
type TypeNode struct {
	Kind   Kind
	Width  IntWidth    // Int only
	Format FormatTag   // String only
	Elem   *TypeNode   // Array only
	Object *ObjectNode // Object only
	Ref    string      // Ref only
}

// ObjectNode is an object type before it has been given a name.
type ObjectNode struct {
	Hint    string // JSON key the object was found under
	InArray bool   // the object is an array element, so Hint is a plural
	Fields  []ObjectField
}

// ObjectField is one member of an ObjectNode, in source key order.
type ObjectField struct {
	Key  string
	Node TypeNode
}

func UnknownType() TypeNode { return TypeNode{Kind: Unknown} }
func NullType() TypeNode    { return TypeNode{Kind: Null} }
func BoolType() TypeNode    { return TypeNode{Kind: Bool} }
func FloatType() TypeNode   { return TypeNode{Kind: Float} }

func IntType(width IntWidth) TypeNode {
	return TypeNode{Kind: Int, Width: width}
}

func StringType(format FormatTag) TypeNode {
	return TypeNode{Kind: String, Format: format}
}

func ArrayOf(elem TypeNode) TypeNode {
	return TypeNode{Kind: Array, Elem: &elem}
}

func RefTo(name string) TypeNode {
	return TypeNode{Kind: Ref, Ref: name}
}

// String renders the node in a compact, target-neutral notation used in
// errors and tests.
func (t TypeNode) String() string {
	switch t.Kind {
	case Int:
		return fmt.Sprintf("int%d", t.Width)
	case String:
		if t.Format != FormatNone {
			return "string(" + string(t.Format) + ")"
		}
		return "string"
	case Array:
		if t.Elem == nil {
			return "[]unknown"
		}
		return "[]" + t.Elem.String()
	case Object:
		if t.Object != nil {
			return "object(" + t.Object.Hint + ")"
		}
		return "object"
	case Ref:
		return "&" + t.Ref
	default:
		return t.Kind.String()
	}
}

// Innermost strips every Array layer and returns the element type at the
// bottom.
func (t TypeNode) Innermost() TypeNode {
	for t.Kind == Array && t.Elem != nil {
		t = *t.Elem
	}
	return t
}
