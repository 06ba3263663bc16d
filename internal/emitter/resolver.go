package emitter

import (
	"strconv"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/models"
)

// TypeResolver maps TypeNode variants to type expressions of one target.
// Each class and record emitter implements it once.
type TypeResolver interface {
	// Primitive maps Bool, Int, Float and String nodes, formats included.
	Primitive(node models.TypeNode) string

	// Array wraps an element type in the target's collection type.
	Array(elem string) string

	// Ref returns the type expression for a named declaration.
	Ref(name string) string

	// Unknown returns the target's top type.
	Unknown() string

	// Null returns the type of a field whose sampled value was null.
	Null(policy config.NullablePolicy) string

	Renamer
}

// Renamer replaces names the target cannot use as written.
//
// Rename handles fields, such as a member named like its enclosing type.
// The result is the name the field serializes under, so a renamed field
// carries an alias. Escapes that do not change the serialized name, like
// Kotlin backticks, belong in the renderer instead.
//
// RenameType handles declarations that would shadow a type the target
// output relies on, such as a class named String in Kotlin. Layout keeps
// the results unique.
type Renamer interface {
	Rename(name, owner string) string
	RenameType(name string) string
}

// TypeExpr renders node with r.
func TypeExpr(node models.TypeNode, r TypeResolver, policy config.NullablePolicy) string {
	switch node.Kind {
	case models.Array:
		if node.Elem == nil {
			return r.Array(r.Unknown())
		}
		return r.Array(TypeExpr(*node.Elem, r, policy))
	case models.Ref:
		return r.Ref(node.Ref)
	case models.Null:
		return r.Null(policy)
	case models.Bool, models.Int, models.Float, models.String:
		return r.Primitive(node)
	default:
		return r.Unknown()
	}
}

// Quote returns s as a double-quoted literal using only the escapes shared
// by C#, Kotlin, Python and JSON: \" \\ \n \r \t and \uXXXX for other
// control characters.
func Quote(s string) string {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for _, r := range s {
		switch {
		case r == '"':
			buf = append(buf, '\\', '"')
		case r == '\\':
			buf = append(buf, '\\', '\\')
		case r == '\n':
			buf = append(buf, '\\', 'n')
		case r == '\r':
			buf = append(buf, '\\', 'r')
		case r == '\t':
			buf = append(buf, '\\', 't')
		case r < 0x20 || r == 0x7f:
			hex := strconv.FormatInt(int64(r), 16)
			buf = append(buf, '\\', 'u')
			for i := len(hex); i < 4; i++ {
				buf = append(buf, '0')
			}
			buf = append(buf, hex...)
		default:
			buf = append(buf, string(r)...)
		}
	}
	return string(append(buf, '"'))
}
