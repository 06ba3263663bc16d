// Package naming turns JSON keys into identifiers for generated code.
//
// Resolution is stateless: the same key and casing always produce the same
// identifier. Whether that identifier is already taken is decided by the
// caller.
package naming

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Casing selects how a key is rewritten into an identifier.
type Casing string

const (
	Auto     Casing = "auto" // resolved to a target convention before use
	Preserve Casing = "preserve"
	Camel    Casing = "camel"
	Pascal   Casing = "pascal"
	Snake    Casing = "snake"
)

// Casings lists every accepted casing value.
func Casings() []Casing {
	return []Casing{Auto, Preserve, Camel, Pascal, Snake}
}

// Valid reports whether c is a known casing.
func (c Casing) Valid() bool {
	for _, known := range Casings() {
		if c == known {
			return true
		}
	}
	return false
}

const (
	defaultTypeName  = "Type"
	defaultFieldName = "field"
)

// ClassName returns the PascalCase type name for key.
func ClassName(key string) string {
	name := strcase.ToCamel(sanitize(key))
	if name == "" {
		return defaultTypeName
	}
	return prefixDigit(name, Pascal)
}

// FieldName returns the identifier for key in casing c. Auto behaves like
// Preserve.
func FieldName(key string, c Casing) string {
	clean := sanitize(key)
	var name string
	switch c {
	case Camel:
		name = strcase.ToLowerCamel(clean)
	case Pascal:
		name = strcase.ToCamel(clean)
	case Snake:
		name = strcase.ToSnake(clean)
	default:
		name = strings.ReplaceAll(clean, " ", "_")
	}
	if name == "" {
		return applyCasing(defaultFieldName, c)
	}
	return prefixDigit(name, c)
}

// ElementClassName names the element type of an array found under key,
// singularizing the last word when singular is set.
func ElementClassName(key string, singular bool) string {
	name := ClassName(key)
	if !singular {
		return name
	}
	return Singularize(name)
}

// knownSingulars override inflect for words whose plural and singular are
// commonly the same in API payloads.
var knownSingulars = map[string]string{
	"series":    "series",
	"status":    "status",
	"analysis":  "analysis",
	"species":   "species",
	"news":      "news",
	"goods":     "goods",
	"data":      "data",
	"media":     "media",
	"metadata":  "metadata",
	"addresses": "address",
}

// Singularize converts a PascalCase plural type name to its singular form.
func Singularize(plural string) string {
	if plural == "" {
		return plural
	}
	head, last := splitLastWord(plural)
	if singular, ok := knownSingulars[strings.ToLower(last)]; ok {
		return head + matchCase(singular, last)
	}
	singular := inflect.Singularize(strings.ToLower(last))
	if singular == "" {
		return plural
	}
	return head + matchCase(singular, last)
}

// splitLastWord splits a PascalCase name before its final capitalised word.
func splitLastWord(name string) (string, string) {
	runesOf := []rune(name)
	for i := len(runesOf) - 1; i > 0; i-- {
		if unicode.IsUpper(runesOf[i]) && !unicode.IsUpper(runesOf[i-1]) {
			return string(runesOf[:i]), string(runesOf[i:])
		}
	}
	return "", name
}

func matchCase(word, like string) string {
	if like != "" && unicode.IsUpper([]rune(like)[0]) && word != "" {
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	return word
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// sanitize folds accented letters to ASCII and turns every character that
// is not a letter, digit or underscore into a word break.
func sanitize(key string) string {
	folded, _, err := transform.String(stripMarks, key)
	if err != nil {
		folded = key
	}
	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func applyCasing(name string, c Casing) string {
	switch c {
	case Pascal:
		return strcase.ToCamel(name)
	case Camel:
		return strcase.ToLowerCamel(name)
	case Snake:
		return strcase.ToSnake(name)
	default:
		return name
	}
}

func prefixDigit(name string, c Casing) string {
	if name[0] < '0' || name[0] > '9' {
		return name
	}
	switch c {
	case Pascal:
		return "N" + name
	case Camel:
		return "n" + name
	default:
		return "n_" + name
	}
}

// IsBlank reports whether key has no characters usable in an identifier.
func IsBlank(key string) bool {
	return sanitize(key) == ""
}
