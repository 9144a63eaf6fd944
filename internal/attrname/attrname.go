package attrname

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// mutatorPattern matches computed-attribute method names such as
// GetFullNameAttribute. The captured group is the PascalCase attribute
// portion between the Get/Attribute markers.
var mutatorPattern = regexp.MustCompile(`^Get([A-Z][A-Za-z0-9_]*)Attribute$`)

// FromMutator extracts the public attribute name from a mutator method name.
// GetFullNameAttribute yields "full_name". The second return reports whether
// the method name follows the mutator convention at all.
func FromMutator(method string) (string, bool) {
	match := mutatorPattern.FindStringSubmatch(method)
	if match == nil {
		return "", false
	}
	return Snake(match[1]), true
}

// ToMutator builds the mutator method name for a public attribute name.
// "full_name" yields GetFullNameAttribute, "line1" yields GetLine1Attribute.
// The mapping is the inverse of FromMutator for ASCII identifiers made of
// letters, digits and underscores.
func ToMutator(attr string) string {
	var b strings.Builder
	b.WriteString("Get")
	upperNext := true
	for _, r := range attr {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	b.WriteString("Attribute")
	return b.String()
}

// Snake normalises an attribute name to snake_case. It is used as the
// canonical lookup key so that "fullName" and "full_name" address the same
// attribute. Names without uppercase letters pass through untouched, so
// digit-bearing spellings like "line1" or "utf8_name" keep their exact form
// and a declared mutator lines up with the stored key.
func Snake(name string) string {
	if strings.IndexFunc(name, unicode.IsUpper) < 0 {
		return name
	}

	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(runes) + 4)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		// Word boundary: after a lowercase letter or digit, or at the end
		// of an acronym run (the last upper before a lowercase).
		if i > 0 && runes[i-1] != '_' {
			prev := runes[i-1]
			acronymEnd := unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || acronymEnd {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Camel rewrites an attribute name to camelCase for output.
func Camel(name string) string {
	return strcase.ToLowerCamel(name)
}
