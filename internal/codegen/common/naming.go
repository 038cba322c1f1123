package common

import (
	"go/token"
	"sort"
	"unicode"
	"unicode/utf8"
)

// LowerFirst lower-cases the first character and leaves the rest unchanged.
// "Code" => "code", "HTTPStatus" => "hTTPStatus".
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// UpperFirst upper-cases the first character and leaves the rest unchanged.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ParamName is the constructor parameter name of a property: LowerFirst,
// with a trailing underscore when the result is a Go keyword.
// "Type" => "type_".
func ParamName(property string) string {
	name := LowerFirst(property)
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// Exported returns name with the visibility of decl: "New"+"Foo" stays
// exported for an exported decl and becomes "newFoo" otherwise.
func Exported(decl, name string) string {
	if token.IsExported(decl) {
		return UpperFirst(name)
	}
	return LowerFirst(name)
}

// SortedStringKeys returns the sorted keys of a map.
func SortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
