// Package display holds the runtime helpers used by generated display
// summaries.
//
// A generated summary looks like
//
//	func (v Account) String() string {
//		return display.Summary(
//			display.Field("ID", v.ID),
//			display.Field("Owner", v.Owner),
//		)
//	}
//
// and renders as "ID: 42 Owner: abcdefghij...".
package display

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

const (
	// MaxLen is the number of runes kept by Truncate.
	MaxLen = 10
	// Ellipsis is appended to truncated values.
	Ellipsis = "..."
)

// Truncate keeps the first MaxLen runes of s and appends Ellipsis when s is
// longer than MaxLen runes.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxLen {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxLen {
			return s[:i] + Ellipsis
		}
		n++
	}
	return s
}

// Stringify formats v with fmt. Nil values, including typed nil pointers,
// maps, slices, channels, functions and interfaces, render as "".
func Stringify(v any) string {
	if isNil(v) {
		return ""
	}
	return fmt.Sprint(v)
}

// Field renders one "name: value" fragment with a truncated value.
func Field(name string, v any) string {
	return name + ": " + Truncate(Stringify(v))
}

// Summary joins fragments with single spaces.
func Summary(fields ...string) string {
	return strings.Join(fields, " ")
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
