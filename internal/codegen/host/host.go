// Package host describes the read-only declaration graph a code generation
// pass works on.
//
// Hosts (the Go source adapter, the go/packages loader and the go/analysis
// analyzer) build these values; the pipeline never mutates them.
package host

import (
	"fmt"
	"go/token"
)

// DeclKind is the kind of a top-level declaration.
type DeclKind int

const (
	DeclKindInvalid DeclKind = iota
	DeclKindType
	DeclKindFunc
	DeclKindValue
)

var declKindValueMap = map[DeclKind]string{
	DeclKindType:  "type",
	DeclKindFunc:  "func",
	DeclKindValue: "value",
}

func (k DeclKind) String() string {
	v, ok := declKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}
	return v
}

// ValueKind classifies a literal found in an annotation argument.
type ValueKind int

const (
	ValueKindInvalid ValueKind = iota
	ValueKindString            // quoted string, Text holds the unquoted value
	ValueKindBool              // true or false
	ValueKindInt               // decimal, hex or octal integer literal
	ValueKindRaw               // bare token such as a type expression
)

var valueKindValueMap = map[ValueKind]string{
	ValueKindString: "string",
	ValueKindBool:   "bool",
	ValueKindInt:    "int",
	ValueKindRaw:    "raw",
}

func (k ValueKind) String() string {
	v, ok := valueKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}
	return v
}

// Value is a single annotation argument value.
type Value struct {
	Kind ValueKind `json:"kind"`
	Text string    `json:"text"`
}

func (v Value) String() string {
	return v.Kind.String() + "(" + v.Text + ")"
}

// NamedArg is a name=value pair of an annotation.
type NamedArg struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}

// Annotation is one occurrence of a marker on a declaration.
type Annotation struct {
	Marker     string         `json:"marker"` // fully-qualified marker name, e.g. "synth:exception"
	Positional []Value        `json:"positional,omitempty"`
	Named      []NamedArg     `json:"named,omitempty"`
	Pos        token.Position `json:"pos"`

	// Err is set when the marker text could not be parsed. Arguments are
	// partial or empty in that case.
	Err error `json:"-"`
}

// Lookup returns the last value given for the named argument.
func (a Annotation) Lookup(name string) (Value, bool) {
	for i := len(a.Named) - 1; i >= 0; i-- {
		if a.Named[i].Name == name {
			return a.Named[i].Value, true
		}
	}
	return Value{}, false
}

// Member is a struct field of a type declaration.
type Member struct {
	Name     string `json:"name"` // field name, or the type name for embedded fields
	Type     string `json:"type"` // type expression as written in source
	Doc      string `json:"doc,omitempty"`
	Exported bool   `json:"exported"`
	Embedded bool   `json:"embedded,omitempty"`
}

// Declaration is a top-level declaration visible in a compilation.
type Declaration struct {
	Scope       string            `json:"scope"`   // import path of the package, or its name when unknown
	Package     string            `json:"package"` // package name as used in the package clause
	Name        string            `json:"name"`
	Kind        DeclKind          `json:"kind"`
	File        string            `json:"file"`
	Pos         token.Position    `json:"pos"`
	Imports     map[string]string `json:"imports,omitempty"` // local name -> import path of the declaring file
	TypeParams  []string          `json:"typeParams,omitempty"`
	Members     []Member          `json:"members,omitempty"`
	IsStruct    bool              `json:"isStruct"`
	Annotations []Annotation      `json:"annotations,omitempty"`
}

// FullName returns the scope-qualified name of the declaration.
func (d Declaration) FullName() string {
	return d.Scope + "." + d.Name
}

// Snapshot is the host-supplied view of one compilation.
type Snapshot interface {
	Declarations() ([]Declaration, error)
}

// StaticSnapshot is a Snapshot over a fixed set of declarations.
type StaticSnapshot []Declaration

func (s StaticSnapshot) Declarations() ([]Declaration, error) {
	return s, nil
}
