// Package display renders display-summary methods for struct types.
package display

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
	"text/template"

	"github.com/Alia5/synthgen/internal/codegen/common"
	"github.com/Alia5/synthgen/internal/codegen/meta"
)

// Name is the generator name.
const Name = "display"

// Marker is the default marker of the generator.
const Marker = "synth:display"

// DefaultMethod is the method generated when the marker sets no Method.
const DefaultMethod = "String"

// RuntimePath is the import path of the helpers used by generated code.
const RuntimePath = "github.com/Alia5/synthgen/display"

// ErrNotStruct is returned for declarations that are not struct types.
var ErrNotStruct = errors.New("display requires a struct type")

type member struct {
	Label string
	Expr  string
}

type unitData struct {
	Header   string
	Package  string
	Runtime  string
	Imports  string
	Type     string
	Receiver string
	Method   string
	Members  []member
}

// Members returns the display labels of a unit: exported fields in
// declaration order, embedded exported types under their type name.
func Members(u meta.Unit) []string {
	var out []string
	for _, m := range u.Members {
		if !m.Exported {
			continue
		}
		out = append(out, m.Name)
	}
	return out
}

// Fragments renders the unit into the header and method fragments.
func Fragments(u meta.Unit) (*common.Builder, error) {
	data, err := newUnitData(u)
	if err != nil {
		return nil, err
	}

	b := &common.Builder{}
	for _, f := range fragmentTemplates {
		var sb strings.Builder
		if err := f.Execute(&sb, data); err != nil {
			return nil, fmt.Errorf("execute %s template: %w", f.Name(), err)
		}
		b.Add(f.Name(), sb.String())
	}
	return b, nil
}

// Render returns the formatted source of the unit.
func Render(u meta.Unit) ([]byte, error) {
	b, err := Fragments(u)
	if err != nil {
		return nil, err
	}
	return common.FormatSource(u.Name+"."+Name+".g.go", []byte(b.String()))
}

func newUnitData(u meta.Unit) (*unitData, error) {
	if !u.IsStruct {
		return nil, fmt.Errorf("%s: %w", u.FullName(), ErrNotStruct)
	}

	method := u.Settings.Method
	if method == "" {
		method = DefaultMethod
	}
	if !token.IsIdentifier(method) {
		return nil, fmt.Errorf("%s: method name %q is not a Go identifier", u.FullName(), method)
	}
	for _, m := range u.Members {
		if m.Name == method {
			return nil, fmt.Errorf("%s: method %s clashes with field %s", u.FullName(), method, m.Name)
		}
	}

	runtime := "display"
	if u.Package == runtime {
		runtime = "synthdisplay"
	}

	receiver := u.Name
	if len(u.TypeParams) > 0 {
		receiver += "[" + strings.Join(u.TypeParams, ", ") + "]"
	}

	data := &unitData{
		Header:   common.GeneratedHeader,
		Package:  u.Package,
		Runtime:  runtime,
		Imports:  common.ImportBlock(map[string]string{runtime: RuntimePath}),
		Type:     u.Name,
		Receiver: receiver,
		Method:   method,
	}
	for _, label := range Members(u) {
		data.Members = append(data.Members, member{Label: label, Expr: "v." + label})
	}
	return data, nil
}

var fragmentTemplates = []*template.Template{
	template.Must(template.New("header").Parse(headerTemplate)),
	template.Must(template.New("method").Parse(methodTemplate)),
}

const headerTemplate = `{{.Header}}

package {{.Package}}

{{.Imports}}
`

const methodTemplate = `// {{.Method}} returns a one-line summary of {{.Type}}.
func (v {{.Receiver}}) {{.Method}}() string {
{{- if .Members}}
	return {{.Runtime}}.Summary(
{{- range .Members}}
		{{$.Runtime}}.Field({{printf "%q" .Label}}, {{.Expr}}),
{{- end}}
	)
{{- else}}
	return {{.Runtime}}.Summary()
{{- end}}
}
`
