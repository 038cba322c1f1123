// Package exception renders error types with a constructor family and
// property accessors.
//
// For an annotated declaration T the generated file holds an unexported
// fields struct that T embeds, the constructors NewT, NewTWithMessage and
// NewTWithCause, the restricted form restoreT, accessors for read-only
// properties and functional options for properties carrying a default.
package exception

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"text/template"

	"github.com/Alia5/synthgen/internal/codegen/common"
	"github.com/Alia5/synthgen/internal/codegen/meta"
)

// Name is the generator name.
const Name = "exception"

// Marker is the default marker of the generator.
const Marker = "synth:exception"

var (
	// ErrGenericType is returned for declarations with type parameters.
	ErrGenericType = errors.New("generic types are not supported")
	// ErrReservedName is returned for properties clashing with generated code.
	ErrReservedName = errors.New("reserved name")
	// ErrUnexportedName is returned for property names that are not exported.
	ErrUnexportedName = errors.New("property name must be exported")
)

// reservedMembers are generated on the fields struct.
var reservedMembers = map[string]bool{
	"Error":  true,
	"Unwrap": true,
}

// reservedParams are constructor parameters and locals of generated code.
var reservedParams = map[string]bool{
	"message": true,
	"cause":   true,
	"opts":    true,
	"opt":     true,
	"e":       true,
}

// FieldsName returns the name of the generated struct decl must embed.
func FieldsName(decl string) string {
	return common.LowerFirst(decl) + "Fields"
}

type property struct {
	Name        string
	Param       string
	Field       string
	Type        string
	Description string
	Default     string
	ReadOnly    bool
	Option      string
}

type unitData struct {
	Header    string
	Package   string
	Type      string
	Fields    string
	ErrorName string

	New         string
	WithMessage string
	WithCause   string
	Restore     string
	OptionType  string

	Properties []property
	Positional []property
	Optional   []property

	NewParams         string
	NewArgs           string
	WithMessageParams string
	WithMessageArgs   string
	WithCauseParams   string
	RestoreParams     string
	Imports           string
}

// Fragments renders the unit into named fragments: header, fields, options,
// constructors, accessors, error.
func Fragments(u meta.Unit) (*common.Builder, error) {
	data, err := newUnitData(u)
	if err != nil {
		return nil, err
	}

	b := &common.Builder{}
	for _, f := range fragmentTemplates {
		var sb strings.Builder
		if err := f.tmpl.Execute(&sb, data); err != nil {
			return nil, fmt.Errorf("execute %s template: %w", f.name, err)
		}
		b.Add(f.name, sb.String())
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
	if len(u.TypeParams) > 0 {
		return nil, fmt.Errorf("%s: %w", u.FullName(), ErrGenericType)
	}

	typeName := common.UpperFirst(u.Name)
	data := &unitData{
		Header:      common.GeneratedHeader,
		Package:     u.Package,
		Type:        u.Name,
		Fields:      FieldsName(u.Name),
		ErrorName:   u.Package + "." + u.Name,
		New:         common.Exported(u.Name, "New"+typeName),
		WithMessage: common.Exported(u.Name, "New"+typeName+"WithMessage"),
		WithCause:   common.Exported(u.Name, "New"+typeName+"WithCause"),
		Restore:     "restore" + typeName,
	}

	members := map[string]string{}
	params := map[string]string{}
	qualifiers := map[string]bool{}
	// Identifiers referenced inside constructor bodies, keyed to what they name.
	bodyIdents := map[string]string{
		data.Type:        "type " + data.Type,
		data.WithMessage: "constructor " + data.WithMessage,
		data.WithCause:   "constructor " + data.WithCause,
	}

	for _, p := range u.Properties {
		prop, err := newProperty(u, p)
		if err != nil {
			return nil, err
		}

		accessor := p.Name
		if prev, ok := members[accessor]; ok {
			return nil, fmt.Errorf("%s: property %s clashes with %s", u.FullName(), p.Name, prev)
		}
		members[accessor] = p.Name
		if prop.Field != accessor {
			if prev, ok := members[prop.Field]; ok {
				return nil, fmt.Errorf("%s: property %s clashes with %s", u.FullName(), p.Name, prev)
			}
			members[prop.Field] = p.Name
		}
		if prev, ok := params[prop.Param]; ok {
			return nil, fmt.Errorf("%s: parameter %s of property %s clashes with %s", u.FullName(), prop.Param, p.Name, prev)
		}
		params[prop.Param] = p.Name

		for _, expr := range []string{prop.Type, prop.Default} {
			if expr == "" {
				continue
			}
			qs, err := common.TypeQualifiers(expr)
			if err != nil {
				return nil, fmt.Errorf("%s: property %s: %w", u.FullName(), p.Name, err)
			}
			for _, q := range qs {
				qualifiers[q] = true
				if expr == prop.Default {
					bodyIdents[q] = "package " + q
				}
			}
		}

		data.Properties = append(data.Properties, prop)
		if p.HasDefault() {
			data.Optional = append(data.Optional, prop)
		} else {
			data.Positional = append(data.Positional, prop)
		}
	}

	for _, prop := range data.Positional {
		if what, ok := bodyIdents[prop.Param]; ok {
			return nil, fmt.Errorf("%s: property %s: parameter %s shadows %s: %w", u.FullName(), prop.Name, prop.Param, what, ErrReservedName)
		}
		if types.Universe.Lookup(prop.Param) != nil {
			return nil, fmt.Errorf("%s: property %s: parameter %s shadows predeclared %s: %w", u.FullName(), prop.Name, prop.Param, prop.Param, ErrReservedName)
		}
	}

	if len(data.Optional) > 0 {
		data.OptionType = common.Exported(u.Name, typeName+"Option")
		for i := range data.Optional {
			data.Optional[i].Option = common.Exported(u.Name, "With"+typeName+data.Optional[i].Name)
		}
		for i := range data.Properties {
			for _, o := range data.Optional {
				if data.Properties[i].Name == o.Name {
					data.Properties[i].Option = o.Option
				}
			}
		}
	}

	imports := map[string]string{}
	for q := range qualifiers {
		path, ok := u.Imports[q]
		if !ok {
			return nil, fmt.Errorf("%s: unknown package qualifier %q", u.FullName(), q)
		}
		imports[q] = path
	}
	data.Imports = common.ImportBlock(imports)

	var positional []string
	var args []string
	for _, p := range data.Positional {
		positional = append(positional, p.Param+" "+p.Type)
		args = append(args, p.Param)
	}
	opts, optsArg := "", ""
	if data.OptionType != "" {
		opts = "opts ..." + data.OptionType
		optsArg = "opts..."
	}

	data.NewParams = joinList(append(positional, opts)...)
	data.NewArgs = joinList(append(args, `""`, optsArg)...)
	data.WithMessageParams = joinList(append(positional, "message string", opts)...)
	data.WithMessageArgs = joinList(append(args, "message", "nil", optsArg)...)
	data.WithCauseParams = joinList(append(positional, "message string", "cause error", opts)...)
	data.RestoreParams = "message string, cause error"

	return data, nil
}

func newProperty(u meta.Unit, p meta.Property) (property, error) {
	if !token.IsIdentifier(p.Name) {
		return property{}, fmt.Errorf("%s: property name %q is not a Go identifier", u.FullName(), p.Name)
	}
	// A read-only property stores its value in the lower-cased field, which
	// must differ from the getter.
	if !token.IsExported(p.Name) {
		return property{}, fmt.Errorf("%s: property %s: %w", u.FullName(), p.Name, ErrUnexportedName)
	}
	if reservedMembers[p.Name] {
		return property{}, fmt.Errorf("%s: property %s: %w", u.FullName(), p.Name, ErrReservedName)
	}
	param := common.ParamName(p.Name)
	if reservedParams[param] {
		return property{}, fmt.Errorf("%s: property %s: parameter %s: %w", u.FullName(), p.Name, param, ErrReservedName)
	}
	if _, err := parser.ParseExpr(p.Type); err != nil {
		return property{}, fmt.Errorf("%s: property %s: invalid type %q", u.FullName(), p.Name, p.Type)
	}
	if p.HasDefault() {
		if _, err := parser.ParseExpr(p.DefaultValue); err != nil {
			return property{}, fmt.Errorf("%s: property %s: invalid default value %q", u.FullName(), p.Name, p.DefaultValue)
		}
	}

	field := p.Name
	if p.IsReadOnly {
		field = param
	}

	return property{
		Name:        p.Name,
		Param:       param,
		Field:       field,
		Type:        p.Type,
		Description: strings.Join(strings.Fields(p.Description), " "),
		Default:     p.DefaultValue,
		ReadOnly:    p.IsReadOnly,
	}, nil
}

func joinList(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

type fragmentTemplate struct {
	name string
	tmpl *template.Template
}

func mustFragment(name, text string) fragmentTemplate {
	return fragmentTemplate{
		name: name,
		tmpl: template.Must(template.New(name).Parse(text)),
	}
}

var fragmentTemplates = []fragmentTemplate{
	mustFragment("header", headerTemplate),
	mustFragment("fields", fieldsTemplate),
	mustFragment("options", optionsTemplate),
	mustFragment("constructors", constructorsTemplate),
	mustFragment("accessors", accessorsTemplate),
	mustFragment("error", errorTemplate),
}
