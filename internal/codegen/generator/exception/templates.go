package exception

const headerTemplate = `{{.Header}}

package {{.Package}}
{{- if .Imports}}

{{.Imports}}
{{- end}}
`

const fieldsTemplate = `// {{.Fields}} holds the state of {{.Type}}. {{.Type}} embeds it.
type {{.Fields}} struct {
	message string
	cause   error
{{- range .Properties}}
{{- if .Description}}
	// {{.Description}}
{{- end}}
	{{.Field}} {{.Type}}
{{- end}}
}
`

const optionsTemplate = `{{- if .OptionType}}
// {{.OptionType}} sets an optional property of {{.Type}}.
type {{.OptionType}} func(*{{.Type}})
{{range .Optional}}
// {{.Option}} sets {{.Name}}. It defaults to {{.Default}}.
{{- if .Description}}
//
// {{.Description}}
{{- end}}
func {{.Option}}({{.Param}} {{.Type}}) {{$.OptionType}} {
	return func(e *{{$.Type}}) {
		e.{{.Field}} = {{.Param}}
	}
}
{{end}}
{{- end}}
`

const constructorsTemplate = `{{- define "params"}}
{{- if .Positional}}
//
{{- range .Positional}}
//   - {{.Param}}{{if .Description}}: {{.Description}}{{end}}
{{- end}}
{{- end}}
{{- end -}}
// {{.New}} returns a new {{.Type}} without message or cause.
{{- template "params" .}}
func {{.New}}({{.NewParams}}) *{{.Type}} {
	return {{.WithMessage}}({{.NewArgs}})
}

// {{.WithMessage}} returns a new {{.Type}} with the given message.
{{- template "params" .}}
func {{.WithMessage}}({{.WithMessageParams}}) *{{.Type}} {
	return {{.WithCause}}({{.WithMessageArgs}})
}

// {{.WithCause}} returns a new {{.Type}} with the given message and cause.
{{- template "params" .}}
func {{.WithCause}}({{.WithCauseParams}}) *{{.Type}} {
	e := &{{.Type}}{}
	e.message = message
	e.cause = cause
{{- range .Properties}}
{{- if .Default}}
	e.{{.Field}} = {{.Default}}
{{- else}}
	e.{{.Field}} = {{.Param}}
{{- end}}
{{- end}}
{{- if .OptionType}}
	for _, opt := range opts {
		opt(e)
	}
{{- end}}
	return e
}

// {{.Restore}} rebuilds a {{.Type}} from a message and cause only.
// Properties keep their zero or default values.
func {{.Restore}}({{.RestoreParams}}) *{{.Type}} {
	e := &{{.Type}}{}
	e.message = message
	e.cause = cause
{{- range .Optional}}
	e.{{.Field}} = {{.Default}}
{{- end}}
	return e
}
`

const accessorsTemplate = `{{- range .Properties}}
{{- if .ReadOnly}}
// {{.Name}} returns the {{.Name}} property.
{{- if .Description}}
//
// {{.Description}}
{{- end}}
func (f *{{$.Fields}}) {{.Name}}() {{.Type}} {
	return f.{{.Field}}
}

{{end}}
{{- end}}
`

const errorTemplate = `// Error implements error. An empty message falls back to the type name.
func (f *{{.Fields}}) Error() string {
	msg := f.message
	if msg == "" {
		msg = {{printf "%q" .ErrorName}}
	}
	if f.cause != nil {
		return msg + ": " + f.cause.Error()
	}
	return msg
}

// Unwrap returns the cause.
func (f *{{.Fields}}) Unwrap() error {
	return f.cause
}
`
