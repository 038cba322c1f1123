package exception

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/synthgen/internal/codegen/meta"
)

func unit(props ...meta.Property) meta.Unit {
	return meta.Unit{
		Generator:  Name,
		Scope:      "example.com/errs",
		Package:    "errs",
		Name:       "NotFound",
		IsStruct:   true,
		Imports:    map[string]string{"uuid": "github.com/google/uuid", "time": "time"},
		Properties: props,
		Settings:   meta.NewSettings(),
	}
}

const singleReadOnlyGolden = `// Code generated by synthgen. DO NOT EDIT.

package errs

// notFoundFields holds the state of NotFound. NotFound embeds it.
type notFoundFields struct {
	message string
	cause   error
	code    int
}

// NewNotFound returns a new NotFound without message or cause.
//
//   - code
func NewNotFound(code int) *NotFound {
	return NewNotFoundWithMessage(code, "")
}

// NewNotFoundWithMessage returns a new NotFound with the given message.
//
//   - code
func NewNotFoundWithMessage(code int, message string) *NotFound {
	return NewNotFoundWithCause(code, message, nil)
}

// NewNotFoundWithCause returns a new NotFound with the given message and cause.
//
//   - code
func NewNotFoundWithCause(code int, message string, cause error) *NotFound {
	e := &NotFound{}
	e.message = message
	e.cause = cause
	e.code = code
	return e
}

// restoreNotFound rebuilds a NotFound from a message and cause only.
// Properties keep their zero or default values.
func restoreNotFound(message string, cause error) *NotFound {
	e := &NotFound{}
	e.message = message
	e.cause = cause
	return e
}

// Code returns the Code property.
func (f *notFoundFields) Code() int {
	return f.code
}

// Error implements error. An empty message falls back to the type name.
func (f *notFoundFields) Error() string {
	msg := f.message
	if msg == "" {
		msg = "errs.NotFound"
	}
	if f.cause != nil {
		return msg + ": " + f.cause.Error()
	}
	return msg
}

// Unwrap returns the cause.
func (f *notFoundFields) Unwrap() error {
	return f.cause
}
`

// A read-only property is assigned to its unexported field (e.code = code)
// and read through the Code() getter.
func TestRenderReadOnlyFieldBehindGetter(t *testing.T) {
	src, err := Render(unit(meta.Property{Name: "Code", Type: "int", IsReadOnly: true}))
	require.NoError(t, err)

	if diff := cmp.Diff(singleReadOnlyGolden, string(src)); diff != "" {
		t.Errorf("rendered source mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderDeclaredOrder(t *testing.T) {
	src, err := Render(unit(
		meta.Property{Name: "Alpha", Type: "int", IsReadOnly: true},
		meta.Property{Name: "Bravo", Type: "uuid.UUID", IsReadOnly: true},
	))
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, `import "github.com/google/uuid"`)
	assert.Contains(t, out, "func NewNotFoundWithCause(alpha int, bravo uuid.UUID, message string, cause error) *NotFound {")
	assert.Contains(t, out, "return NewNotFoundWithMessage(alpha, bravo, \"\")")
	assert.Contains(t, out, "return NewNotFoundWithCause(alpha, bravo, message, nil)")

	alpha := strings.Index(out, "func (f *notFoundFields) Alpha() int {")
	bravo := strings.Index(out, "func (f *notFoundFields) Bravo() uuid.UUID {")
	require.NotEqual(t, -1, alpha)
	require.NotEqual(t, -1, bravo)
	assert.Less(t, alpha, bravo)
	assert.Less(t, strings.Index(out, "e.alpha = alpha"), strings.Index(out, "e.bravo = bravo"))
}

func TestRenderMutableAndDefaults(t *testing.T) {
	src, err := Render(unit(
		meta.Property{Name: "Code", Type: "int", IsReadOnly: true},
		meta.Property{Name: "Retries", Type: "int", DefaultValue: "3", Description: "retry\n budget", IsReadOnly: false},
		meta.Property{Name: "Timeout", Type: "time.Duration", DefaultValue: "5 * time.Second", IsReadOnly: true},
	))
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, `import "time"`)
	assert.Contains(t, out, "type NotFoundOption func(*NotFound)")
	assert.Contains(t, out, "func WithNotFoundRetries(retries int) NotFoundOption {")
	assert.Contains(t, out, "func WithNotFoundTimeout(timeout time.Duration) NotFoundOption {")
	assert.Contains(t, out, "func NewNotFound(code int, opts ...NotFoundOption) *NotFound {")
	assert.Contains(t, out, `return NewNotFoundWithMessage(code, "", opts...)`)
	assert.Contains(t, out, "return NewNotFoundWithCause(code, message, nil, opts...)")
	assert.Contains(t, out, "func NewNotFoundWithCause(code int, message string, cause error, opts ...NotFoundOption) *NotFound {")
	assert.Contains(t, out, "for _, opt := range opts {")
	assert.Contains(t, out, "// retry budget")
	assert.Equal(t, 2, strings.Count(out, "e.Retries = 3"), "defaults are set by the base initializer and the restricted form")
	assert.Equal(t, 2, strings.Count(out, "e.timeout = 5 * time.Second"))

	assert.NotContains(t, out, "Retries()", "mutable properties are plain fields")
	assert.Contains(t, out, "func (f *notFoundFields) Timeout() time.Duration {")
	assert.Less(t, strings.Index(out, "e.Retries = 3"), strings.Index(out, "opt(e)"), "options apply after defaults")
}

func TestRenderNoProperties(t *testing.T) {
	src, err := Render(unit())
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "func NewNotFound() *NotFound {")
	assert.Contains(t, out, `return NewNotFoundWithMessage("")`)
	assert.Contains(t, out, "func NewNotFoundWithMessage(message string) *NotFound {")
	assert.NotContains(t, out, "import")
}

func TestRenderUnexportedDecl(t *testing.T) {
	u := unit(meta.Property{Name: "Type", Type: "string", IsReadOnly: true})
	u.Name = "notFound"
	src, err := Render(u)
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "type notFoundFields struct {")
	assert.Contains(t, out, "func newNotFound(type_ string) *notFound {")
	assert.Contains(t, out, "func newNotFoundWithCause(type_ string, message string, cause error) *notFound {")
	assert.Contains(t, out, "func restoreNotFound(message string, cause error) *notFound {")
	assert.Contains(t, out, "e.type_ = type_")
	assert.Contains(t, out, "func (f *notFoundFields) Type() string {")
}

func TestRenderDeterministic(t *testing.T) {
	u := unit(
		meta.Property{Name: "Alpha", Type: "int", IsReadOnly: true},
		meta.Property{Name: "Bravo", Type: "uuid.UUID", DefaultValue: "uuid.Nil"},
		meta.Property{Name: "When", Type: "time.Time"},
	)
	first, err := Render(u)
	require.NoError(t, err)
	for range 5 {
		again, err := Render(u)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFragments(t *testing.T) {
	b, err := Fragments(unit(meta.Property{Name: "Code", Type: "int", Description: "HTTP status", IsReadOnly: true}))
	require.NoError(t, err)

	names := make([]string, 0)
	for _, f := range b.Fragments() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"header", "fields", "options", "constructors", "accessors", "error"}, names)

	options, _ := b.Fragment("options")
	assert.Empty(t, strings.TrimSpace(options))

	ctors, _ := b.Fragment("constructors")
	assert.Contains(t, ctors, "//   - code: HTTP status")
	assert.Equal(t, 1, strings.Count(ctors, "e.code = code"))

	accessors, _ := b.Fragment("accessors")
	assert.Contains(t, accessors, "// HTTP status")
}

func TestRenderFailures(t *testing.T) {
	tests := []struct {
		name string
		prop meta.Property
		is   error
	}{
		{"Error clashes with method", meta.Property{Name: "Error", Type: "string"}, ErrReservedName},
		{"Unwrap clashes with method", meta.Property{Name: "Unwrap", Type: "error"}, ErrReservedName},
		{"message parameter", meta.Property{Name: "Message", Type: "string"}, ErrReservedName},
		{"cause parameter", meta.Property{Name: "Cause", Type: "error"}, ErrReservedName},
		{"opts parameter", meta.Property{Name: "Opts", Type: "int"}, ErrReservedName},
		{"receiver local", meta.Property{Name: "E", Type: "int"}, ErrReservedName},
		{"not an identifier", meta.Property{Name: "Bad-Name", Type: "int"}, nil},
		{"leading digit", meta.Property{Name: "1st", Type: "int"}, nil},
		{"invalid type", meta.Property{Name: "Code", Type: "map["}, nil},
		{"invalid default", meta.Property{Name: "Code", Type: "int", DefaultValue: "1 +"}, nil},
		{"unknown qualifier", meta.Property{Name: "Peer", Type: "net.IP"}, nil},
		{"unexported read-only name", meta.Property{Name: "code", Type: "int", IsReadOnly: true}, ErrUnexportedName},
		{"unexported mutable name", meta.Property{Name: "code", Type: "int"}, ErrUnexportedName},
		{"parameter shadows nil", meta.Property{Name: "Nil", Type: "error"}, ErrReservedName},
		{"parameter shadows builtin type", meta.Property{Name: "String", Type: "string"}, ErrReservedName},
		{"parameter shadows builtin func", meta.Property{Name: "Len", Type: "int"}, ErrReservedName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(unit(tt.prop))
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), err.Error())
			}
			assert.Contains(t, err.Error(), "example.com/errs.NotFound")
		})
	}
}

func TestRenderClashingProperties(t *testing.T) {
	_, err := Render(unit(
		meta.Property{Name: "Type", Type: "int", IsReadOnly: true},
		meta.Property{Name: "Type_", Type: "int", IsReadOnly: true},
	))
	assert.ErrorContains(t, err, "parameter type_ of property Type_ clashes with Type")
}

func TestRenderParameterShadowsUnexportedNames(t *testing.T) {
	for _, name := range []string{"NotFound", "NewNotFoundWithMessage", "NewNotFoundWithCause"} {
		u := unit(meta.Property{Name: name, Type: "int", IsReadOnly: true})
		u.Name = "notFound"

		_, err := Render(u)
		assert.ErrorIs(t, err, ErrReservedName, name)
	}
}

func TestRenderParameterShadowsDefaultQualifier(t *testing.T) {
	u := unit(
		meta.Property{Name: "Strings", Type: "int", IsReadOnly: true},
		meta.Property{Name: "Label", Type: "string", DefaultValue: `strings.ToUpper("x")`, IsReadOnly: true},
	)
	u.Imports = map[string]string{"strings": "strings"}

	_, err := Render(u)
	require.ErrorIs(t, err, ErrReservedName)
	assert.ErrorContains(t, err, "parameter strings shadows package strings")
}

func TestRenderQualifierInTypeOnly(t *testing.T) {
	u := unit(meta.Property{Name: "Time", Type: "time.Time", IsReadOnly: true})

	src, err := Render(u)
	require.NoError(t, err)
	assert.Contains(t, string(src), "func NewNotFound(time time.Time) *NotFound {")
}

func TestRenderOptionalParameterMayUseUniverseName(t *testing.T) {
	src, err := Render(unit(meta.Property{Name: "Len", Type: "int", DefaultValue: "4"}))
	require.NoError(t, err)
	assert.Contains(t, string(src), "func WithNotFoundLen(len int) NotFoundOption {")
}

func TestRenderDescriptionWhitespaceCollapsed(t *testing.T) {
	src, err := Render(unit(meta.Property{
		Name:        "Code",
		Type:        "int",
		Description: "HTTP status\n\tof the   failed\r\nlookup ",
		IsReadOnly:  true,
	}))
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "//   - code: HTTP status of the failed lookup\n")
	assert.Contains(t, out, "\t// HTTP status of the failed lookup\n")
	assert.Regexp(t, `\n\tcode\s+int\n`, out)
	assert.NotContains(t, out, "failed\r")
}

func TestRenderGeneric(t *testing.T) {
	u := unit()
	u.TypeParams = []string{"T"}
	_, err := Render(u)
	assert.ErrorIs(t, err, ErrGenericType)
}

func TestFieldsName(t *testing.T) {
	assert.Equal(t, "notFoundFields", FieldsName("NotFound"))
	assert.Equal(t, "hTTPErrorFields", FieldsName("HTTPError"))
}
