package meta

import (
	"fmt"

	"github.com/Alia5/synthgen/internal/codegen/host"
)

// Option is a recognized marker argument.
type Option int

const (
	optionInvalid Option = iota
	OptionPropertyName
	OptionPropertyType
	OptionPropertyDescription
	OptionDefaultValue
	OptionIsReadOnly
	OptionMethod
)

var optionValueMap = map[Option]string{
	OptionPropertyName:        "PropertyName",
	OptionPropertyType:        "PropertyType",
	OptionPropertyDescription: "PropertyDescription",
	OptionDefaultValue:        "PropertyDefaultValue",
	OptionIsReadOnly:          "IsReadOnly",
	OptionMethod:              "Method",
}

// optionAliases maps every accepted argument name to its option.
var optionAliases = map[string]Option{
	"PropertyName":         OptionPropertyName,
	"PropertyType":         OptionPropertyType,
	"PropertyDescription":  OptionPropertyDescription,
	"PropertyDefaultValue": OptionDefaultValue,
	"DefaultValue":         OptionDefaultValue,
	"IsReadOnly":           OptionIsReadOnly,
	"Method":               OptionMethod,
}

func (o Option) String() string {
	v, ok := optionValueMap[o]
	if !ok {
		return fmt.Sprintf("invalid(%d)", o)
	}
	return v
}

// ParseOption resolves an argument name. Matching is case-sensitive.
func ParseOption(name string) (Option, bool) {
	o, ok := optionAliases[name]
	return o, ok
}

// Kind returns the value kind the option is decoded as.
func (o Option) Kind() host.ValueKind {
	if o == OptionIsReadOnly {
		return host.ValueKindBool
	}
	return host.ValueKindString
}

// Text decodes a string option. Any literal kind is accepted as text, so
// DefaultValue=404 and DefaultValue="404" are equivalent.
func (o Option) Text(v host.Value) (string, error) {
	if o.Kind() != host.ValueKindString {
		return "", fmt.Errorf("%s is not a string option", o)
	}
	if v.Kind == host.ValueKindInvalid {
		return "", fmt.Errorf("%s: invalid value", o)
	}
	return v.Text, nil
}

// Bool decodes a bool option. Only true and false are accepted.
func (o Option) Bool(v host.Value) (bool, error) {
	if o.Kind() != host.ValueKindBool {
		return false, fmt.Errorf("%s is not a bool option", o)
	}
	if v.Kind != host.ValueKindBool {
		return false, fmt.Errorf("%s: expected bool, got %s", o, v)
	}
	return v.Text == "true", nil
}

// ExceptionOptions are the arguments of the exception marker.
var ExceptionOptions = []Option{
	OptionPropertyName,
	OptionPropertyType,
	OptionPropertyDescription,
	OptionDefaultValue,
	OptionIsReadOnly,
}

// DisplayOptions are the arguments of the display marker.
var DisplayOptions = []Option{
	OptionMethod,
}
