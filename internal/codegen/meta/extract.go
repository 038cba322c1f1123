package meta

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Alia5/synthgen/internal/codegen/host"
)

// DefaultGlobalScopeMarkers are the characters that flag a scope as the
// unnamed/global scope. Real import paths never contain them, synthetic
// ones such as "pkg [pkg.test]" do.
const DefaultGlobalScopeMarkers = "<[ "

// ScopeFilter reports whether a scope is the global/unnamed scope that
// generated code cannot be placed in.
type ScopeFilter func(scope string) bool

// GlobalScopeMarkers returns a filter flagging empty scopes and scopes that
// contain any of chars.
func GlobalScopeMarkers(chars string) ScopeFilter {
	return func(scope string) bool {
		if scope == "" {
			return true
		}
		return chars != "" && strings.ContainsAny(scope, chars)
	}
}

// Extractor filters a declaration's annotations to one marker and decodes
// each match.
type Extractor struct {
	Marker  string
	Allowed []Option

	// IsGlobalScope defaults to GlobalScopeMarkers(DefaultGlobalScopeMarkers).
	IsGlobalScope ScopeFilter
}

// Extract returns one result per matching annotation. The second return
// value is false when the declaration is excluded or has no match.
func (x *Extractor) Extract(d host.Declaration, tr *Trace) ([]Result[Settings], bool) {
	isGlobal := x.IsGlobalScope
	if isGlobal == nil {
		isGlobal = GlobalScopeMarkers(DefaultGlobalScopeMarkers)
	}
	if isGlobal(d.Scope) {
		tr.Addf("Ignoring global scope %q for %s", d.Scope, d.Name)
		return nil, false
	}

	tr.Add("Scope: " + d.Scope)
	tr.Add("Type: " + d.Name)

	var matched []host.Annotation
	for _, ann := range d.Annotations {
		tr.Addf("Found %s, looking for %s", ann.Marker, x.Marker)
		if ann.Marker == x.Marker {
			matched = append(matched, ann)
		}
	}
	if len(matched) == 0 {
		tr.Add("Marker not found")
		return nil, false
	}

	tr.Addf("Adding %s total: %d", d.FullName(), len(matched))

	results := make([]Result[Settings], 0, len(matched))
	for _, ann := range matched {
		r := x.decode(d, ann, tr)
		if !r.OK() {
			tr.Addf("extract failure: %s", r.Err)
		}
		results = append(results, r)
	}
	return results, true
}

func (x *Extractor) decode(d host.Declaration, ann host.Annotation, tr *Trace) Result[Settings] {
	if ann.Err != nil {
		return Fail[Settings](fmt.Errorf("%s at %s: %w", d.FullName(), ann.Pos, ann.Err))
	}

	tr.Addf("%s has %d named arguments", d.FullName(), len(ann.Named))
	tr.Addf("positional args: %d", len(ann.Positional))
	for _, v := range ann.Positional {
		tr.Add("positional arg value: " + v.String())
	}

	s := NewSettings()
	for _, arg := range ann.Named {
		tr.Add("named arg: " + arg.Name)
		tr.Add("named arg value: " + arg.Value.String())

		opt, ok := ParseOption(arg.Name)
		if !ok || !slices.Contains(x.Allowed, opt) {
			tr.Addf("ignored argument %s", arg.Name)
			continue
		}
		if err := s.apply(opt, arg.Value); err != nil {
			return Fail[Settings](fmt.Errorf("%s at %s: %w", d.FullName(), ann.Pos, err))
		}
	}

	tr.Add("marker complete")
	return Ok(s)
}

func (s *Settings) apply(o Option, v host.Value) error {
	if o.Kind() == host.ValueKindBool {
		b, err := o.Bool(v)
		if err != nil {
			return err
		}
		switch o {
		case OptionIsReadOnly:
			s.IsReadOnly = b
		}
		s.mark(o)
		return nil
	}

	text, err := o.Text(v)
	if err != nil {
		return err
	}
	switch o {
	case OptionPropertyName:
		s.PropertyName = text
	case OptionPropertyType:
		s.PropertyType = text
	case OptionPropertyDescription:
		s.PropertyDescription = text
	case OptionDefaultValue:
		s.DefaultValue = text
	case OptionMethod:
		s.Method = text
	}
	s.mark(o)
	return nil
}
