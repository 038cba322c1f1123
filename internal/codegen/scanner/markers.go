package scanner

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"regexp"
	"strconv"
	"strings"

	"github.com/Alia5/synthgen/internal/codegen/host"
)

// markerPattern matches a directive comment: //<prefix>:<name> [args...]
// The directive form (no space after the slashes) keeps markers out of godoc.
var markerPattern = regexp.MustCompile(`^([a-z0-9]+:[A-Za-z0-9_.:-]+)(?:\s+(.*))?$`)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsMarker reports whether a raw comment is a marker directive.
func IsMarker(comment string) bool {
	if !strings.HasPrefix(comment, "//") {
		return false
	}
	return markerPattern.MatchString(strings.TrimRight(comment[2:], " \t\r"))
}

// ParseMarker parses a single marker comment.
//
// Accepted forms:
//
//	//synth:display
//	//synth:exception PropertyName=Code PropertyType=int IsReadOnly=false
//	//synth:exception PropertyDescription="HTTP status, as sent" DefaultValue=404
//
// Arguments are whitespace separated. Quoted values may contain spaces.
// Arguments without a name are positional. The second return value is false
// when the comment is not a marker at all; a marker with unparsable
// arguments is returned with Err set.
func ParseMarker(comment string) (host.Annotation, bool) {
	if !strings.HasPrefix(comment, "//") {
		return host.Annotation{}, false
	}
	matches := markerPattern.FindStringSubmatch(strings.TrimRight(comment[2:], " \t\r"))
	if matches == nil {
		return host.Annotation{}, false
	}

	ann := host.Annotation{Marker: matches[1]}

	fields, err := splitArgs(matches[2])
	if err != nil {
		ann.Err = fmt.Errorf("marker %s: %w", ann.Marker, err)
		return ann, true
	}

	for _, field := range fields {
		name, raw, named := cutArg(field)
		v, err := parseValue(raw)
		if err != nil {
			ann.Err = fmt.Errorf("marker %s: argument %q: %w", ann.Marker, field, err)
			return ann, true
		}
		if named {
			ann.Named = append(ann.Named, host.NamedArg{Name: name, Value: v})
			continue
		}
		ann.Positional = append(ann.Positional, v)
	}

	return ann, true
}

// ParseMarkers collects all markers of a doc comment group.
func ParseMarkers(fset *token.FileSet, doc *ast.CommentGroup) []host.Annotation {
	if doc == nil {
		return nil
	}
	var out []host.Annotation
	for _, c := range doc.List {
		ann, ok := ParseMarker(c.Text)
		if !ok {
			continue
		}
		if fset != nil {
			ann.Pos = fset.Position(c.Slash)
		}
		out = append(out, ann)
	}
	return out
}

var (
	errUnterminatedQuote = errors.New("unterminated quoted value")
	errUnbalanced        = errors.New("unbalanced brackets")
)

// splitArgs splits on whitespace outside quotes and brackets.
func splitArgs(s string) ([]string, error) {
	var (
		out   []string
		cur   strings.Builder
		quote byte
		depth int
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			cur.WriteByte(c)
			switch {
			case c == '\\' && quote == '"' && i+1 < len(s):
				i++
				cur.WriteByte(s[i])
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '`':
			quote = c
			cur.WriteByte(c)
		case '[', '(', '{':
			depth++
			cur.WriteByte(c)
		case ']', ')', '}':
			depth--
			if depth < 0 {
				return nil, errUnbalanced
			}
			cur.WriteByte(c)
		case ' ', '\t':
			if depth > 0 {
				cur.WriteByte(c)
				continue
			}
			flush()
		default:
			cur.WriteByte(c)
		}
	}

	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if depth != 0 {
		return nil, errUnbalanced
	}
	flush()
	return out, nil
}

// cutArg splits name=value when the part before '=' is an identifier.
func cutArg(field string) (name, value string, named bool) {
	idx := strings.IndexByte(field, '=')
	if idx <= 0 {
		return "", field, false
	}
	if !identPattern.MatchString(field[:idx]) {
		return "", field, false
	}
	return field[:idx], field[idx+1:], true
}

func parseValue(raw string) (host.Value, error) {
	if raw == "" {
		return host.Value{Kind: host.ValueKindString}, nil
	}

	switch raw[0] {
	case '"', '`':
		s, err := strconv.Unquote(raw)
		if err != nil {
			return host.Value{}, fmt.Errorf("unquote: %w", err)
		}
		return host.Value{Kind: host.ValueKindString, Text: s}, nil
	}

	if raw == "true" || raw == "false" {
		return host.Value{Kind: host.ValueKindBool, Text: raw}, nil
	}
	if _, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return host.Value{Kind: host.ValueKindInt, Text: raw}, nil
	}
	return host.Value{Kind: host.ValueKindRaw, Text: raw}, nil
}
