package common

import (
	"fmt"
	"go/ast"
	"go/parser"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"
)

// GeneratedHeader is the first line of every generated file.
const GeneratedHeader = "// Code generated by synthgen. DO NOT EDIT."

var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// FormatSource gofmts generated source and sorts its imports. It never adds
// or removes imports, so it does not touch the file system.
func FormatSource(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, formatOptions)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return out, nil
}

// TypeQualifiers returns the package qualifiers used by a Go type expression,
// e.g. "map[string]uuid.UUID" => ["uuid"].
func TypeQualifiers(typeExpr string) ([]string, error) {
	expr, err := parser.ParseExpr(typeExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid type %q: %w", typeExpr, err)
	}

	seen := make(map[string]bool)
	var out []string
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok && !seen[id.Name] {
			seen[id.Name] = true
			out = append(out, id.Name)
		}
		return false
	})
	return out, nil
}

// ImportBlock renders an import declaration for name -> path pairs.
// Names equal to the last path element are written without alias.
func ImportBlock(specs map[string]string) string {
	if len(specs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(specs))
	for _, name := range SortedStringKeys(specs) {
		p := specs[name]
		line := strconv.Quote(p)
		if name != lastElem(p) {
			line = name + " " + line
		}
		lines = append(lines, line)
	}
	if len(lines) == 1 {
		return "import " + lines[0]
	}
	return "import (\n\t" + strings.Join(lines, "\n\t") + "\n)"
}

func lastElem(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
