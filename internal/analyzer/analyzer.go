// Package analyzer exposes generation passes as a go/analysis analyzer. It
// reports generated files that are missing or out of date and declarations
// that could not be rendered.
package analyzer

import (
	"bytes"
	"go/ast"
	"go/token"
	"log/slog"
	"path/filepath"
	"reflect"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/Alia5/synthgen/internal/codegen/generator"
	"github.com/Alia5/synthgen/internal/codegen/host"
	"github.com/Alia5/synthgen/internal/codegen/scanner"
	"github.com/Alia5/synthgen/internal/codegen/sink"
)

const doc = `synthgen checks that annotated declarations have up to date generated code

Types marked with //synth:exception or //synth:display get a generated
file next to their declaration. The analyzer runs a generation pass over the
package and reports generated files that are missing or differ from what
synthgen gen would write. The pass output is the analyzer result.`

// Analyzer is the synthgen staleness checker.
var Analyzer = &analysis.Analyzer{
	Name:       "synthgen",
	Doc:        doc,
	Requires:   []*analysis.Analyzer{inspect.Analyzer},
	Run:        run,
	ResultType: reflect.TypeOf(sink.Output{}),
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	var (
		snapshot  host.StaticSnapshot
		positions = map[string]token.Pos{}
		generated = map[string]bool{}
	)

	nodeFilter := []ast.Node{
		(*ast.File)(nil),
		(*ast.TypeSpec)(nil),
	}
	skip := false
	insp.Preorder(nodeFilter, func(node ast.Node) {
		switch n := node.(type) {
		case *ast.File:
			skip = ast.IsGenerated(n)
			if skip {
				generated[pass.Fset.Position(n.Package).Filename] = true
				return
			}
			snapshot = append(snapshot, scanner.DeclarationsFromFile(pass.Fset, pass.Pkg.Path(), n)...)
		case *ast.TypeSpec:
			if !skip {
				positions[n.Name.Name] = n.Name.Pos()
			}
		}
	})

	p, err := generator.New(slog.New(slog.DiscardHandler), generator.Config{})
	if err != nil {
		return nil, err
	}
	out := p.Run(snapshot)

	for _, a := range out.Artifacts {
		pos := positions[a.Decl]
		path := sink.Path(a, "")
		if !generated[path] {
			pass.Reportf(pos, "%s: generated file %s is missing", a.Generator, filepath.Base(path))
			continue
		}
		current, err := pass.ReadFile(path)
		if err != nil {
			pass.Reportf(pos, "%s: read %s: %v", a.Generator, filepath.Base(path), err)
			continue
		}
		if !bytes.Equal(current, a.Source) {
			pass.Reportf(pos, "%s: generated file %s is out of date", a.Generator, filepath.Base(path))
		}
	}

	for _, f := range out.Failures {
		pass.Reportf(positions[f.Decl], "%s: %v", f.Generator, f.Err)
	}

	return out, nil
}
