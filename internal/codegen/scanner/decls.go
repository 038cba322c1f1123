package scanner

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Alia5/synthgen/internal/codegen/host"
)

// ParseFile parses Go source and returns its top-level declarations.
// src follows the go/parser convention: nil reads filename from disk.
func ParseFile(fset *token.FileSet, scope, filename string, src any) ([]host.Declaration, *ast.File, error) {
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, nil, fmt.Errorf("parse file: %w", err)
	}
	return DeclarationsFromFile(fset, scope, file), file, nil
}

// DeclarationsFromFile converts the top-level declarations of a parsed file.
// Methods are skipped; an empty scope falls back to the package name.
func DeclarationsFromFile(fset *token.FileSet, scope string, file *ast.File) []host.Declaration {
	pkgName := file.Name.Name
	if scope == "" {
		scope = pkgName
	}
	filename := fset.Position(file.Package).Filename
	imports := fileImports(file)

	base := func(name string, kind host.DeclKind, pos token.Pos) host.Declaration {
		return host.Declaration{
			Scope:   scope,
			Package: pkgName,
			Name:    name,
			Kind:    kind,
			File:    filename,
			Pos:     fset.Position(pos),
			Imports: imports,
		}
	}

	var decls []host.Declaration
	for _, d := range file.Decls {
		switch decl := d.(type) {
		case *ast.FuncDecl:
			if decl.Recv != nil {
				continue
			}
			fd := base(decl.Name.Name, host.DeclKindFunc, decl.Name.Pos())
			fd.Annotations = ParseMarkers(fset, decl.Doc)
			decls = append(decls, fd)

		case *ast.GenDecl:
			for _, spec := range decl.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					td := base(s.Name.Name, host.DeclKindType, s.Name.Pos())
					td.Annotations = ParseMarkers(fset, specDoc(decl, s.Doc))
					td.TypeParams = typeParams(s.TypeParams)
					if st, ok := s.Type.(*ast.StructType); ok {
						td.IsStruct = true
						td.Members = structMembers(st)
					}
					decls = append(decls, td)

				case *ast.ValueSpec:
					anns := ParseMarkers(fset, specDoc(decl, s.Doc))
					for _, name := range s.Names {
						if name.Name == "_" {
							continue
						}
						vd := base(name.Name, host.DeclKindValue, name.Pos())
						vd.Annotations = anns
						decls = append(decls, vd)
					}
				}
			}
		}
	}
	return decls
}

// specDoc returns the TypeSpec or ValueSpec doc, or the declaration doc for an
// ungrouped declaration such as "type X struct{}".
func specDoc(decl *ast.GenDecl, doc *ast.CommentGroup) *ast.CommentGroup {
	if doc != nil {
		return doc
	}
	if !decl.Lparen.IsValid() {
		return decl.Doc
	}
	return nil
}

func typeParams(list *ast.FieldList) []string {
	if list == nil {
		return nil
	}
	var out []string
	for _, field := range list.List {
		for _, n := range field.Names {
			out = append(out, n.Name)
		}
	}
	return out
}

func structMembers(st *ast.StructType) []host.Member {
	var out []host.Member
	for _, field := range st.Fields.List {
		typ := types.ExprString(field.Type)
		doc := strings.TrimSpace(field.Doc.Text())

		if len(field.Names) == 0 {
			name := embeddedName(field.Type)
			out = append(out, host.Member{
				Name:     name,
				Type:     typ,
				Doc:      doc,
				Exported: ast.IsExported(name),
				Embedded: true,
			})
			continue
		}

		for _, n := range field.Names {
			out = append(out, host.Member{
				Name:     n.Name,
				Type:     typ,
				Doc:      doc,
				Exported: n.IsExported(),
			})
		}
	}
	return out
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	default:
		return types.ExprString(expr)
	}
}

var versionSuffix = regexp.MustCompile(`^v[0-9]+$`)

func fileImports(file *ast.File) map[string]string {
	if len(file.Imports) == 0 {
		return nil
	}
	out := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := ""
		if spec.Name != nil {
			name = spec.Name.Name
		} else {
			name = GuessImportName(p)
		}
		if name == "_" || name == "." || name == "" {
			continue
		}
		out[name] = p
	}
	return out
}

// GuessImportName derives the conventional package name of an import path
// that is imported without an explicit name.
func GuessImportName(importPath string) string {
	elem := path.Base(importPath)
	if versionSuffix.MatchString(elem) {
		if parent := path.Dir(importPath); parent != "." && parent != "/" {
			elem = path.Base(parent)
		}
	}
	if i := strings.Index(elem, ".v"); i > 0 && versionSuffix.MatchString(elem[i+1:]) {
		elem = elem[:i]
	}
	elem = strings.TrimPrefix(elem, "go-")
	elem = strings.NewReplacer("-", "", ".", "").Replace(elem)
	return elem
}

// ScanDir parses all non-test, non-generated Go files of a directory.
func ScanDir(dir, scope string) ([]host.Declaration, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("glob package files: %w", err)
	}

	fset := token.NewFileSet()
	var all []host.Declaration
	for _, file := range matches {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}

		decls, parsed, err := ParseFile(fset, scope, file, nil)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", file, err)
		}
		if ast.IsGenerated(parsed) {
			continue
		}
		all = append(all, decls...)
	}

	return all, nil
}

// DirSnapshot is a host.Snapshot over one package directory.
type DirSnapshot struct {
	Dir   string
	Scope string
}

func (s DirSnapshot) Declarations() ([]host.Declaration, error) {
	return ScanDir(s.Dir, s.Scope)
}
