package scanner

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/Alia5/synthgen/internal/codegen/host"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax

// PackageSnapshot is the declaration snapshot of one loaded package.
type PackageSnapshot struct {
	PkgPath string
	Name    string
	Dir     string

	decls []host.Declaration
	err   error
}

func (s *PackageSnapshot) Declarations() ([]host.Declaration, error) {
	return s.decls, s.err
}

// LoadPackages loads the packages matching patterns relative to dir and
// builds one snapshot per package. Packages that failed to parse still get
// a snapshot; its Declarations reports the failure.
func LoadPackages(ctx context.Context, dir string, patterns ...string) ([]*PackageSnapshot, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	out := make([]*PackageSnapshot, 0, len(pkgs))
	for _, pkg := range pkgs {
		snap := &PackageSnapshot{
			PkgPath: pkg.PkgPath,
			Name:    pkg.Name,
		}
		if len(pkg.GoFiles) > 0 {
			snap.Dir = filepath.Dir(pkg.GoFiles[0])
		}

		if len(pkg.Syntax) == 0 {
			snap.err = packageError(pkg)
			out = append(out, snap)
			continue
		}

		for _, file := range pkg.Syntax {
			if ast.IsGenerated(file) {
				continue
			}
			snap.decls = append(snap.decls, DeclarationsFromFile(pkg.Fset, pkg.PkgPath, file)...)
		}
		out = append(out, snap)
	}

	return out, nil
}

func packageError(pkg *packages.Package) error {
	if len(pkg.Errors) == 0 {
		return fmt.Errorf("package %s: no syntax loaded", pkg.PkgPath)
	}
	errs := make([]error, 0, len(pkg.Errors))
	for _, e := range pkg.Errors {
		errs = append(errs, e)
	}
	return fmt.Errorf("package %s: %w", pkg.PkgPath, errors.Join(errs...))
}
