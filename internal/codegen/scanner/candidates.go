package scanner

import "github.com/Alia5/synthgen/internal/codegen/host"

// Candidates returns the type declarations that carry at least one
// annotation, in host order.
func Candidates(decls []host.Declaration) []host.Declaration {
	var out []host.Declaration
	for _, d := range decls {
		if d.Kind != host.DeclKindType || len(d.Annotations) == 0 {
			continue
		}
		out = append(out, d)
	}
	return out
}
