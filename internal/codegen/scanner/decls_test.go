package scanner

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/synthgen/internal/codegen/host"
)

func findDecl(t *testing.T, decls []host.Declaration, name string) host.Declaration {
	t.Helper()
	for _, d := range decls {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("declaration %q not found", name)
	return host.Declaration{}
}

func TestScanDir(t *testing.T) {
	decls, err := ScanDir("testdata/shapes", "example.com/shapes")
	require.NoError(t, err)

	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"NotFound", "Circle", "Meta", "Default", "answer", "Area", "Box"}, names)

	nf := findDecl(t, decls, "NotFound")
	assert.Equal(t, host.DeclKindType, nf.Kind)
	assert.Equal(t, "example.com/shapes", nf.Scope)
	assert.Equal(t, "shapes", nf.Package)
	assert.Equal(t, "example.com/shapes.NotFound", nf.FullName())
	assert.True(t, nf.IsStruct)
	require.Len(t, nf.Annotations, 2)
	assert.Equal(t, "synth:exception", nf.Annotations[0].Marker)
	assert.Equal(t, 11, nf.Annotations[0].Pos.Line)
	v, ok := nf.Annotations[1].Lookup("PropertyType")
	require.True(t, ok)
	assert.Equal(t, "time.Duration", v.Text)
	assert.Equal(t, []host.Member{{Name: "notFoundFields", Type: "notFoundFields", Embedded: true}}, nf.Members)
	assert.Equal(t, map[string]string{"time": "time", "yaml": "gopkg.in/yaml.v3"}, nf.Imports)

	circle := findDecl(t, decls, "Circle")
	require.Len(t, circle.Annotations, 1)
	v, ok = circle.Annotations[0].Lookup("Method")
	require.True(t, ok)
	assert.Equal(t, "Describe", v.Text)
	assert.Equal(t, []host.Member{
		{Name: "Radius", Type: "float64", Exported: true},
		{Name: "label", Type: "string"},
		{Name: "Meta", Type: "*Meta", Exported: true, Embedded: true},
	}, circle.Members)

	meta := findDecl(t, decls, "Meta")
	assert.Empty(t, meta.Annotations)
	assert.Equal(t, "yaml.Node", meta.Members[0].Type)

	assert.Equal(t, host.DeclKindValue, findDecl(t, decls, "Default").Kind)
	assert.Len(t, findDecl(t, decls, "Default").Annotations, 1)
	assert.Equal(t, host.DeclKindFunc, findDecl(t, decls, "Area").Kind)
	assert.Equal(t, []string{"T"}, findDecl(t, decls, "Box").TypeParams)
}

func TestCandidates(t *testing.T) {
	decls, err := ScanDir("testdata/shapes", "example.com/shapes")
	require.NoError(t, err)

	var names []string
	for _, d := range Candidates(decls) {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"NotFound", "Circle"}, names)
}

func TestParseFileDefaultScope(t *testing.T) {
	src := `package widgets

//synth:display
type Widget struct{ ID string }
`
	decls, _, err := ParseFile(token.NewFileSet(), "", "widget.go", src)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "widgets", decls[0].Scope)
	assert.Equal(t, "widget.go", decls[0].File)
}

func TestParseFileError(t *testing.T) {
	_, _, err := ParseFile(token.NewFileSet(), "", "broken.go", "package broken\nfunc {")
	assert.Error(t, err)
}

func TestDirSnapshot(t *testing.T) {
	var snap host.Snapshot = DirSnapshot{Dir: "testdata/shapes", Scope: "shapes"}
	decls, err := snap.Declarations()
	require.NoError(t, err)
	assert.NotEmpty(t, decls)

	_, err = DirSnapshot{Dir: "testdata/missing"}.Declarations()
	assert.NoError(t, err, "an empty directory scans to nothing")
}

func TestGuessImportName(t *testing.T) {
	tests := map[string]string{
		"time":                         "time",
		"gopkg.in/yaml.v3":             "yaml",
		"github.com/pelletier/go-toml": "toml",
		"github.com/alecthomas/kong":   "kong",
		"example.com/mod/v2":           "mod",
		"github.com/fsnotify/fsnotify": "fsnotify",
	}
	for path, want := range tests {
		assert.Equal(t, want, GuessImportName(path), path)
	}
}
