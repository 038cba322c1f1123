package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/synthgen/internal/log"
)

const errsSource = `package errs

//synth:exception PropertyName=Code PropertyType=int IsReadOnly=true
type NotFound struct {
	notFoundFields
}
`

func writeModule(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/errs\n\ngo 1.21\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "errs.go"), []byte(src), 0o644))
	return dir
}

func testOptions(dir string) Options {
	return Options{
		Patterns:           []string{"./..."},
		Dir:                dir,
		ExceptionMarker:    "synth:exception",
		DisplayMarker:      "synth:display",
		GlobalScopeMarkers: "<[ ",
	}
}

func TestGenThenCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := writeModule(t, errsSource)
	ctx := context.Background()
	var trace bytes.Buffer
	tracer := log.NewTrace(&trace)

	var out bytes.Buffer
	gen := &Gen{Options: testOptions(dir), out: &out}
	results, err := gen.run(ctx, discard(), tracer)
	require.NoError(t, err)
	require.Len(t, results, 1)

	generated := filepath.Join(dir, "NotFound.exception.g.go")
	data, err := os.ReadFile(generated)
	require.NoError(t, err)
	assert.Contains(t, string(data), "func NewNotFound(")
	assert.Contains(t, out.String(), "created")
	assert.Contains(t, trace.String(), "Generator: exception")

	out.Reset()
	check := &Check{Options: testOptions(dir), out: &out}
	require.NoError(t, check.run(ctx, discard(), log.NewTrace(nil)))
	assert.Empty(t, out.String())

	changed := errsSource[:len(errsSource)-len("}\n")] + "}\n\n//synth:display\ntype Extra struct{ Name string }\n"
	changed = strings.Replace(changed, "IsReadOnly=true", "IsReadOnly=false", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "errs.go"), []byte(changed), 0o644))

	out.Reset()
	err = check.run(ctx, discard(), log.NewTrace(nil))
	require.ErrorIs(t, err, ErrStale)
	assert.Contains(t, out.String(), "stale")
	assert.Contains(t, out.String(), "missing")

	// check never writes.
	after, err := os.ReadFile(generated)
	require.NoError(t, err)
	assert.Equal(t, data, after)
}

func TestGenDryRun(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := writeModule(t, errsSource)
	passLog := filepath.Join(t.TempDir(), "pass.log")

	opts := testOptions(dir)
	opts.PassLog = passLog
	var out bytes.Buffer
	gen := &Gen{Options: opts, DryRun: true, out: &out}
	_, err := gen.run(context.Background(), discard(), log.NewTrace(nil))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "NotFound.exception.g.go"))
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "created")

	logData, err := os.ReadFile(passLog)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "== example.com/errs ==")
	assert.Contains(t, string(logData), "Rendering example.com/errs.NotFound with 1 properties")
}

func TestCheckFailOnRenderError(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := writeModule(t, `package errs

//synth:exception PropertyName=Error PropertyType=string
type Broken struct {
	brokenFields
}
`)
	check := &Check{Options: testOptions(dir), out: &bytes.Buffer{}}
	require.NoError(t, check.run(context.Background(), discard(), log.NewTrace(nil)))

	check.FailOnRenderError = true
	assert.Error(t, check.run(context.Background(), discard(), log.NewTrace(nil)))
}

func TestGenUnknownGenerator(t *testing.T) {
	opts := testOptions(t.TempDir())
	opts.Generators = []string{"protobuf"}
	_, err := (&Gen{Options: opts, out: &bytes.Buffer{}}).run(context.Background(), discard(), log.NewTrace(nil))
	assert.ErrorContains(t, err, "unsupported generator")
}
