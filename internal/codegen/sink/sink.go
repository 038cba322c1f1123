// Package sink collects the artifacts of a pass and the aggregated pass log.
package sink

import (
	"encoding/hex"
	"strings"

	"github.com/sirkon/rbtree"
	"golang.org/x/crypto/blake2b"

	"github.com/Alia5/synthgen/internal/codegen/meta"
)

// LogArtifactName names the log artifact emitted once per pass.
const LogArtifactName = "GeneratorLogs"

// Artifact is one rendered unit of source text.
type Artifact struct {
	Generator string
	Name      string // "<scope>.<Decl>.g"
	Package   string
	Decl      string
	File      string // source file of the declaration; output is placed next to it
	Source    []byte
	Log       []string
}

// ArtifactName returns the stable artifact name of a declaration.
func ArtifactName(scope, decl string) string {
	return scope + "." + decl + ".g"
}

// FileName is the base name the artifact is written under.
func (a Artifact) FileName() string {
	if a.Decl == "" {
		return a.Name + ".go"
	}
	return a.Decl + "." + a.Generator + ".g.go"
}

// Sum returns the hex BLAKE2b-256 digest of the source.
func (a Artifact) Sum() string {
	return Digest(a.Source)
}

// Digest returns the hex BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Failure is a declaration that matched a generator but could not be
// rendered.
type Failure struct {
	Generator string
	Decl      string
	Err       error
}

// Output is what a pass hands back to its host.
type Output struct {
	Artifacts []Artifact
	Failures  []Failure
	Log       Artifact
}

// LogLines returns the pass log split into lines.
func (o Output) LogLines() []string {
	if len(o.Log.Source) == 0 {
		return nil
	}
	return strings.Split(string(o.Log.Source), "\n")
}

type artifactKey struct {
	generator string
	name      string
}

func (k *artifactKey) Cmp(other *artifactKey) int {
	if c := strings.Compare(k.generator, other.generator); c != 0 {
		return c
	}
	return strings.Compare(k.name, other.name)
}

// Sink accumulates the artifacts of a single pass. It is not safe for
// concurrent use.
type Sink struct {
	trace     *meta.Trace
	index     *rbtree.Tree[*artifactKey]
	artifacts []Artifact
	failures  []Failure
}

// New creates a sink writing collision reports to trace.
func New(trace *meta.Trace) *Sink {
	return &Sink{
		trace: trace,
		index: rbtree.New[*artifactKey](),
	}
}

// Emit stores an artifact. An artifact whose (generator, name) pair was
// already emitted is dropped and reported; Emit returns false in that case.
func (s *Sink) Emit(a Artifact) bool {
	key := &artifactKey{generator: a.Generator, name: a.Name}
	if got := s.index.InsertReturn(key); got != key {
		s.trace.Addf("Skipping %s artifact %s: name already emitted", a.Generator, a.Name)
		return false
	}

	s.trace.Append(a.Log...)
	s.trace.Addf("Emitted %s (%s, %d bytes, blake2b %s)", a.Name, a.Generator, len(a.Source), a.Sum()[:16])
	s.artifacts = append(s.artifacts, a)
	return true
}

// Fail records a render failure of decl.
func (s *Sink) Fail(generator, decl string, err error) {
	s.trace.Addf("render failure: %s", err)
	s.failures = append(s.failures, Failure{Generator: generator, Decl: decl, Err: err})
}

// Len returns the number of emitted artifacts.
func (s *Sink) Len() int {
	return len(s.artifacts)
}

// Output closes the pass: it returns the artifacts in emission order and the
// newline-joined log artifact.
func (s *Sink) Output() Output {
	out := Output{
		Artifacts: make([]Artifact, len(s.artifacts)),
		Failures:  make([]Failure, len(s.failures)),
		Log: Artifact{
			Name:   LogArtifactName,
			Source: []byte(strings.Join(s.trace.Lines(), "\n")),
		},
	}
	copy(out.Artifacts, s.artifacts)
	copy(out.Failures, s.failures)
	return out
}
