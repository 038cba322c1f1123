// Package generator runs code generation passes: scan, extract, merge,
// render and emit, once per declaration snapshot.
package generator

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/Alia5/synthgen/internal/codegen/generator/display"
	"github.com/Alia5/synthgen/internal/codegen/generator/exception"
	"github.com/Alia5/synthgen/internal/codegen/host"
	"github.com/Alia5/synthgen/internal/codegen/meta"
	"github.com/Alia5/synthgen/internal/codegen/scanner"
	"github.com/Alia5/synthgen/internal/codegen/sink"
)

// Renderer turns a generation unit into formatted source.
type Renderer func(u meta.Unit) ([]byte, error)

// Kind is one generator variant.
type Kind struct {
	Name    string
	Marker  string
	Options []meta.Option
	Render  Renderer

	// Inspect may add trace lines about a matched declaration.
	Inspect func(d host.Declaration, tr *meta.Trace)
}

var generators = map[string]Kind{
	exception.Name: {
		Name:    exception.Name,
		Marker:  exception.Marker,
		Options: meta.ExceptionOptions,
		Render:  exception.Render,
		Inspect: inspectException,
	},
	display.Name: {
		Name:    display.Name,
		Marker:  display.Marker,
		Options: meta.DisplayOptions,
		Render:  display.Render,
	},
}

// Names returns the registered generator names, sorted.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns a registered generator.
func Lookup(name string) (Kind, error) {
	k, ok := generators[name]
	if !ok {
		return Kind{}, fmt.Errorf("unsupported generator '%s' (supported: %v)", name, Names())
	}
	return k, nil
}

// Config selects and tunes the generators of a pass.
type Config struct {
	// Generators to run; empty runs all of them.
	Generators []string
	// Markers overrides the marker of a generator by name.
	Markers map[string]string
	// IsGlobalScope overrides the global scope heuristic.
	IsGlobalScope meta.ScopeFilter
}

// Pass runs the generation pipeline. A Pass holds no per-run state and may
// be used from multiple goroutines.
type Pass struct {
	kinds  []Kind
	scope  meta.ScopeFilter
	logger *slog.Logger
}

// New builds a pass from cfg.
func New(logger *slog.Logger, cfg Config) (*Pass, error) {
	names := cfg.Generators
	if len(names) == 0 {
		names = Names()
	}

	p := &Pass{
		scope:  cfg.IsGlobalScope,
		logger: logger,
	}
	for _, name := range names {
		k, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		if m, ok := cfg.Markers[name]; ok && m != "" {
			if !scanner.IsMarker("//" + m) {
				return nil, fmt.Errorf("invalid marker %q for generator %s", m, name)
			}
			k.Marker = m
		}
		p.kinds = append(p.kinds, k)
	}
	return p, nil
}

// Kinds returns the generators of the pass in run order.
func (p *Pass) Kinds() []Kind {
	return slices.Clone(p.kinds)
}

// Run executes one pass over snap. It never fails: extraction and rendering
// failures are captured in the log artifact, and a missing or broken snapshot
// yields the log artifact only.
func (p *Pass) Run(snap host.Snapshot) sink.Output {
	tr := &meta.Trace{}
	s := sink.New(tr)

	if snap == nil {
		tr.Add("Error: no declaration snapshot")
		p.logger.Warn("Generation pass without snapshot")
		return s.Output()
	}
	decls, err := snap.Declarations()
	if err != nil {
		tr.Addf("Error: declarations unavailable: %s", err)
		p.logger.Warn("Generation pass without declarations", "error", err)
		return s.Output()
	}

	candidates := scanner.Candidates(decls)
	tr.Addf("Items: %d", len(candidates))

	for _, k := range p.kinds {
		p.runKind(k, candidates, tr, s)
	}

	p.logger.Debug("Generation pass complete",
		"declarations", len(decls),
		"candidates", len(candidates),
		"artifacts", s.Len())
	return s.Output()
}

func (p *Pass) runKind(k Kind, candidates []host.Declaration, tr *meta.Trace, s *sink.Sink) {
	tr.Addf("Generator: %s, marker %s", k.Name, k.Marker)
	ex := meta.Extractor{
		Marker:        k.Marker,
		Allowed:       k.Options,
		IsGlobalScope: p.scope,
	}

	for _, d := range candidates {
		results, ok := ex.Extract(d, tr)
		if !ok {
			continue
		}
		if k.Inspect != nil {
			k.Inspect(d, tr)
		}

		u := meta.NewUnit(k.Name, d, meta.Merge(results), meta.LastSettings(results))
		tr.Addf("Rendering %s with %d properties", u.FullName(), len(u.Properties))

		src, err := k.Render(u)
		if err != nil {
			s.Fail(k.Name, u.Name, err)
			p.logger.Debug("Render failed", "generator", k.Name, "declaration", u.FullName(), "error", err)
			continue
		}

		s.Emit(sink.Artifact{
			Generator: k.Name,
			Name:      sink.ArtifactName(u.Scope, u.Name),
			Package:   u.Package,
			Decl:      u.Name,
			File:      u.File,
			Source:    src,
		})
	}
}

func inspectException(d host.Declaration, tr *meta.Trace) {
	fields := exception.FieldsName(d.Name)
	if !d.IsStruct {
		tr.Addf("%s is not a struct type and cannot embed %s", d.Name, fields)
		return
	}
	for _, m := range d.Members {
		if m.Embedded && m.Name == fields {
			return
		}
	}
	tr.Addf("%s does not embed %s", d.Name, fields)
}
