package meta

import (
	"maps"
	"slices"

	"github.com/Alia5/synthgen/internal/codegen/host"
)

// Unit is one declaration ready for rendering. Units are built once per pass
// and must not be modified afterwards.
type Unit struct {
	Generator  string
	Scope      string
	Package    string
	Name       string
	File       string
	Imports    map[string]string
	TypeParams []string
	IsStruct   bool
	Members    []host.Member
	Properties []Property
	Settings   Settings
}

// NewUnit copies the declaration data and properties into a new unit.
func NewUnit(generator string, d host.Declaration, props []Property, settings Settings) Unit {
	return Unit{
		Generator:  generator,
		Scope:      d.Scope,
		Package:    d.Package,
		Name:       d.Name,
		File:       d.File,
		Imports:    maps.Clone(d.Imports),
		TypeParams: slices.Clone(d.TypeParams),
		IsStruct:   d.IsStruct,
		Members:    slices.Clone(d.Members),
		Properties: slices.Clone(props),
		Settings:   settings,
	}
}

// FullName returns "<scope>.<name>".
func (u Unit) FullName() string {
	return u.Scope + "." + u.Name
}

// LastSettings returns the last successfully decoded settings, or the
// defaults when none decoded.
func LastSettings(results []Result[Settings]) Settings {
	for i := len(results) - 1; i >= 0; i-- {
		if results[i].OK() {
			return results[i].Value
		}
	}
	return NewSettings()
}
