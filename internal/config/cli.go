// Package config holds the command line interface definition. Values come
// from flags, SYNTHGEN_* environment variables and configuration files, in
// that order of precedence.
package config

import "github.com/Alia5/synthgen/internal/cmd"

type CLI struct {
	Config string `help:"Path to a configuration file (JSON, YAML or TOML)" type:"path" env:"SYNTHGEN_CONFIG"`
	Log    Log    `embed:"" prefix:"log."`

	Gen       cmd.Gen           `cmd:"" default:"withargs" help:"Generate code for annotated declarations"`
	Check     cmd.Check         `cmd:"" help:"Report generated files that are missing or out of date"`
	Watch     cmd.Watch         `cmd:"" help:"Regenerate whenever package sources change"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
	Version   cmd.Version       `cmd:"" help:"Print version information"`
}

type Log struct {
	Level     string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"SYNTHGEN_LOG_LEVEL"`
	File      string `help:"Write logs to this file instead of the console" type:"path" env:"SYNTHGEN_LOG_FILE"`
	TraceFile string `help:"Mirror pass traces to this file" type:"path" env:"SYNTHGEN_LOG_TRACE_FILE"`
}
