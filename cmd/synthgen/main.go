package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/Alia5/synthgen/internal/config"
	"github.com/Alia5/synthgen/internal/configpaths"
	"github.com/Alia5/synthgen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/joho/godotenv"
)

func main() {
	// Existing environment variables win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = os.Stderr.WriteString("failed to load .env: " + err.Error() + "\n")
		os.Exit(2)
	}

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("synthgen"),
		kong.Description("Annotation-driven code generation for Go packages"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(log.Options{Level: cli.Log.Level, File: cli.Log.File})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var tracer log.TraceLogger
	if cli.Log.TraceFile != "" {
		f, err := os.OpenFile(cli.Log.TraceFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open trace file", "file", cli.Log.TraceFile, "error", err)
			tracer = log.NewTrace(nil)
		} else {
			tracer = log.NewTrace(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		tracer = log.NewTrace(os.Stdout)
	} else {
		tracer = log.NewTrace(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(tracer, (*log.TraceLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("SYNTHGEN_CONFIG"); v != "" {
		return v
	}
	return ""
}
