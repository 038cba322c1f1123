package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/Alia5/synthgen/internal/codegen/common"
)

type Version struct {
	JSON bool `help:"Print version details as JSON"`

	out io.Writer
}

type versionInfo struct {
	Version string `json:"version"`
	Major   int    `json:"major"`
	Minor   int    `json:"minor"`
	Patch   int    `json:"patch"`
	Go      string `json:"go"`
}

// Run is called by Kong when the version command is executed.
func (c *Version) Run() error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	v, err := common.GetVersion()
	if err != nil {
		return err
	}
	if !c.JSON {
		_, err := fmt.Fprintf(out, "synthgen %s (%s)\n", v, runtime.Version())
		return err
	}

	info := versionInfo{Version: v, Go: runtime.Version()}
	info.Major, info.Minor, info.Patch = common.ParseVersion(v)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		return fmt.Errorf("encode version: %w", err)
	}
	return nil
}
