package common

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
)

// Version is set via ldflags at build time: -ldflags "-X github.com/Alia5/synthgen/internal/codegen/common.Version=x.y.z"
var Version = ""

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the version set at build time via ldflags, falling back
// to the module version recorded by go install. Development builds report
// "0.0.1-dev".
func GetVersion() (string, error) {
	v := Version
	if v == "" {
		if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if v == "" {
		return "0.0.1-dev", nil
	}

	version := strings.TrimPrefix(v, "v")
	baseVersion := strings.SplitN(version, "-", 2)[0]
	if !strings.Contains(baseVersion, ".") {
		return "", fmt.Errorf("invalid version format: %s (expected x.y.z)", v)
	}

	return version, nil
}

// ParseVersion extracts major, minor, patch from version string like "1.2.3" or "1.2.3-dirty"
// Returns major, minor, patch as integers.
func ParseVersion(version string) (major, minor, patch int) {
	parts := strings.SplitN(version, "-", 2)
	version = parts[0]

	nums := strings.Split(version, ".")
	if len(nums) >= 1 {
		major, _ = strconv.Atoi(nums[0])
	}
	if len(nums) >= 2 {
		minor, _ = strconv.Atoi(nums[1])
	}
	if len(nums) >= 3 {
		patch, _ = strconv.Atoi(nums[2])
	}
	return
}
