package configpaths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNamedConfigPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	p, err := DefaultNamedConfigPath("config", "yml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/synthgen/config.yaml", p)

	p, err = DefaultConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/synthgen/config.json", p)
}

func TestConfigCandidatePaths(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	wd, err := os.Getwd()
	require.NoError(t, err)

	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("custom.yml")

	assert.Equal(t, "custom.yml", yamlPaths[0])
	assert.Equal(t, filepath.Join(wd, ".synthgen.json"), jsonPaths[0])
	assert.Contains(t, jsonPaths, "/tmp/xdg/synthgen/config.json")
	assert.Equal(t, "/etc/synthgen/config.toml", tomlPaths[len(tomlPaths)-1])
	assert.Len(t, yamlPaths, 1+2*len(baseNames)+2+2)
}

func TestEnsureDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a", "b", "config.json")
	require.NoError(t, EnsureDir(file))
	assert.DirExists(t, filepath.Dir(file))
}
