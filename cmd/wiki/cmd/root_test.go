package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validData = "../../../internal/content/testdata/valid"

// newSite copies the valid collections into a fresh site directory.
func newSite(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, env := range []string{"WIKI_DATA_DIR", "WIKI_PUBLIC_DIR", "WIKI_BASE_URL", "WIKI_SEARCH_LIMIT"} {
		t.Setenv(env, "")
	}

	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	entries, err := os.ReadDir(validData)
	require.NoError(t, err)
	for _, e := range entries {
		raw, err := os.ReadFile(filepath.Join(validData, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, e.Name()), raw, 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	// Given: the root command
	cmd := NewRootCmd()

	// When: listing subcommands
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	// Then: every command is registered
	for _, want := range []string{"build", "validate", "search", "watch", "mcp", "init", "logs", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	cmd := NewRootCmd()

	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
	dir := cmd.PersistentFlags().Lookup("dir")
	require.NotNil(t, dir)
	assert.Equal(t, "C", dir.Shorthand)
	assert.Equal(t, ".", dir.DefValue)
}

func TestRootCmd_NoArgsBuilds(t *testing.T) {
	// Given: a site with valid collections
	dir := newSite(t)

	// When: running wiki with no subcommand
	out, err := execute(t, "-C", dir)

	// Then: the artifacts are written
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed")
	assert.FileExists(t, filepath.Join(dir, "public", "search-index.json"))
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, "unknown-thing")
	assert.Error(t, err)
}

func TestRootCmd_ProfileFlags(t *testing.T) {
	// Given: a site and profile outputs
	dir := newSite(t)
	cpu := filepath.Join(t.TempDir(), "cpu.prof")
	mem := filepath.Join(t.TempDir(), "heap.prof")

	// When: building with profiling on
	_, err := execute(t, "build", "-C", dir, "--profile-cpu", cpu, "--profile-mem", mem)

	// Then: both profiles are written
	require.NoError(t, err)
	assert.FileExists(t, cpu)
	assert.FileExists(t, mem)
}
