package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiqnnc/wiki/configs"
	"github.com/wiqnnc/wiki/internal/config"
)

func TestInitCmd_WritesTemplate(t *testing.T) {
	// Given: an empty site directory
	dir := newSite(t)

	// When: running init
	out, err := execute(t, "init", "-C", dir)

	// Then: the template is written and loads cleanly
	require.NoError(t, err)
	assert.Contains(t, out, "Created")
	raw, err := os.ReadFile(filepath.Join(dir, ".wiki.yaml"))
	require.NoError(t, err)
	assert.Equal(t, configs.ProjectConfigTemplate, string(raw))

	_, err = config.Load(dir)
	assert.NoError(t, err)
}

func TestInitCmd_RefusesOverwrite(t *testing.T) {
	// Given: an existing config
	dir := newSite(t)
	path := filepath.Join(dir, ".wiki.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	// When: running init without --force
	_, err := execute(t, "init", "-C", dir)

	// Then: the file is untouched
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	raw, _ := os.ReadFile(path)
	assert.Equal(t, "version: 1\n", string(raw))
}

func TestInitCmd_ForceKeepsBackup(t *testing.T) {
	// Given: an existing config
	dir := newSite(t)
	path := filepath.Join(dir, ".wiki.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	// When: running init --force
	out, err := execute(t, "init", "--force", "-C", dir)

	// Then: the template replaces it and the old file is backed up
	require.NoError(t, err)
	assert.Contains(t, out, "Backed up")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, configs.ProjectConfigTemplate, string(raw))

	backups, err := config.ListBackups(path)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
