package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFile_MissingFileIsNoop(t *testing.T) {
	path, err := BackupFile(filepath.Join(t.TempDir(), ProjectFileName))

	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestBackupFile_CopiesAndPrunes(t *testing.T) {
	// Given: an existing project config
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ProjectFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 1\n"), 0o644))

	base := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	tick := 0
	now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	t.Cleanup(func() { now = time.Now })

	// When: backing it up more times than are kept
	var last string
	for i := 0; i < MaxBackups+2; i++ {
		p, err := BackupFile(cfgPath)
		require.NoError(t, err)
		last = p
	}

	// Then: only the newest backups remain, newest first
	backups, err := ListBackups(cfgPath)
	require.NoError(t, err)
	assert.Len(t, backups, MaxBackups)
	assert.Equal(t, last, backups[0])

	data, err := os.ReadFile(last)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))
}
