package profiling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestStart_AllProfiles(t *testing.T) {
	// Given: every profile requested
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.prof"),
		Heap:  filepath.Join(dir, "heap.prof"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	require.True(t, opts.Enabled())

	// When: profiling some work
	s, err := Start(opts)
	require.NoError(t, err)
	sum := 0
	for i := 0; i < 1000000; i++ {
		sum += i
	}
	_ = sum
	require.NoError(t, s.Stop())

	// Then: every file has content
	nonEmpty(t, opts.CPU)
	nonEmpty(t, opts.Heap)
	nonEmpty(t, opts.Trace)
}

func TestStop_Idempotent(t *testing.T) {
	dir := t.TempDir()
	s, err := Start(Options{Heap: filepath.Join(dir, "heap.prof")})
	require.NoError(t, err)

	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())
}

func TestStart_BadPath(t *testing.T) {
	_, err := Start(Options{CPU: filepath.Join(t.TempDir(), "missing", "cpu.prof")})
	assert.ErrorContains(t, err, "CPU profile")
}

func TestOptions_Enabled(t *testing.T) {
	assert.False(t, Options{}.Enabled())
	assert.True(t, Options{Trace: "t.out"}.Enabled())
}

func TestMemSummary(t *testing.T) {
	s := MemSummary()
	assert.Contains(t, s, "heap")
	assert.Contains(t, s, "objects")
}
