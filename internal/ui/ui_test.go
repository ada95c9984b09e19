package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_AppliesOptions(t *testing.T) {
	// Given: a buffer output and both options
	buf := &bytes.Buffer{}

	// When: creating config
	cfg := NewConfig(buf, WithForcePlain(true), WithNoColor(true))

	// Then: options are applied
	assert.Equal(t, buf, cfg.Output)
	assert.True(t, cfg.ForcePlain)
	assert.True(t, cfg.NoColor)
}

func TestNewConfig_RespectsNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	cfg := NewConfig(&bytes.Buffer{})

	assert.True(t, cfg.NoColor)
}

func TestIsTTY_NonTerminals(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.False(t, IsTTY(f))
}

func TestConfig_InteractiveNeedsTTY(t *testing.T) {
	// Given: output that is not a terminal
	cfg := NewConfig(&bytes.Buffer{})

	// Then: the TUI is not used
	assert.False(t, cfg.Interactive())
}

func TestDetectCI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.True(t, DetectCI())
}

func TestGetStyles(t *testing.T) {
	plain := GetStyles(true)
	assert.Equal(t, "foo", plain.Title.Render("foo"))
	assert.Equal(t, "[Repo]", plain.Badge.Render("[Repo]"))

	styled := GetStyles(false)
	assert.True(t, styled.Title.GetBold())
	assert.True(t, styled.Header.GetBold())
}
