package version

import (
	"encoding/json"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_FollowsSemverOrDev(t *testing.T) {
	// Given: the version package is imported

	// When: accessing Version

	// Then: it is "dev" or a semver injected by ldflags
	if Version == "dev" {
		return
	}
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
	require.True(t, semver.MatchString(Version), "got %s", Version)
}

func TestString_ContainsBuildInfo(t *testing.T) {
	str := String()

	assert.Contains(t, str, "wiki "+Version)
	assert.Contains(t, str, "commit: "+Commit)
	assert.Contains(t, str, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestShort_ReturnsVersion(t *testing.T) {
	assert.Equal(t, Version, Short())
}

func TestGetInfo_IsJSONSerializable(t *testing.T) {
	// Given: the current build info
	info := GetInfo()

	// When: serializing it
	data, err := json.Marshal(info)
	require.NoError(t, err)

	// Then: every field uses its snake_case key
	var parsed map[string]string
	require.NoError(t, json.Unmarshal(data, &parsed))
	for _, key := range []string{"version", "commit", "date", "go_version", "os", "arch"} {
		assert.Contains(t, parsed, key)
	}
	assert.Equal(t, runtime.Version(), parsed["go_version"])
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()

	assert.True(t, strings.HasPrefix(ua, "wiki/"+Version+" "))
	assert.Contains(t, ua, runtime.GOOS+"/"+runtime.GOARCH)
}
