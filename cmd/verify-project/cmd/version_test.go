package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaolushuo/verify-project/pkg/version"
)

func TestVersionCmd_DefaultOutput(t *testing.T) {
	isolateEnv(t)

	res := execute(t, t.TempDir(), "version")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "verify-project")
	assert.Contains(t, res.stdout, version.Short())
	assert.Contains(t, res.stdout, "commit")
}

func TestVersionCmd_ShortOutput(t *testing.T) {
	isolateEnv(t)

	res := execute(t, t.TempDir(), "version", "--short")

	require.NoError(t, res.err)
	assert.Equal(t, version.Short(), strings.TrimSpace(res.stdout))
}

func TestVersionCmd_JSONOutput(t *testing.T) {
	isolateEnv(t)

	res := execute(t, t.TempDir(), "version", "--json")

	require.NoError(t, res.err)
	var info version.BuildInfo
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info))
	assert.Equal(t, version.GetInfo(), info)
}

func TestVersionCmd_IgnoresInvalidConfig(t *testing.T) {
	// Given: an invalid color override
	isolateEnv(t)
	t.Setenv("VERIFY_PROJECT_COLOR", "sometimes")

	// When: printing the version
	res := execute(t, t.TempDir(), "version", "--short")

	// Then: it still works
	require.NoError(t, res.err)
	assert.Equal(t, version.Short(), strings.TrimSpace(res.stdout))
}

func TestRoot_VersionFlag(t *testing.T) {
	isolateEnv(t)

	res := execute(t, t.TempDir(), "--version")

	require.NoError(t, res.err)
	assert.Equal(t, "verify-project version "+version.Short()+"\n", res.stdout)
}
