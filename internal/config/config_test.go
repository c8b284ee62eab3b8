package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, 312, c.CardWidth)
	assert.Equal(t, 445, c.CardHeight)
	assert.Equal(t, 8, c.Gutter)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckpress.ini")
	content := `[image]
width = 744
height = 1039

[page]
gutter = 16

[http]
user_agent = proxybot/2.0
rate_limit = 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 744, c.CardWidth)
	assert.Equal(t, 1039, c.CardHeight)
	assert.Equal(t, 16, c.Gutter)
	assert.Equal(t, "proxybot/2.0", c.UserAgent)
	assert.Equal(t, 0.5, c.RequestsPerS)
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckpress.ini")
	require.NoError(t, os.WriteFile(path, []byte("[page]\ngutter = 0\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Gutter)
	assert.Equal(t, 312, c.CardWidth)
	assert.Empty(t, c.UserAgent)
}

func TestLoadRejectsBadGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckpress.ini")
	require.NoError(t, os.WriteFile(path, []byte("[image]\nwidth = -1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.Error(t, err)
}
