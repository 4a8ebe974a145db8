package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldrane/inkmark/internal/session"
)

func TestParseViewMode(t *testing.T) {
	assert.Equal(t, session.ModeEdit, parseViewMode("edit"))
	assert.Equal(t, session.ModePreview, parseViewMode("preview"))
	assert.Equal(t, session.ModeSplit, parseViewMode("split"))
	assert.Equal(t, session.ModeEdit, parseViewMode("nonsense"))
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("INKMARK_DATA_DIR", t.TempDir())
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesDefaults(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCmd(t, "config", "init", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "data_dir")
	assert.Contains(t, string(data), "single_instance")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(target, []byte("theme = \"dark\"\n"), 0o600))

	_, err := runCmd(t, "config", "init", "-o", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--overwrite")

	out, err := runCmd(t, "config", "init", "-o", target, "--overwrite")
	require.NoError(t, err)
	assert.Contains(t, out, "Backed up existing config")
}

func TestRecentListEmpty(t *testing.T) {
	out, err := runCmd(t, "recent", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No recent documents.")
}

func TestEditorRefusesNonTerminal(t *testing.T) {
	_, err := runCmd(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestRenderUnsupportedFile(t *testing.T) {
	_, err := runCmd(t, "render", "/tmp/archive.zip")
	require.Error(t, err)
}
