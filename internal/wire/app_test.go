package wire

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAppAndClose(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", t.TempDir())

	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	require.NotNil(t, app.Recent)
	require.NotNil(t, app.WinState)
	assert.NotNil(t, app.logFile)

	app.Log.Printf("hello")
	require.NoError(t, app.Close())

	data, err := os.ReadFile(filepath.Join(v.GetString("data_dir"), "inkmark.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestBuildAppRunsWithoutLogFile(t *testing.T) {
	dataDir := t.TempDir()
	// A directory squatting on the log path makes the open fail; the
	// app must come up logging to the void, with no closer held.
	require.NoError(t, os.Mkdir(filepath.Join(dataDir, "inkmark.log"), 0o755))

	v := viper.New()
	v.Set("data_dir", dataDir)

	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	if app.logFile != nil {
		t.Fatalf("no log file was opened, yet a closer is held: %#v", app.logFile)
	}

	app.Log.Printf("discarded")
	require.NoError(t, app.Close())
}
