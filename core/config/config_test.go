package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cfg := Default()
	cfg.Interpreter = nil

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interpreter")
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := Load(fs, ".")
	require.NoError(t, err)
	assert.Equal(t, Default().ScriptsPath, cfg.ScriptsPath)
	assert.Equal(t, Default().Prompt, cfg.Prompt)
}

func TestLoadOverridesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.yaml", []byte(
		"scripts_path: /opt/scripts\nprompt: 'img> '\n"), 0644))

	cfg, err := Load(fs, ".")
	require.NoError(t, err)
	assert.Equal(t, "/opt/scripts", cfg.ScriptsPath)
	assert.Equal(t, "img> ", cfg.Prompt)
	// Unset fields keep defaults.
	assert.Equal(t, []string{"python3"}, cfg.Interpreter)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.yaml", []byte("no_such_field: 1\n"), 0644))

	_, err := Load(fs, ".")
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := Default()
	cfg.ScriptsPath = "/srv/scripts"

	require.NoError(t, Write(fs, "cfgdir", cfg))

	loaded, err := Load(fs, "cfgdir")
	require.NoError(t, err)
	assert.Equal(t, "/srv/scripts", loaded.ScriptsPath)
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data"
	cfg.HistoryFile = "history.db"
	assert.Equal(t, "/data/history.db", cfg.HistoryPath())

	cfg.HistoryFile = ""
	assert.Empty(t, cfg.HistoryPath())
}
