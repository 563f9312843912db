package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/pending/internal/model"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := model.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppConfig(), cfg)
	assert.Equal(t, []string{"alice", "bob", "carol"}, cfg.Members)
}

func TestSaveLoadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	want := &model.AppConfig{
		Storage: model.StorageConfig{Path: filepath.Join(dir, "tasks.db")},
		Members: []string{"dave", "erin"},
		Log:     model.LogConfig{File: filepath.Join(dir, "pending.log")},
	}
	require.NoError(t, model.SaveConfig(path, want))

	got, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfigReplacesDefaultMembers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "members:\n  - \" dave \"\n  - \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dave"}, cfg.Members)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	db := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("PENDING_STORAGE_PATH", db)

	cfg, err := model.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, db, cfg.Storage.Path)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0o600))

	_, err := model.LoadConfig(path)
	assert.Error(t, err)
}
