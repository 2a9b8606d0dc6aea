package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "starlint.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Content.Root)
	assert.Equal(t, "data/blueprints/resources.json", cfg.Content.Resources)
	assert.Equal(t, "data/blueprints/starting_blueprints.json", cfg.Content.Blueprints)
	assert.Equal(t, "data/tech/tech_tree.json", cfg.Content.TechTree)
	assert.Equal(t, "data/settings.json", cfg.Content.Settings)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starlint.yaml")
	body := `
content:
  root: /srv/content
  tech_tree: custom/tech.json
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/content", cfg.Content.Root)
	assert.Equal(t, "custom/tech.json", cfg.Content.TechTree)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset fields still get defaults.
	assert.Equal(t, "data/settings.json", cfg.Content.Settings)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starlint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content:\n  root: /from/file\n"), 0o644))

	t.Setenv("STARLINT_ROOT", "/from/env")
	t.Setenv("STARLINT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Content.Root)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starlint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
