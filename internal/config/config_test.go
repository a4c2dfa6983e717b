package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, 30.0, cfg.Brush.Radius)
	assert.True(t, cfg.History.ReverseCompositeUndo)
	assert.False(t, cfg.History.RetainUndoneTail)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[editor]
tick_rate = "50ms"

[history]
retain_undone_tail = true
reverse_composite_undo = false

[coalesce]
skip_unchanged = true

[brush]
radius = 12.5
prefab = "rock"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.Editor.TickRate)
	assert.True(t, cfg.History.RetainUndoneTail)
	assert.False(t, cfg.History.ReverseCompositeUndo)
	assert.True(t, cfg.Coalesce.SkipUnchanged)
	assert.Equal(t, 12.5, cfg.Brush.Radius)
	assert.Equal(t, "rock", cfg.Brush.Prefab)
	assert.Equal(t, 1000, cfg.History.CapacityHint, "untouched keys keep defaults")
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad toml":       "[editor\n",
		"zero radius":    "[brush]\nradius = 0\n",
		"negative space": "[brush]\nspacing = -1\n",
		"db without dsn": "[database]\nenabled = true\ndsn = \"\"\n",
		"zero queue":     "[editor]\ncommand_queue_size = 0\n",
		"negative queue": "[editor]\ncommand_queue_size = -4\n",
		"negative rate":  "[editor]\nmax_commands_per_tick = -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "editor.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}
