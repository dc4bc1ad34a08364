package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 128, cfg.Measure.PointCapacity)
	assert.Equal(t, 500, cfg.Measure.ClickDebounceMS)
	assert.Equal(t, 500.0, cfg.Measure.MaxHitDistance)
	assert.Equal(t, BackendOverlay, cfg.Measure.LabelBackend)
	assert.Equal(t, 1400, cfg.Viewer.Width)
	assert.Equal(t, 900, cfg.Viewer.Height)
	assert.Empty(t, cfg.Viewer.Font)
}

func TestLoadKeepsDefaultsForAbsentFields(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "measure:\n  point_capacity: 64\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Measure.PointCapacity)
	assert.Equal(t, 500, cfg.Measure.ClickDebounceMS)
	assert.Equal(t, BackendOverlay, cfg.Measure.LabelBackend)
	assert.Equal(t, 1400, cfg.Viewer.Width)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
measure:
  point_capacity: 32
  click_debounce_ms: 250
  max_hit_distance: 100
  label_backend: textmesh
viewer:
  width: 800
  height: 600
  font: /usr/share/fonts/mono.ttf
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Measure.PointCapacity)
	assert.Equal(t, 250, cfg.Measure.ClickDebounceMS)
	assert.Equal(t, 100.0, cfg.Measure.MaxHitDistance)
	assert.Equal(t, BackendTextMesh, cfg.Measure.LabelBackend)
	assert.Equal(t, 800, cfg.Viewer.Width)
	assert.Equal(t, 600, cfg.Viewer.Height)
	assert.Equal(t, "/usr/share/fonts/mono.ttf", cfg.Viewer.Font)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), configFileName))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"zero capacity", "measure:\n  point_capacity: 0\n", "point_capacity"},
		{"negative hit distance", "measure:\n  max_hit_distance: -1\n", "max_hit_distance"},
		{"unknown backend", "measure:\n  label_backend: hologram\n", "label_backend"},
		{"zero width", "viewer:\n  width: 0\n", "width"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tc.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "measure:\n  point_capacity: 16\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	found, err := Find()

	require.NoError(t, err)
	// TempDir may sit behind a symlink on some platforms, compare the leaves.
	assert.Equal(t, filepath.Base(path), filepath.Base(found))
	cfg, err := Load(found)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Measure.PointCapacity)
}

func TestSessionConfigBridge(t *testing.T) {
	cfg := Default()
	cfg.Measure.PointCapacity = 16
	cfg.Measure.ClickDebounceMS = 250
	cfg.Measure.MaxHitDistance = 42

	sc := cfg.SessionConfig()

	assert.Equal(t, 16, sc.PointCapacity)
	assert.Equal(t, 250*time.Millisecond, sc.ClickDebounce)
	assert.Equal(t, 42.0, sc.MaxHitDistance)
}

func TestSessionConfigZeroDebounceDisables(t *testing.T) {
	cfg := Default()
	cfg.Measure.ClickDebounceMS = 0

	sc := cfg.SessionConfig()

	assert.Negative(t, sc.ClickDebounce)
}
