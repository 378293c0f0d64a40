package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ddstop/ddstop/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 30, cfg.PageSize)
	assert.Equal(t, filepath.Join(os.TempDir(), "ddstop.log"), cfg.LogFile)
	assert.False(t, cfg.NoColor)

	assert.Equal(t, ModeSynthetic, cfg.Feed.Mode)
	assert.Equal(t, time.Second, cfg.Feed.Interval)
	assert.Equal(t, 4, cfg.Feed.Participants)
	assert.Empty(t, cfg.Feed.Scenario)

	assert.Equal(t, 10*time.Minute, cfg.Retention.MaxAge)
	assert.Equal(t, 1000, cfg.Retention.MaxCount)
	assert.Equal(t, 5*time.Second, cfg.Retention.Interval)

	require.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".ddstop.yaml")

	content := `
version: 1
tick_interval: 100ms
page_size: 10
no_color: true
feed:
  mode: scenario
  scenario: scenarios/demo.yaml
  loop: true
retention:
  max_count: 50
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 10, cfg.PageSize)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, ModeScenario, cfg.Feed.Mode)
	assert.Equal(t, filepath.Join(dir, "scenarios", "demo.yaml"), cfg.Feed.Scenario)
	assert.True(t, cfg.Feed.Loop)
	assert.Equal(t, 50, cfg.Retention.MaxCount)

	// Keys missing from the file keep their defaults.
	assert.Equal(t, 4, cfg.Feed.Participants)
	assert.Equal(t, time.Second, cfg.Feed.Interval)
	assert.Equal(t, 10*time.Minute, cfg.Retention.MaxAge)
	assert.Equal(t, 5*time.Second, cfg.Retention.Interval)
	assert.Equal(t, DefaultLogFile(), cfg.LogFile)
}

func TestLoad_AbsoluteScenarioPathKept(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".ddstop.yaml")
	scenario := filepath.Join(t.TempDir(), "s.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("feed:\n  scenario: "+scenario+"\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, scenario, cfg.Feed.Scenario)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".ddstop.yaml")
		require.NoError(t, os.WriteFile(path, []byte("page_size: [1, 2\n"), 0644))

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("wrong type", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".ddstop.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tick_interval: soon\n"), 0644))

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.WriteFile(ConfigFileName, []byte("version: 1\n"), 0644))

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(found))
	})

	t.Run("global config", func(t *testing.T) {
		t.Chdir(t.TempDir())
		home := t.TempDir()
		t.Setenv("HOME", home)
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0755))
		require.NoError(t, os.WriteFile(global, []byte("version: 1\n"), 0644))

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, found)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())

		found, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile(ConfigFileName, []byte("page_size: 12\n"), 0644))
	cfg, path, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.NotEmpty(t, path)
	assert.Equal(t, 12, cfg.PageSize)
}
