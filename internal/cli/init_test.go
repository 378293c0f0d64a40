package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddstop/ddstop/internal/config"
	"github.com/ddstop/ddstop/internal/errors"
)

func TestInit_NonInteractiveCreatesConfig(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	err := Init(&out, InitOptions{
		Dir:            dir,
		NonInteractive: true,
		Seed:           7,
		TickInterval:   500 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Created")

	path := filepath.Join(dir, config.ConfigFileName)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# ddstop configuration")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Feed.Seed)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, config.ModeSynthetic, cfg.Feed.Mode)
	require.NoError(t, config.Validate(cfg))
}

func TestInit_ExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	original := "# keep me\npage_size: 12\nretention:\n  max_count: 5 # small\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0644))

	t.Run("refuses without force", func(t *testing.T) {
		err := Init(&bytes.Buffer{}, InitOptions{Dir: dir, NonInteractive: true})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
		assert.Contains(t, err.Error(), "--force")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, original, string(data))
	})

	t.Run("force updates managed keys only", func(t *testing.T) {
		var out bytes.Buffer
		err := Init(&out, InitOptions{Dir: dir, NonInteractive: true, Overwrite: true, PageSize: 20})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Updated")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# keep me")
		assert.Contains(t, string(data), "# small")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.PageSize)
		assert.Equal(t, 5, cfg.Retention.MaxCount)
	})
}

func TestInit_ScenarioOption(t *testing.T) {
	dir := t.TempDir()
	err := Init(&bytes.Buffer{}, InitOptions{Dir: dir, NonInteractive: true, Scenario: "demo.yaml"})
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, config.ModeScenario, cfg.Feed.Mode)
	assert.Equal(t, filepath.Join(dir, "demo.yaml"), cfg.Feed.Scenario)
}

func TestInit_InvalidOptions(t *testing.T) {
	dir := t.TempDir()
	err := Init(&bytes.Buffer{}, InitOptions{Dir: dir, NonInteractive: true, Mode: "live"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	_, statErr := os.Stat(filepath.Join(dir, config.ConfigFileName))
	assert.True(t, os.IsNotExist(statErr), "nothing is written for an invalid config")
}

func TestInitAnswers_Apply(t *testing.T) {
	tests := []struct {
		name    string
		answers initAnswers
		wantErr string
	}{
		{
			name:    "valid",
			answers: initAnswers{mode: "synthetic", seed: " 3 ", participants: "2", tickInterval: "1s", pageSize: "10"},
		},
		{
			name:    "bad seed",
			answers: initAnswers{mode: "synthetic", seed: "x", participants: "2", tickInterval: "1s", pageSize: "10"},
			wantErr: "seed",
		},
		{
			name:    "bad interval",
			answers: initAnswers{mode: "synthetic", seed: "1", participants: "2", tickInterval: "soon", pageSize: "10"},
			wantErr: "redraw interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := tt.answers.apply(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(3), cfg.Feed.Seed)
			assert.Equal(t, 2, cfg.Feed.Participants)
			assert.Equal(t, time.Second, cfg.TickInterval)
			assert.Equal(t, 10, cfg.PageSize)
		})
	}
}

func TestAnswersFrom_RoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Feed.Seed = 11

	got := config.DefaultConfig()
	require.NoError(t, answersFrom(cfg).apply(got))
	assert.Equal(t, cfg, got)
}

func TestValidateInt(t *testing.T) {
	assert.NoError(t, validateInt(false)("0"))
	assert.NoError(t, validateInt(true)("4"))
	assert.Error(t, validateInt(true)("0"))
	assert.Error(t, validateInt(false)("four"))
}
