package config

import (
	"testing"
	"time"

	"github.com/ddstop/ddstop/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "future version",
			mutate:  func(cfg *Config) { cfg.Version = CurrentConfigVersion + 1 },
			wantErr: "from the future",
		},
		{
			name:    "tick too fast",
			mutate:  func(cfg *Config) { cfg.TickInterval = 10 * time.Millisecond },
			wantErr: "tick_interval 10ms is too fast",
		},
		{
			name:   "tick at minimum",
			mutate: func(cfg *Config) { cfg.TickInterval = MinTickInterval },
		},
		{
			name:    "zero page size",
			mutate:  func(cfg *Config) { cfg.PageSize = 0 },
			wantErr: "page_size must be positive",
		},
		{
			name:    "unknown mode",
			mutate:  func(cfg *Config) { cfg.Feed.Mode = "live" },
			wantErr: "expected one of: synthetic, scenario",
		},
		{
			name:    "scenario without file",
			mutate:  func(cfg *Config) { cfg.Feed.Mode = ModeScenario },
			wantErr: "no feed.scenario file",
		},
		{
			name: "scenario with file",
			mutate: func(cfg *Config) {
				cfg.Feed.Mode = ModeScenario
				cfg.Feed.Scenario = "demo.yaml"
				cfg.Feed.Participants = 0
			},
		},
		{
			name:    "no participants",
			mutate:  func(cfg *Config) { cfg.Feed.Participants = 0 },
			wantErr: "feed.participants must be positive",
		},
		{
			name:    "negative max count",
			mutate:  func(cfg *Config) { cfg.Retention.MaxCount = -1 },
			wantErr: "retention.max_count can't be negative",
		},
		{
			name: "retention disabled",
			mutate: func(cfg *Config) {
				cfg.Retention = RetentionConfig{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
