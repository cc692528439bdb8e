// internal/common/config/loader_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "xmlgen-service", cfg.App.Name)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, int64(16<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 100, cfg.Generator.MaxCopies)
	assert.Equal(t, 100000, cfg.Generator.MaxTransactions)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 1800, cfg.Redis.ArchiveTTL)
	assert.Equal(t, "info", cfg.Logging.Level)

	require.NoError(t, validateConfig(cfg))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "negative workers", mutate: func(c *Config) { c.Generator.Workers = -1 }, wantErr: true},
		{name: "zero max copies", mutate: func(c *Config) { c.Generator.MaxCopies = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
