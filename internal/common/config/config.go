// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int   `mapstructure:"port"`
	MaxUploadBytes  int64 `mapstructure:"max_upload_bytes"`
	ShutdownTimeout int   `mapstructure:"shutdown_timeout"` // seconds
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// GeneratorConfig holds the core generation settings.
type GeneratorConfig struct {
	// Workers bounds the copy fan-out pool; 0 means available hardware
	// parallelism.
	Workers int `mapstructure:"workers"`
	// MaxCopies caps numCopies per job to keep archives bounded.
	MaxCopies int `mapstructure:"max_copies"`
	// MaxTransactions caps numTransactions per job.
	MaxTransactions int `mapstructure:"max_transactions"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// ArchiveTTL is the retention of produced archives, in seconds.
	ArchiveTTL int `mapstructure:"archive_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
