package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

type Settings struct {
	Server  ServerSettings `mapstructure:"server"`
	DB      DBSettings     `mapstructure:"db"`
	Cache   CacheSettings  `mapstructure:"cache"`
	Sync    SyncSettings   `mapstructure:"sync"`
	Sources SourceSettings `mapstructure:"sources"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            string        `mapstructure:"port" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBSettings struct {
	Path string `mapstructure:"path" validate:"required"`
}

type CacheSettings struct {
	Backend  CacheBackend  `mapstructure:"backend" validate:"oneof=memory redis"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url" validate:"required_if=Backend redis"`
}

type SyncSettings struct {
	Interval time.Duration `mapstructure:"interval"`
	Sources  []string      `mapstructure:"sources"`
}

type SourceSettings struct {
	Path string `mapstructure:"path" validate:"required"`
}

// DefaultSourcesPath is the profile file used when none is configured.
func DefaultSourcesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fabricatlas.cfg"
	}
	return filepath.Join(home, ".fabricatlas.cfg")
}

// LoadSettings reads settings from the optional YAML file at path and from the
// environment, where nested keys use underscores (SERVER_PORT, CACHE_REDIS_URL).
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.path", "fabric-atlas.db")
	v.SetDefault("cache.backend", string(CacheBackendMemory))
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("sync.interval", 30*time.Second)
	v.SetDefault("sync.sources", []string{})
	v.SetDefault("sources.path", DefaultSourcesPath())

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := validator.New().Struct(&settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &settings, nil
}
