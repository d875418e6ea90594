package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure for the application.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Protocol ProtocolConfig `mapstructure:"protocol"`
	GC       GCConfig       `mapstructure:"gc"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds the network settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// StorageConfig defines the internal structure of the storage engine.
type StorageConfig struct {
	Shards uint `mapstructure:"shards"`
}

// ProtocolConfig holds the RESP decoder's size setting. MaxBulkBytes is
// loaded and reported by CONFIG GET, but the decoder does not read it: it
// always enforces the fixed resp.MaxBulkLen (512 MiB).
type ProtocolConfig struct {
	MaxBulkBytes int64 `mapstructure:"max_bulk_bytes"`
}

// GCConfig defines the parameters for the background active expiration.
type GCConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Interval        time.Duration `mapstructure:"interval"`          // how often to run the background check
	SamplesPerCheck int           `mapstructure:"samples_per_check"` // how many keys to check per shard per tick
	MatchThreshold  float64       `mapstructure:"match_threshold"`   // 0.0-1.0: repeat immediately if expired/scanned exceeds this
}

// LogConfig defines logging verbosity and output style.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Load reads the configuration from an optional config.yaml in path,
// overridable by MARROW_* environment variables, falling back to
// setDefaults() when no file is present.
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MARROW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults populates viper with fallback values used when a setting is
// absent from both the config file and the environment.
func setDefaults() {
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", "6379")

	viper.SetDefault("storage.shards", 32)

	viper.SetDefault("protocol.max_bulk_bytes", 512*1024*1024)

	viper.SetDefault("gc.enabled", true)
	viper.SetDefault("gc.interval", "100ms")
	viper.SetDefault("gc.samples_per_check", 20)
	viper.SetDefault("gc.match_threshold", 0.25)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}
