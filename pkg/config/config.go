package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/killallgit/moviepreview/pkg/errors"
)

// EnvPrefix is prepended to every environment override, e.g. MOVIEPREVIEW_SERVER_PORT
const EnvPrefix = "MOVIEPREVIEW"

// DefaultConfigPath is where Init looks for a settings file
var DefaultConfigPath = filepath.Clean("./config/settings.yaml")

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = Load(DefaultConfigPath)
	})

	return initErr
}

// Load reads defaults, an optional .env file, the settings file at path and
// environment overrides into the global viper instance. A missing settings
// file is not an error.
func Load(path string) error {
	// Load a local .env if present; real environment variables win
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			if !isNotExist(err) {
				return fmt.Errorf("error reading config file %s: %w", path, err)
			}
		}
	}

	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Validate validates a Config struct
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("out of range: %d", c.Server.Port))
	}

	if c.ITunes.BaseURL == "" {
		return apperrors.ConfigError("itunes.base_url", "must not be empty")
	}
	if !strings.HasPrefix(c.ITunes.BaseURL, "http://") && !strings.HasPrefix(c.ITunes.BaseURL, "https://") {
		return apperrors.ConfigError("itunes.base_url", "must be an http(s) URL")
	}

	if c.ITunes.Timeout < 0 {
		return apperrors.ConfigError("itunes.timeout", "must not be negative")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return apperrors.ConfigError("logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format))
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// iTunes defaults
	viper.SetDefault("itunes.base_url", "https://itunes.apple.com")
	viper.SetDefault("itunes.timeout", time.Duration(0))
	viper.SetDefault("itunes.user_agent", "MoviePreview/1.0")
	viper.SetDefault("itunes.country", "")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Player defaults
	viper.SetDefault("player.command", "")
	viper.SetDefault("player.args", []string{})
	viper.SetDefault("player.autoplay", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}
