package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string        `mapstructure:"environment"`
	ITunes      ITunesConfig  `mapstructure:"itunes"`
	Server      ServerConfig  `mapstructure:"server"`
	Player      PlayerConfig  `mapstructure:"player"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

// ITunesConfig contains search endpoint settings
type ITunesConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"` // 0 keeps the transport default
	UserAgent string        `mapstructure:"user_agent"`
	Country   string        `mapstructure:"country"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// PlayerConfig selects the external player used for previews
type PlayerConfig struct {
	Command  string   `mapstructure:"command"` // empty: auto-detect
	Args     []string `mapstructure:"args"`
	Autoplay bool     `mapstructure:"autoplay"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}
