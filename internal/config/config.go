package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// DatabasePath locates the sqlite file holding provisioned access keys.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// AccessKeys are plaintext unlimited-use keys accepted at login, in
	// addition to any provisioned (hashed) keys in the database.
	AccessKeys []string `mapstructure:"access_keys" yaml:"access_keys"`

	// HistoryResetInterval is how often every channel's history is wiped.
	HistoryResetInterval time.Duration `mapstructure:"history_reset_interval" yaml:"history_reset_interval"`

	// MessageRateLimit caps inbound events per connection per minute; 0 disables.
	MessageRateLimit int `mapstructure:"message_rate_limit" yaml:"message_rate_limit"`

	JWTSecret   string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer   string        `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience string        `mapstructure:"jwt_audience" yaml:"jwt_audience"`
	TokenTTL    time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:                 ":8080",
		ReadHeaderTimeout:    5 * time.Second,
		ShutdownTimeout:      5 * time.Second,
		LogLevel:             "info",
		DatabasePath:         "chat.db",
		HistoryResetInterval: 30 * time.Minute,
		MessageRateLimit:     0,
		JWTSecret:            "dev-secret-change-me",
		JWTIssuer:            "chat-backend",
		JWTAudience:          "chat-clients",
		TokenTTL:             24 * time.Hour,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.DatabasePath != "" {
		c.DatabasePath = other.DatabasePath
	}
	if len(other.AccessKeys) > 0 {
		c.AccessKeys = other.AccessKeys
	}
	if other.HistoryResetInterval != 0 {
		c.HistoryResetInterval = other.HistoryResetInterval
	}
	if other.MessageRateLimit != 0 {
		c.MessageRateLimit = other.MessageRateLimit
	}
	if other.JWTSecret != "" {
		c.JWTSecret = other.JWTSecret
	}
	if other.JWTIssuer != "" {
		c.JWTIssuer = other.JWTIssuer
	}
	if other.JWTAudience != "" {
		c.JWTAudience = other.JWTAudience
	}
	if other.TokenTTL != 0 {
		c.TokenTTL = other.TokenTTL
	}
}
