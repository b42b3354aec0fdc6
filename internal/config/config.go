package config

import "time"

// SMTPConfig holds mail relay settings. An empty host disables real
// delivery; reset links are logged instead.
type SMTPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	From     string `mapstructure:"from" yaml:"from"`
}

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	JWTSecret     string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer     string        `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience   string        `mapstructure:"jwt_audience" yaml:"jwt_audience"`
	TokenTTL      time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
	ResetTokenTTL time.Duration `mapstructure:"reset_token_ttl" yaml:"reset_token_ttl"`

	// BaseURL is the externally reachable URL used in reset links.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// MessageRateLimit caps inbound chat messages per connection per
	// minute. Zero disables the limiter.
	MessageRateLimit int `mapstructure:"message_rate_limit" yaml:"message_rate_limit"`

	SMTP SMTPConfig `mapstructure:"smtp" yaml:"smtp"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		DatabasePath:      "users.db",
		JWTSecret:         "change-me",
		JWTIssuer:         "livechat",
		JWTAudience:       "livechat",
		TokenTTL:          24 * time.Hour,
		ResetTokenTTL:     time.Hour,
		BaseURL:           "http://localhost:8080",
		MessageRateLimit:  0,
		SMTP: SMTPConfig{
			Port: 587,
		},
	}
}
