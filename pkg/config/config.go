package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config represents the API server configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// AuthConfig contains wallet authentication settings.
// The session signing secret is never stored in the config file; only the
// name of the environment variable that carries it is configurable.
type AuthConfig struct {
	SessionSecretEnv string        `mapstructure:"session_secret_env"`
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
	NonceTTL         time.Duration `mapstructure:"nonce_ttl"`
	CookieSecure     bool          `mapstructure:"cookie_secure"`
}

// ModerationConfig contains settings for the content moderation classifier
type ModerationConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Model     string `mapstructure:"model"`
	APIKeyEnv string `mapstructure:"api_key_env"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.request_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.database", "market_api")

	// Auth defaults
	viper.SetDefault("auth.session_secret_env", "SESSION_SECRET")
	viper.SetDefault("auth.session_ttl", "168h") // 7 days
	viper.SetDefault("auth.nonce_ttl", "5m")
	viper.SetDefault("auth.cookie_secure", true)

	// Moderation defaults
	viper.SetDefault("moderation.enabled", true)
	viper.SetDefault("moderation.model", "gemini-2.0-flash")
	viper.SetDefault("moderation.api_key_env", "GEMINI_API_KEY")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output_path", "stdout")
}

func validate(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if config.Auth.SessionSecretEnv == "" {
		return fmt.Errorf("auth.session_secret_env is required")
	}
	if config.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive")
	}
	if config.Auth.NonceTTL <= 0 {
		return fmt.Errorf("auth.nonce_ttl must be positive")
	}
	return nil
}

// SessionSecret resolves the session signing secret from the environment.
// Authentication fails closed: an empty secret is a startup error, never a
// silent fallback.
func (c *AuthConfig) SessionSecret() ([]byte, error) {
	secret := os.Getenv(c.SessionSecretEnv)
	if secret == "" {
		return nil, fmt.Errorf(
			"session secret not set: env=%s (hint: openssl rand -base64 32)",
			c.SessionSecretEnv,
		)
	}
	return []byte(secret), nil
}

// GetConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
