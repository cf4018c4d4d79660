package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Every field can be overridden by the environment variable named in its env tag.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	API         APIConfig         `toml:"api"`
	Cache       CacheConfig       `toml:"cache"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
//
// Either the client pair or a pre-issued access token is required.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id" env:"SPOTIFY_CLIENT_ID"`
	ClientSecret string `toml:"client_secret" env:"SPOTIFY_CLIENT_SECRET"`
	AccessToken  string `toml:"access_token" env:"SPOTIFY_ACCESS_TOKEN"`
	TokenType    string `toml:"token_type" env:"SPOTIFY_TOKEN_TYPE"`
	RedirectURI  string `toml:"redirect_uri" env:"SPOTIFY_REDIRECT_URI"`
}

// HasClient reports whether both client credentials are set.
func (s SpotifyConfig) HasClient() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// APIConfig contains Web API endpoint settings.
type APIConfig struct {
	Version     string `toml:"version" env:"SPOTQ_API_VERSION"`
	BaseURL     string `toml:"base_url" env:"SPOTQ_API_BASE_URL"`
	AccountsURL string `toml:"accounts_url" env:"SPOTQ_ACCOUNTS_URL"`
	Timeout     string `toml:"timeout" env:"SPOTQ_API_TIMEOUT"`
}

// RequestTimeout parses Timeout. Empty means no timeout.
func (a APIConfig) RequestTimeout() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: api.timeout %q: %v", ErrInvalidConfig, a.Timeout, err)
	}
	return d, nil
}

// CacheConfig selects and configures the response cache backend.
type CacheConfig struct {
	Backend      string `toml:"backend" env:"SPOTQ_CACHE_BACKEND"`
	Path         string `toml:"path" env:"SPOTQ_CACHE_PATH"`
	MaxOpenConns int    `toml:"max_open_conns"`
	RedisURL     string `toml:"redis_url" env:"SPOTQ_REDIS_URL"`
	TTL          string `toml:"ttl" env:"SPOTQ_CACHE_TTL"`
}

// EntryTTL parses TTL. Empty means entries never expire.
func (c CacheConfig) EntryTTL() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("%w: cache.ttl %q: %v", ErrInvalidConfig, c.TTL, err)
	}
	return d, nil
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level      string `toml:"level" env:"SPOTQ_LOG_LEVEL"`
	File       string `toml:"file" env:"SPOTQ_LOG_FILE"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overrides config values from the process environment.
//
// A .env file in the working directory is loaded first when present; variables already set in the environment win.
func ApplyEnv(config *Config) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SaveConfig writes config to path as TOML.
func SaveConfig(path string, config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
