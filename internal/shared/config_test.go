package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.Version != "v1" {
			t.Errorf("expected api version v1, got %s", config.API.Version)
		}

		if config.API.BaseURL != "https://api.spotify.com" {
			t.Errorf("expected base url https://api.spotify.com, got %s", config.API.BaseURL)
		}

		if config.API.AccountsURL != "https://accounts.spotify.com" {
			t.Errorf("expected accounts url https://accounts.spotify.com, got %s", config.API.AccountsURL)
		}

		if config.Cache.Backend != "null" {
			t.Errorf("expected null cache backend, got %s", config.Cache.Backend)
		}

		if config.Credentials.Spotify.HasClient() {
			t.Error("expected default config to have no client credentials")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Cache.Path != DefaultConfig().Cache.Path {
			t.Errorf("created config cache path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[cache]
backend = "sqlite"
path = "/custom/cache.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Cache.Backend != "sqlite" {
			t.Errorf("expected sqlite backend, got %s", config.Cache.Backend)
		}

		if config.Cache.Path != "/custom/cache.db" {
			t.Errorf("expected cache path /custom/cache.db, got %s", config.Cache.Path)
		}

		if !config.Credentials.Spotify.HasClient() {
			t.Error("expected client credentials to be loaded")
		}

		if config.API.Version != "v1" {
			t.Errorf("expected missing api section to keep default version, got %s", config.API.Version)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("SaveConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Credentials.Spotify.AccessToken = "saved_token"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.Credentials.Spotify.AccessToken != "saved_token" {
			t.Errorf("expected saved access token, got %s", loaded.Credentials.Spotify.AccessToken)
		}

		if err := SaveConfig(configPath, nil); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig for nil config, got %v", err)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("SPOTIFY_CLIENT_ID", "env_client_id")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "env_client_secret")
		t.Setenv("SPOTQ_CACHE_BACKEND", "memory")
		t.Setenv("SPOTIFY_ACCESS_TOKEN", "env_token")

		config := DefaultConfig()
		config.Cache.Path = "/from/file.db"
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("failed to apply env: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "env_client_id" {
			t.Errorf("expected client id from env, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Cache.Backend != "memory" {
			t.Errorf("expected cache backend from env, got %s", config.Cache.Backend)
		}
		if config.Credentials.Spotify.AccessToken != "env_token" {
			t.Errorf("expected access token from env, got %s", config.Credentials.Spotify.AccessToken)
		}
		if config.API.Version != "v1" {
			t.Errorf("expected unset env to keep api version, got %s", config.API.Version)
		}
		if config.Cache.Path != "/from/file.db" {
			t.Errorf("expected unset env to keep file value, got %s", config.Cache.Path)
		}
	})

	t.Run("ApplyEnv With Dotenv File", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("SPOTQ_LOG_LEVEL", "")
		os.Unsetenv("SPOTQ_LOG_LEVEL")

		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SPOTQ_LOG_LEVEL=debug\n"), 0644); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("failed to apply env: %v", err)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected log level from .env, got %s", config.Log.Level)
		}
	})

	t.Run("Durations", func(t *testing.T) {
		api := APIConfig{Timeout: "2s"}
		d, err := api.RequestTimeout()
		if err != nil || d != 2*time.Second {
			t.Errorf("expected 2s, got %v (%v)", d, err)
		}

		if _, err := (APIConfig{Timeout: "soon"}).RequestTimeout(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}

		ttl, err := CacheConfig{}.EntryTTL()
		if err != nil || ttl != 0 {
			t.Errorf("expected zero ttl for empty value, got %v (%v)", ttl, err)
		}
	})
}
