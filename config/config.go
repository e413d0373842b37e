package config

import (
	"errors"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variables before they are mapped onto
// config keys: NETIFY_TMDB_API_KEY overrides tmdb_api_key.
const envPrefix = "NETIFY_"

// Config holds every runtime setting for the service. Defaults come from
// defaultConfig and are overridden by NETIFY_* environment variables.
type Config struct {
	ListenAddr string `koanf:"listen_addr"`
	CORSOrigin string `koanf:"cors_origin"`
	// LogPath enables rotating file logging when set; empty means stderr only.
	LogPath string `koanf:"log_path"`

	TMDBAPIKey  string `koanf:"tmdb_api_key"`
	TMDBBaseURL string `koanf:"tmdb_base_url"`

	DatabasePath string `koanf:"database_path"`

	// IdentityVerifyURL is the identity provider endpoint that exchanges a
	// bearer token for the caller's uid and email.
	IdentityVerifyURL string `koanf:"identity_verify_url"`
	IdentityAPIKey    string `koanf:"identity_api_key"`

	GenreCacheTTL    time.Duration `koanf:"genre_cache_ttl"`
	ResponseCacheTTL time.Duration `koanf:"response_cache_ttl"`
}

func defaultConfig() *Config {
	return &Config{
		ListenAddr:        ":5000",
		CORSOrigin:        "http://localhost:3000",
		TMDBBaseURL:       "https://api.themoviedb.org/3",
		DatabasePath:      "data/netify.db",
		IdentityVerifyURL: "https://identitytoolkit.googleapis.com/v1/accounts:lookup",
		GenreCacheTTL:     60 * time.Minute,
		ResponseCacheTTL:  60 * time.Second,
	}
}

// Load builds the config from defaults overlaid with environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, err
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the service cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TMDBAPIKey) == "" {
		return errors.New("tmdb_api_key is not configured (set NETIFY_TMDB_API_KEY)")
	}
	if c.DatabasePath == "" {
		return errors.New("database_path must not be empty")
	}
	if c.GenreCacheTTL <= 0 || c.ResponseCacheTTL <= 0 {
		return errors.New("cache TTLs must be positive")
	}
	return nil
}
