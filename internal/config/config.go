// Package config loads service configuration from an optional yaml file
// and SKYSEARCH_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string

	API struct {
		BaseURL string
		Host    string
		Key     string
		Timeout time.Duration
	}

	Cache struct {
		Enabled bool
		TTL     time.Duration
	}

	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}

	Lookup struct {
		Debounce time.Duration
	}

	Session struct {
		TTL           time.Duration
		SweepInterval time.Duration
	}

	Storage struct {
		TTL time.Duration
	}
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("api.base_url", "https://sky-scrapper.p.rapidapi.com/api")
	v.SetDefault("api.host", "sky-scrapper.p.rapidapi.com")
	v.SetDefault("api.key", "")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("lookup.debounce", "500ms")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.sweep_interval", "5m")
	v.SetDefault("storage.ttl", "720h")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/skysearch")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// no config file is fine, defaults plus env apply
	}

	v.SetEnvPrefix("SKYSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{Port: v.GetString("port")}
	cfg.API.BaseURL = v.GetString("api.base_url")
	cfg.API.Host = v.GetString("api.host")
	cfg.API.Key = v.GetString("api.key")
	cfg.API.Timeout = v.GetDuration("api.timeout")
	cfg.Cache.Enabled = v.GetBool("cache.enabled")
	cfg.Cache.TTL = v.GetDuration("cache.ttl")
	cfg.Redis.Host = v.GetString("redis.host")
	cfg.Redis.Port = v.GetString("redis.port")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Lookup.Debounce = v.GetDuration("lookup.debounce")
	cfg.Session.TTL = v.GetDuration("session.ttl")
	cfg.Session.SweepInterval = v.GetDuration("session.sweep_interval")
	cfg.Storage.TTL = v.GetDuration("storage.ttl")

	if cfg.API.Key == "" {
		return nil, fmt.Errorf("api key is required (SKYSEARCH_API_KEY)")
	}

	return cfg, nil
}
