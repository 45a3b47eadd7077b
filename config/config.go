// Package config loads service settings from defaults and ISIMM_* environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before mapping them to keys
const EnvPrefix = "ISIMM_"

type Config struct {
	Server ServerConfig `koanf:"server"`
	Redis  RedisConfig  `koanf:"redis"`
	App    AppConfig    `koanf:"app"`
	Log    LogConfig    `koanf:"log"`
	Client ClientConfig `koanf:"client"`
}

type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required"`
	Mode string `koanf:"mode" validate:"oneof=debug release test"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

// AppConfig names the application in alert headers (X-<name>-alert)
type AppConfig struct {
	Name string `koanf:"name" validate:"required"`
}

type LogConfig struct {
	Level       string `koanf:"level" validate:"oneof=debug info warn error"`
	Development bool   `koanf:"development"`
}

// ClientConfig is used by the list command to reach a running backend
type ClientConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// Default returns the configuration used when no environment overrides exist
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080", Mode: "release"},
		Redis:  RedisConfig{Addr: "127.0.0.1:6379", DB: 8},
		App:    AppConfig{Name: "isimmManagerApp"},
		Log:    LogConfig{Level: "info"},
		Client: ClientConfig{BaseURL: "http://localhost:8080", Timeout: 10 * time.Second},
	}
}

// Load layers environment variables over the defaults and validates the result
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default configuration: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// transformEnv maps ISIMM_CLIENT_BASE_URL to client.base_url
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.Replace(key, "_", ".", 1), value
}
