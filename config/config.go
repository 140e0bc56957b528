// Package config loads runtime configuration for the market tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables read by Load.
// MARKET_STORE_DIR maps to store.dir.
const EnvPrefix = "MARKET_"

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

// Config holds every configurable knob of the tool.
type Config struct {
	Store StoreConfig `koanf:"store"`
	Log   LogConfig   `koanf:"log"`
}

// StoreConfig selects the persistence backend and where it keeps its data.
type StoreConfig struct {
	Backend  string `koanf:"backend"  validate:"oneof=json sqlite memory"`
	Dir      string `koanf:"dir"      validate:"required"`
	Clients  string `koanf:"clients"  validate:"required,nefield=Products"`
	Products string `koanf:"products" validate:"required"`
}

type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

func defaults() map[string]any {
	return map[string]any{
		"store.backend":  "json",
		"store.dir":      ".",
		"store.clients":  "client.json",
		"store.products": "product.json",
		"log.level":      "warn",
		"log.format":     "text",
	}
}

// Load builds the configuration from, in increasing priority: defaults, the
// YAML file at path, the .env file and the process environment.
// A missing YAML or .env file is not an error.
func Load(path string) (Config, error) {
	var cfg Config
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return cfg, fmt.Errorf("error loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("error loading YAML config file '%s': %w", path, err)
		}
	}

	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}
	if envFileMap, err := godotenv.Read(DotEnvFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if !strings.HasPrefix(key, EnvPrefix) {
				continue
			}
			envMap[envTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			return cfg, fmt.Errorf("error loading %s config: %w", DotEnvFile, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("error reading %s file: %w", DotEnvFile, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformer), nil); err != nil {
		return cfg, fmt.Errorf("error loading system env vars: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// String returns a human-readable dump of the configuration.
func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Store ---\n")
	b.WriteString(fmt.Sprintf("  store.backend: %s\n", c.Store.Backend))
	b.WriteString(fmt.Sprintf("  store.dir: %s\n", c.Store.Dir))
	b.WriteString(fmt.Sprintf("  store.clients: %s\n", c.Store.Clients))
	b.WriteString(fmt.Sprintf("  store.products: %s\n", c.Store.Products))

	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  log.format: %s\n", c.Log.Format))

	return b.String()
}
