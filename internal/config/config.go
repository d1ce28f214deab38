// Package config loads CLI configuration from a yaml file with environment
// variables layered on top.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

// Config is the root configuration. Sources in priority order:
//  1. explicit path from the --config flag;
//  2. CONFIG_PATH environment variable;
//  3. ./local.yaml;
//  4. environment variables only.
type Config struct {
	API   APIConfig   `yaml:"api"`
	Store StoreConfig `yaml:"store"`
	Cache CacheConfig `yaml:"cache"`
	Serve ServeConfig `yaml:"serve"`
	Log   LogConfig   `yaml:"log"`
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url" env:"PORTFOLIO_API_URL" env-default:"https://api.jeffersontetteh.com/api/v1"`
	Timeout           time.Duration `yaml:"timeout" env:"PORTFOLIO_API_TIMEOUT" env-default:"30s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"PORTFOLIO_API_RPS" env-default:"10"`
	Burst             int           `yaml:"burst" env:"PORTFOLIO_API_BURST" env-default:"20"`
}

// StoreConfig locates the on-disk token store. An empty secret keeps tokens
// in plaintext.
type StoreConfig struct {
	Path   string `yaml:"path" env:"PORTFOLIO_TOKEN_PATH"`
	Secret string `yaml:"secret" env:"PORTFOLIO_TOKEN_SECRET"`
}

// CacheConfig locates the content cache used by serve.
type CacheConfig struct {
	Path string        `yaml:"path" env:"PORTFOLIO_CACHE_PATH"`
	TTL  time.Duration `yaml:"ttl" env:"PORTFOLIO_CACHE_TTL" env-default:"15m"`
}

// ServeConfig is the public site server.
type ServeConfig struct {
	Addr string `yaml:"addr" env:"PORTFOLIO_SERVE_ADDR" env-default:":8080"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"PORTFOLIO_LOG_LEVEL" env-default:"info"`
}

// MustLoad is Load with panic on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the config per the priority chain documented on Config and
// fills in the default file locations under the user home dir.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) error {
		if _, err := os.Stat(p); err != nil {
			return errors.Wrapf(err, "config file %q not readable", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return errors.Wrap(err, "failed to read config")
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return errors.Wrap(err, "failed to overlay env")
		}
		return nil
	}

	switch {
	case path != "":
		if err := tryRead(path); err != nil {
			return nil, err
		}
	case os.Getenv("CONFIG_PATH") != "":
		if err := tryRead(os.Getenv("CONFIG_PATH")); err != nil {
			return nil, err
		}
	default:
		if _, err := os.Stat("local.yaml"); err == nil {
			if err := tryRead("local.yaml"); err != nil {
				return nil, err
			}
			break
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, errors.Wrap(err, "failed to read env config")
		}
	}

	if err := cfg.fillDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) fillDefaults() error {
	if c.Store.Path != "" && c.Cache.Path != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return errors.Wrap(err, "failed to resolve home dir")
	}
	dir := filepath.Join(home, ".portfolio")
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(dir, "tokens.json")
	}
	if c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(dir, "cache.db")
	}
	return nil
}
