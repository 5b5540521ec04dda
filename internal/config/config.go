// Package config loads application settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable, e.g. TADA_MONGO_URI.
const EnvPrefix = "TADA"

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "tada.toml"

var themes = []string{"classic", "neon", "mono"}

type Config struct {
	App struct {
		Theme         string        `toml:"theme" envconfig:"THEME"`
		WelcomeName   string        `toml:"welcome_name" envconfig:"WELCOME_NAME"`
		FirstName     string        `toml:"first_name" envconfig:"FIRST_NAME"`
		LastName      string        `toml:"last_name" envconfig:"LAST_NAME"`
		ClockInterval time.Duration `toml:"clock_interval" envconfig:"CLOCK_INTERVAL"`
	} `toml:"app" envconfig:"APP"`

	Log struct {
		Level  string `toml:"level" envconfig:"LEVEL"`
		Format string `toml:"format" envconfig:"FORMAT"`
		File   string `toml:"file" envconfig:"FILE"`
	} `toml:"log" envconfig:"LOG"`

	Mongo struct {
		URI        string        `toml:"uri" envconfig:"URI"`
		Database   string        `toml:"database" envconfig:"DATABASE"`
		Collection string        `toml:"collection" envconfig:"COLLECTION"`
		Timeout    time.Duration `toml:"timeout" envconfig:"TIMEOUT"`
	} `toml:"mongo" envconfig:"MONGO"`
}

// Overrides are values set on the command line; empty fields are ignored.
type Overrides struct {
	Theme    string
	LogLevel string
}

// Load builds the configuration from, in increasing priority:
// defaults, the TOML file, .env, the environment and overrides.
// An explicit path that does not exist is an error; the default file is optional.
func Load(path string, ov Overrides) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	file, required := path, true
	if file == "" {
		file, required = DefaultFile, false
	}
	if err := loadFile(cfg, file, required); err != nil {
		return nil, err
	}

	// A missing .env is normal outside development.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if ov.Theme != "" {
		cfg.App.Theme = ov.Theme
	}
	if ov.LogLevel != "" {
		cfg.Log.Level = ov.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration holding only the built-in defaults.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	cfg.App.Theme = "classic"
	cfg.App.WelcomeName = "Jeff"
	cfg.App.FirstName = "Harper"
	cfg.App.LastName = "Perez"
	cfg.App.ClockInterval = time.Second

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"

	cfg.Mongo.URI = "mongodb://localhost:27017"
	cfg.Mongo.Database = "BookstoreDb"
	cfg.Mongo.Collection = "Books"
	cfg.Mongo.Timeout = 10 * time.Second
}

func loadFile(cfg *Config, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	theme := strings.ToLower(c.App.Theme)
	known := false
	for _, t := range themes {
		if t == theme {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown theme %q (want one of %s)", c.App.Theme, strings.Join(themes, ", "))
	}
	if c.App.ClockInterval <= 0 {
		return fmt.Errorf("clock interval must be positive, got %s", c.App.ClockInterval)
	}
	if c.Mongo.Timeout <= 0 {
		return fmt.Errorf("mongo timeout must be positive, got %s", c.Mongo.Timeout)
	}
	if c.Mongo.Database == "" || c.Mongo.Collection == "" {
		return errors.New("mongo database and collection must be set")
	}
	return nil
}
