package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("", config.Overrides{})
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "classic", cfg.App.Theme)
	assert.Equal(t, "Jeff", cfg.App.WelcomeName)
	assert.Equal(t, time.Second, cfg.App.ClockInterval)
	assert.Equal(t, "Books", cfg.Mongo.Collection)
}

func TestLoad_Layering(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, dir, config.DefaultFile, `
[app]
theme = "neon"
welcome_name = "Ada"
clock_interval = "250ms"

[mongo]
database = "FromFile"
timeout = "3s"
`)
	writeFile(t, dir, ".env", "TADA_APP_FIRST_NAME=Grace\n")
	t.Cleanup(func() { _ = os.Unsetenv("TADA_APP_FIRST_NAME") })
	t.Setenv("TADA_MONGO_DATABASE", "FromEnv")

	cfg, err := config.Load("", config.Overrides{LogLevel: "debug"})
	require.NoError(t, err)

	assert.Equal(t, "neon", cfg.App.Theme)
	assert.Equal(t, "Ada", cfg.App.WelcomeName)
	assert.Equal(t, 250*time.Millisecond, cfg.App.ClockInterval)
	assert.Equal(t, "Grace", cfg.App.FirstName)
	assert.Equal(t, "Perez", cfg.App.LastName)
	assert.Equal(t, "FromEnv", cfg.Mongo.Database)
	assert.Equal(t, 3*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := config.Load("missing.toml", config.Overrides{})
	assert.Error(t, err)
}

func TestLoad_BadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	p := writeFile(t, dir, "bad.toml", "[app\ntheme=")

	_, err := config.Load(p, config.Overrides{})
	assert.ErrorContains(t, err, "decode config file")
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "TADA_APP_THEME=\"neon\n")

	_, err := config.Load("", config.Overrides{})
	assert.ErrorContains(t, err, "load .env")
}

func TestLoad_OverrideTheme(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("", config.Overrides{Theme: "mono"})
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.App.Theme)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{name: "theme is case insensitive", mutate: func(c *config.Config) { c.App.Theme = "NEON" }},
		{name: "unknown theme", mutate: func(c *config.Config) { c.App.Theme = "solarized" }, wantErr: "unknown theme"},
		{name: "zero clock interval", mutate: func(c *config.Config) { c.App.ClockInterval = 0 }, wantErr: "clock interval"},
		{name: "negative timeout", mutate: func(c *config.Config) { c.Mongo.Timeout = -time.Second }, wantErr: "mongo timeout"},
		{name: "empty collection", mutate: func(c *config.Config) { c.Mongo.Collection = "" }, wantErr: "collection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
