// Package config reads the server settings from the environment. A .env
// file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the binary needs to start.
type Config struct {
	Port    string
	GinMode string

	DatabaseURL string
	// Fixtures is a YAML file loaded into an empty database at startup.
	Fixtures string
	SiteFile string

	TemplatesDir string
	StaticDir    string
	ImagesDir    string

	LogLevel string

	Dots DotsConfig
}

// DotsConfig tunes the background animation hosts.
type DotsConfig struct {
	FPS                int
	RegenerateOnResize bool
	// Theme forces the preview hosts into "dark" or "light". Empty follows
	// the default of each host.
	Theme string
}

// DefaultConfig returns the settings used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Port:         "8080",
		GinMode:      "release",
		DatabaseURL:  "file:portfolio.db?_pragma=busy_timeout(5000)",
		TemplatesDir: "templates",
		StaticDir:    "static",
		ImagesDir:    "images",
		LogLevel:     "info",
		Dots: DotsConfig{
			FPS: 60,
		},
	}
}

// Load reads .env (if any) and the environment on top of the defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	cfg := DefaultConfig()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.GinMode = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("FIXTURES_FILE"); v != "" {
		c.Fixtures = v
	}
	if v := os.Getenv("SITE_FILE"); v != "" {
		c.SiteFile = v
	}
	if v := os.Getenv("TEMPLATES_DIR"); v != "" {
		c.TemplatesDir = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("IMAGES_DIR"); v != "" {
		c.ImagesDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("DOTS_FPS"); v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DOTS_FPS %q: %w", v, err)
		}
		c.Dots.FPS = fps
	}
	if v := os.Getenv("DOTS_REGENERATE_ON_RESIZE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DOTS_REGENERATE_ON_RESIZE %q: %w", v, err)
		}
		c.Dots.RegenerateOnResize = b
	}
	if v := os.Getenv("DOTS_THEME"); v != "" {
		c.Dots.Theme = v
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.Dots.FPS < 1 || c.Dots.FPS > 240 {
		return fmt.Errorf("dots fps must be between 1 and 240, got %d", c.Dots.FPS)
	}
	switch c.Dots.Theme {
	case "", "dark", "light":
	default:
		return fmt.Errorf("dots theme must be dark or light, got %q", c.Dots.Theme)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
