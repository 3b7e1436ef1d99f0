// Package config loads the optional TOML configuration file. Command-line
// flags override anything set here.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mj1618/a11ybridge/internal/platform"
	// Adapter variants register themselves on import.
	_ "github.com/mj1618/a11ybridge/internal/platform/darwin"
	_ "github.com/mj1618/a11ybridge/internal/platform/windows"
)

// Config holds the settings shared by every command.
type Config struct {
	// Platform is the adapter variant scripts use when they do not name one.
	Platform   string
	LogLevel   string
	LogConsole bool
	Format     string
	Server     ServerConfig
	Render     RenderConfig
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Transport string
	Port      int
}

// RenderConfig configures PNG rendering of node bounds.
type RenderConfig struct {
	Scale   float64
	Padding int
	Labels  bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Platform:   platform.Default(platform.MacOS),
		LogLevel:   "info",
		LogConsole: true,
		Format:     "yaml",
		Server:     ServerConfig{Transport: "stdio", Port: 8080},
		Render:     RenderConfig{Scale: 1, Padding: 8, Labels: true},
	}
}

type fileConfig struct {
	Platform   string `toml:"platform"`
	LogLevel   string `toml:"log_level"`
	LogConsole bool   `toml:"log_console"`
	Format     string `toml:"format"`
	Server     struct {
		Transport string `toml:"transport"`
		Port      int    `toml:"port"`
	} `toml:"server"`
	Render struct {
		Scale   float64 `toml:"scale"`
		Padding int     `toml:"padding"`
		Labels  bool    `toml:"labels"`
	} `toml:"render"`
}

// Load reads path over the defaults. Keys absent from the file keep their
// default value.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return apply(Default(), raw, meta)
}

// Parse is Load for an in-memory document.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return apply(Default(), raw, meta)
}

func apply(cfg Config, raw fileConfig, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	if meta.IsDefined("platform") {
		p := strings.TrimSpace(raw.Platform)
		if err := ValidatePlatform(p); err != nil {
			return Config{}, err
		}
		cfg.Platform = p
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_console") {
		cfg.LogConsole = raw.LogConsole
	}
	if meta.IsDefined("format") {
		f := strings.TrimSpace(raw.Format)
		if f != "yaml" && f != "json" {
			return Config{}, fmt.Errorf("format %q: want yaml or json", f)
		}
		cfg.Format = f
	}

	if meta.IsDefined("server", "transport") {
		cfg.Server.Transport = strings.TrimSpace(raw.Server.Transport)
	}
	if meta.IsDefined("server", "port") {
		if raw.Server.Port <= 0 || raw.Server.Port > 65535 {
			return Config{}, fmt.Errorf("server.port %d out of range", raw.Server.Port)
		}
		cfg.Server.Port = raw.Server.Port
	}

	if meta.IsDefined("render", "scale") {
		if raw.Render.Scale <= 0 {
			return Config{}, fmt.Errorf("render.scale must be > 0")
		}
		cfg.Render.Scale = raw.Render.Scale
	}
	if meta.IsDefined("render", "padding") {
		cfg.Render.Padding = raw.Render.Padding
	}
	if meta.IsDefined("render", "labels") {
		cfg.Render.Labels = raw.Render.Labels
	}
	return cfg, nil
}

// ValidatePlatform reports whether p names a registered adapter variant.
func ValidatePlatform(p string) error {
	if !platform.Valid(p) {
		return fmt.Errorf("platform %q: want one of %s", p, strings.Join(platform.Names(), ", "))
	}
	return nil
}
