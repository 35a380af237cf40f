package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Taxonomy  TaxonomyConfig  `yaml:"taxonomy"`
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	MCP       MCPConfig       `yaml:"mcp"`
	Log       LogConfig       `yaml:"log"`
}

type InputConfig struct {
	// Paths are the default inputs for the server and MCP binaries.
	Paths   []string `yaml:"paths"`
	Pattern string   `yaml:"pattern"`
}

type OutputConfig struct {
	JSON   string `yaml:"json"`
	SQLite string `yaml:"sqlite"`
}

type TaxonomyConfig struct {
	File string `yaml:"file"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type MCPConfig struct {
	RemoteURL string `yaml:"remote_url"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input:     InputConfig{Pattern: "*.md"},
		Output:    OutputConfig{JSON: "gym_data.json"},
		Server:    ServerConfig{Host: "127.0.0.1", Port: 8080},
		Tailscale: TailscaleConfig{Hostname: "gymlog"},
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads config from a YAML file on top of Default, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix GYMLOG_ and underscore-separated paths:
//
//	GYMLOG_INPUT_PATTERN, GYMLOG_OUTPUT_JSON, GYMLOG_OUTPUT_SQLITE,
//	GYMLOG_TAXONOMY_FILE, GYMLOG_SERVER_HOST, GYMLOG_SERVER_PORT,
//	GYMLOG_AUTH_API_KEY, GYMLOG_TAILSCALE_ENABLED, GYMLOG_TAILSCALE_HOSTNAME,
//	GYMLOG_TAILSCALE_STATE_DIR, GYMLOG_MCP_REMOTE_URL, GYMLOG_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GYMLOG_INPUT_PATTERN"); v != "" {
		cfg.Input.Pattern = v
	}
	if v := os.Getenv("GYMLOG_OUTPUT_JSON"); v != "" {
		cfg.Output.JSON = v
	}
	if v := os.Getenv("GYMLOG_OUTPUT_SQLITE"); v != "" {
		cfg.Output.SQLite = v
	}
	if v := os.Getenv("GYMLOG_TAXONOMY_FILE"); v != "" {
		cfg.Taxonomy.File = v
	}
	if v := os.Getenv("GYMLOG_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GYMLOG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GYMLOG_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("GYMLOG_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("GYMLOG_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("GYMLOG_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("GYMLOG_MCP_REMOTE_URL"); v != "" {
		cfg.MCP.RemoteURL = v
	}
	if v := os.Getenv("GYMLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Output.JSON == "" {
		return fmt.Errorf("output.json is required")
	}
	if c.Input.Pattern == "" {
		c.Input.Pattern = "*.md"
	}
	if !doublestar.ValidatePattern(c.Input.Pattern) {
		return fmt.Errorf("input.pattern %q is not a valid glob", c.Input.Pattern)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// ValidateServer checks the settings gymlog-server needs on top of validate.
func (c *Config) ValidateServer() error {
	if !c.Tailscale.Enabled && c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", l.Level)
	}
}
