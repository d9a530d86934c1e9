// Package config loads the service configuration from defaults, an optional TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"classical-cipher-backend/analysis"

	"github.com/BurntSushi/toml"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Analysis AnalysisConfig `toml:"analysis"`
}

type ServerConfig struct {
	Port         string   `toml:"port"`
	AllowOrigins []string `toml:"allow_origins"`
	// MaxBodyBytes of 0 disables the request body limit.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// AnalysisConfig mirrors analysis.Config. Keys missing from the file keep
// their defaults; keys set to 0 stay 0.
type AnalysisConfig struct {
	MinThreshold       int `toml:"min_threshold"`
	MaxKeyLength       int `toml:"max_key_length"`
	MinKeyLength       int `toml:"min_key_length"`
	MinSubstringLength int `toml:"min_substring_length"`
	SampleLength       int `toml:"sample_length"`
	Workers            int `toml:"workers"`
	MaxTextLength      int `toml:"max_text_length"`
}

func Default() *Config {
	def := analysis.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			AllowOrigins: []string{"http://localhost:3000"},
			MaxBodyBytes: 1 << 20,
		},
		Log: LogConfig{
			Level: "info",
		},
		Analysis: AnalysisConfig{
			MinThreshold:       def.MinThreshold,
			MaxKeyLength:       def.MaxKeyLength,
			MinKeyLength:       def.MinKeyLength,
			MinSubstringLength: def.MinSubstringLength,
			SampleLength:       def.SampleLength,
			Workers:            def.Workers,
			MaxTextLength:      def.MaxTextLength,
		},
	}
}

// Load starts from Default, decodes path over it when path is not empty,
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
		}
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides reads PORT, LOG_LEVEL and CORS_ALLOW_ORIGINS.
func (c *Config) ApplyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		c.Server.AllowOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Server.AllowOrigins = append(c.Server.AllowOrigins, o)
			}
		}
	}
}

// SetDefaults fills settings a file blanked out and that have no meaningful empty value.
func (c *Config) SetDefaults() {
	def := Default()
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if len(c.Server.AllowOrigins) == 0 {
		c.Server.AllowOrigins = def.Server.AllowOrigins
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %q", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: max body bytes %d", ErrInvalidConfig, c.Server.MaxBodyBytes)
	}
	if err := c.AnalysisConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// AnalysisConfig converts the analysis section into the analyzer's configuration.
func (c *Config) AnalysisConfig() analysis.Config {
	cfg := analysis.DefaultConfig()
	cfg.MinThreshold = c.Analysis.MinThreshold
	cfg.MaxKeyLength = c.Analysis.MaxKeyLength
	cfg.MinKeyLength = c.Analysis.MinKeyLength
	cfg.MinSubstringLength = c.Analysis.MinSubstringLength
	cfg.SampleLength = c.Analysis.SampleLength
	cfg.Workers = c.Analysis.Workers
	cfg.MaxTextLength = c.Analysis.MaxTextLength
	return cfg
}
