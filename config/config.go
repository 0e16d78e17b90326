// Package config loads flightdesk settings from an optional YAML or JSON file
// overlaid by FLIGHTDESK_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ogreowl/flightdesk/internal/logger"
	"github.com/ogreowl/flightdesk/models"
	"github.com/ogreowl/flightdesk/weather"
)

// EnvPrefix is the prefix of environment overrides. Nested keys are joined
// with a double underscore, e.g. FLIGHTDESK_LLM__API_KEY.
const EnvPrefix = "FLIGHTDESK_"

type Config struct {
	LLM     LLMConfig     `json:"llm"`
	Weather WeatherConfig `json:"weather"`
	HTTP    HTTPConfig    `json:"http"`
	Logging LoggingConfig `json:"logging"`
}

// LLMConfig selects the chat model.
type LLMConfig struct {
	// Provider is "openai" or "github".
	Provider string `json:"provider"`
	Model    string `json:"model"`
	// BaseURL points the openai provider at a compatible endpoint.
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

type WeatherConfig struct {
	BaseURL string        `json:"base_url"`
	APIKey  string        `json:"api_key"`
	Timeout time.Duration `json:"timeout"`
}

type HTTPConfig struct {
	Address string `json:"address"`
}

type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider: models.ProviderOpenAI,
			Model:    models.DefaultModel,
		},
		Weather: WeatherConfig{
			BaseURL: weather.DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		HTTP: HTTPConfig{
			Address: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logger.FormatJSON,
		},
	}
}

// Load reads path (skipped when empty), applies FLIGHTDESK_ overrides and
// the legacy OPENAI_API_KEY and WEATHER_API_KEY variables, then validates.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyLegacyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps FLIGHTDESK_LLM__API_KEY to llm.api_key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) applyLegacyEnv() {
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case models.ProviderGitHub:
			c.LLM.APIKey = os.Getenv("GITHUB_TOKEN")
		default:
			c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if c.Weather.APIKey == "" {
		c.Weather.APIKey = os.Getenv("WEATHER_API_KEY")
	}
}

// Validate checks the settings that cannot be defaulted. Missing API keys
// are not an error here; commands that need them fail when they build the
// client.
func (c Config) Validate() error {
	var errs []error

	switch c.LLM.Provider {
	case models.ProviderOpenAI, models.ProviderGitHub:
	default:
		errs = append(errs, fmt.Errorf("llm.provider: unknown provider %q", c.LLM.Provider))
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		errs = append(errs, errors.New("llm.model is required"))
	}
	if c.Weather.Timeout <= 0 {
		errs = append(errs, errors.New("weather.timeout must be positive"))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch strings.ToLower(c.Logging.Format) {
	case logger.FormatJSON, logger.FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// ModelOptions returns the provider options for models.New.
func (c LLMConfig) ModelOptions() models.Options {
	return models.Options{
		Provider: c.Provider,
		Model:    c.Model,
		Token:    c.APIKey,
		BaseURL:  c.BaseURL,
	}
}
