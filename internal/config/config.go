package config

import (
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	env "github.com/netflix/go-env"
	ragiegpt "github.com/prestonvasquez/ragie-gpt"
	"github.com/sirupsen/logrus"
)

const (
	RagieAPIKeyVar  = "RAGIE_API_KEY"
	OpenAIAPIKeyVar = "OPENAI_API_KEY"

	DefaultRagieBaseURL = "https://api.ragie.ai"
	DefaultOpenAIModel  = "gpt-4o"
)

// Config is the runtime configuration read from the environment.
type Config struct {
	RagieAPIKey    string        `env:"RAGIE_API_KEY"`
	RagieBaseURL   string        `env:"RAGIE_BASE_URL,default=https://api.ragie.ai"`
	RagiePartition string        `env:"RAGIE_PARTITION"`
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `env:"OPENAI_BASE_URL"`
	OpenAIModel    string        `env:"OPENAI_MODEL,default=gpt-4o"`
	LogLevel       string        `env:"LOG_LEVEL,default=info"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT,default=0s"`
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment take precedence over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return FromEnvSet(es)
}

// FromEnvSet builds a Config from an explicit set of variables. es is not
// modified.
func FromEnvSet(es env.EnvSet) (*Config, error) {
	var cfg Config

	// Unmarshal deletes every key it consumes.
	if err := env.Unmarshal(maps.Clone(es), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	normalize(&cfg)

	return &cfg, nil
}

func normalize(cfg *Config) {
	cfg.RagieAPIKey = strings.TrimSpace(cfg.RagieAPIKey)
	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
	cfg.RagiePartition = strings.TrimSpace(cfg.RagiePartition)
	cfg.OpenAIBaseURL = strings.TrimSpace(cfg.OpenAIBaseURL)

	cfg.RagieBaseURL = strings.TrimRight(strings.TrimSpace(cfg.RagieBaseURL), "/")
	if cfg.RagieBaseURL == "" {
		cfg.RagieBaseURL = DefaultRagieBaseURL
	}

	cfg.OpenAIModel = strings.TrimSpace(cfg.OpenAIModel)
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = DefaultOpenAIModel
	}

	if cfg.HTTPTimeout < 0 {
		cfg.HTTPTimeout = 0
	}
}

// Require returns a *ragiegpt.ConfigError for the first variable in vars
// that has no value. Only RAGIE_API_KEY and OPENAI_API_KEY are recognized.
func (c *Config) Require(vars ...string) error {
	for _, v := range vars {
		var val string
		switch v {
		case RagieAPIKeyVar:
			val = c.RagieAPIKey
		case OpenAIAPIKeyVar:
			val = c.OpenAIAPIKey
		default:
			return fmt.Errorf("unknown credential %q", v)
		}

		if val == "" {
			return &ragiegpt.ConfigError{Variable: v}
		}
	}

	return nil
}

// Level returns the configured logrus level, falling back to info.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return lvl
}
