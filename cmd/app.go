package main

import (
	"fmt"
	"io"

	ragiegpt "github.com/prestonvasquez/ragie-gpt"
	"github.com/prestonvasquez/ragie-gpt/internal/config"
	"github.com/prestonvasquez/ragie-gpt/internal/ragie"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ragieAPI is the part of the Ragie client the operations use.
type ragieAPI interface {
	ragiegpt.ChunkSearcher
	ragiegpt.DocumentGetter
}

// app carries the collaborators of every operation. Tests replace the
// constructors with fakes.
type app struct {
	stdout io.Writer
	stderr io.Writer

	loadConfig func() (*config.Config, error)
	newRagie   func(cfg *config.Config) ragieAPI
	newLLM     func(cfg *config.Config, provider string) (llms.Model, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: config.Load,
		newRagie:   newRagieClient,
		newLLM:     getLLM,
	}
}

func newRagieClient(cfg *config.Config) ragieAPI {
	return ragie.New(cfg.RagieAPIKey,
		ragie.WithBaseURL(cfg.RagieBaseURL),
		ragie.WithTimeout(cfg.HTTPTimeout),
	)
}

func getLLM(cfg *config.Config, provider string) (llms.Model, error) {
	switch provider {
	case "", "openai":
		opts := []openai.Option{
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.OpenAIModel),
		}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, err
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// prepare loads the configuration, checks that RAGIE_API_KEY and every
// additional credential in extra are set, and configures logging. It runs
// before any network call.
func (a *app) prepare(args *ragiegpt.Args, extra ...string) (*config.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	required := append([]string{config.RagieAPIKeyVar}, extra...)
	if err := cfg.Require(required...); err != nil {
		return nil, err
	}

	logrus.SetOutput(a.stderr)
	logrus.SetLevel(cfg.Level())
	if args != nil && args.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	return cfg, nil
}
