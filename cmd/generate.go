package main

import (
	"fmt"

	ragiegpt "github.com/prestonvasquez/ragie-gpt"
	"github.com/prestonvasquez/ragie-gpt/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/llms"
)

func runGenerate(cmd *cobra.Command, args []string, a *app) error {
	params := ragiegpt.ParseArgs(args)

	cfg, err := a.prepare(&params, config.OpenAIAPIKeyVar)
	if err != nil {
		return err
	}

	req, err := ragiegpt.RetrieveRequestFromArgs(params, cfg.RagiePartition)
	if err != nil {
		return err
	}

	provider, _ := params.String("provider")

	// Get the LLM from the provider.
	llm, err := a.newLLM(cfg, provider)
	if err != nil {
		return fmt.Errorf("failed to get LLM: %w", err)
	}

	logrus.Infof("using model %s", cfg.OpenAIModel)

	retriever := ragiegpt.NewRetriever(a.newRagie(cfg), req)
	answer, err := ragiegpt.Generate(cmd.Context(), retriever, llm, req.Query,
		ragiegpt.WithCallOptions(llms.WithModel(cfg.OpenAIModel)),
	)
	if err != nil {
		return err
	}

	logrus.Info("generate completed")

	_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
	return err
}

func newGenerateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "generate --query=<query> [--scope=<scope>]",
		Short:              "Answer a query with GPT using chunks retrieved from Ragie",
		DisableFlagParsing: true,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, a)
	}

	return cmd
}
