package main

import (
	ragiegpt "github.com/prestonvasquez/ragie-gpt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runRetrieveChunks(cmd *cobra.Command, args []string, a *app) error {
	params := ragiegpt.ParseArgs(args)

	cfg, err := a.prepare(&params)
	if err != nil {
		return err
	}

	req, err := ragiegpt.RetrieveRequestFromArgs(params, cfg.RagiePartition)
	if err != nil {
		return err
	}

	logrus.Infof("retrieving chunks from %s", cfg.RagieBaseURL)

	resp, err := ragiegpt.RetrieveChunks(cmd.Context(), a.newRagie(cfg), req)
	if err != nil {
		return err
	}

	logrus.Infof("retrieved %d chunks", len(resp.Chunks()))

	_, err = cmd.OutOrStdout().Write(resp.Pretty())
	return err
}

func newRetrieveChunksCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "retrieve-chunks --query=<query> [--scope=<scope>]",
		Short:              "Retrieve scored chunks relevant to a query and print the raw response",
		DisableFlagParsing: true,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runRetrieveChunks(cmd, args, a)
	}

	return cmd
}
