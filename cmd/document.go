package main

import (
	ragiegpt "github.com/prestonvasquez/ragie-gpt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

func runQueryDocument(cmd *cobra.Command, args []string, a *app) error {
	params := ragiegpt.ParseArgs(args)

	cfg, err := a.prepare(&params)
	if err != nil {
		return err
	}

	doc, err := ragiegpt.QueryDocument(cmd.Context(), a.newRagie(cfg), params, cfg.RagiePartition)
	if err != nil {
		return err
	}

	logrus.Debug("document fetched")

	_, err = cmd.OutOrStdout().Write(pretty.Pretty(doc))
	return err
}

func newQueryDocumentCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "query-document --documentId=<id>",
		Short:              "Print a document's metadata",
		DisableFlagParsing: true,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runQueryDocument(cmd, args, a)
	}

	return cmd
}
