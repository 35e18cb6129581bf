package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	ragiegpt "github.com/prestonvasquez/ragie-gpt"
	"github.com/spf13/cobra"
)

var errUnknownOperation = errors.New("unknown operation")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], newApp(os.Stdout, os.Stderr)))
}

// run executes one operation and returns the process exit code. It is the
// only place errors are reported.
func run(ctx context.Context, args []string, a *app) int {
	// cobra reads os.Args when given nil.
	if args == nil {
		args = []string{}
	}

	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}

	return ragiegpt.ExitCode(err)
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ragie-gpt <operation> [--flag=value | --flag value]...",
		Short:   "Retrieve document chunks from Ragie and answer questions with GPT",
		Version: "0.1.0",

		// Operations parse their own flags; unknown names fall through to
		// the root, which prints usage.
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	cmd.CompletionOptions.DisableDefaultCmd = true

	unknown := func(cmd *cobra.Command, args []string) error {
		if _, err := a.prepare(nil); err != nil {
			return err
		}

		printUsage(cmd.OutOrStdout())

		if len(args) == 0 {
			return fmt.Errorf("%w: none given", errUnknownOperation)
		}
		return fmt.Errorf("%w %q", errUnknownOperation, args[0])
	}

	cmd.RunE = unknown

	// "help" is not an operation. It replaces cobra's help command so it
	// takes the same path as any other unknown name.
	cmd.SetHelpCommand(&cobra.Command{
		Use:                "help",
		Hidden:             true,
		DisableFlagParsing: true,
		RunE: func(c *cobra.Command, args []string) error {
			return unknown(c, append([]string{"help"}, args...))
		},
	})

	cmd.AddCommand(newRetrieveChunksCommand(a))
	cmd.AddCommand(newGenerateCommand(a))
	cmd.AddCommand(newQueryDocumentCommand(a))

	return cmd
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ragie-gpt retrieve-chunks --query=<query> [--scope=<scope>]")
	fmt.Fprintln(w, "  ragie-gpt generate --query=<query> [--scope=<scope>]")
	fmt.Fprintln(w, "  ragie-gpt query-document --documentId=<id>")
}
