package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsync/cmd/docsync/commands"
	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
	"git.home.luguber.info/inful/docsync/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli commands.CLI
	parser, err := kong.New(&cli,
		kong.Name("docsync"),
		kong.Description("Keep generated documentation in sync with source documentation fragments."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		_, _ = io.WriteString(stderr, err.Error()+"\n")
		return 1
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = kctx.Run(&commands.Global{Ctx: ctx, Stdout: stdout, Stderr: stderr}, &cli)
	return ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).WithOutput(stderr).HandleError(err)
}
