package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/DanielPopoola/changebot/internal/cli"
)

func main() {
	app := cli.NewApp()

	if err := app.RootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("changebot failed", "error", err)
		os.Exit(cli.ExitCode(err))
	}
}
