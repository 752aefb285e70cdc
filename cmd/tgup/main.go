package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/tgup-cli/tgup/internal/cli"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		slog.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
