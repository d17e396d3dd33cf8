package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/dance-party/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	// -v is --verbose here
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}
	runner := NewRunner(RunnerOpts{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:     "dance-party",
		Usage:    "Log in to Spotify with the implicit flow, look yourself up, search and queue tracks",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   runner.Before,
		After:    runner.After,
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
