// Package main is the entry point for the integration agent.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"integration-agent/config"
	_ "integration-agent/docs" // Swagger docs
	"integration-agent/internal/app"
	"integration-agent/internal/cli"
	"integration-agent/pkg/log"
)

// version is set at build time using -ldflags.
var version = "dev"

// @title       Integration Agent API
// @description Natural language agent for issue trackers, wiki spaces and Java tooling.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context) (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}

		logger := log.Init(log.ZapConfig{
			Level:        cfg.Logger.Level,
			Mode:         cfg.Logger.Mode,
			Encoding:     cfg.Logger.Encoding,
			ColorEnabled: cfg.Logger.ColorEnabled,
		})

		return app.New(ctx, logger, cfg)
	}

	root := cli.NewRootCommand(factory, version)
	return root.ExecuteContext(ctx)
}
