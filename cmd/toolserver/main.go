package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dogukanakin/local-mcp/internal/apiclient"
	"github.com/dogukanakin/local-mcp/internal/config"
	"github.com/dogukanakin/local-mcp/internal/operations"
	"github.com/dogukanakin/local-mcp/internal/people"
	"github.com/dogukanakin/local-mcp/internal/toolserver"
	"github.com/dogukanakin/local-mcp/pkg/logger"
	"github.com/dogukanakin/local-mcp/tools"
)

func main() {
	serverType := flag.String("server_type", "stdio", "delivery mode: sse or stdio")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := apiclient.New(cfg.APIBaseURL, apiclient.WithTimeout(cfg.HTTPTimeout))
	if !client.CheckHealth(ctx) {
		log.Warn().Str("base_url", cfg.APIBaseURL).Msg("backend API not responding; resource tools will fail until it is up")
	}

	groups := [][]tools.ToolDefinition{
		tools.UserTools(operations.NewUsers(client)),
		tools.PostTools(operations.NewPosts(client)),
	}
	if cfg.DatabaseURL != "" {
		svc, err := people.Connect(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(1)
		}
		defer svc.Close()
		groups = append(groups, tools.PeopleTools(svc))
	}
	registry := tools.NewRegistry(groups...)
	log.Info().Int("tools", len(registry.Definitions())).Str("mode", *serverType).Msg("toolserver starting")

	queue := toolserver.NewQueue(registry, cfg.Tools.Workers, cfg.Tools.Timeout, log)
	queue.Start(ctx)

	switch *serverType {
	case "stdio":
		if err := toolserver.ServeStdio(ctx, queue, registry, os.Stdin, os.Stdout, log); err != nil {
			log.Error().Err(err).Msg("stdio server failed")
			os.Exit(1)
		}
	case "sse":
		srv := toolserver.NewSSEServer(queue, registry, log)
		if err := srv.Serve(ctx, cfg.SSE.Addr); err != nil {
			log.Error().Err(err).Msg("sse server failed")
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown --server_type %q (want sse or stdio)\n", *serverType)
		os.Exit(2)
	}
}
