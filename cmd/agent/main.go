package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/dogukanakin/local-mcp/internal/apiclient"
	"github.com/dogukanakin/local-mcp/internal/config"
	"github.com/dogukanakin/local-mcp/internal/operations"
	"github.com/dogukanakin/local-mcp/internal/people"
	"github.com/dogukanakin/local-mcp/internal/provider"
	"github.com/dogukanakin/local-mcp/internal/runner"
	"github.com/dogukanakin/local-mcp/memory"
	"github.com/dogukanakin/local-mcp/pkg/logger"
	"github.com/dogukanakin/local-mcp/tools"
)

func main() {
	// Basic env check (SDK also reads API key)
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		fmt.Println("Missing ANTHROPIC_API_KEY; export it before running.")
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	// Set up graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	client := apiclient.New(cfg.APIBaseURL, apiclient.WithTimeout(cfg.HTTPTimeout))
	if !client.CheckHealth(ctx) {
		fmt.Fprintf(os.Stderr, "warning: API at %s is not responding; tool calls will fail until it is up\n", cfg.APIBaseURL)
	}

	groups := [][]tools.ToolDefinition{
		tools.UserTools(operations.NewUsers(client)),
		tools.PostTools(operations.NewPosts(client)),
	}
	if cfg.DatabaseURL != "" {
		svc, err := people.Connect(ctx, cfg.DatabaseURL, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
			os.Exit(1)
		}
		defer svc.Close()
		groups = append(groups, tools.PeopleTools(svc))
	}
	registry := tools.NewRegistry(groups...)

	transcript, err := memory.Load(memory.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load persisted conversation: %v\n", err)
		transcript = memory.New(memory.DefaultPath)
	}

	r := runner.New(provider.NewAnthropicClient(), registry, log)
	model := provider.Model()

	// Build SDK conversation from persisted messages text
	persisted := transcript.Messages()
	conv := make([]anthropic.MessageParam, 0, len(persisted))
	for _, m := range persisted {
		if m.Role == "user" {
			conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
		} else {
			conv = append(conv, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text)))
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Printf("Chat with Claude (%d tools loaded, Ctrl-C to quit)\n", len(registry.Definitions()))

	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

outer:
	for {
		fmt.Print("[94mYou[0m: ")
		var (
			user string
			ok   bool
		)
		select {
		case <-ctx.Done():
			break outer
		case user, ok = <-inputCh:
			if !ok {
				break outer
			}
		}
		conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(user)))

		// Track assistant visible text to persist after the turn
		var lastAssistantText string
		for {
			msg, toolResults, err := r.RunOneStep(ctx, model, conv)
			if err != nil {
				// A failed turn never ends the session
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				break
			}
			conv = append(conv, msg.ToParam())
			for _, b := range msg.Content {
				if tb, ok := b.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
					if lastAssistantText == "" {
						lastAssistantText = tb.Text
					} else {
						lastAssistantText += "\n" + tb.Text
					}
				}
			}
			if len(toolResults) == 0 {
				break // done with assistant turn
			}
			// Provide tool results as a user message back to the model
			conv = append(conv, anthropic.NewUserMessage(toolResults...))
		}

		// Persist minimal text-only transcript; tool blocks stay transient
		transcript.Append("user", user)
		transcript.Append("assistant", lastAssistantText)
		if err := transcript.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save conversation: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
	}
}
