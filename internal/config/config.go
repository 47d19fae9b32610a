// Package config loads process configuration from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every knob the three binaries read. Unused sections cost
// nothing for a process that ignores them.
type Config struct {
	// Port is the listen port of the REST backend (apiserver).
	Port string `env:"PORT,         default=8001"`
	// APIBaseURL is where the transport client reaches the REST backend.
	APIBaseURL string `env:"API_BASE_URL, default=http://127.0.0.1:8001"`
	// DatabaseURL enables the people tools when non-empty.
	DatabaseURL string `env:"DATABASE_URL"`

	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// HTTPTimeout bounds a single transport request.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=30s"`

	// RateLimit is the apiserver sustained requests/second; 0 disables it.
	RateLimit float64 `env:"RATE_LIMIT, default=0"`
	// RateBurst is the limiter burst size when limiting is enabled.
	RateBurst int `env:"RATE_BURST, default=20"`

	Tools ToolsConfig
	SSE   SSEConfig
}

// ToolsConfig bounds the tool invocation queue.
type ToolsConfig struct {
	// Workers is the number of queue workers executing tool calls.
	Workers int `env:"TOOL_WORKERS, default=4"`
	// Timeout bounds a single tool invocation end to end.
	Timeout time.Duration `env:"TOOL_TIMEOUT, default=30s"`
}

// SSEConfig configures the streaming delivery mode of the tool server.
type SSEConfig struct {
	Addr string `env:"SSE_ADDR, default=127.0.0.1:8002"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
