package toolserver

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dogukanakin/local-mcp/tools"
)

func echoTool(name string) tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        name,
		Description: "echoes its input",
		Function: func(_ context.Context, input json.RawMessage) (string, error) {
			return string(input), nil
		},
	}
}

func slowTool(name string, d time.Duration) tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        name,
		Description: "sleeps before answering",
		Function: func(ctx context.Context, _ json.RawMessage) (string, error) {
			select {
			case <-time.After(d):
				return "done", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
	}
}

func startQueue(t *testing.T, timeout time.Duration, defs ...tools.ToolDefinition) (*Queue, *tools.Registry) {
	t.Helper()
	registry := tools.NewRegistry(defs)
	q := NewQueue(registry, 2, timeout, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	q.Start(ctx)
	return q, registry
}

func TestQueueInvoke(t *testing.T) {
	q, _ := startQueue(t, 0, echoTool("echo"))

	out, err := q.Invoke(context.Background(), "echo", json.RawMessage(`{"x":1}`))
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if out != `{"x":1}` {
		t.Errorf("out = %q", out)
	}
}

func TestQueueUnknownTool(t *testing.T) {
	q, _ := startQueue(t, 0, echoTool("echo"))

	_, err := q.Invoke(context.Background(), "missing", nil)
	if err == nil || !strings.Contains(err.Error(), `unknown tool "missing"`) {
		t.Errorf("err = %v", err)
	}
}

func TestQueueTimeout(t *testing.T) {
	q, _ := startQueue(t, 50*time.Millisecond, slowTool("slow", time.Second))

	start := time.Now()
	_, err := q.Invoke(context.Background(), "slow", nil)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("err = %v, want timeout", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Invoke blocked %s, want prompt timeout", elapsed)
	}
}

func TestQueueConcurrentInvocations(t *testing.T) {
	q, _ := startQueue(t, 0, echoTool("echo"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			input := json.RawMessage(`{"n":` + string(rune('0'+n%10)) + `}`)
			out, err := q.Invoke(context.Background(), "echo", input)
			if err != nil {
				t.Errorf("Invoke: %v", err)
				return
			}
			if out != string(input) {
				t.Errorf("out = %q, want %q", out, input)
			}
		}(i)
	}
	wg.Wait()
}

func TestQueueDefaults(t *testing.T) {
	q := NewQueue(tools.NewRegistry(), 0, 0, zerolog.Nop())
	if q.workers != defaultWorkers {
		t.Errorf("workers = %d, want %d", q.workers, defaultWorkers)
	}
	if q.timeout != DefaultInvokeTimeout {
		t.Errorf("timeout = %s, want %s", q.timeout, DefaultInvokeTimeout)
	}
}
