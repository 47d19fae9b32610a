package toolserver

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dogukanakin/local-mcp/tools"
)

func newSSETestServer(t *testing.T, defs ...tools.ToolDefinition) (*httptest.Server, *SSEServer) {
	t.Helper()
	registry := tools.NewRegistry(defs)
	q := NewQueue(registry, 2, 0, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	q.Start(ctx)

	s := NewSSEServer(q, registry, zerolog.Nop())
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv, s
}

func TestSSEToolsDiscovery(t *testing.T) {
	srv, _ := newSSETestServer(t, echoTool("echo"))

	resp, err := http.Get(srv.URL + "/tools")
	if err != nil {
		t.Fatalf("GET /tools: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Tools []toolDesc `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Tools) != 1 || body.Tools[0].Name != "echo" {
		t.Errorf("tools = %+v", body.Tools)
	}
}

func TestSSEInvoke(t *testing.T) {
	srv, _ := newSSETestServer(t, echoTool("echo"))

	resp, err := http.Post(srv.URL+"/invoke", "application/json",
		strings.NewReader(`{"id": "r-1", "tool": "echo", "arguments": {"x": 1}}`))
	if err != nil {
		t.Fatalf("POST /invoke: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body invokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ID != "r-1" || body.Tool != "echo" {
		t.Errorf("body = %+v", body)
	}
	if !strings.Contains(body.Result, `"x"`) {
		t.Errorf("result = %q", body.Result)
	}
}

func TestSSEInvokeUnknownToolRendersEnvelope(t *testing.T) {
	srv, _ := newSSETestServer(t, echoTool("echo"))

	resp, err := http.Post(srv.URL+"/invoke", "application/json",
		strings.NewReader(`{"tool": "missing"}`))
	if err != nil {
		t.Fatalf("POST /invoke: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 with rendered envelope", resp.StatusCode)
	}

	var body invokeResponse
	json.NewDecoder(resp.Body).Decode(&body)
	if !strings.Contains(body.Result, `"success": false`) {
		t.Errorf("result = %q", body.Result)
	}
	if body.ID == "" {
		t.Error("id empty, want one generated when the caller omits it")
	}
}

func TestSSEInvokeMissingToolName(t *testing.T) {
	srv, _ := newSSETestServer(t, echoTool("echo"))

	resp, err := http.Post(srv.URL+"/invoke", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST /invoke: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSSEEventsStreamPushesInvocationResults(t *testing.T) {
	srv, _ := newSSETestServer(t, echoTool("echo"))

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/events", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := http.DefaultClient.Do(req.WithContext(ctx))
	if err != nil {
		t.Fatalf("GET /events: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("Content-Type = %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	lines := make(chan string)
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				close(lines)
				return
			}
			lines <- strings.TrimRight(line, "\n")
		}
	}()

	waitFor := func(want string) {
		t.Helper()
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					t.Fatalf("stream closed waiting for %q", want)
				}
				if strings.Contains(line, want) {
					return
				}
			case <-ctx.Done():
				t.Fatalf("timed out waiting for %q", want)
			}
		}
	}

	waitFor("event: ready")

	// An invocation through the POST endpoint must surface on the stream.
	go http.Post(srv.URL+"/invoke", "application/json",
		strings.NewReader(`{"id": "ev-1", "tool": "echo", "arguments": {}}`))

	waitFor("event: tool_result")
	waitFor("ev-1")
}
