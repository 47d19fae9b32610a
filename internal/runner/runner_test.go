package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/dogukanakin/local-mcp/internal/operations"
	"github.com/dogukanakin/local-mcp/internal/provider"
	"github.com/dogukanakin/local-mcp/internal/runner"
	"github.com/dogukanakin/local-mcp/tools"
)

type capture struct {
	method string
	url    string
	body   []byte
}

type fakeTransport struct {
	respStatus int
	respBody   []byte
	captured   *capture
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if f.captured != nil {
		f.captured.method = req.Method
		f.captured.url = req.URL.String()
		f.captured.body = b
	}
	resp := &http.Response{
		StatusCode: f.respStatus,
		Body:       io.NopCloser(bytes.NewReader(f.respBody)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

func newClientWithTransport(rt http.RoundTripper) *anthropic.Client {
	c := anthropic.NewClient(
		option.WithHTTPClient(&http.Client{Transport: rt}),
		option.WithAPIKey("test-key"),
	)
	return &c
}

// stubRequester satisfies operations.Requester without a backend.
type stubRequester struct {
	reply any
}

func (s *stubRequester) Request(_ context.Context, _, _ string, _ any, _ url.Values) (any, error) {
	return s.reply, nil
}

func testRegistry() *tools.Registry {
	stub := &stubRequester{reply: []any{map[string]any{"id": "u-1"}}}
	return tools.NewRegistry(
		tools.UserTools(operations.NewUsers(stub)),
		tools.PostTools(operations.NewPosts(stub)),
	)
}

func TestRunner_SendsFullConversationAndTools(t *testing.T) {
	capReq := &capture{}
	fake := &fakeTransport{respStatus: 200, respBody: []byte(`{"content":[],"role":"assistant"}`), captured: capReq}
	r := runner.New(newClientWithTransport(fake), testRegistry(), zerolog.Nop())

	conv := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock("hi")),
		anthropic.NewAssistantMessage(anthropic.NewTextBlock("hello")),
		anthropic.NewUserMessage(anthropic.NewTextBlock("list users")),
	}
	_, _, err := r.RunOneStep(context.Background(), provider.DefaultModel, conv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if capReq.body == nil {
		t.Fatal("no request captured")
	}

	var rb struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(capReq.body, &rb); err != nil {
		t.Fatalf("unmarshal body: %v\nbody=%s", err, string(capReq.body))
	}
	if len(rb.Messages) != 3 {
		t.Fatalf("expected full conversation (3 messages), got %d", len(rb.Messages))
	}
	if len(rb.Tools) != 13 {
		t.Fatalf("expected all registry tools advertised, got %d", len(rb.Tools))
	}
	names := map[string]bool{}
	for _, tool := range rb.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"list_users", "create_user", "publish_post"} {
		if !names[want] {
			t.Errorf("tools missing %q", want)
		}
	}
}

func TestRunner_ToolUse_ExecutesToolAndReturnsResults(t *testing.T) {
	resp := `{
	"role": "assistant",
	"content": [{"type": "tool_use", "id": "t1", "name": "list_users", "input": {}}]
	}`
	fake := &fakeTransport{respStatus: 200, respBody: []byte(resp), captured: &capture{}}
	r := runner.New(newClientWithTransport(fake), testRegistry(), zerolog.Nop())

	conv := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock("please list users")),
	}
	msg, toolResults, err := r.RunOneStep(context.Background(), provider.DefaultModel, conv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if msg == nil {
		t.Fatal("nil message returned")
	}
	if len(toolResults) != 1 {
		t.Fatalf("expected one tool_result, got %d", len(toolResults))
	}
	res := toolResults[0].OfToolResult
	if res == nil {
		t.Fatal("result is not a tool_result block")
	}
	if res.ToolUseID != "t1" {
		t.Errorf("tool_use_id = %q", res.ToolUseID)
	}
	if res.IsError.Or(false) {
		t.Errorf("is_error = true, want false")
	}
}

func TestRunner_UnknownTool_ReturnsIsErrorResult(t *testing.T) {
	r := runner.New(newClientWithTransport(&fakeTransport{respStatus: 200, respBody: []byte(`{}`)}), testRegistry(), zerolog.Nop())

	block := r.ExecTool(context.Background(), "t9", "no_such_tool", json.RawMessage(`{}`))
	res := block.OfToolResult
	if res == nil {
		t.Fatal("result is not a tool_result block")
	}
	if !res.IsError.Or(false) {
		t.Error("is_error = false, want true for unknown tool")
	}
}

func TestRunner_ValidationFailureStaysInEnvelope(t *testing.T) {
	// An operation-level failure is a rendered envelope, not an is_error
	// tool_result: only adapter breakage flips the flag.
	r := runner.New(newClientWithTransport(&fakeTransport{respStatus: 200, respBody: []byte(`{}`)}), testRegistry(), zerolog.Nop())

	block := r.ExecTool(context.Background(), "t2", "get_user", json.RawMessage(`{}`))
	res := block.OfToolResult
	if res == nil {
		t.Fatal("result is not a tool_result block")
	}
	if res.IsError.Or(false) {
		t.Error("is_error = true, want false for rendered validation envelope")
	}
	if len(res.Content) == 0 {
		t.Fatal("empty result content")
	}
	text := res.Content[0].OfText
	if text == nil || !strings.Contains(text.Text, `"success": false`) {
		t.Errorf("content = %+v, want rendered error envelope", res.Content[0])
	}
}
