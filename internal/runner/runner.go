package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/rs/zerolog"

	"github.com/dogukanakin/local-mcp/internal/telemetry"
	"github.com/dogukanakin/local-mcp/tools"
)

const maxResponseTokens = 1024

// Runner drives one agent conversation against the model, dispatching
// tool_use blocks through the registry. Tool calls within a step run
// sequentially, in the order the model issued them; there is no atomicity
// across calls.
type Runner struct {
	client   *anthropic.Client
	registry *tools.Registry
	log      zerolog.Logger
}

func New(client *anthropic.Client, registry *tools.Registry, log zerolog.Logger) *Runner {
	return &Runner{client: client, registry: registry, log: log}
}

func (r *Runner) anthropicTools() []anthropic.ToolUnionParam {
	defs := r.registry.Definitions()
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, t := range defs {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

// RunOneStep sends the conversation and either prints text or returns tool
// results to be appended by the caller.
func (r *Runner) RunOneStep(ctx context.Context, model anthropic.Model, conv []anthropic.MessageParam) (*anthropic.Message, []anthropic.ContentBlockParamUnion, error) {
	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: int64(maxResponseTokens),
		Messages:  conv,
		Tools:     r.anthropicTools(),
	}

	msg, err := r.client.Messages.New(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	toolResults := []anthropic.ContentBlockParamUnion{}
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			fmt.Printf("\u001b[93mAssistant\u001b[0m: %s\n", v.Text)
		case anthropic.ToolUseBlock:
			input := json.RawMessage(v.JSON.Input.Raw())
			toolResults = append(toolResults, r.ExecTool(ctx, v.ID, v.Name, input))
		}
	}
	return msg, toolResults, nil
}

// ExecTool resolves and runs a single tool call, wrapping the outcome as a
// tool_result block. The content is always a rendered envelope string; only
// an unknown tool name produces an is_error result.
func (r *Runner) ExecTool(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	invocationID, ok := telemetry.InvocationIDFromContext(ctx)
	if !ok {
		invocationID = fmt.Sprintf("call-%d", time.Now().UnixNano())
		ctx = telemetry.WithInvocationID(ctx, invocationID)
	}

	emit := func(durationMs int64, outputSize int, errStr string) {
		fields := map[string]any{
			"tool_name":     name,
			"invocation_id": invocationID,
			"duration_ms":   durationMs,
			"input_size":    len(input),
			"output_size":   outputSize,
		}
		if errStr != "" {
			fields["error"] = errStr
		}
		telemetry.EmitWith(r.log, "tool_exec", fields)
	}

	start := time.Now()

	def, found := r.registry.Lookup(name)
	if !found {
		emit(time.Since(start).Milliseconds(), 0, "tool not found")
		return anthropic.NewToolResultBlock(id, "tool not found", true)
	}

	resp, err := def.Function(ctx, input)
	if err != nil {
		// Tools render their own failures; reaching here means the
		// adapter itself broke.
		emit(time.Since(start).Milliseconds(), 0, "tool error")
		return anthropic.NewToolResultBlock(id, err.Error(), true)
	}
	emit(time.Since(start).Milliseconds(), len(resp), "")
	return anthropic.NewToolResultBlock(id, resp, false)
}
