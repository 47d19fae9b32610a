package toolserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/dogukanakin/local-mcp/internal/envelope"
	"github.com/dogukanakin/local-mcp/tools"
)

// Frame shapes of the stdio pipe: one JSON object per line in each
// direction. A session is one process; the session ends when stdin closes.
type stdioRequest struct {
	ID     string          `json:"id"`
	Method string          `json:"method,omitempty"` // "call" (default) or "tools"
	Tool   string          `json:"tool,omitempty"`
	Args   json.RawMessage `json:"arguments,omitempty"`
}

type stdioResponse struct {
	ID     string     `json:"id"`
	Result string     `json:"result,omitempty"`
	Tools  []toolDesc `json:"tools,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// toolDesc is the discovery view of one tool.
type toolDesc struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

func describeTools(registry *tools.Registry) []toolDesc {
	defs := registry.Definitions()
	out := make([]toolDesc, 0, len(defs))
	for _, d := range defs {
		out = append(out, toolDesc{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: tools.SchemaJSON(d),
		})
	}
	return out
}

// maxFrameSize caps a single request line. Oversized frames abort the
// session rather than silently truncating.
const maxFrameSize = 1 << 20

// ServeStdio runs the one-shot pipe delivery mode: requests are read line by
// line from in, responses written line by line to out. Malformed frames
// produce an error response and the session continues; the loop returns when
// the input closes or ctx is cancelled.
func ServeStdio(ctx context.Context, q *Queue, registry *tools.Registry, in io.Reader, out io.Writer, log zerolog.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxFrameSize)
	enc := json.NewEncoder(out)

	log.Info().Int("tools", len(registry.Definitions())).Msg("stdio session started")

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req stdioRequest
		if err := json.Unmarshal(line, &req); err != nil {
			if encErr := enc.Encode(stdioResponse{Error: "malformed frame: " + err.Error()}); encErr != nil {
				return encErr
			}
			continue
		}

		resp := handleStdioRequest(ctx, q, registry, req)
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	log.Info().Msg("stdio session ended")
	return nil
}

func handleStdioRequest(ctx context.Context, q *Queue, registry *tools.Registry, req stdioRequest) stdioResponse {
	switch req.Method {
	case "tools":
		return stdioResponse{ID: req.ID, Tools: describeTools(registry)}
	case "", "call":
		if req.Tool == "" {
			return stdioResponse{ID: req.ID, Error: "missing tool name"}
		}
		result, err := q.Invoke(ctx, req.Tool, req.Args)
		if err != nil {
			// Rendered envelope, same as any backend failure: the agent
			// never sees a raw error.
			return stdioResponse{ID: req.ID, Result: envelope.RenderError(err)}
		}
		return stdioResponse{ID: req.ID, Result: result}
	default:
		return stdioResponse{ID: req.ID, Error: "unknown method: " + req.Method}
	}
}
