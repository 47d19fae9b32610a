// Package toolserver delivers registry tools to external agents over two
// framings: a long-lived SSE channel and a line-delimited stdio pipe. Both
// modes funnel invocations through the same bounded-concurrency queue.
package toolserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dogukanakin/local-mcp/internal/api/metrics"
	"github.com/dogukanakin/local-mcp/internal/telemetry"
	"github.com/dogukanakin/local-mcp/tools"
)

const (
	defaultWorkers = 4
	taskBuffer     = 64
	// DefaultInvokeTimeout bounds one tool call end to end. No retries: on
	// timeout the call is abandoned and reported as an error.
	DefaultInvokeTimeout = 30 * time.Second
)

type task struct {
	ctx    context.Context
	tool   tools.ToolDefinition
	input  json.RawMessage
	result chan taskResult
}

type taskResult struct {
	output string
	err    error
}

// Queue executes tool invocations on a fixed set of workers. Each Invoke
// call blocks until its task completes, fails or times out; the queue itself
// adds no retries and no ordering guarantees across callers.
type Queue struct {
	registry *tools.Registry
	tasks    chan task
	workers  int
	timeout  time.Duration
	log      zerolog.Logger
}

// NewQueue builds a Queue over the registry. workers <= 0 falls back to the
// default; timeout <= 0 falls back to DefaultInvokeTimeout.
func NewQueue(registry *tools.Registry, workers int, timeout time.Duration, log zerolog.Logger) *Queue {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if timeout <= 0 {
		timeout = DefaultInvokeTimeout
	}
	return &Queue{
		registry: registry,
		tasks:    make(chan task, taskBuffer),
		workers:  workers,
		timeout:  timeout,
		log:      log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		go q.runWorker(ctx, i)
	}
}

// Invoke resolves name, enqueues the call and blocks until the result is
// available. Unknown tools and timeouts surface as errors for the delivery
// layer to render into the envelope.
func (q *Queue) Invoke(ctx context.Context, name string, input json.RawMessage) (string, error) {
	def, ok := q.registry.Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	callCtx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	if _, ok := telemetry.InvocationIDFromContext(callCtx); !ok {
		callCtx = telemetry.WithInvocationID(callCtx, uuid.NewString())
	}

	t := task{ctx: callCtx, tool: def, input: input, result: make(chan taskResult, 1)}

	select {
	case q.tasks <- t:
	case <-callCtx.Done():
		return "", fmt.Errorf("tool %q not accepted: %w", name, callCtx.Err())
	}

	select {
	case res := <-t.result:
		return res.output, res.err
	case <-callCtx.Done():
		// The worker may still be running; the call is abandoned, not
		// cancelled mid-flight.
		return "", fmt.Errorf("tool %q timed out after %s", name, q.timeout)
	}
}

func (q *Queue) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-q.tasks:
			if !ok {
				return
			}
			q.execute(id, t)
		}
	}
}

func (q *Queue) execute(workerID int, t task) {
	invocationID, _ := telemetry.InvocationIDFromContext(t.ctx)
	start := time.Now()

	output, err := t.tool.Function(t.ctx, t.input)

	fields := map[string]any{
		"tool_name":     t.tool.Name,
		"worker_id":     workerID,
		"invocation_id": invocationID,
		"duration_ms":   time.Since(start).Milliseconds(),
		"input_size":    len(t.input),
		"output_size":   len(output),
	}
	outcome := "ok"
	if err != nil {
		// Keep raw payloads out of the log; the detailed message travels
		// in the result.
		fields["error"] = "tool error"
		outcome = "error"
	}
	metrics.ToolInvocationsTotal.WithLabelValues(t.tool.Name, outcome).Inc()
	telemetry.EmitWith(q.log, "tool_exec", fields)

	t.result <- taskResult{output: output, err: err}
}
