package toolserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/dogukanakin/local-mcp/internal/envelope"
	"github.com/dogukanakin/local-mcp/tools"
)

const heartbeatInterval = 15 * time.Second

// SSEServer is the streaming delivery mode: the agent discovers tools over
// GET /tools, invokes them over POST /invoke, and receives results both in
// the POST response and as pushed frames on the persistent GET /events
// channel.
type SSEServer struct {
	queue    *Queue
	registry *tools.Registry
	broker   *broker
	log      zerolog.Logger
}

func NewSSEServer(q *Queue, registry *tools.Registry, log zerolog.Logger) *SSEServer {
	return &SSEServer{
		queue:    q,
		registry: registry,
		broker:   newBroker(),
		log:      log,
	}
}

// Router builds the Echo instance serving the streaming mode.
func (s *SSEServer) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomiddleware.Recover())

	e.GET("/tools", s.handleTools)
	e.GET("/events", s.handleEvents)
	e.POST("/invoke", s.handleInvoke)
	return e
}

func (s *SSEServer) handleTools(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"tools": describeTools(s.registry),
	})
}

type invokeRequest struct {
	ID   string          `json:"id"`
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"arguments"`
}

type invokeResponse struct {
	ID     string `json:"id"`
	Tool   string `json:"tool"`
	Result string `json:"result"`
}

func (s *SSEServer) handleInvoke(c echo.Context) error {
	var req invokeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if req.Tool == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing tool name"})
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	result, err := s.queue.Invoke(c.Request().Context(), req.Tool, req.Args)
	if err != nil {
		result = envelope.RenderError(err)
	}

	resp := invokeResponse{ID: req.ID, Tool: req.Tool, Result: result}
	s.emit("tool_result", resp)
	return c.JSON(http.StatusOK, resp)
}

func (s *SSEServer) emit(name string, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Str("event", name).Msg("sse marshal failed")
		return
	}
	s.broker.publish(event{Name: name, Data: string(b)})
}

// handleEvents keeps the persistent channel open, pushing tool results as
// they complete plus heartbeat comments so intermediaries do not time the
// connection out.
func (s *SSEServer) handleEvents(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprint(w, "retry: 2000\n\n")
	fmt.Fprint(w, "event: ready\ndata: {}\n\n")
	w.Flush()

	ctx := c.Request().Context()
	ch := s.broker.subscribe()
	defer s.broker.unsubscribe(ch)

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			w.Flush()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, ev.Data)
			w.Flush()
		}
	}
}

// Serve runs the SSE server until ctx is cancelled, then shuts down
// gracefully.
func (s *SSEServer) Serve(ctx context.Context, addr string) error {
	e := s.Router()

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()
	s.log.Info().Str("addr", addr).Msg("sse server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}
