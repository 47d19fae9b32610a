// Package envelope renders the canonical success/error payload every tool
// caller receives. Rendering never fails: serialization problems fall back to
// a best-effort stringification instead of propagating.
package envelope

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dogukanakin/local-mcp/internal/apierror"
)

// Envelope is the canonical response wrapper. Exactly one is constructed per
// operation invocation, immediately before returning to the adapter layer.
type Envelope struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message,omitempty"`
	Data       any            `json:"data,omitempty"`
	Error      string         `json:"error,omitempty"`
	ErrorKind  string         `json:"error_type,omitempty"`
	StatusCode int            `json:"status_code,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// Render formats an operation result as the string handed back to the agent.
//
// Defensive double-check: a backend may embed its own failure inside a 2xx
// body, so a map payload carrying an "error" key or a false "success" flag is
// still rendered as an error.
func Render(data any) string {
	if m, ok := data.(map[string]any); ok {
		if errMsg, ok := m["error"].(string); ok && errMsg != "" {
			return fmt.Sprintf("❌ Error: %s", errMsg)
		}
		if success, ok := m["success"].(bool); ok && !success {
			msg := "Unknown error"
			if s, ok := m["message"].(string); ok && s != "" {
				msg = s
			}
			return fmt.Sprintf("❌ Failed: %s", msg)
		}
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(b)
}

// RenderError formats any failure as an error envelope string. Taxonomy
// errors carry their kind, status code and details; anything else renders as
// a generic error wrapping the message text.
func RenderError(err error) string {
	var apiErr *apierror.Error
	var env Envelope
	if errors.As(err, &apiErr) {
		env = Envelope{
			Success:    false,
			Error:      apiErr.Message,
			ErrorKind:  string(apiErr.Kind),
			StatusCode: apiErr.StatusCode,
			Details:    apiErr.Details,
		}
	} else {
		env = Envelope{
			Success:   false,
			Error:     err.Error(),
			ErrorKind: string(apierror.KindGeneric),
		}
	}

	b, marshalErr := json.MarshalIndent(env, "", "  ")
	if marshalErr != nil {
		return fmt.Sprintf(`{"success": false, "error": %q}`, env.Error)
	}
	return string(b)
}
