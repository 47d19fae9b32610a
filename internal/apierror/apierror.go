// Package apierror defines the error taxonomy for remote API calls.
//
// Every terminal failure in the system is representable as exactly one
// *Error: local validation checks, transport failures, and non-2xx backend
// responses all construct one at the point the failure is detected and never
// mutate it afterwards.
package apierror

import (
	"fmt"
)

// Kind classifies a failure. Given a status code the kind is unambiguous.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindConnection     Kind = "connection"
	KindTimeout        Kind = "timeout"
	KindAuthentication Kind = "authentication"
	KindRateLimit      Kind = "rate_limit"
	KindGeneric        Kind = "generic"
)

// Error is the single failure type surfaced by the transport client and the
// resource operations. StatusCode is 0 when no HTTP status is known.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Details    map[string]any
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (%s, status %d)", e.Message, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Kind)
}

// NewValidation reports malformed caller input. Always raised before any
// network call is issued.
func NewValidation(message string, details map[string]any) *Error {
	return &Error{Kind: KindValidation, Message: message, StatusCode: 422, Details: details}
}

// NewNotFound reports a target id absent in the backend.
func NewNotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{Kind: KindNotFound, Message: message, StatusCode: 404}
}

// NewConnection reports an unreachable backend.
func NewConnection(message string) *Error {
	if message == "" {
		message = "Connection failed"
	}
	return &Error{Kind: KindConnection, Message: message, StatusCode: 503}
}

// NewTimeout reports a transport-level timeout.
func NewTimeout(message string) *Error {
	if message == "" {
		message = "Request timeout"
	}
	return &Error{Kind: KindTimeout, Message: message, StatusCode: 408}
}

// NewAuthentication reports rejected credentials.
func NewAuthentication(message string) *Error {
	if message == "" {
		message = "Authentication failed"
	}
	return &Error{Kind: KindAuthentication, Message: message, StatusCode: 401}
}

// NewRateLimit reports backend throttling.
func NewRateLimit(message string) *Error {
	if message == "" {
		message = "Rate limit exceeded"
	}
	return &Error{Kind: KindRateLimit, Message: message, StatusCode: 429}
}

// NewGeneric wraps anything the taxonomy has no sharper kind for.
func NewGeneric(message string, statusCode int) *Error {
	return &Error{Kind: KindGeneric, Message: message, StatusCode: statusCode}
}

// FromStatus constructs the appropriate error for a non-2xx response.
// The mapping is checked in order, first match wins:
//
//	401 → authentication
//	404 → not_found
//	422 → validation (carries any details from the payload)
//	429 → rate_limit
//	≥500 → generic, message prefixed "Server error: "
//	anything else → generic carrying the status
func FromStatus(statusCode int, payload any) *Error {
	message := ExtractMessage(payload)

	switch {
	case statusCode == 401:
		return NewAuthentication(message)
	case statusCode == 404:
		return NewNotFound(message)
	case statusCode == 422:
		return NewValidation(message, extractDetails(payload))
	case statusCode == 429:
		return NewRateLimit(message)
	case statusCode >= 500:
		return NewGeneric(fmt.Sprintf("Server error: %s", message), statusCode)
	default:
		return &Error{Kind: KindGeneric, Message: message, StatusCode: statusCode, Details: extractDetails(payload)}
	}
}

// ExtractMessage pulls a human-readable message out of a decoded payload.
// From a map it tries the keys "error", "message", "detail" in order; any
// other payload is stringified wholesale.
func ExtractMessage(payload any) string {
	m, ok := payload.(map[string]any)
	if !ok {
		if payload == nil {
			return "Unknown error"
		}
		return fmt.Sprintf("%v", payload)
	}
	for _, key := range []string{"error", "message", "detail"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return "Unknown error"
}

func extractDetails(payload any) map[string]any {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	if d, ok := m["details"].(map[string]any); ok {
		return d
	}
	if d, ok := m["detail"].(map[string]any); ok {
		return d
	}
	return nil
}
