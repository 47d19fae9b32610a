// Package telemetry emits structured events around tool execution.
//
// Events flow through the process-wide zerolog logger; each carries the
// event name, a per-invocation ID and whatever fields the caller supplies.
package telemetry

import (
	"github.com/rs/zerolog"

	"github.com/dogukanakin/local-mcp/pkg/logger"
)

// Emit logs a single named event with the given fields.
func Emit(event string, fields map[string]any) {
	log := logger.Get()
	log.Info().Fields(fields).Str("event", event).Msg(event)
}

// EmitWith logs through an explicit logger, for components that carry their
// own sub-logger.
func EmitWith(log zerolog.Logger, event string, fields map[string]any) {
	log.Info().Fields(fields).Str("event", event).Msg(event)
}
