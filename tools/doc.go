// Package tools defines the tool contracts exposed to the agent.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Registry: read-only name → definition index shared by the REPL agent
//     and the tool server.
//   - CRUD tools for users and posts (REST backend) and people (PostgreSQL).
//   - Invariant: every tool call returns a rendered envelope string; no raw
//     error crosses this boundary to the agent.
package tools
