// Package memory persists a minimal text-only transcript of the agent REPL
// between sessions. Tool use and tool result blocks are transient; only the
// visible user and assistant text survives a restart.
package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultPath is where the REPL keeps its transcript unless overridden.
const DefaultPath = "conversation.json"

// Message is one persisted chat turn.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text,omitempty"`
}

// Transcript accumulates turns in memory and saves them to a JSON file.
type Transcript struct {
	path string
	msgs []Message
}

// New returns an empty transcript that will save to path.
func New(path string) *Transcript {
	if path == "" {
		path = DefaultPath
	}
	return &Transcript{path: path}
}

// Load reads a transcript from path. A missing file yields an empty
// transcript; a corrupt one is an error so a session never silently
// clobbers history it could not read.
func Load(path string) (*Transcript, error) {
	if path == "" {
		path = DefaultPath
	}
	t := &Transcript{path: path}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return t, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(b, &t.msgs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Messages returns the persisted turns in order.
func (t *Transcript) Messages() []Message {
	return t.msgs
}

// Append records a turn. Blank assistant text is dropped so tool-only turns
// do not leave empty entries behind.
func (t *Transcript) Append(role, text string) {
	if role == "assistant" && strings.TrimSpace(text) == "" {
		return
	}
	t.msgs = append(t.msgs, Message{Role: role, Text: text})
}

// Save writes the transcript back to its file.
func (t *Transcript) Save() error {
	b, err := json.MarshalIndent(t.msgs, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.path, b, 0o644)
}
