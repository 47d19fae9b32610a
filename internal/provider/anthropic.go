package provider

import (
	"os"

	"github.com/anthropics/anthropic-sdk-go"
)

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest

// NewAnthropicClient returns a client using the API key from the env.
func NewAnthropicClient() *anthropic.Client {
	c := anthropic.NewClient()
	return &c
}

// Model returns the model to use, honouring ANTHROPIC_MODEL when set.
func Model() anthropic.Model {
	if m := os.Getenv("ANTHROPIC_MODEL"); m != "" {
		return anthropic.Model(m)
	}
	return DefaultModel
}
