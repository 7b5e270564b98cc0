package adapter

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by backends that are unconfigured or cannot
// reach their service. Callers resolve it to deterministic fallback text.
var ErrUnavailable = errors.New("narrative backend unavailable")

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// NarrativeBackend is the port for the external text-generation service.
// Exactly two call shapes are needed: a stateless prompt-in/text-out
// generation, and a conversational call carrying a system instruction plus
// ordered history. Implementations must not retry; a failure is surfaced
// once and the caller degrades to deterministic fallback text.
type NarrativeBackend interface {
	// Name identifies the provider for logs and metrics.
	Name() string

	// Generate sends a single prompt and returns the raw model text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Chat replays history as conversational turns under the given system
	// instruction, sends the trailing user message and returns the reply.
	Chat(ctx context.Context, system string, messages []Message) (string, error)

	// CountTokens returns prompt tokens for the provided messages
	// (provider-specific counting; best-effort when exact isn't available).
	CountTokens(ctx context.Context, messages []Message) (int, error)
}
