package ai

import (
	"context"

	"heart-risk-assistant/internal/domain/ports/adapter"
)

var _ adapter.NarrativeBackend = (*NoopBackend)(nil)

// NoopBackend is the deterministic null implementation selected at startup
// when no provider is configured. Every call reports ErrUnavailable so the
// narrative layer resolves to its templated fallback text; the process runs
// fully offline and reproducibly.
type NoopBackend struct{}

func NewNoopBackend() *NoopBackend {
	return &NoopBackend{}
}

func (n *NoopBackend) Name() string { return "noop" }

func (n *NoopBackend) Generate(ctx context.Context, prompt string) (string, error) {
	return "", adapter.ErrUnavailable
}

func (n *NoopBackend) Chat(ctx context.Context, system string, messages []adapter.Message) (string, error) {
	return "", adapter.ErrUnavailable
}

// CountTokens keeps metrics meaningful without a provider: a rough
// 4-characters-per-token estimate.
func (n *NoopBackend) CountTokens(ctx context.Context, messages []adapter.Message) (int, error) {
	total := 0
	for _, m := range messages {
		total += len(m.Content) / 4
	}
	return total, nil
}
