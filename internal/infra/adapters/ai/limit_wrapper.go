package ai

import (
	"context"
	"time"

	"heart-risk-assistant/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.NarrativeBackend = (*limitedBackend)(nil)

// limitedBackend bounds concurrent calls to the provider and applies a
// per-call timeout at the boundary. Calls to the external service are
// blocking and synchronous with no retry; a single failure surfaces once.
type limitedBackend struct {
	inner   adapter.NarrativeBackend
	sem     chan struct{}
	timeout time.Duration
}

func NewLimitedBackend(inner adapter.NarrativeBackend, maxConcurrent int, timeout time.Duration) adapter.NarrativeBackend {
	if maxConcurrent <= 0 && timeout <= 0 {
		return inner
	}
	var sem chan struct{}
	if maxConcurrent > 0 {
		sem = make(chan struct{}, maxConcurrent)
	}
	return &limitedBackend{inner: inner, sem: sem, timeout: timeout}
}

func (l *limitedBackend) Name() string { return l.inner.Name() }

func (l *limitedBackend) Generate(ctx context.Context, prompt string) (string, error) {
	release, ctx, cancel := l.acquire(ctx)
	defer release()
	defer cancel()
	return l.inner.Generate(ctx, prompt)
}

func (l *limitedBackend) Chat(ctx context.Context, system string, messages []adapter.Message) (string, error) {
	release, ctx, cancel := l.acquire(ctx)
	defer release()
	defer cancel()
	return l.inner.Chat(ctx, system, messages)
}

func (l *limitedBackend) CountTokens(ctx context.Context, messages []adapter.Message) (int, error) {
	return l.inner.CountTokens(ctx, messages)
}

func (l *limitedBackend) acquire(ctx context.Context) (release func(), out context.Context, cancel context.CancelFunc) {
	release = func() {}
	if l.sem != nil {
		l.sem <- struct{}{}
		release = func() { <-l.sem }
	}
	out, cancel = ctx, func() {}
	if l.timeout > 0 {
		out, cancel = context.WithTimeout(ctx, l.timeout)
	}
	return release, out, cancel
}
