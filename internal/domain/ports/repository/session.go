package repository

import (
	"context"

	"heart-risk-assistant/internal/domain/model"
)

// SessionStore holds per-user assessment sessions scoped by session ID.
// The store owns expiry; callers treat absence as domain.ErrNotFound.
// Concurrent writes to the same session are last-write-wins.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*model.AssessmentSession, error)
	Set(ctx context.Context, session *model.AssessmentSession) error
	Clear(ctx context.Context, sessionID string) error
}
