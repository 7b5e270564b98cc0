// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"heart-risk-assistant/internal/domain"
	"heart-risk-assistant/internal/domain/ports/repository"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

// ChatUseCase proxies follow-up questions to the narrative layer with the
// session's patient context injected. Chat requires an active assessment.
type ChatUseCase interface {
	SendMessage(ctx context.Context, sessionID, message string) (reply string, err error)
}

type chatUC struct {
	store     repository.SessionStore
	narrative NarrativeUseCase
	log       *zerolog.Logger
}

func NewChatUseCase(store repository.SessionStore, narrative NarrativeUseCase, log *zerolog.Logger) *chatUC {
	return &chatUC{store: store, narrative: narrative, log: log}
}

func (c *chatUC) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	session, err := c.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNoAssessment
		}
		return "", err
	}
	if !session.Active() {
		return "", domain.ErrNoAssessment
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.ErrEmptyMessage
	}

	// The narrative layer absorbs backend failures, so from here on the
	// exchange always completes with a fully-formed reply.
	reply := c.narrative.Chat(ctx, *session.PatientContext, session.RiskLevel, session.ChatHistory, message)

	session.AppendExchange(message, reply)
	if err := c.store.Set(ctx, session); err != nil {
		return "", err
	}
	return reply, nil
}
