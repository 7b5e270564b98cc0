// File: internal/usecase/assessment_uc.go
package usecase

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"heart-risk-assistant/internal/domain"
	"heart-risk-assistant/internal/domain/model"
	"heart-risk-assistant/internal/domain/ports/adapter"
	"heart-risk-assistant/internal/domain/ports/repository"
	"heart-risk-assistant/internal/infra/logging"
	"heart-risk-assistant/internal/infra/metrics"
)

// Compile-time check
var _ AssessmentUseCase = (*assessmentUC)(nil)

const reportHeading = "## Your Personalized Heart Report\n\n"

type AssessmentUseCase interface {
	// Submit runs one validated assessment: predict, generate the report
	// and welcome narratives, and reseed the session's chat history.
	Submit(ctx context.Context, sessionID string, input model.PatientInput) (*model.AssessmentSession, error)

	// View returns the stored session, or a fresh inactive one when the
	// caller has no assessment yet. View never persists.
	View(ctx context.Context, sessionID string) (*model.AssessmentSession, error)
}

type assessmentUC struct {
	store     repository.SessionStore
	clf       adapter.RiskClassifier
	narrative NarrativeUseCase
	log       *zerolog.Logger
}

func NewAssessmentUseCase(store repository.SessionStore, clf adapter.RiskClassifier, narrative NarrativeUseCase, log *zerolog.Logger) *assessmentUC {
	return &assessmentUC{store: store, clf: clf, narrative: narrative, log: log}
}

func (a *assessmentUC) Submit(ctx context.Context, sessionID string, input model.PatientInput) (*model.AssessmentSession, error) {
	defer logging.TraceDuration(a.log, "AssessmentUC.Submit")()

	// Validation happens inside Predict before the model is reached;
	// nothing is written to the session on a rejected input.
	result, err := a.clf.Predict(input)
	if err != nil {
		metrics.AssessmentRejected("validation")
		return nil, err
	}

	report := reportHeading + a.narrative.Report(ctx, input, result)
	welcome := a.narrative.Welcome(ctx, input, result)

	session, err := a.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		session = model.NewAssessmentSession(sessionID)
	}

	session.BeginAssessment(ulid.Make().String(), input, result, report, welcome)
	if err := a.store.Set(ctx, session); err != nil {
		return nil, err
	}

	a.log.Info().
		Str("session_id", sessionID).
		Str("assessment_id", session.AssessmentID).
		Str("risk_level", string(result.RiskLevel)).
		Msg("assessment completed")
	return session, nil
}

func (a *assessmentUC) View(ctx context.Context, sessionID string) (*model.AssessmentSession, error) {
	session, err := a.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return model.NewAssessmentSession(sessionID), nil
		}
		return nil, err
	}
	return session, nil
}
