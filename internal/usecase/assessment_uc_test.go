package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"heart-risk-assistant/internal/domain"
	"heart-risk-assistant/internal/domain/model"
	"heart-risk-assistant/internal/infra/memory"
)

func TestSubmitSeedsHistory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	narrative := &fakeNarrative{report: "report body", welcome: "welcome text"}
	uc := NewAssessmentUseCase(store, &fakeClassifier{result: testResult()}, narrative, newTestLogger())

	session, err := uc.Submit(ctx, "sess-1", testInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(session.ChatHistory) != 2 {
		t.Fatalf("expected exactly 2 seed messages, got %d", len(session.ChatHistory))
	}
	for i, m := range session.ChatHistory {
		if m.Role != model.RoleModel {
			t.Errorf("seed message %d authored by %q, want model", i, m.Role)
		}
	}
	if !strings.HasPrefix(session.ChatHistory[0].Content, "## Your Personalized Heart Report") {
		t.Errorf("report seed missing heading: %q", session.ChatHistory[0].Content)
	}
	if !strings.Contains(session.ChatHistory[0].Content, "report body") {
		t.Errorf("report seed missing narrative body: %q", session.ChatHistory[0].Content)
	}
	if session.ChatHistory[1].Content != "welcome text" {
		t.Errorf("welcome seed = %q", session.ChatHistory[1].Content)
	}

	// patient_context present implies risk level and probabilities from
	// the same prediction.
	if session.PatientContext == nil || session.RiskLevel != model.RiskHigh {
		t.Error("session invariant broken after submit")
	}
	if len(session.Probabilities) != 4 {
		t.Errorf("expected 4 probability slots, got %d", len(session.Probabilities))
	}
	if session.AssessmentID == "" {
		t.Error("assessment id not assigned")
	}

	// The session must be persisted, not just returned.
	stored, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("stored session missing: %v", err)
	}
	if len(stored.ChatHistory) != 2 {
		t.Errorf("persisted history has %d messages", len(stored.ChatHistory))
	}
}

func TestSubmitResetsPreviousConversation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	narrative := &fakeNarrative{report: "r", welcome: "w", reply: "ok"}
	assessUC := NewAssessmentUseCase(store, &fakeClassifier{result: testResult()}, narrative, newTestLogger())
	chatUC := NewChatUseCase(store, narrative, newTestLogger())

	if _, err := assessUC.Submit(ctx, "sess-1", testInput()); err != nil {
		t.Fatal(err)
	}
	if _, err := chatUC.SendMessage(ctx, "sess-1", "a question"); err != nil {
		t.Fatal(err)
	}

	session, err := assessUC.Submit(ctx, "sess-1", testInput())
	if err != nil {
		t.Fatal(err)
	}
	if len(session.ChatHistory) != 2 {
		t.Fatalf("resubmit did not reset history: %d messages", len(session.ChatHistory))
	}
}

func TestSubmitValidationLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	clf := &fakeClassifier{err: fmt.Errorf("%w: age must be positive", domain.ErrInvalidInput)}
	uc := NewAssessmentUseCase(store, clf, &fakeNarrative{}, newTestLogger())

	if _, err := uc.Submit(ctx, "sess-1", model.PatientInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := store.Get(ctx, "sess-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Error("rejected submission mutated session state")
	}
}

func TestViewWithoutAssessment(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	uc := NewAssessmentUseCase(store, &fakeClassifier{result: testResult()}, &fakeNarrative{}, newTestLogger())

	session, err := uc.View(ctx, "sess-unknown")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if session.Active() || len(session.ChatHistory) != 0 {
		t.Error("expected an inactive empty session")
	}
	// View never persists.
	if _, err := store.Get(ctx, "sess-unknown"); !errors.Is(err, domain.ErrNotFound) {
		t.Error("View persisted a session")
	}
}
