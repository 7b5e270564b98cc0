package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"heart-risk-assistant/internal/domain/model"
	"heart-risk-assistant/internal/domain/ports/adapter"
)

// ---- Fakes ----

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// fakeBackend scripts the narrative backend and records what it was sent.
type fakeBackend struct {
	generateText string
	generateErr  error
	chatText     string
	chatErr      error

	lastPrompt   string
	lastSystem   string
	lastMessages []adapter.Message
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.generateText, f.generateErr
}

func (f *fakeBackend) Chat(ctx context.Context, system string, messages []adapter.Message) (string, error) {
	f.lastSystem = system
	f.lastMessages = messages
	return f.chatText, f.chatErr
}

func (f *fakeBackend) CountTokens(ctx context.Context, messages []adapter.Message) (int, error) {
	return 0, nil
}

var _ adapter.NarrativeBackend = (*fakeBackend)(nil)

// fakeClassifier returns a scripted prediction.
type fakeClassifier struct {
	result model.PredictionResult
	err    error
}

func (f *fakeClassifier) Predict(input model.PatientInput) (model.PredictionResult, error) {
	return f.result, f.err
}

var _ adapter.RiskClassifier = (*fakeClassifier)(nil)

// fakeNarrative scripts the narrative use case for controller tests.
type fakeNarrative struct {
	report  string
	welcome string
	reply   string

	chatCalls int
}

func (f *fakeNarrative) Report(ctx context.Context, input model.PatientInput, result model.PredictionResult) string {
	return f.report
}

func (f *fakeNarrative) Welcome(ctx context.Context, input model.PatientInput, result model.PredictionResult) string {
	return f.welcome
}

func (f *fakeNarrative) Chat(ctx context.Context, input model.PatientInput, risk model.RiskLevel, history []model.ChatMessage, message string) string {
	f.chatCalls++
	return f.reply
}

var _ NarrativeUseCase = (*fakeNarrative)(nil)

func testInput() model.PatientInput {
	return model.PatientInput{
		Age: 54, Sex: 1, SystolicBP: 140, Cholesterol: 230, BMI: 28,
		Smoking: 1, Diabetes: 0, RestingHR: 80, PhysicalActivity: 0, FamilyHistory: 1,
	}
}

func testResult() model.PredictionResult {
	return model.PredictionResult{
		RiskLevel: model.RiskHigh,
		Probabilities: model.ProbabilityDistribution{
			model.RiskLow: 5.12, model.RiskMedium: 20.3, model.RiskHigh: 60.58, model.RiskVeryHigh: 14.0,
		},
	}
}
