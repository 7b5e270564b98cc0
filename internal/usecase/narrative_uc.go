// File: internal/usecase/narrative_uc.go
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"heart-risk-assistant/internal/domain/model"
	"heart-risk-assistant/internal/domain/ports/adapter"
	"heart-risk-assistant/internal/infra/metrics"
)

// Compile-time check
var _ NarrativeUseCase = (*narrativeUC)(nil)

const reportDelimiter = "---"

// chatFallback is the fixed reply when no narrative backend is configured.
const chatFallback = "AI features are currently unavailable. Configure a narrative backend API key to enable chat."

// NarrativeUseCase turns structured prediction output into prose. Every
// method degrades to deterministic template text when the backend fails;
// backend errors never propagate to callers.
type NarrativeUseCase interface {
	Report(ctx context.Context, input model.PatientInput, result model.PredictionResult) string
	Welcome(ctx context.Context, input model.PatientInput, result model.PredictionResult) string
	Chat(ctx context.Context, input model.PatientInput, risk model.RiskLevel, history []model.ChatMessage, message string) string
}

type narrativeUC struct {
	ai  adapter.NarrativeBackend
	log *zerolog.Logger
}

func NewNarrativeUseCase(ai adapter.NarrativeBackend, log *zerolog.Logger) *narrativeUC {
	return &narrativeUC{ai: ai, log: log}
}

// Report asks the backend for a two-part response (JSON summary, delimiter,
// markdown report) and keeps only the markdown after the delimiter. If the
// delimiter is absent the whole response is the report.
func (n *narrativeUC) Report(ctx context.Context, input model.PatientInput, result model.PredictionResult) string {
	payload, err := json.MarshalIndent(struct {
		InputData   model.PatientInput     `json:"input_data"`
		ModelOutput model.PredictionResult `json:"model_output"`
	}{input, result}, "", "  ")
	if err != nil {
		metrics.NarrativeFallback("report")
		return fallbackReport(result.RiskLevel)
	}

	prompt := fmt.Sprintf(`Return JSON with keys input_data, model_output, explanation(summary, recommendations).
Then write a patient friendly markdown report.

Payload:
%s

Format:
JSON
%s
MARKDOWN REPORT
`, payload, reportDelimiter)

	text, ok := n.generate(ctx, "report", prompt)
	if !ok {
		return fallbackReport(result.RiskLevel)
	}
	if idx := strings.Index(text, reportDelimiter); idx >= 0 {
		return strings.TrimSpace(text[idx+len(reportDelimiter):])
	}
	return text
}

// Welcome produces the short warm message referencing the risk level and
// the patient's key metrics.
func (n *narrativeUC) Welcome(ctx context.Context, input model.PatientInput, result model.PredictionResult) string {
	prompt := fmt.Sprintf(`A patient just completed a heart risk test with result %s. Write a warm 3 sentence welcome. Then explain the data we were provided like age, heart rate and BMI and give a generalised report on how good or bad the values are.

Age:%g Sex:%s
BMI:%g BP:%g Chol:%g
Smoking:%d Diabetes:%d
Risk:%s
`, result.RiskLevel, input.Age, input.SexLabel(),
		input.BMI, input.SystolicBP, input.Cholesterol,
		input.Smoking, input.Diabetes, result.RiskLevel)

	text, ok := n.generate(ctx, "welcome", prompt)
	if !ok {
		return fallbackWelcome(result.RiskLevel)
	}
	return strings.TrimSpace(text)
}

// Chat replays the stored history under a system instruction carrying the
// patient context. The "never reveal raw data" line is a prompt-level
// request to the model, not an enforced filter; rendering safety is the
// sanitizer's job, information leakage through replies is best-effort.
func (n *narrativeUC) Chat(ctx context.Context, input model.PatientInput, risk model.RiskLevel, history []model.ChatMessage, message string) string {
	system := fmt.Sprintf(`You are Dr Heart AI. Internal patient context. Never reveal raw data.

Age:%g Sex:%s
BMI:%g BP:%g Chol:%g
Smoking:%d Diabetes:%d
Risk:%s
`, input.Age, input.SexLabel(),
		input.BMI, input.SystolicBP, input.Cholesterol,
		input.Smoking, input.Diabetes, risk)

	msgs := make([]adapter.Message, 0, len(history)+1)
	for _, m := range history {
		role := "user"
		if m.Role == model.RoleModel {
			role = "assistant"
		}
		msgs = append(msgs, adapter.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, adapter.Message{Role: "user", Content: message})

	tokens, _ := n.ai.CountTokens(ctx, msgs)
	start := time.Now()
	reply, err := n.ai.Chat(ctx, system, msgs)
	latency := int(time.Since(start).Milliseconds())
	metrics.ObserveNarrativeCall(n.ai.Name(), "chat", tokens, latency, err == nil)
	if err != nil {
		metrics.NarrativeFallback("chat")
		n.log.Warn().Err(err).Str("provider", n.ai.Name()).Msg("chat generation failed; using fallback reply")
		return chatFallback
	}
	return strings.TrimSpace(reply)
}

// generate runs one stateless prompt with timing and fallback accounting.
func (n *narrativeUC) generate(ctx context.Context, kind, prompt string) (string, bool) {
	tokens, _ := n.ai.CountTokens(ctx, []adapter.Message{{Role: "user", Content: prompt}})
	start := time.Now()
	text, err := n.ai.Generate(ctx, prompt)
	latency := int(time.Since(start).Milliseconds())
	metrics.ObserveNarrativeCall(n.ai.Name(), kind, tokens, latency, err == nil)
	if err != nil {
		metrics.NarrativeFallback(kind)
		n.log.Warn().Err(err).Str("provider", n.ai.Name()).Str("kind", kind).Msg("generation failed; using fallback text")
		return "", false
	}
	return text, true
}

func fallbackReport(risk model.RiskLevel) string {
	return fmt.Sprintf("# Heart Risk Report\nRisk Level: %s\n\nSummary: Based on the provided inputs, the model estimates a risk level of %s.", risk, risk)
}

func fallbackWelcome(risk model.RiskLevel) string {
	return fmt.Sprintf("Welcome. Your assessment shows a %s risk level. See the detailed report above.", risk)
}
