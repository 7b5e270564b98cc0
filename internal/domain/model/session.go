package model

import (
	"time"
)

// ChatRole tags the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage represents one message within an assessment conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// AssessmentSession is the per-user state for one browsing session.
// PatientContext present implies RiskLevel and Probabilities were written
// by the same prediction; the session moves between exactly two states,
// no assessment yet and assessment active.
type AssessmentSession struct {
	ID             string                  `json:"id"`
	AssessmentID   string                  `json:"assessment_id,omitempty"`
	PatientContext *PatientInput           `json:"patient_context,omitempty"`
	RiskLevel      RiskLevel               `json:"risk_level,omitempty"`
	Probabilities  ProbabilityDistribution `json:"probabilities,omitempty"`
	ChatHistory    []ChatMessage           `json:"chat_history"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func NewAssessmentSession(id string) *AssessmentSession {
	now := time.Now()
	return &AssessmentSession{
		ID:          id,
		ChatHistory: make([]ChatMessage, 0, 8),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Active reports whether an assessment has completed for this session.
// Chat is only permitted on an active session.
func (s *AssessmentSession) Active() bool {
	return s.PatientContext != nil
}

// BeginAssessment installs a completed prediction and reseeds the chat
// history to exactly two model-authored messages: the report and the
// welcome. Any previous conversation is discarded.
func (s *AssessmentSession) BeginAssessment(assessmentID string, input PatientInput, result PredictionResult, report, welcome string) {
	s.AssessmentID = assessmentID
	s.PatientContext = &input
	s.RiskLevel = result.RiskLevel
	s.Probabilities = result.Probabilities
	s.ChatHistory = []ChatMessage{
		{Role: RoleModel, Content: report},
		{Role: RoleModel, Content: welcome},
	}
	s.UpdatedAt = time.Now()
}

// AppendExchange appends one user turn followed by the model's reply.
func (s *AssessmentSession) AppendExchange(message, reply string) {
	s.ChatHistory = append(s.ChatHistory,
		ChatMessage{Role: RoleUser, Content: message},
		ChatMessage{Role: RoleModel, Content: reply},
	)
	s.UpdatedAt = time.Now()
}
