package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"heart-risk-assistant/internal/domain"
	"heart-risk-assistant/internal/domain/model"
	"heart-risk-assistant/internal/infra/logging"
)

// renderedMessage is one chat turn in the view contract: model turns carry
// sanitized HTML, user turns carry plain text.
type renderedMessage struct {
	Role    model.ChatRole `json:"role"`
	Content string         `json:"content"`
}

type viewResponse struct {
	ChatHistory   []renderedMessage             `json:"chat_history"`
	RiskLevel     model.RiskLevel               `json:"risk_level,omitempty"`
	Probabilities model.ProbabilityDistribution `json:"probabilities,omitempty"`
	InputData     *model.PatientInput           `json:"input_data,omitempty"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)
	session, err := s.assessUC.View(r.Context(), sid)
	if err != nil {
		logging.With(r.Context(), s.log).Error().Err(err).Msg("view failed")
		writeError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}
	s.writeView(w, http.StatusOK, session)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)

	input, err := parsePatientForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := s.assessUC.Submit(r.Context(), sid, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.With(r.Context(), s.log).Error().Err(err).Msg("assessment failed")
		writeError(w, http.StatusInternalServerError, "Assessment failed")
		return
	}
	s.writeView(w, http.StatusOK, session)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)

	reply, err := s.chatReply(r.Context(), sid, r.Body)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "Invalid request body")
		case errors.Is(err, domain.ErrNoAssessment):
			writeError(w, http.StatusForbidden, "Complete assessment first")
		case errors.Is(err, domain.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "Empty message")
		default:
			logging.With(r.Context(), s.log).Error().Err(err).Msg("chat failed")
			writeError(w, http.StatusInternalServerError, "Chat failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"ai_message": s.sanitizer.Render(reply),
	})
}

func (s *Server) chatReply(ctx context.Context, sid string, body io.Reader) (string, error) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return "", fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument)
	}
	return s.chatUC.SendMessage(ctx, sid, req.Message)
}

func (s *Server) writeView(w http.ResponseWriter, code int, session *model.AssessmentSession) {
	rendered := make([]renderedMessage, 0, len(session.ChatHistory))
	for _, m := range session.ChatHistory {
		content := m.Content
		if m.Role == model.RoleModel {
			content = s.sanitizer.Render(m.Content)
		}
		rendered = append(rendered, renderedMessage{Role: m.Role, Content: content})
	}
	writeJSON(w, code, viewResponse{
		ChatHistory:   rendered,
		RiskLevel:     session.RiskLevel,
		Probabilities: session.Probabilities,
		InputData:     session.PatientContext,
	})
}

// parsePatientForm decodes the 10 required assessment fields. Any missing
// or malformed field rejects the submission before the classifier runs.
func parsePatientForm(r *http.Request) (model.PatientInput, error) {
	var input model.PatientInput
	if err := r.ParseForm(); err != nil {
		return input, fmt.Errorf("%w: malformed form body", domain.ErrInvalidInput)
	}

	var err error
	if input.Age, err = formFloat(r, "age"); err != nil {
		return input, err
	}
	if input.Sex, err = formInt(r, "sex"); err != nil {
		return input, err
	}
	if input.SystolicBP, err = formFloat(r, "systolic_bp"); err != nil {
		return input, err
	}
	if input.Cholesterol, err = formFloat(r, "cholesterol"); err != nil {
		return input, err
	}
	if input.BMI, err = formFloat(r, "bmi"); err != nil {
		return input, err
	}
	if input.Smoking, err = formInt(r, "smoking"); err != nil {
		return input, err
	}
	if input.Diabetes, err = formInt(r, "diabetes"); err != nil {
		return input, err
	}
	if input.RestingHR, err = formFloat(r, "resting_hr"); err != nil {
		return input, err
	}
	if input.PhysicalActivity, err = formInt(r, "physical_activity"); err != nil {
		return input, err
	}
	if input.FamilyHistory, err = formInt(r, "family_history"); err != nil {
		return input, err
	}
	return input, nil
}

func formFloat(r *http.Request, name string) (float64, error) {
	raw := r.PostFormValue(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing field %q", domain.ErrInvalidInput, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q must be a number", domain.ErrInvalidInput, name)
	}
	return v, nil
}

func formInt(r *http.Request, name string) (int, error) {
	raw := r.PostFormValue(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing field %q", domain.ErrInvalidInput, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q must be an integer", domain.ErrInvalidInput, name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
