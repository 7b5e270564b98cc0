package adapter

import "heart-risk-assistant/internal/domain/model"

// RiskClassifier is the port wrapping the pretrained multiclass model.
// Predict validates and preprocesses the input, then maps the model's
// probability vector onto the fixed risk-level vocabulary. Inference
// failures inside the model never surface here; they resolve to the
// hard-decision fallback. The only error path is input validation.
type RiskClassifier interface {
	Predict(input model.PatientInput) (model.PredictionResult, error)
}
