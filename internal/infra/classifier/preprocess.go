package classifier

import (
	"fmt"

	"heart-risk-assistant/internal/domain"
	"heart-risk-assistant/internal/domain/model"
)

// featureValue resolves one schema column from the patient record.
func featureValue(input model.PatientInput, name string) (float64, error) {
	switch name {
	case "age":
		return input.Age, nil
	case "sex":
		return float64(input.Sex), nil
	case "systolic_bp":
		return input.SystolicBP, nil
	case "cholesterol":
		return input.Cholesterol, nil
	case "bmi":
		return input.BMI, nil
	case "smoking":
		return float64(input.Smoking), nil
	case "diabetes":
		return float64(input.Diabetes), nil
	case "resting_hr":
		return input.RestingHR, nil
	case "physical_activity":
		return float64(input.PhysicalActivity), nil
	case "family_history":
		return float64(input.FamilyHistory), nil
	default:
		return 0, fmt.Errorf("%w: unknown feature %q in model schema", domain.ErrInvalidInput, name)
	}
}

// preprocess validates the input and builds the standardized feature row in
// the exact column order the trained artifact expects. It never touches the
// model; validation failures stop the request before inference.
func preprocess(input model.PatientInput, art *Artifact) ([]float64, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	row := make([]float64, len(art.Features))
	for i, name := range art.Features {
		v, err := featureValue(input, name)
		if err != nil {
			return nil, err
		}
		scale := art.Scaler.Scale[i]
		if scale == 0 {
			scale = 1
		}
		row[i] = (v - art.Scaler.Mean[i]) / scale
	}
	return row, nil
}
