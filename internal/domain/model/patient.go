package model

import (
	"fmt"

	"heart-risk-assistant/internal/domain"
)

// PatientInput is the immutable record of one assessment submission.
// Binary fields use 0/1 to match the classifier's training schema.
type PatientInput struct {
	Age              float64 `json:"age"`
	Sex              int     `json:"sex"`
	SystolicBP       float64 `json:"systolic_bp"`
	Cholesterol      float64 `json:"cholesterol"`
	BMI              float64 `json:"bmi"`
	Smoking          int     `json:"smoking"`
	Diabetes         int     `json:"diabetes"`
	RestingHR        float64 `json:"resting_hr"`
	PhysicalActivity int     `json:"physical_activity"`
	FamilyHistory    int     `json:"family_history"`
}

// Validate checks field ranges before the input may reach the classifier.
func (p PatientInput) Validate() error {
	if p.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", domain.ErrInvalidInput)
	}
	if p.SystolicBP <= 0 {
		return fmt.Errorf("%w: systolic_bp must be positive", domain.ErrInvalidInput)
	}
	if p.Cholesterol <= 0 {
		return fmt.Errorf("%w: cholesterol must be positive", domain.ErrInvalidInput)
	}
	if p.BMI <= 0 {
		return fmt.Errorf("%w: bmi must be positive", domain.ErrInvalidInput)
	}
	if p.RestingHR <= 0 {
		return fmt.Errorf("%w: resting_hr must be positive", domain.ErrInvalidInput)
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"sex", p.Sex},
		{"smoking", p.Smoking},
		{"diabetes", p.Diabetes},
		{"physical_activity", p.PhysicalActivity},
		{"family_history", p.FamilyHistory},
	} {
		if f.value != 0 && f.value != 1 {
			return fmt.Errorf("%w: %s must be 0 or 1", domain.ErrInvalidInput, f.name)
		}
	}
	return nil
}

// SexLabel renders the binary sex flag the way prompts expect it.
func (p PatientInput) SexLabel() string {
	if p.Sex == 1 {
		return "Male"
	}
	return "Female"
}
