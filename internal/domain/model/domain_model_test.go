package model

import (
	"testing"
)

func validInput() PatientInput {
	return PatientInput{
		Age:              54,
		Sex:              1,
		SystolicBP:       140,
		Cholesterol:      230,
		BMI:              28,
		Smoking:          1,
		Diabetes:         0,
		RestingHR:        80,
		PhysicalActivity: 0,
		FamilyHistory:    1,
	}
}

func TestRiskLevelFromClass(t *testing.T) {
	cases := []struct {
		idx  int
		want RiskLevel
	}{
		{0, RiskLow},
		{1, RiskMedium},
		{2, RiskHigh},
		{3, RiskVeryHigh},
		{4, RiskUnknown},
		{-1, RiskUnknown},
		{42, RiskUnknown},
	}
	for _, c := range cases {
		if got := RiskLevelFromClass(c.idx); got != c.want {
			t.Errorf("RiskLevelFromClass(%d) = %q, want %q", c.idx, got, c.want)
		}
	}
}

func TestPatientInputValidate(t *testing.T) {
	if err := validInput().Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	bad := validInput()
	bad.Age = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero age")
	}

	bad = validInput()
	bad.Smoking = 2
	if err := bad.Validate(); err == nil {
		t.Error("expected error for non-binary smoking flag")
	}

	bad = validInput()
	bad.Cholesterol = -1
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative cholesterol")
	}
}

func TestBeginAssessmentResetsHistory(t *testing.T) {
	s := NewAssessmentSession("sess-1")
	if s.Active() {
		t.Fatal("fresh session should not be active")
	}

	result := PredictionResult{RiskLevel: RiskHigh, Probabilities: ProbabilityDistribution{}}
	s.BeginAssessment("a-1", validInput(), result, "report", "welcome")
	s.AppendExchange("question", "answer")
	if len(s.ChatHistory) != 4 {
		t.Fatalf("expected 4 messages after exchange, got %d", len(s.ChatHistory))
	}

	// A new assessment discards the previous conversation entirely.
	s.BeginAssessment("a-2", validInput(), result, "report2", "welcome2")
	if len(s.ChatHistory) != 2 {
		t.Fatalf("expected history reset to 2, got %d", len(s.ChatHistory))
	}
	for i, m := range s.ChatHistory {
		if m.Role != RoleModel {
			t.Errorf("seed message %d has role %q, want %q", i, m.Role, RoleModel)
		}
	}
	if s.ChatHistory[0].Content != "report2" || s.ChatHistory[1].Content != "welcome2" {
		t.Error("seed messages are not [report, welcome]")
	}
	if !s.Active() {
		t.Error("session should be active after assessment")
	}
}

func TestAppendExchangeOrder(t *testing.T) {
	s := NewAssessmentSession("sess-1")
	s.BeginAssessment("a-1", validInput(), PredictionResult{RiskLevel: RiskLow}, "r", "w")
	s.AppendExchange("hi", "hello")

	if s.ChatHistory[2].Role != RoleUser || s.ChatHistory[2].Content != "hi" {
		t.Error("user turn not appended first")
	}
	if s.ChatHistory[3].Role != RoleModel || s.ChatHistory[3].Content != "hello" {
		t.Error("model turn not appended second")
	}
}
