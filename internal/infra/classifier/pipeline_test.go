package classifier

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"heart-risk-assistant/internal/domain"
	"heart-risk-assistant/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func testArtifact() Artifact {
	art := Artifact{
		FormatVersion: 1,
		Features: []string{
			"age", "sex", "systolic_bp", "cholesterol", "bmi",
			"smoking", "diabetes", "resting_hr", "physical_activity", "family_history",
		},
		Coefficients: [][]float64{
			{-0.9, -0.2, -0.8, -0.5, -0.4, -0.6, -0.5, -0.3, 0.5, -0.3},
			{-0.2, -0.1, -0.2, -0.1, -0.1, -0.1, -0.1, -0.1, 0.1, -0.1},
			{0.4, 0.1, 0.35, 0.2, 0.18, 0.25, 0.2, 0.1, -0.2, 0.15},
			{0.75, 0.18, 0.7, 0.45, 0.34, 0.49, 0.41, 0.22, -0.39, 0.29},
		},
		Intercepts:  []float64{0.4, 0.25, -0.2, -0.45},
		Probability: true,
	}
	art.Scaler.Mean = []float64{54, 0.5, 131, 246, 27, 0.3, 0.15, 74, 0.5, 0.4}
	art.Scaler.Scale = []float64{9, 0.5, 17, 52, 4.4, 0.46, 0.36, 11, 0.5, 0.49}
	return art
}

func writeArtifact(t *testing.T, art Artifact) string {
	t.Helper()
	b, err := json.Marshal(art)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadPipeline(t *testing.T, art Artifact) *Pipeline {
	t.Helper()
	p, err := Load(writeArtifact(t, art), newTestLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func validInput() model.PatientInput {
	return model.PatientInput{
		Age: 54, Sex: 1, SystolicBP: 140, Cholesterol: 230, BMI: 28,
		Smoking: 1, Diabetes: 0, RestingHR: 80, PhysicalActivity: 0, FamilyHistory: 1,
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json"), newTestLogger()); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestLoadCorruptArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, newTestLogger()); err == nil {
		t.Fatal("expected error for corrupt artifact")
	}
}

func TestLoadShapeMismatch(t *testing.T) {
	art := testArtifact()
	art.Intercepts = art.Intercepts[:2]
	if _, err := Load(writeArtifact(t, art), newTestLogger()); err == nil {
		t.Fatal("expected error for coefficient/intercept mismatch")
	}
}

func TestPredictDistributionContract(t *testing.T) {
	p := loadPipeline(t, testArtifact())

	result, err := p.Predict(validInput())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	inVocabulary := false
	for _, l := range model.RiskLevels {
		if result.RiskLevel == l {
			inVocabulary = true
		}
	}
	if !inVocabulary && result.RiskLevel != model.RiskUnknown {
		t.Errorf("risk level %q outside vocabulary", result.RiskLevel)
	}

	if len(result.Probabilities) != 4 {
		t.Fatalf("expected exactly 4 probability slots, got %d", len(result.Probabilities))
	}
	sum := 0.0
	for level, v := range result.Probabilities {
		if v < 0 || v > 100 {
			t.Errorf("probability for %q out of range: %v", level, v)
		}
		if math.Round(v*100)/100 != v {
			t.Errorf("probability for %q not rounded to 2 decimals: %v", level, v)
		}
		sum += v
	}
	if math.Abs(sum-100) > 0.05 {
		t.Errorf("probabilities sum to %v, want near 100", sum)
	}
}

func TestPredictHardDecisionFallback(t *testing.T) {
	art := testArtifact()
	art.Probability = false
	p := loadPipeline(t, art)

	result, err := p.Predict(validInput())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	ones, zeros := 0, 0
	for _, v := range result.Probabilities {
		switch v {
		case 100.0:
			ones++
		case 0.0:
			zeros++
		}
	}
	if ones != 1 || zeros != 3 {
		t.Fatalf("expected one-hot distribution, got %v", result.Probabilities)
	}
	if result.Probabilities[result.RiskLevel] != 100.0 {
		t.Errorf("100%% slot %v does not match predicted level %q", result.Probabilities, result.RiskLevel)
	}
}

func TestPredictAgreesWithHardDecision(t *testing.T) {
	// The argmax of the probability path must match the hard decision.
	soft := loadPipeline(t, testArtifact())
	art := testArtifact()
	art.Probability = false
	hard := loadPipeline(t, art)

	for _, input := range []model.PatientInput{
		validInput(),
		{Age: 25, Sex: 0, SystolicBP: 110, Cholesterol: 160, BMI: 21, RestingHR: 60, PhysicalActivity: 1},
		{Age: 78, Sex: 1, SystolicBP: 180, Cholesterol: 320, BMI: 34, Smoking: 1, Diabetes: 1, RestingHR: 95, FamilyHistory: 1},
	} {
		s, err := soft.Predict(input)
		if err != nil {
			t.Fatalf("soft predict: %v", err)
		}
		h, err := hard.Predict(input)
		if err != nil {
			t.Fatalf("hard predict: %v", err)
		}
		if s.RiskLevel != h.RiskLevel {
			t.Errorf("paths disagree for %+v: soft=%q hard=%q", input, s.RiskLevel, h.RiskLevel)
		}
	}
}

func TestPredictExtraClassSlots(t *testing.T) {
	// A 5th output slot is ignored in the distribution; when it wins the
	// argmax, the level maps to Unknown.
	art := testArtifact()
	art.Coefficients = append(art.Coefficients, []float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5})
	art.Intercepts = append(art.Intercepts, 10)
	p := loadPipeline(t, art)

	result, err := p.Predict(validInput())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(result.Probabilities) != 4 {
		t.Fatalf("expected 4 probability slots, got %d", len(result.Probabilities))
	}
	if result.RiskLevel != model.RiskUnknown {
		t.Errorf("expected Unknown for out-of-vocabulary class, got %q", result.RiskLevel)
	}
}

func TestPredictValidationBeforeInference(t *testing.T) {
	p := loadPipeline(t, testArtifact())

	bad := validInput()
	bad.Age = -3
	if _, err := p.Predict(bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	bad = validInput()
	bad.Diabetes = 7
	if _, err := p.Predict(bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPredictUnknownSchemaFeature(t *testing.T) {
	art := testArtifact()
	art.Features[3] = "ejection_fraction"
	p := loadPipeline(t, art)

	if _, err := p.Predict(validInput()); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown schema column, got %v", err)
	}
}
