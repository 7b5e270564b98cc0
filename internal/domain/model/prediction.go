package model

// RiskLevel is one of the fixed ordinal severity labels assigned from the
// classifier's predicted class index.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
	RiskUnknown  RiskLevel = "Unknown"
)

// RiskLevels is the fixed 4-slot label vocabulary in class-index order.
// The classifier contract assumes exactly these four output slots.
var RiskLevels = [4]RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskVeryHigh}

// RiskLevelFromClass maps a predicted class index onto the vocabulary.
// Indices outside [0,3] yield RiskUnknown.
func RiskLevelFromClass(idx int) RiskLevel {
	if idx < 0 || idx >= len(RiskLevels) {
		return RiskUnknown
	}
	return RiskLevels[idx]
}

// ProbabilityDistribution maps each named risk level to a percentage in
// [0,100] rounded to 2 decimals. Slots the classifier did not produce
// default to 0.0, so the values need not sum to exactly 100.
type ProbabilityDistribution map[RiskLevel]float64

// PredictionResult is the classifier adapter's output for one assessment.
type PredictionResult struct {
	RiskLevel     RiskLevel               `json:"risk_level"`
	Probabilities ProbabilityDistribution `json:"probabilities"`
}
