package classifier

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is the serialized form of the pretrained multiclass pipeline:
// a column-ordered feature schema, a standard scaler and multinomial
// logistic-regression weights exported from the training run.
type Artifact struct {
	FormatVersion int      `json:"format_version"`
	Features      []string `json:"features"`
	Scaler        struct {
		Mean  []float64 `json:"mean"`
		Scale []float64 `json:"scale"`
	} `json:"scaler"`
	Coefficients [][]float64 `json:"coefficients"` // one row per class
	Intercepts   []float64   `json:"intercepts"`
	// Probability marks whether the artifact supports probability
	// estimation. When false, Predict uses the hard-decision path.
	Probability bool `json:"probability"`
}

// loadArtifact reads and validates the model file. Any failure here is a
// startup error; the process must not serve requests without a model.
func loadArtifact(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model artifact not found at %s: %w", path, err)
	}
	var art Artifact
	if err := json.Unmarshal(b, &art); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}
	if err := art.validate(); err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", path, err)
	}
	return &art, nil
}

func (a *Artifact) validate() error {
	n := len(a.Features)
	if n == 0 {
		return fmt.Errorf("empty feature schema")
	}
	if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
		return fmt.Errorf("scaler shape mismatch: %d features, %d means, %d scales",
			n, len(a.Scaler.Mean), len(a.Scaler.Scale))
	}
	if len(a.Coefficients) == 0 || len(a.Coefficients) != len(a.Intercepts) {
		return fmt.Errorf("coefficient shape mismatch: %d classes, %d intercepts",
			len(a.Coefficients), len(a.Intercepts))
	}
	for i, row := range a.Coefficients {
		if len(row) != n {
			return fmt.Errorf("class %d has %d coefficients, want %d", i, len(row), n)
		}
	}
	return nil
}
