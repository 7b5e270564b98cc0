package classifier

import (
	"errors"
	"math"

	"github.com/rs/zerolog"

	"heart-risk-assistant/internal/domain/model"
	"heart-risk-assistant/internal/domain/ports/adapter"
	"heart-risk-assistant/internal/infra/metrics"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.RiskClassifier = (*Pipeline)(nil)

var errNoProbability = errors.New("probability estimation unsupported")

// Pipeline wraps the pretrained multiclass artifact behind the
// RiskClassifier port. The artifact is read-only after Load, so one
// Pipeline instance is safe to share across concurrent requests.
type Pipeline struct {
	art *Artifact
	log *zerolog.Logger
}

// Load reads the model artifact from path. Failure is a startup
// precondition violation; callers must treat it as fatal.
func Load(path string, logger *zerolog.Logger) (*Pipeline, error) {
	art, err := loadArtifact(path)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", path).
		Int("features", len(art.Features)).
		Int("classes", len(art.Coefficients)).
		Bool("probability", art.Probability).
		Msg("classifier artifact loaded")
	return &Pipeline{art: art, log: logger}, nil
}

// Predict runs the full preprocessing + inference + mapping contract.
// The returned distribution always holds exactly the four named risk
// levels, each a percentage rounded to 2 decimals. Inference failures on
// the probability path resolve to a one-hot hard decision and never
// propagate to the caller.
func (p *Pipeline) Predict(input model.PatientInput) (model.PredictionResult, error) {
	row, err := preprocess(input, p.art)
	if err != nil {
		return model.PredictionResult{}, err
	}

	hardDecision := false
	proba, predClass, err := p.predictProba(row)
	if err != nil {
		predClass = p.decide(row)
		proba = make([]float64, len(model.RiskLevels))
		if predClass >= 0 && predClass < len(proba) {
			proba[predClass] = 1.0
		}
		hardDecision = true
		p.log.Warn().Err(err).Int("class", predClass).
			Msg("probability estimation failed; using hard-decision fallback")
	}

	probs := make(model.ProbabilityDistribution, len(model.RiskLevels))
	for i, level := range model.RiskLevels {
		v := 0.0
		if i < len(proba) {
			v = round2(proba[i] * 100)
		}
		probs[level] = v
	}

	level := model.RiskLevelFromClass(predClass)
	metrics.ObservePrediction(string(level), hardDecision)
	return model.PredictionResult{RiskLevel: level, Probabilities: probs}, nil
}

// predictProba returns the per-class probability vector via softmax over
// the linear scores, plus the argmax class.
func (p *Pipeline) predictProba(row []float64) ([]float64, int, error) {
	if !p.art.Probability {
		return nil, 0, errNoProbability
	}
	scores := p.scores(row)

	// Stable softmax.
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	proba := make([]float64, len(scores))
	sum := 0.0
	for i, s := range scores {
		proba[i] = math.Exp(s - maxScore)
		sum += proba[i]
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, 0, errors.New("degenerate probability vector")
	}
	best := 0
	for i := range proba {
		proba[i] /= sum
		if proba[i] > proba[best] {
			best = i
		}
	}
	return proba, best, nil
}

// decide is the hard-decision classification: argmax of the raw scores.
func (p *Pipeline) decide(row []float64) int {
	scores := p.scores(row)
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}

func (p *Pipeline) scores(row []float64) []float64 {
	scores := make([]float64, len(p.art.Coefficients))
	for c, coefs := range p.art.Coefficients {
		s := p.art.Intercepts[c]
		for i, w := range coefs {
			s += w * row[i]
		}
		scores[c] = s
	}
	return scores
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
