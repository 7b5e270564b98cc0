package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		predictionsTotal,
		predictionFallbacks,
		assessmentErrors,
	)
}

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Completed predictions by assigned risk level.",
		},
		[]string{"risk_level"},
	)

	predictionFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prediction_hard_decision_fallbacks_total",
			Help: "Predictions that fell back to the one-hot hard-decision path.",
		},
	)

	assessmentErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_errors_total",
			Help: "Rejected assessment submissions by reason.",
		},
		[]string{"reason"},
	)
)

func ObservePrediction(riskLevel string, hardDecision bool) {
	predictionsTotal.WithLabelValues(riskLevel).Inc()
	if hardDecision {
		predictionFallbacks.Inc()
	}
}

func AssessmentRejected(reason string) {
	assessmentErrors.WithLabelValues(reason).Inc()
}
