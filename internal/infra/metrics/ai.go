package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		narrativeTokensIn,
		narrativeCallsLatencyMs,
		narrativeFallbacks,
	)
}

var (
	narrativeTokensIn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "narrative_tokens_in",
			Help: "Sum of prompt (input) tokens per provider.",
		},
		[]string{"provider"},
	)

	narrativeCallsLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "narrative_calls_latency_ms",
			Help:    "Narrative backend call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"provider", "kind", "success"},
	)

	narrativeFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "narrative_fallbacks_total",
			Help: "Calls resolved by deterministic fallback text per kind (report/welcome/chat).",
		},
		[]string{"kind"},
	)
)

func ObserveNarrativeCall(provider, kind string, promptTokens, latencyMs int, success bool) {
	narrativeTokensIn.WithLabelValues(norm(provider)).Add(float64(promptTokens))
	narrativeCallsLatencyMs.WithLabelValues(norm(provider), kind, strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func NarrativeFallback(kind string) {
	narrativeFallbacks.WithLabelValues(kind).Inc()
}

func norm(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
