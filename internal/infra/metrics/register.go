// Package metrics holds the service's Prometheus collectors: prediction
// outcomes and hard-decision fallbacks, assessment rejections, and narrative
// backend token/latency/fallback accounting.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once
	pending      []prometheus.Collector
)

// register enqueues collectors from each file's init until MustRegister runs.
func register(cs ...prometheus.Collector) {
	pending = append(pending, cs...)
}

// MustRegister installs every enqueued collector exactly once; main calls it
// before the /metrics endpoint is mounted.
func MustRegister() {
	registerOnce.Do(func() {
		if len(pending) > 0 {
			prometheus.MustRegister(pending...)
		}
	})
}
