package resilience

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	breakerState       *prometheus.GaugeVec
	breakerTransitions *prometheus.CounterVec
)

// MustRegisterMetrics registers breaker collectors. Breakers created before
// registration are not reported.
func MustRegisterMetrics(namespace string, reg prometheus.Registerer) {
	metricsOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		breakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "breaker_state",
			Help:      "Current breaker state: 0=closed, 1=open, 2=half-open.",
		}, []string{"target"})
		breakerTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breaker_transitions_total",
			Help:      "Breaker state transitions.",
		}, []string{"target", "from", "to"})
		reg.MustRegister(breakerState, breakerTransitions)
	})
}

func observeState(target string, s State) {
	if breakerState != nil {
		breakerState.WithLabelValues(target).Set(float64(s))
	}
}

func observeTransition(target string, from, to State) {
	if breakerTransitions != nil {
		breakerTransitions.WithLabelValues(target, from.String(), to.String()).Inc()
	}
}
