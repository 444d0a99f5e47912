package demo

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for demo scenarios. A nil *Metrics is a no-op.
type Metrics struct {
	Duration *prometheus.HistogramVec
	Attacks  *prometheus.CounterVec
}

// NewMetrics registers the demo collectors with reg (prometheus.DefaultRegisterer when nil).
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "passwordlab"
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "demo",
		Name:      "duration_seconds",
		Help:      "Time spent computing a demo scenario, partitioned by scenario.",
		Buckets:   []float64{.0001, .001, .01, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"scenario"})
	if err := reg.Register(duration); err != nil {
		return nil, fmt.Errorf("register duration collector: %w", err)
	}

	attacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "demo",
		Name:      "dictionary_attacks_total",
		Help:      "Dictionary attacks run against unsalted digests, partitioned by outcome.",
	}, []string{"cracked"})
	if err := reg.Register(attacks); err != nil {
		return nil, fmt.Errorf("register attacks collector: %w", err)
	}

	return &Metrics{Duration: duration, Attacks: attacks}, nil
}

func (m *Metrics) observe(scenario string, d time.Duration) {
	if m == nil {
		return
	}
	m.Duration.WithLabelValues(scenario).Observe(d.Seconds())
}

func (m *Metrics) recordAttack(cracked bool) {
	if m == nil {
		return
	}
	m.Attacks.WithLabelValues(strconv.FormatBool(cracked)).Inc()
}
