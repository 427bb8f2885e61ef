package metrics

import (
	"strings"
	"time"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Hooks receives one event per core operation.
type Hooks interface {
	ObserveOperation(name string, err error, dur time.Duration)
	IncConflict(name string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, error, time.Duration) {}
func (noopHooks) IncConflict(string)                           {}

func NewNoopHooks() Hooks {
	return noopHooks{}
}

type prometheusHooks struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	conflicts  *prometheus.CounterVec
}

// NewPrometheusHooks registers the catalog collectors on reg.
func NewPrometheusHooks(reg prometheus.Registerer) (Hooks, error) {
	h := &prometheusHooks{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "foodgram",
			Subsystem: "core",
			Name:      "operations_total",
			Help:      "Core operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "foodgram",
			Subsystem: "core",
			Name:      "operation_duration_seconds",
			Help:      "Latency of core operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "foodgram",
			Subsystem: "core",
			Name:      "toggle_conflicts_total",
			Help:      "Toggle adds that lost to an existing edge.",
		}, []string{"operation"}),
	}
	for _, c := range []prometheus.Collector{h.operations, h.latency, h.conflicts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *prometheusHooks) ObserveOperation(name string, err error, dur time.Duration) {
	name = strings.TrimSpace(name)
	h.operations.WithLabelValues(name, Outcome(err)).Inc()
	h.latency.WithLabelValues(name).Observe(dur.Seconds())
}

func (h *prometheusHooks) IncConflict(name string) {
	h.conflicts.WithLabelValues(strings.TrimSpace(name)).Inc()
}

// Outcome is "ok" for a nil error and the domain error kind otherwise.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(domain.KindOf(err))
}

// Track is meant to be deferred at the top of an operation with a pointer
// to its named error result.
func Track(h Hooks, name string, started time.Time, err *error) {
	if h == nil {
		return
	}
	var e error
	if err != nil {
		e = *err
	}
	h.ObserveOperation(name, e, time.Since(started))
}
