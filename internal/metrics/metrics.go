package metrics

import (
	"errors"
	"net/http"

	dom "github.com/chelishino05/todo-devops-app/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts store operations by kind and outcome for the /metrics
// scrape endpoint. A nil Recorder is a no-op, mirroring the optional cache.
type Recorder struct {
	registry *prometheus.Registry
	ops      *prometheus.CounterVec
}

// New builds a Recorder with its own registry (plus the standard Go and
// process collectors).
func New() *Recorder {
	reg := prometheus.NewRegistry()
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "todo_operations_total",
		Help: "Store operations by kind and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(
		ops,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Recorder{registry: reg, ops: ops}
}

// Record classifies err into an outcome label and increments the counter.
func (m *Recorder) Record(op string, err error) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op, outcome(err)).Inc()
}

// Handler serves the registry in the Prometheus text exposition format.
func (m *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, dom.ErrNotFound):
		return "not_found"
	case errors.Is(err, dom.ErrValidation):
		return "invalid"
	case errors.Is(err, dom.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
