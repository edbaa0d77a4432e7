package observability

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

// Metrics holds the process-wide counters exposed on /metrics.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	operations       *CounterVec
	operationLatency *HistogramVec
	rollbacks        *CounterVec
	cacheLookups     *CounterVec
}

func NewMetrics(log *logger.Logger) *Metrics {
	log.Info("metrics registry initialized")
	return &Metrics{
		apiRequests: NewCounterVec("taskflow_http_requests_total", "HTTP requests by method, route and status.", []string{"method", "route", "status"}),
		apiLatency:  NewHistogramVec("taskflow_http_request_duration_seconds", "HTTP request latency.", []string{"method", "route"}, nil),
		apiInflight: NewGauge("taskflow_http_inflight_requests", "HTTP requests currently being served."),

		operations:       NewCounterVec("taskflow_todo_operations_total", "Todo commands and queries by outcome.", []string{"op", "status"}),
		operationLatency: NewHistogramVec("taskflow_todo_operation_duration_seconds", "Todo command and query latency.", []string{"op"}, nil),
		rollbacks:        NewCounterVec("taskflow_uow_rollbacks_total", "Unit-of-work rollbacks by operation.", []string{"op"}),
		cacheLookups:     NewCounterVec("taskflow_cache_lookups_total", "Projection cache lookups by result.", []string{"result"}),
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) APIInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

// ObserveOperation records one todo command or query. status is "success",
// "failure" or "error".
func (m *Metrics) ObserveOperation(op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	op = strings.TrimSpace(op)
	m.operations.Inc(op, strings.TrimSpace(status))
	m.operationLatency.Observe(dur.Seconds(), op)
}

func (m *Metrics) IncRollback(op string) {
	if m != nil {
		m.rollbacks.Inc(strings.TrimSpace(op))
	}
}

func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	m.cacheLookups.Inc(map[bool]string{true: "hit", false: "miss"}[hit])
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.operations, m.operationLatency, m.rollbacks, m.cacheLookups,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

// StatusLabel turns an HTTP status code into a metric label.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
