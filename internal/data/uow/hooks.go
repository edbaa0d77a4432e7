package uow

import (
	"strings"
	"time"

	"github.com/kovalchuka569/taskflow/internal/observability"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

// Hooks receives the outcome of every command run through a unit of work.
type Hooks interface {
	ObserveOperation(op, status string, dur time.Duration)
	IncRollback(op string)
}

// Operation statuses reported to Hooks.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
	StatusNoop    = "noop"
)

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncRollback(string)                             {}

func NoopHooks() Hooks { return noopHooks{} }

type observabilityHooks struct {
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewObservabilityHooks records operations in metrics and logs them at debug
// level. A nil metrics registry only logs.
func NewObservabilityHooks(metrics *observability.Metrics, log *logger.Logger) Hooks {
	return &observabilityHooks{metrics: metrics, log: log.With("component", "uow.Hooks")}
}

func (h *observabilityHooks) ObserveOperation(op, status string, dur time.Duration) {
	op = strings.TrimSpace(op)
	h.metrics.ObserveOperation(op, status, dur)
	h.log.Debug("operation finished", "op", op, "status", status, "duration", dur)
}

func (h *observabilityHooks) IncRollback(op string) {
	op = strings.TrimSpace(op)
	h.metrics.IncRollback(op)
	h.log.Debug("unit of work rolled back", "op", op)
}
