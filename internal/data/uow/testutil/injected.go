// Package testutil provides unit-of-work doubles for service tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/kovalchuka569/taskflow/internal/data/uow"
	"github.com/kovalchuka569/taskflow/internal/domain/kernel"
)

// InjectedUnitOfWork is an in-memory kernel.UnitOfWork with failure
// injection. Registered changes run on Commit in order; a failing change or
// FailCommit discards the rest.
type InjectedUnitOfWork struct {
	mu sync.Mutex

	FailBegin    error
	FailCommit   error
	FailRollback error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
	// Committed counts commits that applied their changes.
	Committed int

	open    bool
	opened  int
	pending []func() error
}

var _ kernel.UnitOfWork = (*InjectedUnitOfWork)(nil)

func (u *InjectedUnitOfWork) BeginTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.BeginCalls++
	if u.FailBegin != nil {
		return u.FailBegin
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !u.open {
		u.open = true
		u.opened++
	}
	return nil
}

func (u *InjectedUnitOfWork) Commit(ctx context.Context) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.CommitCalls++
	pending := u.pending
	u.pending = nil
	u.open = false

	if u.FailCommit != nil {
		return 0, u.FailCommit
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	for _, apply := range pending {
		if err := apply(); err != nil {
			return 0, err
		}
	}
	u.Committed++
	return len(pending), nil
}

func (u *InjectedUnitOfWork) Rollback(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.RollbackCalls++
	u.pending = nil
	u.open = false
	return u.FailRollback
}

// Register queues apply for the next Commit.
func (u *InjectedUnitOfWork) Register(apply func() error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, apply)
}

// TransactionsOpened counts Idle to TransactionOpen transitions.
func (u *InjectedUnitOfWork) TransactionsOpened() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.opened
}

// HooksRecorder captures hook signals in tests.
type HooksRecorder struct {
	mu sync.Mutex

	Operations []OperationEvent
	Rollbacks  []string
}

type OperationEvent struct {
	Name     string
	Status   string
	Duration time.Duration
}

var _ uow.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) ObserveOperation(name, status string, dur time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Operations = append(h.Operations, OperationEvent{Name: name, Status: status, Duration: dur})
}

func (h *HooksRecorder) IncRollback(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Rollbacks = append(h.Rollbacks, name)
}

// Last returns the most recent operation event.
func (h *HooksRecorder) Last() OperationEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.Operations) == 0 {
		return OperationEvent{}
	}
	return h.Operations[len(h.Operations)-1]
}
