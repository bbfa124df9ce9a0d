package burn

import (
	"sync"
	"time"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"
)

// Run is the in-flight record of a single burn attempt for one order.
// A Run moves through the Stage graph exactly once; every mutation goes
// through the stage transition rules, so an out-of-order advance is a
// programming error surfaced as *errs.InvalidTransitionError.
//
// Run is safe for concurrent use: the orchestrator mutates it while the
// reconciliation job and status queries read snapshots of it.
type Run struct {
	mu sync.Mutex

	orderID       kernel.UUID
	stage         Stage
	transactionID string
	reason        string

	// needsReconciliation marks a run whose burn is confirmed on the
	// ledger but whose order record could not be updated. The order must
	// not be burnable again until the record catches up.
	needsReconciliation bool

	startedAt time.Time
	updatedAt time.Time
}

// Snapshot is an immutable copy of a Run's observable state.
type Snapshot struct {
	OrderID             kernel.UUID
	Stage               Stage
	TransactionID       string
	Reason              string
	NeedsReconciliation bool
	StartedAt           time.Time
	UpdatedAt           time.Time
}

// NewRun creates a run for the given order at StageIdle.
func NewRun(orderID kernel.UUID) (*Run, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Run{
		orderID:   orderID,
		stage:     StageIdle,
		startedAt: now,
		updatedAt: now,
	}, nil
}

// OrderID returns the order this run burns for.
func (r *Run) OrderID() kernel.UUID {
	return r.orderID
}

// AdvanceTo moves the run to the next stage, validating the transition
// against the stage graph.
func (r *Run) AdvanceTo(next Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.transition(next)
}

// AttachTransaction records the ledger transaction ID. The ID is write-once:
// attaching a different ID after one is set returns ErrValueIsInvalid.
func (r *Run) AttachTransaction(transactionID string) error {
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transactionID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.transactionID != "" && r.transactionID != transactionID {
		return errs.NewValueIsInvalidError("transactionID")
	}
	r.transactionID = transactionID
	r.updatedAt = time.Now().UTC()
	return nil
}

// Fail settles the run at StageFailed with the given reason. Only valid
// before any ledger side effect is possible, or from Confirming/Unknown when
// the transaction definitively did not execute.
func (r *Run) Fail(reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.transition(StageFailed); err != nil {
		return err
	}
	r.reason = reason
	return nil
}

// MarkUnknown settles the run at StageUnknown: the ledger may have accepted
// the transaction and only reconciliation can tell.
func (r *Run) MarkUnknown(reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.transition(StageUnknown); err != nil {
		return err
	}
	r.reason = reason
	return nil
}

// MarkNeedsReconciliation flags a completed burn whose order record update
// failed. The flag blocks further burn attempts until cleared.
func (r *Run) MarkNeedsReconciliation(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.needsReconciliation = true
	r.reason = reason
	r.updatedAt = time.Now().UTC()
}

// ClearReconciliation removes the reconciliation flag once the order record
// has caught up with the ledger.
func (r *Run) ClearReconciliation() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.needsReconciliation = false
	r.updatedAt = time.Now().UTC()
}

// Snapshot returns a consistent copy of the run's state.
func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		OrderID:             r.orderID,
		Stage:               r.stage,
		TransactionID:       r.transactionID,
		Reason:              r.reason,
		NeedsReconciliation: r.needsReconciliation,
		StartedAt:           r.startedAt,
		UpdatedAt:           r.updatedAt,
	}
}

// transition applies a stage change under the caller-held lock.
func (r *Run) transition(next Stage) error {
	stage, err := r.stage.TransitionTo(next)
	if err != nil {
		return err
	}
	r.stage = stage
	r.updatedAt = time.Now().UTC()
	return nil
}
