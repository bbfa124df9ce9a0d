package burn

import (
	"sync"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"
)

var (
	// ErrRunInFlight indicates a burn is already executing for the order.
	ErrRunInFlight = errs.NewValueIsInvalidError("a burn is already in progress for this order")

	// ErrRunRequiresReconciliation indicates the previous burn attempt for
	// the order ended ambiguously, or completed without the order record
	// catching up. No new attempt is allowed until reconciliation settles it.
	ErrRunRequiresReconciliation = errs.NewValueIsInvalidError(
		"the previous burn attempt must be reconciled before retrying")

	// ErrRunAlreadyCompleted indicates the order's burn already succeeded.
	ErrRunAlreadyCompleted = errs.NewValueIsInvalidError("the burn for this order already completed")
)

// Registry tracks burn runs per order and enforces single-flight execution:
// at most one active run per order, no retry over an ambiguous outcome, and
// no second burn after a completed one.
type Registry struct {
	mu   sync.Mutex
	runs map[kernel.UUID]*Run
}

// NewRegistry creates an empty run registry.
func NewRegistry() *Registry {
	return &Registry{
		runs: make(map[kernel.UUID]*Run),
	}
}

// Begin registers a fresh run for the order. A previous cleanly failed run is
// replaced; any other prior run blocks the new attempt:
//
//   - an unsettled run returns ErrRunInFlight
//   - an Unknown or needs-reconciliation run returns ErrRunRequiresReconciliation
//   - a Completed run returns ErrRunAlreadyCompleted
func (g *Registry) Begin(orderID kernel.UUID) (*Run, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.runs[orderID]; ok {
		snap := prev.Snapshot()
		switch {
		case !snap.Stage.IsSettled():
			return nil, ErrRunInFlight
		case snap.Stage == StageUnknown || snap.NeedsReconciliation:
			return nil, ErrRunRequiresReconciliation
		case snap.Stage == StageCompleted:
			return nil, ErrRunAlreadyCompleted
		}
	}

	run, err := NewRun(orderID)
	if err != nil {
		return nil, err
	}
	g.runs[orderID] = run
	return run, nil
}

// Get returns a snapshot of the order's latest run, if any.
func (g *Registry) Get(orderID kernel.UUID) (Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	run, ok := g.runs[orderID]
	if !ok {
		return Snapshot{}, false
	}
	return run.Snapshot(), true
}

// NeedingReconciliation returns the runs the reconciliation job must settle:
// those at StageUnknown and those completed with an out-of-date order record.
func (g *Registry) NeedingReconciliation() []*Run {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []*Run
	for _, run := range g.runs {
		snap := run.Snapshot()
		if snap.Stage == StageUnknown || snap.NeedsReconciliation {
			out = append(out, run)
		}
	}
	return out
}
