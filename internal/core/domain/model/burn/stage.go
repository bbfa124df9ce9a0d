package burn

import (
	"fmt"

	"redemption/internal/pkg/errs"
)

// Stage represents one step of a burn orchestration run. Stages advance
// strictly in sequence; the externally observable order never changes even
// though the time spent in each stage depends on the external calls.
//
// Stage transitions:
//
//	Idle ──> Preparing ──> Signing ──> Broadcasting ──> Confirming ──> Completing ──> Completed
//	            │             │             │               │
//	            ▼             ▼             ▼               ▼
//	          Failed        Failed       Unknown     Unknown / Failed
//
// Failed means nothing reached the ledger: the caller may retry from
// scratch. Unknown means the transaction may or may not have been accepted;
// only reconciliation (Unknown -> Completing or Unknown -> Failed) can
// settle it, and retrying before that risks a double burn.
type Stage int

const (
	// StageIdle is the zero stage before a run starts.
	StageIdle Stage = iota

	// StagePreparing re-validates the order and the account balance.
	// No side effect yet.
	StagePreparing

	// StageSigning covers wallet-side transaction preparation and signing.
	// No side effect yet.
	StageSigning

	// StageBroadcasting covers submission to the ledger. From here on a
	// failure no longer proves the transaction was rejected.
	StageBroadcasting

	// StageConfirming polls the ledger until the transaction is confirmed.
	StageConfirming

	// StageCompleting persists the burn result to the order store.
	StageCompleting

	// StageCompleted is the successful terminal stage.
	StageCompleted

	// StageFailed is the clean-failure terminal stage: no ledger side
	// effect occurred and a retry is safe.
	StageFailed

	// StageUnknown is the ambiguous terminal stage: the ledger may have
	// accepted the transaction. Requires reconciliation before any retry.
	StageUnknown
)

// getStageStrings returns a map of Stage values to their string representations.
func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageIdle:         "idle",
		StagePreparing:    "preparing",
		StageSigning:      "signing",
		StageBroadcasting: "broadcasting",
		StageConfirming:   "confirming",
		StageCompleting:   "completing",
		StageCompleted:    "completed",
		StageFailed:       "failed",
		StageUnknown:      "unknown",
	}
}

// allowedStageTransitions defines the run transition graph.
// Unknown is resolvable by reconciliation: to Completing when the ledger
// reports the transaction confirmed, to Failed when it definitively did not
// go through.
func allowedStageTransitions() map[Stage][]Stage {
	return map[Stage][]Stage{
		StageIdle:         {StagePreparing, StageFailed},
		StagePreparing:    {StageSigning, StageFailed},
		StageSigning:      {StageBroadcasting, StageFailed},
		StageBroadcasting: {StageConfirming, StageUnknown},
		StageConfirming:   {StageCompleting, StageUnknown, StageFailed},
		StageCompleting:   {StageCompleted},
		StageCompleted:    {},
		StageFailed:       {},
		StageUnknown:      {StageCompleting, StageFailed},
	}
}

// String returns the lowercase name of the stage.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Stage value is defined.
func (s Stage) Validate() error {
	if _, ok := getStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%d is not a valid stage", int(s)))
	}
	return nil
}

// IsSettled reports whether the run reached a resting stage from the
// caller's point of view. Unknown counts as settled for the caller even
// though reconciliation can still move it.
func (s Stage) IsSettled() bool {
	return s == StageCompleted || s == StageFailed || s == StageUnknown
}

// SideEffectPossible reports whether a ledger side effect may exist at this
// stage. True from Broadcasting onward; cancellation stops being meaningful
// here.
func (s Stage) SideEffectPossible() bool {
	return s == StageBroadcasting || s == StageConfirming ||
		s == StageCompleting || s == StageCompleted || s == StageUnknown
}

// CanTransitionTo reports whether the transition from the current stage to
// next is in the run graph.
func (s Stage) CanTransitionTo(next Stage) bool {
	for _, allowed := range allowedStageTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates a transition to next, returning the new stage or an
// *errs.InvalidTransitionError.
func (s Stage) TransitionTo(next Stage) (Stage, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(next) {
		return 0, errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return next, nil
}
