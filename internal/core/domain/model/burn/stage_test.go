package burn_test

import (
	"testing"

	"redemption/internal/core/domain/model/burn"
	"redemption/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStages() []burn.Stage {
	return []burn.Stage{
		burn.StageIdle,
		burn.StagePreparing,
		burn.StageSigning,
		burn.StageBroadcasting,
		burn.StageConfirming,
		burn.StageCompleting,
		burn.StageCompleted,
		burn.StageFailed,
		burn.StageUnknown,
	}
}

func TestStage_TransitionGraph(t *testing.T) {
	allowed := map[burn.Stage][]burn.Stage{
		burn.StageIdle:         {burn.StagePreparing, burn.StageFailed},
		burn.StagePreparing:    {burn.StageSigning, burn.StageFailed},
		burn.StageSigning:      {burn.StageBroadcasting, burn.StageFailed},
		burn.StageBroadcasting: {burn.StageConfirming, burn.StageUnknown},
		burn.StageConfirming:   {burn.StageCompleting, burn.StageUnknown, burn.StageFailed},
		burn.StageCompleting:   {burn.StageCompleted},
		burn.StageCompleted:    {},
		burn.StageFailed:       {},
		burn.StageUnknown:      {burn.StageCompleting, burn.StageFailed},
	}

	for _, from := range allStages() {
		for _, to := range allStages() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}

			got := from.CanTransitionTo(to)
			assert.Equal(t, want, got, "%s -> %s", from, to)

			next, err := from.TransitionTo(to)
			if want {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, next)
			} else {
				require.Error(t, err, "%s -> %s", from, to)
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			}
		}
	}
}

func TestStage_FailureNeverAllowedAfterBroadcast(t *testing.T) {
	// Once a transaction may have reached the ledger, a clean Failed is only
	// reachable through Confirming or Unknown, where the ledger has been
	// asked and answered.
	assert.False(t, burn.StageBroadcasting.CanTransitionTo(burn.StageFailed))
	assert.False(t, burn.StageCompleting.CanTransitionTo(burn.StageFailed))
	assert.False(t, burn.StageCompleted.CanTransitionTo(burn.StageFailed))
}

func TestStage_SideEffectPossible(t *testing.T) {
	assert.False(t, burn.StageIdle.SideEffectPossible())
	assert.False(t, burn.StagePreparing.SideEffectPossible())
	assert.False(t, burn.StageSigning.SideEffectPossible())
	assert.False(t, burn.StageFailed.SideEffectPossible())

	assert.True(t, burn.StageBroadcasting.SideEffectPossible())
	assert.True(t, burn.StageConfirming.SideEffectPossible())
	assert.True(t, burn.StageCompleting.SideEffectPossible())
	assert.True(t, burn.StageCompleted.SideEffectPossible())
	assert.True(t, burn.StageUnknown.SideEffectPossible())
}

func TestStage_IsSettled(t *testing.T) {
	settled := map[burn.Stage]bool{
		burn.StageCompleted: true,
		burn.StageFailed:    true,
		burn.StageUnknown:   true,
	}

	for _, s := range allStages() {
		assert.Equal(t, settled[s], s.IsSettled(), "stage %s", s)
	}
}

func TestStage_Validate(t *testing.T) {
	for _, s := range allStages() {
		require.NoError(t, s.Validate())
	}

	err := burn.Stage(42).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "idle", burn.StageIdle.String())
	assert.Equal(t, "broadcasting", burn.StageBroadcasting.String())
	assert.Equal(t, "completed", burn.StageCompleted.String())
	assert.Equal(t, "unknown", burn.StageUnknown.String())
}
