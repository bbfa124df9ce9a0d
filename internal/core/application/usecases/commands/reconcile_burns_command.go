package commands

import (
	"errors"

	"redemption/internal/pkg/guard"
)

var ErrReconcileBurnsCommandIsNotConstructed = errors.New(
	"ReconcileBurnsCommand must be created via NewReconcileBurnsCommand constructor",
)

// ReconcileBurnsCommand triggers one reconciliation sweep over every burn run
// with an unsettled outcome: ambiguous (Unknown) runs and completed runs
// whose order record update failed.
//
// Example:
//
//	cmd := NewReconcileBurnsCommand()
//	handler := NewReconcileBurnsCommandHandler(uowFactory, wallet, runs, time.Minute)
//
//	// Run periodically from a scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Reconciliation sweep failed: %v", err)
//	}
type ReconcileBurnsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileBurnsCommand creates a command to trigger a reconciliation
// sweep. This is a parameterless command that processes all pending runs.
func NewReconcileBurnsCommand() ReconcileBurnsCommand {
	return ReconcileBurnsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileBurnsCommandIsNotConstructed if validation fails.
func (c *ReconcileBurnsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileBurnsCommandIsNotConstructed)
}
