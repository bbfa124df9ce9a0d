package order

import (
	"errors"
	"fmt"
	"time"

	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

// SystemActor identifies updates performed by the system itself rather than
// an administrator.
const SystemActor = "system"

// ErrFulfillmentUpdateIsNotConstructed is returned when a FulfillmentUpdate
// was not created through one of its constructor functions.
var ErrFulfillmentUpdateIsNotConstructed = errors.New(
	"FulfillmentUpdate must be created via NewFulfillmentUpdate or RestoreFulfillmentUpdate",
)

// FulfillmentUpdate is one immutable entry in an order's append-only status
// history. Each entry records the status reached, a human-readable message,
// who performed the update, and when.
//
// FulfillmentUpdate is a value object: once constructed it never changes.
// The order aggregate exposes its history as defensive copies so entries
// cannot be mutated from outside.
type FulfillmentUpdate struct {
	status      Status
	message     string
	performedBy string
	timestamp   time.Time

	guard guard.ConstructorGuard
}

// NewFulfillmentUpdate creates a history entry for the given status,
// timestamped now.
//
// Defaults:
//   - empty message becomes "Status updated to {status}"
//   - empty performedBy becomes SystemActor
//
// Returns an error if status is invalid.
func NewFulfillmentUpdate(status Status, message, performedBy string) (FulfillmentUpdate, error) {
	if err := status.Validate(); err != nil {
		return FulfillmentUpdate{}, err
	}

	if message == "" {
		message = fmt.Sprintf("Status updated to %s", status)
	}
	if performedBy == "" {
		performedBy = SystemActor
	}

	return FulfillmentUpdate{
		status:      status,
		message:     message,
		performedBy: performedBy,
		timestamp:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreFulfillmentUpdate reconstructs a history entry from persistence with
// its original timestamp. Used by repositories when rehydrating orders.
func RestoreFulfillmentUpdate(status Status, message, performedBy string, timestamp time.Time) (FulfillmentUpdate, error) {
	if err := status.Validate(); err != nil {
		return FulfillmentUpdate{}, err
	}
	if message == "" {
		return FulfillmentUpdate{}, errs.NewValueIsRequiredError("message")
	}
	if performedBy == "" {
		return FulfillmentUpdate{}, errs.NewValueIsRequiredError("performedBy")
	}
	if timestamp.IsZero() {
		return FulfillmentUpdate{}, errs.NewValueIsRequiredError("timestamp")
	}

	return FulfillmentUpdate{
		status:      status,
		message:     message,
		performedBy: performedBy,
		timestamp:   timestamp,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through a constructor.
func (u FulfillmentUpdate) Validate() error {
	return u.guard.Validate(ErrFulfillmentUpdateIsNotConstructed)
}

// Status returns the status this entry recorded.
func (u FulfillmentUpdate) Status() Status {
	return u.status
}

// Message returns the human-readable description of the update.
func (u FulfillmentUpdate) Message() string {
	return u.message
}

// PerformedBy returns who performed the update ("system" or an administrator
// identifier).
func (u FulfillmentUpdate) PerformedBy() string {
	return u.performedBy
}

// Timestamp returns when the update was recorded.
func (u FulfillmentUpdate) Timestamp() time.Time {
	return u.timestamp
}
