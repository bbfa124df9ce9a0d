package order

import (
	"fmt"

	"redemption/internal/pkg/errs"
)

// Status represents the fulfillment lifecycle state of a redemption order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Delivered ──> Completed
//	   │                                                                  ▲
//	   └──────────────────────────────────────────────────────────────────┘
//	          (successful token burn completes the order directly)
//
//	Cancelled and Refunded are reachable from any non-terminal state.
//	Completed, Cancelled and Refunded are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// The token burn has not happened yet.
	Pending

	// Confirmed indicates the order has been acknowledged for fulfillment.
	Confirmed

	// Processing indicates the physical item is being prepared.
	Processing

	// Shipped indicates the item has been handed to a carrier.
	Shipped

	// Delivered indicates the carrier reported delivery.
	Delivered

	// Completed indicates the redemption finished successfully.
	// Terminal state.
	Completed

	// Cancelled indicates the order was abandoned before completion.
	// Terminal state.
	Cancelled

	// Refunded indicates the burned tokens were compensated.
	// Terminal state.
	Refunded
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Processing: "processing",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Completed:  "completed",
		Cancelled:  "cancelled",
		Refunded:   "refunded",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Confirmed:  "confirmed",
		Processing: "processing",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Completed:  "completed",
		Cancelled:  "cancelled",
		Refunded:   "refunded",
	}
}

// allowedTransitions defines the fulfillment transition graph. The key is the
// current state, the value the set of valid successors. Terminal states have
// no successors. Cancelled and Refunded are appended to every non-terminal
// entry; Completed is additionally reachable straight from Pending because a
// successful token burn completes the order in one system-driven update.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Confirmed, Completed, Cancelled, Refunded},
		Confirmed:  {Processing, Cancelled, Refunded},
		Processing: {Shipped, Cancelled, Refunded},
		Shipped:    {Delivered, Cancelled, Refunded},
		Delivered:  {Completed, Cancelled, Refunded},
		Completed:  {},
		Cancelled:  {},
		Refunded:   {},
	}
}

// StatusFromString parses a status from its lowercase string representation.
// Returns an error for unrecognized or invalid values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Processing, Shipped, Delivered,
// Completed, Cancelled, Refunded. Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the lowercase name of the status, matching the wire format
// used in fulfillment history entries. Returns "unknown" for invalid values.
//
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
// Completed, Cancelled and Refunded are terminal.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Refunded
}

// AllowedNext returns the set of statuses reachable from the current one.
// Returns an empty slice for terminal or invalid statuses.
func (s Status) AllowedNext() []Status {
	next, ok := allowedTransitions()[s]
	if !ok {
		return nil
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether the transition from the current status to
// next is in the fulfillment graph.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition to next.
//
// Returns:
//   - (next, nil) when the transition is in the fulfillment graph
//   - (0, *errs.InvalidTransitionError) otherwise; the caller's state is
//     left untouched
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(next) {
		return 0, errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return next, nil
}
