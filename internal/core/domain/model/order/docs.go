// Package order contains the RedemptionOrder aggregate and its supporting
// value objects.
//
// A redemption order links an irreversible token burn to a physical-goods
// shipment. The aggregate enforces the append-only fulfillment history, the
// derived-status invariant (the current status is always the status of the
// last history entry), the fulfillment transition graph, and the write-once
// transaction identifier.
//
// The aggregate is persistence-agnostic: repositories rehydrate it through
// RestoreRedemptionOrder, which re-checks every invariant so corrupt stored
// state cannot re-enter the domain unnoticed.
package order
