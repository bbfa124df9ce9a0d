package order

import (
	"errors"
	"fmt"
	"time"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when a RedemptionOrder instance was
	// not created through NewRedemptionOrder or RestoreRedemptionOrder. This
	// ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New(
		"RedemptionOrder must be created via NewRedemptionOrder or RestoreRedemptionOrder",
	)

	// ErrTransactionAlreadyAttached is returned when a second, different
	// transaction identifier is attached to an order. An order corresponds to
	// at most one burn transaction; attaching a second one would mean the
	// tokens were burned twice.
	ErrTransactionAlreadyAttached = errors.New("order already has a transaction attached")
)

// RedemptionOrder links a token-burn commitment to a physical-goods shipment.
// It is the aggregate root that manages the order lifecycle from creation
// through burn to fulfillment.
//
// RedemptionOrder follows these invariants:
//   - The fulfillment history is non-empty from creation, with element 0
//     always recording the pending status
//   - The current status is DERIVED from the last history entry; there is no
//     separately stored scalar that could diverge from the history
//   - History timestamps are non-decreasing
//   - The transaction identifier is write-once
//   - Orders are never deleted (audit requirement)
//
// The order identifier doubles as the public lookup capability: anyone
// holding it may fetch the order.
type RedemptionOrder struct {
	// id is the unique identifier and externally shareable capability token
	id kernel.UUID

	// accountID is the ledger account that burns the tokens
	accountID string

	// tokenID identifies the fungible token being burned
	tokenID string

	// physicalItemID references the redeemed item (external collaborator)
	physicalItemID int64

	// amount is the quantity of tokens committed to the burn (positive)
	amount int64

	// variantCombination is the selected variant combination, when the item
	// has variations; empty string means none
	variantCombination string

	// shipping is the immutable address snapshot captured at creation
	shipping ShippingInfo

	// updates is the append-only fulfillment history
	updates []FulfillmentUpdate

	// transactionID is set exactly once, when the burn completes
	transactionID string

	trackingNumber    string
	trackingURL       string
	carrier           string
	estimatedDelivery time.Time
	notes             string

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewRedemptionOrder creates a new order with a seeded fulfillment history.
//
// Parameters:
//   - id: unique order identifier (must be a valid UUID)
//   - accountID: ledger account performing the burn (required)
//   - tokenID: token to burn (required)
//   - physicalItemID: redeemed item reference (must be positive)
//   - amount: token quantity to burn (must be positive)
//   - variantCombination: selected variant combination, or "" when the item
//     has no variations
//   - shipping: validated shipping snapshot
//
// The history is initialized with a single pending entry carrying the
// message "Order received" performed by the system, so a durable audit trail
// exists before any irreversible action is taken.
func NewRedemptionOrder(
	id kernel.UUID,
	accountID string,
	tokenID string,
	physicalItemID int64,
	amount int64,
	variantCombination string,
	shipping ShippingInfo,
) (*RedemptionOrder, error) {
	o := &RedemptionOrder{
		variantCombination: variantCombination,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setAccountID(accountID),
		o.setTokenID(tokenID),
		o.setPhysicalItemID(physicalItemID),
		o.setAmount(amount),
		o.setShipping(shipping),
	); err != nil {
		return nil, err
	}

	initial, err := NewFulfillmentUpdate(Pending, "Order received", SystemActor)
	if err != nil {
		return nil, err
	}

	o.updates = []FulfillmentUpdate{initial}
	o.createdAt = initial.Timestamp()
	o.updatedAt = initial.Timestamp()
	return o, nil
}

// RestoreRedemptionOrder reconstructs an order from persistence.
//
// In addition to field validation it re-checks the history invariants:
// non-empty, element 0 pending, timestamps non-decreasing. Corrupt history
// in storage is surfaced as an error rather than silently accepted.
func RestoreRedemptionOrder(
	id kernel.UUID,
	accountID string,
	tokenID string,
	physicalItemID int64,
	amount int64,
	variantCombination string,
	shipping ShippingInfo,
	updates []FulfillmentUpdate,
	transactionID string,
	trackingNumber string,
	trackingURL string,
	carrier string,
	estimatedDelivery time.Time,
	notes string,
	createdAt time.Time,
	updatedAt time.Time,
) (*RedemptionOrder, error) {
	o := &RedemptionOrder{
		variantCombination: variantCombination,
		transactionID:      transactionID,
		trackingNumber:     trackingNumber,
		trackingURL:        trackingURL,
		carrier:            carrier,
		estimatedDelivery:  estimatedDelivery,
		notes:              notes,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setAccountID(accountID),
		o.setTokenID(tokenID),
		o.setPhysicalItemID(physicalItemID),
		o.setAmount(amount),
		o.setShipping(shipping),
	); err != nil {
		return nil, err
	}

	if err := validateHistory(updates); err != nil {
		return nil, err
	}

	o.updates = make([]FulfillmentUpdate, len(updates))
	copy(o.updates, updates)
	return o, nil
}

// validateHistory checks the fulfillment history invariants: non-empty,
// first entry pending, every entry constructed, timestamps non-decreasing.
func validateHistory(updates []FulfillmentUpdate) error {
	if len(updates) == 0 {
		return errs.NewValueIsRequiredError("fulfillmentUpdates")
	}

	for i, u := range updates {
		if err := u.Validate(); err != nil {
			return err
		}
		if i > 0 && u.Timestamp().Before(updates[i-1].Timestamp()) {
			return errs.NewValueIsInvalidErrorWithCause("fulfillmentUpdates",
				fmt.Errorf("timestamp of entry %d precedes entry %d", i, i-1))
		}
	}

	if updates[0].Status() != Pending {
		return errs.NewValueIsInvalidErrorWithCause("fulfillmentUpdates",
			fmt.Errorf("first entry must be %s, got %s", Pending, updates[0].Status()))
	}

	return nil
}

// Validate ensures the order was created through a constructor.
func (o *RedemptionOrder) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *RedemptionOrder) IsEqual(other *RedemptionOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *RedemptionOrder) ID() kernel.UUID {
	return o.id
}

// AccountID returns the ledger account that burns the tokens.
func (o *RedemptionOrder) AccountID() string {
	return o.accountID
}

// TokenID returns the identifier of the token being burned.
func (o *RedemptionOrder) TokenID() string {
	return o.tokenID
}

// PhysicalItemID returns the redeemed item's external reference.
func (o *RedemptionOrder) PhysicalItemID() int64 {
	return o.physicalItemID
}

// Amount returns the token quantity committed to the burn.
func (o *RedemptionOrder) Amount() int64 {
	return o.amount
}

// VariantCombination returns the selected variant combination, or "" when
// the item has no variations.
func (o *RedemptionOrder) VariantCombination() string {
	return o.variantCombination
}

// Shipping returns the immutable shipping snapshot.
func (o *RedemptionOrder) Shipping() ShippingInfo {
	return o.shipping
}

// Status returns the order's current fulfillment status, derived from the
// last history entry. Because there is no stored scalar, the status can
// never diverge from the history.
func (o *RedemptionOrder) Status() Status {
	return o.updates[len(o.updates)-1].Status()
}

// FulfillmentUpdates returns a defensive copy of the append-only history.
func (o *RedemptionOrder) FulfillmentUpdates() []FulfillmentUpdate {
	out := make([]FulfillmentUpdate, len(o.updates))
	copy(out, o.updates)
	return out
}

// TransactionID returns the burn transaction identifier, or "" until the
// burn completes.
func (o *RedemptionOrder) TransactionID() string {
	return o.transactionID
}

// TrackingNumber returns the carrier tracking number, if set.
func (o *RedemptionOrder) TrackingNumber() string {
	return o.trackingNumber
}

// TrackingURL returns the carrier tracking URL, if set.
func (o *RedemptionOrder) TrackingURL() string {
	return o.trackingURL
}

// Carrier returns the shipping carrier, if set.
func (o *RedemptionOrder) Carrier() string {
	return o.carrier
}

// EstimatedDelivery returns the estimated delivery time; the zero time means
// not set.
func (o *RedemptionOrder) EstimatedDelivery() time.Time {
	return o.estimatedDelivery
}

// Notes returns free-form administrative notes.
func (o *RedemptionOrder) Notes() string {
	return o.notes
}

// CreatedAt returns when the order was created.
func (o *RedemptionOrder) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last modified.
func (o *RedemptionOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

// ApplyUpdate appends one fulfillment history entry after validating the
// status transition against the fulfillment graph.
//
// Defaults follow NewFulfillmentUpdate: empty message becomes
// "Status updated to {status}", empty performedBy becomes SystemActor.
//
// On an illegal transition the order is left byte-for-byte unmodified and an
// *errs.InvalidTransitionError is returned.
func (o *RedemptionOrder) ApplyUpdate(next Status, message, performedBy string) error {
	newStatus, err := o.Status().TransitionTo(next)
	if err != nil {
		return err
	}

	entry, err := NewFulfillmentUpdate(newStatus, message, performedBy)
	if err != nil {
		return err
	}

	o.updates = append(o.updates, entry)
	o.updatedAt = entry.Timestamp()
	return nil
}

// CompleteBurn records a successful token burn: attaches the transaction
// identifier and appends the terminal completed entry in one operation.
//
// The method is idempotent for the same transaction identifier so the
// reconciliation path can safely re-apply a completion whose first persist
// attempt failed. A different identifier is rejected: that would mean a
// second burn happened for this order.
func (o *RedemptionOrder) CompleteBurn(transactionID string) error {
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transactionID")
	}

	if o.transactionID != "" {
		if o.transactionID == transactionID && o.Status() == Completed {
			return nil
		}
		return errs.NewValueIsInvalidErrorWithCause("transactionID", ErrTransactionAlreadyAttached)
	}

	if err := o.ApplyUpdate(Completed, "Token burn confirmed, redemption completed", SystemActor); err != nil {
		return err
	}

	o.transactionID = transactionID
	return nil
}

// AttachTransaction sets the burn transaction identifier without touching
// the history. Write-once: attaching a different identifier fails.
func (o *RedemptionOrder) AttachTransaction(transactionID string) error {
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transactionID")
	}
	if o.transactionID != "" && o.transactionID != transactionID {
		return errs.NewValueIsInvalidErrorWithCause("transactionID", ErrTransactionAlreadyAttached)
	}
	o.transactionID = transactionID
	o.touch()
	return nil
}

// SetTrackingNumber sets the carrier tracking number.
func (o *RedemptionOrder) SetTrackingNumber(v string) {
	o.trackingNumber = v
	o.touch()
}

// SetTrackingURL sets the carrier tracking URL.
func (o *RedemptionOrder) SetTrackingURL(v string) {
	o.trackingURL = v
	o.touch()
}

// SetCarrier sets the shipping carrier.
func (o *RedemptionOrder) SetCarrier(v string) {
	o.carrier = v
	o.touch()
}

// SetEstimatedDelivery sets the estimated delivery time.
func (o *RedemptionOrder) SetEstimatedDelivery(v time.Time) {
	o.estimatedDelivery = v
	o.touch()
}

// SetNotes sets free-form administrative notes.
func (o *RedemptionOrder) SetNotes(v string) {
	o.notes = v
	o.touch()
}

// ReplaceHistory performs a wholesale replacement of the fulfillment
// history. This breaks the append-only audit property and exists only as an
// administrative correction path: performedBy must identify a non-system
// actor, and the replacement history must itself satisfy every history
// invariant.
func (o *RedemptionOrder) ReplaceHistory(updates []FulfillmentUpdate, performedBy string) error {
	if performedBy == "" || performedBy == SystemActor {
		return errs.NewValueIsInvalidErrorWithCause("performedBy",
			errors.New("history replacement requires an administrative actor"))
	}

	if err := validateHistory(updates); err != nil {
		return err
	}

	o.updates = make([]FulfillmentUpdate, len(updates))
	copy(o.updates, updates)
	o.touch()
	return nil
}

func (o *RedemptionOrder) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *RedemptionOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *RedemptionOrder) setAccountID(v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError("accountId")
	}
	o.accountID = v
	return nil
}

func (o *RedemptionOrder) setTokenID(v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError("tokenId")
	}
	o.tokenID = v
	return nil
}

func (o *RedemptionOrder) setPhysicalItemID(v int64) error {
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("physicalItemId",
			fmt.Errorf("%d is not greater than 0", v))
	}
	o.physicalItemID = v
	return nil
}

func (o *RedemptionOrder) setAmount(v int64) error {
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", v))
	}
	o.amount = v
	return nil
}

func (o *RedemptionOrder) setShipping(s ShippingInfo) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.shipping = s
	return nil
}
