// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly and return plain response
// structs; they never go through the aggregates or repositories.
package queries

import (
	"errors"
	"time"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one redemption order by its identifier.
//
// The order ID is the public lookup capability: anyone holding it may fetch
// the order, there is no further authorization.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to fetch an order by ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// FulfillmentUpdateResponse is one audit history entry in a query response.
type FulfillmentUpdateResponse struct {
	Status      string
	Message     string
	PerformedBy string
	Timestamp   time.Time
}

// ShippingInfoResponse is the shipping snapshot in a query response.
type ShippingInfoResponse struct {
	RecipientName string
	AddressLine1  string
	AddressLine2  string
	City          string
	PostalCode    string
	Country       string
}

// GetOrderQueryResponse represents the full public record of an order:
// the burn commitment, the derived current status, the shipping snapshot,
// and the complete fulfillment history.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	AccountID          string
	TokenID            string
	PhysicalItemID     int64
	Amount             int64
	VariantCombination string
	Status             string
	Shipping           ShippingInfoResponse
	History            []FulfillmentUpdateResponse
	TransactionID      string
	TrackingNumber     string
	TrackingURL        string
	Carrier            string
	EstimatedDelivery  *time.Time
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
