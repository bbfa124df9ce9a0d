package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// historyEntryRow mirrors the JSONB encoding of one fulfillment history
// entry in the orders table.
type historyEntryRow struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	PerformedBy string    `json:"performedBy"`
	Timestamp   time.Time `json:"timestamp"`
}

// GetOrderQueryHandler retrieves a full order record from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Order %s is %s\n", resp.ID, resp.Status)
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the order lookup. The current status is derived from the
// last fulfillment history entry, never read from a stored scalar.
// Returns errs.ObjectNotFoundError when no order has the given ID.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			account_id,
			token_id,
			physical_item_id,
			amount,
			variant_combination,
			recipient_name,
			address_line1,
			address_line2,
			city,
			postal_code,
			country,
			fulfillment_history,
			transaction_id,
			tracking_number,
			tracking_url,
			carrier,
			estimated_delivery,
			notes,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		resp              GetOrderQueryResponse
		id                uuid.UUID
		historyJSON       []byte
		estimatedDelivery sql.NullTime
	)

	err := row.Scan(
		&id,
		&resp.AccountID,
		&resp.TokenID,
		&resp.PhysicalItemID,
		&resp.Amount,
		&resp.VariantCombination,
		&resp.Shipping.RecipientName,
		&resp.Shipping.AddressLine1,
		&resp.Shipping.AddressLine2,
		&resp.Shipping.City,
		&resp.Shipping.PostalCode,
		&resp.Shipping.Country,
		&historyJSON,
		&resp.TransactionID,
		&resp.TrackingNumber,
		&resp.TrackingURL,
		&resp.Carrier,
		&estimatedDelivery,
		&resp.Notes,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID

	var history []historyEntryRow
	if err = json.Unmarshal(historyJSON, &history); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.History = make([]FulfillmentUpdateResponse, 0, len(history))
	for _, entry := range history {
		resp.History = append(resp.History, FulfillmentUpdateResponse(entry))
	}
	if len(resp.History) > 0 {
		resp.Status = resp.History[len(resp.History)-1].Status
	}

	if estimatedDelivery.Valid {
		resp.EstimatedDelivery = &estimatedDelivery.Time
	}

	return resp, nil
}
