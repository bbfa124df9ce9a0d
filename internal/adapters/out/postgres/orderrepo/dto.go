// Package orderrepo provides data transfer objects and mapping functions for
// redemption order persistence. This package implements the repository pattern
// for the order domain aggregate, handling the conversion between domain
// entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper
// indexing for efficient querying by account and ledger transaction.
//
// The current status is not stored as a scalar column: it is derived from the
// last fulfillment history entry, which keeps the row and the audit trail from
// ever diverging.
type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID          string    `gorm:"index"`
	TokenID            string
	PhysicalItemID     int64
	Amount             int64
	VariantCombination string
	Shipping           ShippingDTO    `gorm:"embedded"`
	FulfillmentHistory datatypes.JSON `gorm:"type:jsonb"`
	TransactionID      string         `gorm:"index"`
	TrackingNumber     string
	TrackingURL        string `gorm:"column:tracking_url"`
	Carrier            string
	EstimatedDelivery  *time.Time
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ShippingDTO represents the shipping snapshot embedded within the order table.
// The snapshot is immutable after creation.
type ShippingDTO struct {
	RecipientName string
	AddressLine1  string
	AddressLine2  string
	City          string
	PostalCode    string
	Country       string
}

// historyEntryDTO is the JSONB encoding of one fulfillment history entry.
type historyEntryDTO struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	PerformedBy string    `json:"performedBy"`
	Timestamp   time.Time `json:"timestamp"`
}

// fromDomain converts an order domain aggregate to its database
// representation. The fulfillment history is serialized to JSONB in order.
func fromDomain(aggregate *order.RedemptionOrder) (OrderDTO, error) {
	updates := aggregate.FulfillmentUpdates()
	entries := make([]historyEntryDTO, 0, len(updates))
	for _, u := range updates {
		entries = append(entries, historyEntryDTO{
			Status:      u.Status().String(),
			Message:     u.Message(),
			PerformedBy: u.PerformedBy(),
			Timestamp:   u.Timestamp(),
		})
	}

	historyJSON, err := json.Marshal(entries)
	if err != nil {
		return OrderDTO{}, err
	}

	var estimatedDelivery *time.Time
	if v := aggregate.EstimatedDelivery(); !v.IsZero() {
		estimatedDelivery = &v
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		AccountID:          aggregate.AccountID(),
		TokenID:            aggregate.TokenID(),
		PhysicalItemID:     aggregate.PhysicalItemID(),
		Amount:             aggregate.Amount(),
		VariantCombination: aggregate.VariantCombination(),
		Shipping: ShippingDTO{
			RecipientName: aggregate.Shipping().RecipientName(),
			AddressLine1:  aggregate.Shipping().AddressLine1(),
			AddressLine2:  aggregate.Shipping().AddressLine2(),
			City:          aggregate.Shipping().City(),
			PostalCode:    aggregate.Shipping().PostalCode(),
			Country:       aggregate.Shipping().Country(),
		},
		FulfillmentHistory: datatypes.JSON(historyJSON),
		TransactionID:      aggregate.TransactionID(),
		TrackingNumber:     aggregate.TrackingNumber(),
		TrackingURL:        aggregate.TrackingURL(),
		Carrier:            aggregate.Carrier(),
		EstimatedDelivery:  estimatedDelivery,
		Notes:              aggregate.Notes(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate, including the fulfillment history,
// using RestoreRedemptionOrder so the history invariants are re-checked on
// the way out of storage.
func toDomain(dto OrderDTO) (*order.RedemptionOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipping, err := order.NewShippingInfo(
		dto.Shipping.RecipientName,
		dto.Shipping.AddressLine1,
		dto.Shipping.AddressLine2,
		dto.Shipping.City,
		dto.Shipping.PostalCode,
		dto.Shipping.Country,
	)
	if err != nil {
		return nil, err
	}

	var entries []historyEntryDTO
	if err = json.Unmarshal(dto.FulfillmentHistory, &entries); err != nil {
		return nil, err
	}

	updates := make([]order.FulfillmentUpdate, 0, len(entries))
	for _, entry := range entries {
		status, statusErr := order.StatusFromString(entry.Status)
		if statusErr != nil {
			return nil, statusErr
		}

		update, updateErr := order.RestoreFulfillmentUpdate(
			status, entry.Message, entry.PerformedBy, entry.Timestamp)
		if updateErr != nil {
			return nil, updateErr
		}

		updates = append(updates, update)
	}

	var estimatedDelivery time.Time
	if dto.EstimatedDelivery != nil {
		estimatedDelivery = *dto.EstimatedDelivery
	}

	return order.RestoreRedemptionOrder(
		id,
		dto.AccountID,
		dto.TokenID,
		dto.PhysicalItemID,
		dto.Amount,
		dto.VariantCombination,
		shipping,
		updates,
		dto.TransactionID,
		dto.TrackingNumber,
		dto.TrackingURL,
		dto.Carrier,
		estimatedDelivery,
		dto.Notes,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
