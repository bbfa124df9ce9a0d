package http

import (
	"time"

	"redemption/internal/core/application/usecases/queries"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ShippingInfo is the shipping snapshot in requests and responses.
type ShippingInfo struct {
	RecipientName string `json:"recipientName"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2,omitempty"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	AccountID          string       `json:"accountId"`
	TokenID            string       `json:"tokenId"`
	PhysicalItemID     int64        `json:"physicalItemId"`
	Amount             int64        `json:"amount"`
	VariantCombination string       `json:"variantCombination,omitempty"`
	Shipping           ShippingInfo `json:"shipping"`
}

// CreateOrderResponse returns the order identifier, which doubles as the
// public lookup capability for the order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// FulfillmentUpdate is one history entry in requests and responses.
type FulfillmentUpdate struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	PerformedBy string    `json:"performedBy"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderResponse is the full public record of an order.
type OrderResponse struct {
	OrderID            string              `json:"orderId"`
	AccountID          string              `json:"accountId"`
	TokenID            string              `json:"tokenId"`
	PhysicalItemID     int64               `json:"physicalItemId"`
	Amount             int64               `json:"amount"`
	VariantCombination string              `json:"variantCombination,omitempty"`
	Status             string              `json:"status"`
	Shipping           ShippingInfo        `json:"shipping"`
	History            []FulfillmentUpdate `json:"fulfillmentHistory"`
	TransactionID      string              `json:"transactionId,omitempty"`
	TrackingNumber     string              `json:"trackingNumber,omitempty"`
	TrackingURL        string              `json:"trackingUrl,omitempty"`
	Carrier            string              `json:"carrier,omitempty"`
	EstimatedDelivery  *time.Time          `json:"estimatedDelivery,omitempty"`
	Notes              string              `json:"notes,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

func orderResponseFromQuery(resp queries.GetOrderQueryResponse) OrderResponse {
	history := make([]FulfillmentUpdate, 0, len(resp.History))
	for _, entry := range resp.History {
		history = append(history, FulfillmentUpdate(entry))
	}

	return OrderResponse{
		OrderID:            resp.ID.String(),
		AccountID:          resp.AccountID,
		TokenID:            resp.TokenID,
		PhysicalItemID:     resp.PhysicalItemID,
		Amount:             resp.Amount,
		VariantCombination: resp.VariantCombination,
		Status:             resp.Status,
		Shipping:           ShippingInfo(resp.Shipping),
		History:            history,
		TransactionID:      resp.TransactionID,
		TrackingNumber:     resp.TrackingNumber,
		TrackingURL:        resp.TrackingURL,
		Carrier:            resp.Carrier,
		EstimatedDelivery:  resp.EstimatedDelivery,
		Notes:              resp.Notes,
		CreatedAt:          resp.CreatedAt,
		UpdatedAt:          resp.UpdatedAt,
	}
}

// UpdateOrderRequest is the body of PATCH /api/v1/orders/:orderId.
// Pointer fields distinguish "leave unchanged" (absent) from "set" (present).
type UpdateOrderRequest struct {
	Status            *string    `json:"status,omitempty"`
	Message           string     `json:"message,omitempty"`
	PerformedBy       string     `json:"performedBy,omitempty"`
	TrackingNumber    *string    `json:"trackingNumber,omitempty"`
	TrackingURL       *string    `json:"trackingUrl,omitempty"`
	Carrier           *string    `json:"carrier,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
	TransactionID     *string    `json:"transactionId,omitempty"`
}

// ReplaceHistoryRequest is the body of PUT /api/v1/orders/:orderId/history,
// the administrative correction path for the fulfillment history.
type ReplaceHistoryRequest struct {
	PerformedBy string              `json:"performedBy"`
	Entries     []FulfillmentUpdate `json:"entries"`
}

// BurnResponse reports the outcome of a burn execution.
type BurnResponse struct {
	TransactionID string `json:"transactionId,omitempty"`
	Status        string `json:"status"`
}

// BurnProgressResponse is the polled view of a burn run.
type BurnProgressResponse struct {
	Stage               string    `json:"stage"`
	TransactionID       string    `json:"transactionId,omitempty"`
	Reason              string    `json:"reason,omitempty"`
	NeedsReconciliation bool      `json:"needsReconciliation"`
	StartedAt           time.Time `json:"startedAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// AddVariationRequest is the body of POST /api/v1/items/:itemId/variations.
type AddVariationRequest struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// AddVariationResponse returns the new variation's identifier.
type AddVariationResponse struct {
	VariationID string `json:"variationId"`
}

// SetVariantStockRequest is the body of PUT /api/v1/items/:itemId/variants/stock.
type SetVariantStockRequest struct {
	Combination string `json:"combination"`
	Stock       int64  `json:"stock"`
}

// Variation is one declared variation in the variants listing.
type Variation struct {
	VariationID string   `json:"variationId"`
	Name        string   `json:"name"`
	Options     []string `json:"options"`
}

// VariantStock is one combination's stock counter in the variants listing.
type VariantStock struct {
	VariantStockID string `json:"variantStockId"`
	Combination    string `json:"combination"`
	Stock          int64  `json:"stock"`
}

// ItemVariantsResponse is the admin listing of an item's variant inventory.
type ItemVariantsResponse struct {
	PhysicalItemID int64          `json:"physicalItemId"`
	Variations     []Variation    `json:"variations"`
	Stocks         []VariantStock `json:"stocks"`
}

func itemVariantsResponseFromQuery(resp queries.GetItemVariantsQueryResponse) ItemVariantsResponse {
	variations := make([]Variation, 0, len(resp.Variations))
	for _, v := range resp.Variations {
		variations = append(variations, Variation{
			VariationID: v.ID.String(),
			Name:        v.Name,
			Options:     v.Options,
		})
	}

	stocks := make([]VariantStock, 0, len(resp.Stocks))
	for _, s := range resp.Stocks {
		stocks = append(stocks, VariantStock{
			VariantStockID: s.ID.String(),
			Combination:    s.Combination,
			Stock:          s.Stock,
		})
	}

	return ItemVariantsResponse{
		PhysicalItemID: resp.PhysicalItemID,
		Variations:     variations,
		Stocks:         stocks,
	}
}
