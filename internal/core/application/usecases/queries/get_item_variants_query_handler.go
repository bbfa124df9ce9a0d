package queries

import (
	"context"
	"encoding/json"

	"redemption/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetItemVariantsQueryHandler retrieves an item's variant inventory from the
// database: variations in declaration order, stock records in combination
// generation order (they share a creation-ordered index).
type GetItemVariantsQueryHandler struct {
	db *gorm.DB
}

// NewGetItemVariantsQueryHandler creates a handler for variant inventory queries.
// Requires a GORM database connection for query execution.
func NewGetItemVariantsQueryHandler(db *gorm.DB) GetItemVariantsQueryHandler {
	return GetItemVariantsQueryHandler{db: db}
}

// Handle executes the variant inventory query. An item without variations
// yields a response with empty slices, not an error: having no variations is
// a legal catalog state.
func (h GetItemVariantsQueryHandler) Handle(
	ctx context.Context,
	query GetItemVariantsQuery,
) (GetItemVariantsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetItemVariantsQueryResponse{}, err
	}

	resp := GetItemVariantsQueryResponse{
		PhysicalItemID: query.PhysicalItemID(),
		Variations:     make([]VariationResponse, 0),
		Stocks:         make([]VariantStockResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			options
		FROM item_variations
		WHERE physical_item_id = ?
		ORDER BY created_at, id
	`, query.PhysicalItemID()).Rows()
	if err != nil {
		return GetItemVariantsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			name        string
			optionsJSON []byte
		)
		if err = rows.Scan(&id, &name, &optionsJSON); err != nil {
			return GetItemVariantsQueryResponse{}, err
		}

		variationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetItemVariantsQueryResponse{}, idErr
		}

		var options []string
		if err = json.Unmarshal(optionsJSON, &options); err != nil {
			return GetItemVariantsQueryResponse{}, err
		}

		resp.Variations = append(resp.Variations, VariationResponse{
			ID:      variationID,
			Name:    name,
			Options: options,
		})
	}
	if err = rows.Err(); err != nil {
		return GetItemVariantsQueryResponse{}, err
	}

	stockRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			combination,
			stock
		FROM variant_stocks
		WHERE physical_item_id = ?
		ORDER BY created_at, id
	`, query.PhysicalItemID()).Rows()
	if err != nil {
		return GetItemVariantsQueryResponse{}, err
	}
	defer stockRows.Close()

	for stockRows.Next() {
		var (
			id          uuid.UUID
			combination string
			stock       int64
		)
		if err = stockRows.Scan(&id, &combination, &stock); err != nil {
			return GetItemVariantsQueryResponse{}, err
		}

		stockID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetItemVariantsQueryResponse{}, idErr
		}

		resp.Stocks = append(resp.Stocks, VariantStockResponse{
			ID:          stockID,
			Combination: combination,
			Stock:       stock,
		})
	}
	if err = stockRows.Err(); err != nil {
		return GetItemVariantsQueryResponse{}, err
	}

	return resp, nil
}
