// Package catalogrepo provides data transfer objects and mapping functions for
// variant inventory persistence. This package implements the repository pattern
// for item variations and their per-combination stock records, handling the
// conversion between domain entities and database representations.
package catalogrepo

import (
	"encoding/json"
	"time"

	"redemption/internal/core/domain/model/catalog"
	"redemption/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VariationDTO represents the database structure for persisting item
// variations. The options list is stored as JSONB to preserve its order,
// which determines the combination generation order.
type VariationDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PhysicalItemID int64          `gorm:"index;not null"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Options        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for variation entities.
// Overrides GORM's default naming convention to use "item_variations".
func (VariationDTO) TableName() string {
	return "item_variations"
}

// VariantStockDTO represents the database structure for persisting stock
// counters. The (physical_item_id, combination) pair is unique: each
// combination has exactly one counter.
type VariantStockDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	PhysicalItemID int64     `gorm:"uniqueIndex:idx_item_combination;not null"`
	Combination    string    `gorm:"uniqueIndex:idx_item_combination;type:varchar(512);not null"`
	Stock          int64     `gorm:"not null"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for stock entities.
// Overrides GORM's default naming convention to use "variant_stocks".
func (VariantStockDTO) TableName() string {
	return "variant_stocks"
}

// variationFromDomain converts a variation domain entity to its database
// representation.
func variationFromDomain(variation *catalog.ItemVariation) (VariationDTO, error) {
	optionsJSON, err := json.Marshal(variation.Options())
	if err != nil {
		return VariationDTO{}, err
	}

	return VariationDTO{
		ID:             variation.ID().Bytes(),
		PhysicalItemID: variation.PhysicalItemID(),
		Name:           variation.Name(),
		Options:        datatypes.JSON(optionsJSON),
	}, nil
}

// variationToDomain converts a database DTO to a variation domain entity.
func variationToDomain(dto VariationDTO) (*catalog.ItemVariation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var options []string
	if err = json.Unmarshal(dto.Options, &options); err != nil {
		return nil, err
	}

	return catalog.NewItemVariation(id, dto.PhysicalItemID, dto.Name, options)
}

// stockFromDomain converts a stock domain entity to its database
// representation.
func stockFromDomain(stock *catalog.VariantStock) VariantStockDTO {
	return VariantStockDTO{
		ID:             stock.ID().Bytes(),
		PhysicalItemID: stock.PhysicalItemID(),
		Combination:    stock.Combination(),
		Stock:          stock.Stock(),
	}
}

// stockToDomain converts a database DTO to a stock domain entity.
func stockToDomain(dto VariantStockDTO) (*catalog.VariantStock, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return catalog.RestoreVariantStock(id, dto.PhysicalItemID, dto.Combination, dto.Stock)
}
