package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"redemption/internal/core/domain/model/catalog"
	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB, tracker aggregateTracker) *GormCatalogRepository {
	return &GormCatalogRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddVariation saves a new variation to the database.
func (r *GormCatalogRepository) AddVariation(ctx context.Context, variation *catalog.ItemVariation) error {
	if err := variation.Validate(); err != nil {
		return err
	}

	dto, err := variationFromDomain(variation)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(variation.ID(), variation)
	return nil
}

// RemoveVariation deletes a variation by ID.
func (r *GormCatalogRepository) RemoveVariation(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&VariationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("variation", id.String())
	}

	return nil
}

// GetVariations retrieves an item's variations in declaration order.
func (r *GormCatalogRepository) GetVariations(ctx context.Context, physicalItemID int64) ([]*catalog.ItemVariation, error) {
	var dtos []VariationDTO
	if err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "physical_item_id = ?", physicalItemID).Error; err != nil {
		return nil, err
	}

	variations := make([]*catalog.ItemVariation, 0, len(dtos))
	for _, dto := range dtos {
		v, err := variationToDomain(dto)
		if err != nil {
			return nil, err
		}
		variations = append(variations, v)
	}

	return variations, nil
}

// AddVariantStock saves a new stock record to the database.
func (r *GormCatalogRepository) AddVariantStock(ctx context.Context, stock *catalog.VariantStock) error {
	if err := stock.Validate(); err != nil {
		return err
	}

	dto := stockFromDomain(stock)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(stock.ID(), stock)
	return nil
}

// UpdateVariantStock saves a changed stock counter to the database.
func (r *GormCatalogRepository) UpdateVariantStock(ctx context.Context, stock *catalog.VariantStock) error {
	if err := stock.Validate(); err != nil {
		return err
	}

	dto := stockFromDomain(stock)
	result := r.db.WithContext(ctx).Model(&VariantStockDTO{}).
		Where("id = ?", dto.ID).
		Update("stock", dto.Stock)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("variantStock", stock.ID().String())
	}

	r.tracker.TrackAggregate(stock.ID(), stock)
	return nil
}

// RemoveVariantStock deletes a stock record by ID.
func (r *GormCatalogRepository) RemoveVariantStock(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&VariantStockDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("variantStock", id.String())
	}

	return nil
}

// GetVariantStocks retrieves all stock records for an item in combination
// generation order.
func (r *GormCatalogRepository) GetVariantStocks(ctx context.Context, physicalItemID int64) ([]*catalog.VariantStock, error) {
	var dtos []VariantStockDTO
	if err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "physical_item_id = ?", physicalItemID).Error; err != nil {
		return nil, err
	}

	stocks := make([]*catalog.VariantStock, 0, len(dtos))
	for _, dto := range dtos {
		s, err := stockToDomain(dto)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, s)
	}

	return stocks, nil
}

// GetVariantStock retrieves the stock record for one combination.
func (r *GormCatalogRepository) GetVariantStock(
	ctx context.Context,
	physicalItemID int64,
	combination string,
) (*catalog.VariantStock, error) {
	if combination == "" {
		return nil, errs.NewValueIsRequiredError("combination")
	}

	var dto VariantStockDTO
	err := r.db.WithContext(ctx).
		First(&dto, "physical_item_id = ? AND combination = ?", physicalItemID, combination).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("variantStock", combination)
		}
		return nil, err
	}

	return stockToDomain(dto)
}

// DecrementStock atomically subtracts amount from a combination's counter.
// The availability check and the write happen in a single statement so
// concurrent redemptions of the last unit cannot both succeed.
func (r *GormCatalogRepository) DecrementStock(
	ctx context.Context,
	physicalItemID int64,
	combination string,
	amount int64,
) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	result := r.db.WithContext(ctx).Model(&VariantStockDTO{}).
		Where("physical_item_id = ? AND combination = ? AND stock >= ?",
			physicalItemID, combination, amount).
		Update("stock", gorm.Expr("stock - ?", amount))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock", catalog.ErrInsufficientStock)
	}

	return nil
}
