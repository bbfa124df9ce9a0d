package commands

import (
	"context"
	"errors"

	"redemption/internal/core/domain/model/order"
	"redemption/internal/pkg/errs"
)

var (
	// ErrVariantSelectionRequired indicates the item declares variations but
	// the order did not select a combination.
	ErrVariantSelectionRequired = errors.New("item has variations, a variant combination must be selected")

	// ErrVariantSelectionNotAllowed indicates a combination was selected for
	// an item without variations.
	ErrVariantSelectionNotAllowed = errors.New("item has no variations, a variant combination must not be selected")

	// ErrVariantOutOfStock indicates the selected combination does not have
	// enough stock to cover the order.
	ErrVariantOutOfStock = errors.New("selected variant combination has insufficient stock")
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Validates the variant selection against the item's catalog, captures the
// shipping snapshot, and persists the order with its seeded pending history.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory because creation reads the catalog and writes the order.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
//
// When the item declares variations the command must select an existing,
// in-stock combination; when it declares none, no combination may be
// selected. Stock is only checked here, not reserved: the counter is
// decremented when the burn completes.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalogRepo := uow.CatalogRepository()
	variations, err := catalogRepo.GetVariations(ctx, cmd.PhysicalItemID())
	if err != nil {
		return err
	}

	if len(variations) > 0 {
		if cmd.VariantCombination() == "" {
			return errs.NewValueIsRequiredErrorWithCause("variantCombination", ErrVariantSelectionRequired)
		}

		stock, err := catalogRepo.GetVariantStock(ctx, cmd.PhysicalItemID(), cmd.VariantCombination())
		if err != nil {
			return err
		}
		if stock.Stock() < cmd.Amount() {
			return errs.NewValueIsInvalidErrorWithCause("variantCombination", ErrVariantOutOfStock)
		}
	} else if cmd.VariantCombination() != "" {
		return errs.NewValueIsInvalidErrorWithCause("variantCombination", ErrVariantSelectionNotAllowed)
	}

	aggregate, err := order.NewRedemptionOrder(
		cmd.OrderID(),
		cmd.AccountID(),
		cmd.TokenID(),
		cmd.PhysicalItemID(),
		cmd.Amount(),
		cmd.VariantCombination(),
		cmd.Shipping(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
