package commands_test

import (
	"testing"

	"redemption/internal/core/domain/model/catalog"
	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testShipping(t *testing.T) order.ShippingInfo {
	t.Helper()
	shipping, err := order.NewShippingInfo("Alice Smith", "1 Main St", "", "Springfield", "12345", "US")
	require.NoError(t, err)
	return shipping
}

func newPendingOrder(t *testing.T, variantCombination string) *order.RedemptionOrder {
	t.Helper()
	aggregate, err := order.NewRedemptionOrder(
		kernel.NewUUID(), "NaccountXYZ", "T1", 1, 5, variantCombination, testShipping(t))
	require.NoError(t, err)
	return aggregate
}

func testVariation(t *testing.T, itemID int64, name string, options ...string) *catalog.ItemVariation {
	t.Helper()
	v, err := catalog.NewItemVariation(kernel.NewUUID(), itemID, name, options)
	require.NoError(t, err)
	return v
}

func testStock(t *testing.T, itemID int64, combination string, stock int64) *catalog.VariantStock {
	t.Helper()
	s, err := catalog.RestoreVariantStock(kernel.NewUUID(), itemID, combination, stock)
	require.NoError(t, err)
	return s
}
